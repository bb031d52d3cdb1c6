package connect

// NotesFieldLabel is the server-generated label for an item's notes
// field. The reconciliation engine never creates or mutates this field.
const NotesFieldLabel = "notesPlain"

// ItemCategory selects the template applied to an item. The category is
// immutable after creation; changing it requires deleting and
// recreating the item.
type ItemCategory string

const (
	CategoryLogin                ItemCategory = "LOGIN"
	CategoryPassword             ItemCategory = "PASSWORD"
	CategoryAPICredential        ItemCategory = "API_CREDENTIAL"
	CategoryServer               ItemCategory = "SERVER"
	CategoryDatabase             ItemCategory = "DATABASE"
	CategorySoftwareLicense      ItemCategory = "SOFTWARE_LICENSE"
	CategorySecureNote           ItemCategory = "SECURE_NOTE"
	CategoryWirelessRouter       ItemCategory = "WIRELESS_ROUTER"
	CategoryBankAccount          ItemCategory = "BANK_ACCOUNT"
	CategoryEmailAccount         ItemCategory = "EMAIL_ACCOUNT"
	CategoryCreditCard           ItemCategory = "CREDIT_CARD"
	CategoryMembership           ItemCategory = "MEMBERSHIP"
	CategoryPassport             ItemCategory = "PASSPORT"
	CategoryOutdoorLicense       ItemCategory = "OUTDOOR_LICENSE"
	CategoryDriverLicense        ItemCategory = "DRIVER_LICENSE"
	CategoryIdentity             ItemCategory = "IDENTITY"
	CategoryRewardProgram        ItemCategory = "REWARD_PROGRAM"
	CategorySocialSecurityNumber ItemCategory = "SOCIAL_SECURITY_NUMBER"
)

// ItemCategories returns every valid item category.
func ItemCategories() []ItemCategory {
	return []ItemCategory{
		CategoryLogin,
		CategoryPassword,
		CategoryAPICredential,
		CategoryServer,
		CategoryDatabase,
		CategorySoftwareLicense,
		CategorySecureNote,
		CategoryWirelessRouter,
		CategoryBankAccount,
		CategoryEmailAccount,
		CategoryCreditCard,
		CategoryMembership,
		CategoryPassport,
		CategoryOutdoorLicense,
		CategoryDriverLicense,
		CategoryIdentity,
		CategoryRewardProgram,
		CategorySocialSecurityNumber,
	}
}

// FieldType declares the expected value type for a field.
type FieldType string

const (
	FieldTypeString    FieldType = "STRING"
	FieldTypeEmail     FieldType = "EMAIL"
	FieldTypeConcealed FieldType = "CONCEALED"
	FieldTypeURL       FieldType = "URL"
	FieldTypeTOTP      FieldType = "TOTP"
	FieldTypeDate      FieldType = "DATE"
	FieldTypeMonthYear FieldType = "MONTH_YEAR"
)

// FieldTypes returns every valid field type.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeString,
		FieldTypeEmail,
		FieldTypeConcealed,
		FieldTypeURL,
		FieldTypeTOTP,
		FieldTypeDate,
		FieldTypeMonthYear,
	}
}

// Purpose marks a field as primary for UI rendering. It is derived
// during item assembly, never set directly by callers.
type Purpose string

const (
	PurposeNone     Purpose = ""
	PurposeUsername Purpose = "USERNAME"
	PurposePassword Purpose = "PASSWORD"
	PurposeNotes    Purpose = "NOTES"
)

// Character set identifiers for the value generator recipe.
const (
	CharsetDigits  = "DIGITS"
	CharsetLetters = "LETTERS"
	CharsetSymbols = "SYMBOLS"
)

// GeneratorRecipe configures server-side value generation.
// A nil recipe tells the server to use its defaults.
type GeneratorRecipe struct {
	Length        int      `json:"length"`
	CharacterSets []string `json:"characterSets"`
}

// VaultRef points a resource at its containing vault.
type VaultRef struct {
	ID string `json:"id"`
}

// Vault is a named container for items.
type Vault struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SectionRef attaches a field to an item section.
type SectionRef struct {
	ID string `json:"id"`
}

// Section is a named grouping of fields within an item. Sections exist
// only as a side effect of fields referencing them.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// URL is a clickable link stored on an item.
type URL struct {
	Href string `json:"href"`
}

// Field is a single labeled value on an item.
type Field struct {
	ID       string           `json:"id,omitempty"`
	Label    string           `json:"label,omitempty"`
	Type     FieldType        `json:"type"`
	Purpose  Purpose          `json:"purpose,omitempty"`
	Value    string           `json:"value,omitempty"`
	Generate bool             `json:"generate,omitempty"`
	Recipe   *GeneratorRecipe `json:"recipe,omitempty"`
	Section  *SectionRef      `json:"section,omitempty"`
}

// SectionID returns the id of the field's section, or "" when the
// field is not grouped.
func (f Field) SectionID() string {
	if f.Section == nil {
		return ""
	}
	return f.Section.ID
}

// Item is a named secret record stored in a vault. Identity is
// (vault id, item id) once created; before creation it is provisional,
// keyed by (vault id, title).
type Item struct {
	ID        string       `json:"id,omitempty"`
	Title     string       `json:"title"`
	Vault     VaultRef     `json:"vault"`
	Category  ItemCategory `json:"category"`
	URLs      []URL        `json:"urls"`
	Tags      []string     `json:"tags"`
	Favorite  bool         `json:"favorite"`
	Fields    []Field      `json:"fields"`
	Sections  []Section    `json:"sections,omitempty"`
	CreatedAt string       `json:"created_at,omitempty"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}
