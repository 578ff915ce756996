package domain

// Category groups commitments and transactions. Names are unique by convention only.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
