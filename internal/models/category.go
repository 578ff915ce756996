package models

// Category is the categories row.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}
