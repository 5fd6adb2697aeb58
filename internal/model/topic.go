package model

// Topic is a category articles are filed under. Topics are seeded only.
type Topic struct {
	Slug        string `json:"slug"        db:"slug"`
	Description string `json:"description" db:"description"`
}
