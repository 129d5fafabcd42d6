package models

// Relationship is an edge of the ER diagram rendered for a database.
type Relationship struct {
	FromTable string
	ToTable   string
	Type      string // "||--o{", "||--||"
	Label     string
}
