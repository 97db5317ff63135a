package models

import "github.com/uptrace/bun"

// Transaction is a single ledger entry. Entries are shared across all
// users rather than scoped to the creator.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:tx"`

	ID          int     `bun:"id,pk,autoincrement" json:"id"`
	Type        string  `bun:"type,notnull" json:"type"`
	Category    string  `bun:"category,notnull" json:"category"`
	Amount      float64 `bun:"amount,notnull" json:"amount"`
	Date        string  `bun:"date,notnull" json:"date"`
	Description string  `bun:"description" json:"description"`
}
