package models

import (
	"database/sql"
	"time"
)

// Account is the row shape of the accounts table.
type Account struct {
	ID        int64         `db:"id"`
	Code      string        `db:"code"`
	Name      string        `db:"name"`
	Type      string        `db:"type"`
	ParentID  sql.NullInt64 `db:"parent_id"`
	CreatedAt time.Time     `db:"created_at"`
}
