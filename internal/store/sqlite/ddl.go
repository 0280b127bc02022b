package sqlite

import (
	"database/sql"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var ddlFile string

// applySchema executes the embedded CREATE statements. All statements are
// idempotent so this is safe on every open.
func applySchema(db *sql.DB) error {
	for _, part := range strings.Split(ddlFile, ";") {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
