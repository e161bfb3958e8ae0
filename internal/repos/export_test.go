package repos

import "github.com/jmoiron/sqlx"

func EnsureSchemaForTest(db *sqlx.DB) error {
	if err := ensureSchema(db); err != nil {
		return err
	}
	return seedOperators(db)
}
