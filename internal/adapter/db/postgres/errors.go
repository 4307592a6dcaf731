package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// sqliteUniqueMessage is how SQLite reports a violated UNIQUE constraint.
const sqliteUniqueMessage = "UNIQUE constraint failed"

// isUniqueViolation reports whether err was caused by a unique constraint.
// GORM translates driver errors when TranslateError is enabled; the raw
// checks cover connections opened without it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return strings.Contains(err.Error(), sqliteUniqueMessage)
}
