package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return isPgErrCode(err, "23505") // unique_violation
}

// isForeignKeyViolation verifica si un error es una violación de llave
// foránea (23503), p. ej. un traslado que referencia un stock inexistente.
func isForeignKeyViolation(err error) bool {
	return isPgErrCode(err, "23503") // foreign_key_violation
}

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}
