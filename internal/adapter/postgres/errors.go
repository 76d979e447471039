package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes, class 23 (integrity constraint violation).
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Constraint names from the migrations.
const (
	constraintOrderID       = "orders_order_id_key"
	constraintTransactionID = "payments_transaction_id_key"
	constraintPaymentOrder  = "payments_order_id_key"
	constraintUsername      = "users_username_key"
	constraintItemMenu      = "order_items_menu_item_id_fkey"
)

func pgCode(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// isUniqueViolation reports a unique violation on constraint, or on any
// constraint when constraint is empty.
func isUniqueViolation(err error, constraint string) bool {
	code, name, ok := pgCode(err)
	return ok && code == codeUniqueViolation && (constraint == "" || name == constraint)
}

func isForeignKeyViolation(err error, constraint string) bool {
	code, name, ok := pgCode(err)
	return ok && code == codeForeignKeyViolation && (constraint == "" || name == constraint)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
