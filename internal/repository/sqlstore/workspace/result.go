package workspace

import (
	"database/sql"

	"threadline/internal/domain"
	"threadline/internal/repository/sqlstore"
)

// requireRow turns a zero-row write into a NotFoundError
func requireRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return sqlstore.WrapError("rows affected", err)
	}
	if n == 0 {
		return domain.NewNotFoundError(kind, id)
	}
	return nil
}
