package repository

import (
	"context"
	"database/sql"
	"time"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
	"backoffice/internal/infrastructure/mysql"
)

const orderColumns = `id, firstName, lastName, email, phone, address,
	totalPrice, paid, fulfillment, createdAt, updatedAt`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, id string) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.FirstName, &order.LastName, &order.Email,
		&order.Phone, &order.Address, &order.TotalPrice, &order.Paid, &order.Fulfillment,
		&order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, id)
	}
	if err != nil {
		return nil, mysql.WrapError("querying order by id", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ?`
	return scanOrder(r.db.QueryRowContext(ctx, query, id), id)
}

// UpdateFlags applies flags to the order under a row lock and returns the
// stored result.
func (r *MySQLOrderRepository) UpdateFlags(ctx context.Context, id string, flags domain.OrderFlags) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mysql.WrapError("beginning transaction", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ? FOR UPDATE`
	order, err := scanOrder(tx.QueryRowContext(ctx, query, id), id)
	if err != nil {
		return nil, err
	}

	order.Apply(flags)
	order.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE Orders SET paid = ?, fulfillment = ?, updatedAt = ? WHERE id = ?`,
		order.Paid, order.Fulfillment, order.UpdatedAt, id,
	)
	if err != nil {
		return nil, mysql.WrapError("updating order flags", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mysql.WrapError("committing transaction", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return mysql.WrapError("deleting order", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mysql.WrapError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewResourceNotFoundError(apperrors.ResourceOrder, id)
	}

	return nil
}
