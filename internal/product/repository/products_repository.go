package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
	"backoffice/internal/infrastructure/mysql"
)

const productColumns = `id, title, description, price, discount, category, isNewArrival,
	variantKind, stock, color, createdAt, updatedAt`

// likeEscaper makes a title filter match literally, as the memory store does.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p        domain.Product
		discount decimal.NullDecimal
		kind     string
		colors   []byte
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &discount, &p.Category, &p.IsNewArrival,
		&kind, &p.Stock, &colors, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discount.Valid {
		p.Discount = &discount.Decimal
	}

	p.Kind, err = domain.ParseVariantKind(kind)
	if err != nil {
		return nil, apperrors.NewDataIntegrityError(fmt.Sprintf("product %s has an invalid variant kind", p.ID), err)
	}

	if p.Kind == domain.VariantCollection {
		p.Colors, err = domain.DecodeColorLedger(colors)
		if err != nil {
			return nil, apperrors.NewDataIntegrityError(fmt.Sprintf("product %s has a malformed color ledger", p.ID), err)
		}
	}

	return &p, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM Product WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	return p, classifyFindError(err, id)
}

func (r *MySQLRepository) findByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM Product WHERE id = ? FOR UPDATE`

	p, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	return p, classifyFindError(err, id)
}

func classifyFindError(err error, id string) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return apperrors.NewResourceNotFoundError(apperrors.ResourceProduct, id)
	}
	if _, ok := apperrors.IsDataIntegrityError(err); ok {
		return err
	}
	return mysql.WrapError("querying product by id", err)
}

func (r *MySQLRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Title != "" {
		conditions = append(conditions, "title LIKE CONCAT('%', ?, '%') ESCAPE '!'")
		args = append(args, likeEscaper.Replace(filter.Title))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}

	query := `SELECT ` + productColumns + ` FROM Product`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY createdAt DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mysql.WrapError("querying products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			if _, ok := apperrors.IsDataIntegrityError(err); ok {
				return nil, err
			}
			return nil, mysql.WrapError("scanning product row", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, mysql.WrapError("iterating product rows", err)
	}

	return products, nil
}

func (r *MySQLRepository) Create(ctx context.Context, p domain.Product) error {
	colors, err := colorsArg(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO Product (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.Price, discountArg(p), p.Category, p.IsNewArrival,
		string(p.Kind), p.Stock, colors, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mysql.WrapError("inserting product", err)
	}
	return nil
}

// Mutate runs a read-modify-write of one product inside a transaction. The
// row stays locked from the read until commit, so concurrent mutations of
// the same product never interleave. If fn fails nothing is written.
func (r *MySQLRepository) Mutate(ctx context.Context, id string, fn func(p *domain.Product) error) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, mysql.WrapError("beginning transaction", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	p, err := r.findByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now().UTC()
	if err := r.save(ctx, tx, *p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, mysql.WrapError("committing transaction", err)
	}

	return p, nil
}

// save overwrites the whole record.
func (r *MySQLRepository) save(ctx context.Context, tx *sql.Tx, p domain.Product) error {
	colors, err := colorsArg(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE Product
		SET title = ?, description = ?, price = ?, discount = ?, category = ?, isNewArrival = ?,
		    variantKind = ?, stock = ?, color = ?, updatedAt = ?
		WHERE id = ?`

	_, err = tx.ExecContext(ctx, query,
		p.Title, p.Description, p.Price, discountArg(p), p.Category, p.IsNewArrival,
		string(p.Kind), p.Stock, colors, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return mysql.WrapError("updating product", err)
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Product WHERE id = ?`, id)
	if err != nil {
		return mysql.WrapError("deleting product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mysql.WrapError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewResourceNotFoundError(apperrors.ResourceProduct, id)
	}

	return nil
}

func discountArg(p domain.Product) decimal.NullDecimal {
	if p.Discount == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p.Discount, Valid: true}
}

// colorsArg returns the stored form of the ledger. Single products keep no
// ledger.
func colorsArg(p domain.Product) (any, error) {
	if p.Kind != domain.VariantCollection {
		return nil, nil
	}
	raw, err := p.Colors.Encode()
	if err != nil {
		return nil, apperrors.NewInternalError("encoding color ledger", err)
	}
	return raw, nil
}
