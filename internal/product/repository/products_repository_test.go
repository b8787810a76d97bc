package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	apperrors "backoffice/internal/errors"
	"backoffice/internal/testutil"
)

func intPtr(i int) *int {
	return &i
}

func seedCollection(t *testing.T, db *sql.DB, id, colors string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO Product (id, title, description, price, category, isNewArrival, variantKind, stock, color)
		VALUES (?, 'Scarf', '', 25.00, 'accessories', 0, 'collection', NULL, ?)
	`, id, colors)
	require.NoError(t, err)
}

// Unit Tests

func TestNewMySQLRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestColorsArg(t *testing.T) {
	single := domain.Product{Kind: domain.VariantSingle, Colors: domain.ColorLedger{{Color: "red", Qty: 1}}}
	arg, err := colorsArg(single)
	require.NoError(t, err)
	assert.Nil(t, arg)

	collection := domain.Product{Kind: domain.VariantCollection}
	arg, err = colorsArg(collection)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(arg.([]byte)))
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, "scarf", likeEscaper.Replace("scarf"))
	assert.Equal(t, "!%", likeEscaper.Replace("%"))
	assert.Equal(t, "50!% off!_sale!!", likeEscaper.Replace("50% off_sale!"))
}

func TestDiscountArg(t *testing.T) {
	assert.False(t, discountArg(domain.Product{}).Valid)

	d := decimal.RequireFromString("2.50")
	arg := discountArg(domain.Product{Discount: &d})
	assert.True(t, arg.Valid)
	assert.True(t, d.Equal(arg.Decimal))
}

// Integration Tests

func TestRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)
	discount := decimal.RequireFromString("5.00")

	err := repo.Create(context.Background(), domain.Product{
		ID:           "0b6f3b0e-0000-4000-8000-000000000001",
		Title:        "Scarf",
		Description:  "<p>wool</p>",
		Price:        decimal.RequireFromString("25.00"),
		Discount:     &discount,
		Category:     "accessories",
		IsNewArrival: true,
		Kind:         domain.VariantCollection,
		Colors:       domain.ColorLedger{{Color: "red", Qty: 2}, {Color: "blue", Qty: 1}},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	p, err := repo.FindByID(context.Background(), "0b6f3b0e-0000-4000-8000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "Scarf", p.Title)
	assert.Equal(t, domain.VariantCollection, p.Kind)
	assert.Equal(t, domain.ColorLedger{{Color: "red", Qty: 2}, {Color: "blue", Qty: 1}}, p.Colors)
	assert.True(t, decimal.RequireFromString("25").Equal(p.Price))
	require.NotNil(t, p.Discount)
	assert.True(t, discount.Equal(*p.Discount))
	assert.True(t, p.IsNewArrival)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	p, err := repo.FindByID(context.Background(), "missing")
	assert.Nil(t, p)
	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ResourceProduct, nfe.Resource)
}

func TestRepository_FindByID_MalformedLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	seedCollection(t, db, "p-bad", `{"red": 2}`)

	p, err := repo.FindByID(context.Background(), "p-bad")
	assert.Nil(t, p)
	_, ok := apperrors.IsDataIntegrityError(err)
	assert.True(t, ok)
}

func TestRepository_Mutate_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	seedCollection(t, db, "p1", `[{"color":"red","qty":2},{"color":"blue","qty":0}]`)

	updated, err := repo.Mutate(context.Background(), "p1", func(p *domain.Product) error {
		p.Colors[0].Qty = 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Colors[0].Qty)

	reloaded, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorLedger{{Color: "red", Qty: 5}, {Color: "blue", Qty: 0}}, reloaded.Colors)
}

func TestRepository_Mutate_FailureWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	seedCollection(t, db, "p1", `[{"color":"red","qty":2}]`)

	boom := errors.New("rejected")
	_, err := repo.Mutate(context.Background(), "p1", func(p *domain.Product) error {
		p.Colors[0].Qty = 100
		return boom
	})
	assert.ErrorIs(t, err, boom)

	reloaded, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Colors[0].Qty)
}

func TestRepository_Mutate_ConcurrentIncrements(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	seedCollection(t, db, "p1", `[{"color":"red","qty":0}]`)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(context.Background(), "p1", func(p *domain.Product) error {
				p.Colors[0].Qty++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	reloaded, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Colors[0].Qty)
}

func TestRepository_SingleStockRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	now := time.Now().UTC()
	err := repo.Create(context.Background(), domain.Product{
		ID: "p-single", Title: "Mug", Price: decimal.NewFromInt(8), Category: "kitchen",
		Kind: domain.VariantSingle, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	p, err := repo.FindByID(context.Background(), "p-single")
	require.NoError(t, err)
	assert.Nil(t, p.Stock)

	_, err = repo.Mutate(context.Background(), "p-single", func(p *domain.Product) error {
		p.Stock = intPtr(12)
		return nil
	})
	require.NoError(t, err)

	p, err = repo.FindByID(context.Background(), "p-single")
	require.NoError(t, err)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 12, *p.Stock)
}

func TestRepository_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	_, err := db.Exec(`
		INSERT INTO Product (id, title, description, price, category, variantKind, stock)
		VALUES ('a', 'Red Scarf', '', 10.00, 'accessories', 'single', 1),
		       ('b', 'Blue Hat', '', 12.00, 'accessories', 'single', 0),
		       ('c', 'Scarf Ring', '', 3.00, 'jewelry', 'single', 5),
		       ('d', '100% Wool_Scarf', '', 30.00, 'accessories', 'single', 2)
	`)
	require.NoError(t, err)

	products, err := repo.List(context.Background(), domain.ProductFilter{Title: "scarf"})
	require.NoError(t, err)
	assert.Len(t, products, 3)

	for _, title := range []string{"%", "a_f", "!"} {
		products, err = repo.List(context.Background(), domain.ProductFilter{Title: title})
		require.NoError(t, err)
		if title == "%" {
			require.Len(t, products, 1, "wildcards match literally")
			assert.Equal(t, "d", products[0].ID)
		} else {
			assert.Empty(t, products, "title %q", title)
		}
	}

	products, err = repo.List(context.Background(), domain.ProductFilter{Title: "scarf", Category: "jewelry"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "c", products[0].ID)
}

func TestRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	seedCollection(t, db, "p1", `[]`)

	require.NoError(t, repo.Delete(context.Background(), "p1"))

	err := repo.Delete(context.Background(), "p1")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
