package repos_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func sampleProduct() domain.Product {
	return domain.Product{
		Name:            "AF1",
		Brand:           "NIKE",
		GenderCategory:  domain.GenderUnisex,
		Category:        domain.CategoryShoes,
		Condition:       domain.ConditionNew,
		InventoryStatus: domain.StatusInStock,
		OriginalPrice:   ptr(120.0),
		SellingPrice:    ptr(99.5),
		Sizes:           []string{"42", "43"},
		Colors:          []string{"#FFFFFF", "#000000"},
		ImageURLs:       []string{"/media/products/a.png"},
	}
}

func TestProductRepoCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repos.NewProductRepo(memdb(t))

	in := sampleProduct()
	in.CountInStock = ptr(3)
	in.ReleaseDate = ptr("2024-05-01T00:00:00.000Z")
	attrs := []domain.Attribute{
		{Key: "Material", Value: "Leather"},
		{Key: "Sole Type", Value: "Rubber"},
		{Key: "Material", Value: "Canvas"},
	}

	created, err := repo.Create(ctx, in, "u1", attrs)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.OwnerID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, attrs, created.Attributes)
	assert.Nil(t, created.Price)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 120.0, *got.OriginalPrice)
	assert.Equal(t, 99.5, *got.SellingPrice)
	assert.Equal(t, 3, *got.CountInStock)
	assert.Equal(t, []string{"#FFFFFF", "#000000"}, got.Colors)
	assert.Equal(t, []string{"/media/products/a.png"}, got.ImageURLs)
	assert.Equal(t, "2024-05-01T00:00:00.000Z", *got.ReleaseDate)
}

func TestProductRepoCreateRequiresPrices(t *testing.T) {
	repo := repos.NewProductRepo(memdb(t))
	p := sampleProduct()
	p.SellingPrice = nil
	_, err := repo.Create(context.Background(), p, "u1", nil)
	assert.Error(t, err)
}

func TestProductRepoCreateRollsBack(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	repo := repos.NewProductRepo(db)

	p := sampleProduct()
	p.Condition = "Mint"
	_, err := repo.Create(ctx, p, "u1", []domain.Attribute{{Key: "Material", Value: "Leather"}})
	require.Error(t, err)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM products`))
	assert.Zero(t, n)
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM product_attributes`))
	assert.Zero(t, n)
}

func TestProductRepoGetMissing(t *testing.T) {
	repo := repos.NewProductRepo(memdb(t))
	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestProductRepoListByCategory(t *testing.T) {
	ctx := context.Background()
	repo := repos.NewProductRepo(memdb(t))

	shoe := sampleProduct()
	bag := sampleProduct()
	bag.Name = "Speedy"
	bag.Category = domain.CategoryBags
	_, err := repo.Create(ctx, shoe, "u1", nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, bag, "u1", nil)
	require.NoError(t, err)

	bags, err := repo.ListByCategory(ctx, domain.CategoryBags, 10, 0)
	require.NoError(t, err)
	require.Len(t, bags, 1)
	assert.Equal(t, "Speedy", bags[0].Name)

	all, err := repo.ListByCategory(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	page2, err := repo.ListByCategory(ctx, "", 1, 1)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}
