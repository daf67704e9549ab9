package repository

import (
	"context"
	"pharmacy-store/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, repo ProductRepository, name string, price string, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestDecrementStockConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, "Paracetamol 500mg", "100.00", 5)

	rows, err := repo.DecrementStock(ctx, db, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.StockQuantity)

	// not enough left: the write must not apply
	rows, err = repo.DecrementStock(ctx, db, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	got, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.StockQuantity)
}

func TestDecrementStockToZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, "Ibuprofen 200mg", "55.50", 4)

	rows, err := repo.DecrementStock(ctx, db, product.ID, 4)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.StockQuantity)

	rows, err = repo.DecrementStock(ctx, db, product.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	categoryRepo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &model.Category{Name: "Pain Relief"}
	require.NoError(t, categoryRepo.Create(ctx, category))

	require.NoError(t, repo.Create(ctx, &model.Product{
		Name:          "Aspirin",
		Description:   "pain relief tablets",
		Price:         decimal.RequireFromString("30.00"),
		StockQuantity: 10,
		CategoryID:    &category.ID,
		Featured:      true,
	}))
	require.NoError(t, repo.Create(ctx, &model.Product{
		Name:          "Vitamin C",
		Description:   "immunity support",
		Price:         decimal.RequireFromString("20.00"),
		StockQuantity: 10,
	}))

	byCategory, err := repo.List(ctx, ProductFilter{CategoryID: category.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, "Aspirin", byCategory[0].Name)

	bySearch, err := repo.List(ctx, ProductFilter{Search: "immunity"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.Equal(t, "Vitamin C", bySearch[0].Name)

	featured, err := repo.List(ctx, ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.Equal(t, "Aspirin", featured[0].Name)

	all, err := repo.List(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestUpdateMissingProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Update(context.Background(), 999, map[string]interface{}{"name": "x"})
	require.Error(t, err)
}
