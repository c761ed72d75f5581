package repository_test

import (
	"context"
	"errors"
	"testing"

	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"cafeteria/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProducts(t *testing.T, repo repository.ProductRepository) []models.Product {
	t.Helper()
	products := []models.Product{
		{Name: "Iced Tea", Price: decimal.NewFromInt(25), Category: "Drink"},
		{Name: "Green Tea", Price: decimal.NewFromInt(20), Category: "Drink"},
		{Name: "Espresso", Price: decimal.NewFromInt(40), Category: "Drink"},
		{Name: "Sandwich", Price: decimal.RequireFromString("7.50"), Category: "Food"},
		{Name: "100% Juice_Box", Price: decimal.NewFromInt(15), Category: "Drink"},
	}
	require.NoError(t, repo.CreateBatch(context.Background(), products))
	return products
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	user := &models.User{Username: "alice", PasswordHash: "digest", Role: string(models.RoleCustomer)}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "other"})
	assert.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProductRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(testutil.NewDB(t))
	seedProducts(t, repo)

	names := func(products []models.Product) []string {
		var out []string
		for _, p := range products {
			out = append(out, p.Name)
		}
		return out
	}

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"no filters", "", "", []string{"Iced Tea", "Green Tea", "Espresso", "Sandwich", "100% Juice_Box"}},
		{"name substring case-insensitive", "tEA", "", []string{"Iced Tea", "Green Tea"}},
		{"category only", "", "Food", []string{"Sandwich"}},
		{"both filters", "tea", "Food", nil},
		{"percent is literal", "%", "", []string{"100% Juice_Box"}},
		{"underscore is literal", "_", "", []string{"100% Juice_Box"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.query, tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestProductRepositoryPricesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(testutil.NewDB(t))

	product := &models.Product{Name: "Latte", Price: decimal.RequireFromString("2.55"), Category: "Drink"}
	require.NoError(t, repo.Create(ctx, product))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2.55")), got.Price.String())

	_, err = repo.GetByID(ctx, product.ID+100)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestOrderRepositoryCreateWithItems(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	items := repository.NewOrderItemRepository(db)

	user := &models.User{Username: "carol", PasswordHash: "digest"}
	require.NoError(t, users.Create(ctx, user))
	seeded := seedProducts(t, products)

	order := &models.Order{
		UserID:     user.ID,
		TotalPrice: decimal.NewFromInt(75),
		Status:     string(models.OrderPending),
		Items:      []models.OrderItem{{ProductID: seeded[0].ID, Quantity: 3}},
	}
	require.NoError(t, orders.Create(ctx, order))
	require.NotZero(t, order.ID)

	stored, err := items.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].Quantity)
	assert.Equal(t, "Iced Tea", stored[0].Product.Name)

	got, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.User.Username)
	require.Len(t, got.Items, 1)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(75)))

	byUser, err := orders.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	byOther, err := orders.GetByUserID(ctx, user.ID+1)
	require.NoError(t, err)
	assert.Empty(t, byOther)

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, models.OrderCompleted))
	got, err = orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderCompleted), got.Status)
}

func TestOrderRepositoryCreateRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)

	user := &models.User{Username: "dave", PasswordHash: "digest"}
	require.NoError(t, users.Create(ctx, user))

	// The item references a product that does not exist, so the foreign key
	// rejects it and the order must not survive.
	order := &models.Order{
		UserID:     user.ID,
		TotalPrice: decimal.NewFromInt(10),
		Status:     string(models.OrderPending),
		Items:      []models.OrderItem{{ProductID: 999, Quantity: 1}},
	}
	require.Error(t, orders.Create(ctx, order))

	all, err := orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}
