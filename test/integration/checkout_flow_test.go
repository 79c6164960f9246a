package integration

import (
	"context"
	"testing"

	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/repository"
	"github.com/Ziad-Belal/strike-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)

	teeID, err := productRepo.Create(ctx, &model.Product{
		Name:  "Oversized Tee",
		Price: 25,
		Sizes: []string{"M", "L"},
		Stock: 10,
	})
	require.NoError(t, err)

	capID, err := productRepo.Create(ctx, &model.Product{
		Name:  "Cap",
		Price: 15,
		Stock: 3,
	})
	require.NoError(t, err)

	promoCode := "SAVE10"
	placed, err := orderService.PlaceOrder(ctx, &model.OrderRequest{
		UserID: "user-1",
		Items: []model.CartLineItem{
			{ProductID: teeID, Name: "Oversized Tee", UnitPrice: 25, Size: "M", Quantity: 2},
			{ProductID: capID, Name: "Cap", UnitPrice: 15, Quantity: 1},
		},
		Subtotal:  65,
		Discount:  10,
		Shipping:  60,
		PromoCode: &promoCode,
		Total:     115,
	})
	require.NoError(t, err)
	require.NotNil(t, placed)

	// The order is durable with its items.
	resp, err := orderService.GetByID(ctx, placed.OrderID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 115.0, resp.TotalPrice)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Len(t, resp.Items, 2)
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "SAVE10", *resp.PromoCode)

	// Stock went down inside the same transaction.
	tee, err := productRepo.GetByID(ctx, teeID)
	require.NoError(t, err)
	assert.Equal(t, 8, tee.Stock)

	hat, err := productRepo.GetByID(ctx, capID)
	require.NoError(t, err)
	assert.Equal(t, 2, hat.Stock)
}

func TestPlaceOrder_InsufficientStockAbortsEverything(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)

	id, err := productRepo.Create(ctx, &model.Product{
		Name:  "Limited Tee",
		Price: 25,
		Stock: 1,
	})
	require.NoError(t, err)

	placed, err := orderService.PlaceOrder(ctx, &model.OrderRequest{
		UserID: "user-1",
		Items: []model.CartLineItem{
			{ProductID: id, Name: "Limited Tee", UnitPrice: 25, Quantity: 2},
		},
		Subtotal: 50,
		Shipping: 60,
		Total:    110,
	})

	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Nil(t, placed)

	// Nothing was written: stock and order tables are untouched.
	product, err := productRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stock)

	var orderCount int
	require.NoError(t, db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&orderCount))
	assert.Zero(t, orderCount)
}

func TestPromoRepository_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	promoRepo := repository.NewPromoRepository(db.Pool, logger)

	maxUsages := 5
	require.NoError(t, promoRepo.Upsert(ctx, &model.PromoCode{
		Code:          "SUMMER20",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 20,
		MaxUsages:     &maxUsages,
		Active:        true,
	}))

	// Lookup is case-insensitive.
	promo, err := promoRepo.GetByCode(ctx, "summer20")
	require.NoError(t, err)
	require.NotNil(t, promo)
	assert.Equal(t, "SUMMER20", promo.Code)
	assert.Equal(t, 0, promo.CurrentUsages)

	require.NoError(t, promoRepo.IncrementUsage(ctx, "SUMMER20"))

	promo, err = promoRepo.GetByCode(ctx, "SUMMER20")
	require.NoError(t, err)
	assert.Equal(t, 1, promo.CurrentUsages)

	// Redefinition keeps the usage counter.
	require.NoError(t, promoRepo.Upsert(ctx, &model.PromoCode{
		Code:          "SUMMER20",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 25,
		MaxUsages:     &maxUsages,
		Active:        true,
	}))

	promo, err = promoRepo.GetByCode(ctx, "SUMMER20")
	require.NoError(t, err)
	assert.Equal(t, 25.0, promo.DiscountValue)
	assert.Equal(t, 1, promo.CurrentUsages)

	// Unknown codes come back nil without error.
	promo, err = promoRepo.GetByCode(ctx, "ABSENT")
	require.NoError(t, err)
	assert.Nil(t, promo)
}

func TestProfileRepository_UpsertPreservesRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	profileRepo := repository.NewProfileRepository(db.Pool, logger)

	require.NoError(t, profileRepo.Upsert(ctx, &model.CustomerProfile{
		UserID:   "admin-1",
		FullName: "Site Admin",
		Phone:    "0123456789",
		Address:  "HQ",
		Role:     model.RoleAdmin,
	}))

	// A later self-service update must not downgrade the role.
	require.NoError(t, profileRepo.Upsert(ctx, &model.CustomerProfile{
		UserID:   "admin-1",
		FullName: "Site Admin",
		Phone:    "0111111111",
		Address:  "New HQ",
		Role:     model.RoleCustomer,
	}))

	prof, err := profileRepo.GetByUserID(ctx, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, prof)
	assert.Equal(t, model.RoleAdmin, prof.Role)
	assert.Equal(t, "0111111111", prof.Phone)
}
