package service

import (
	"errors"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/model"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testAddress() dto.ShippingAddress {
	return dto.ShippingAddress{
		AddressLine1: "12 MG Road",
		City:         "Pune",
		State:        "Maharashtra",
		PostalCode:   "411001",
		Country:      "India",
	}
}

func TestCreateOrderCOD(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	resp, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items: []*dto.OrderItemRequest{
			{ProductID: product.ID, Quantity: 2},
		},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	require.NotZero(t, resp.OrderID)
	require.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("200.00")),
		"total %s", resp.TotalAmount)

	require.Equal(t, 3, productStock(t, db, product.ID))

	var order model.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.Equal(t, model.PaymentMethodCOD, order.PaymentMethod)
	require.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	require.Equal(t, model.OrderStatusPending, order.Status)
	require.Equal(t, uint(1), order.UserID)

	var items []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, items[0].Price.Equal(product.Price))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 1)

	_, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items: []*dto.OrderItemRequest{
			{ProductID: product.ID, Quantity: 2},
		},
		ShippingAddress: testAddress(),
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, product.ID, stockErr.ProductID)

	require.Equal(t, 1, productStock(t, db, product.ID))
	require.Zero(t, countRows(t, db, &model.Order{}))
	require.Zero(t, countRows(t, db, &model.OrderItem{}))
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	cases := []struct {
		name string
		req  *dto.CreateOrderRequest
	}{
		{
			name: "empty items",
			req: &dto.CreateOrderRequest{
				ShippingAddress: testAddress(),
			},
		},
		{
			name: "non-positive quantity",
			req: &dto.CreateOrderRequest{
				Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 0}},
				ShippingAddress: testAddress(),
			},
		},
		{
			name: "missing address fields",
			req: &dto.CreateOrderRequest{
				Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
				ShippingAddress: dto.ShippingAddress{City: "Pune"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(testCtx, 1, tc.req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	require.Equal(t, 5, productStock(t, db, product.ID))
	require.Zero(t, countRows(t, db, &model.Order{}))
}

func TestCreateOrderUnknownProductRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	_, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items: []*dto.OrderItemRequest{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
		ShippingAddress: testAddress(),
	})

	var notFoundErr *ProductNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	require.Equal(t, uint(9999), notFoundErr.ProductID)

	// nothing persisted, stock untouched, not even the address row
	require.Equal(t, 5, productStock(t, db, product.ID))
	require.Zero(t, countRows(t, db, &model.Order{}))
	require.Zero(t, countRows(t, db, &model.OrderItem{}))
	require.Zero(t, countRows(t, db, &model.Address{}))
}

func TestClientPriceNeverTrusted(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	resp, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items: []*dto.OrderItemRequest{
			{ProductID: product.ID, Quantity: 2, Price: decimal.RequireFromString("0.01")},
		},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	require.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("200.00")),
		"total %s", resp.TotalAmount)

	var items []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", resp.OrderID).Find(&items).Error)
	require.Len(t, items, 1)
	require.True(t, items[0].Price.Equal(product.Price))
}

func TestCreateOrderWithExistingAddress(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	address := &model.Address{
		UserID:       1,
		AddressLine1: "12 MG Road",
		City:         "Pune",
		PostalCode:   "411001",
		Country:      "India",
	}
	require.NoError(t, db.Create(address).Error)

	resp, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: dto.ShippingAddress{ID: address.ID},
	})
	require.NoError(t, err)

	var order model.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.Equal(t, address.ID, order.AddressID)
	require.Equal(t, int64(1), countRows(t, db, &model.Address{}))
}

func TestCreateOrderWithForeignAddressRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	address := &model.Address{
		UserID:       2,
		AddressLine1: "12 MG Road",
		City:         "Pune",
		PostalCode:   "411001",
		Country:      "India",
	}
	require.NoError(t, db.Create(address).Error)

	_, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: dto.ShippingAddress{ID: address.ID},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Zero(t, countRows(t, db, &model.Order{}))
}

func TestCreateOrderMultipleItems(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	first := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)
	second := seedProduct(t, db, "Cough Syrup", "85.50", 2)

	resp, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items: []*dto.OrderItemRequest{
			{ProductID: first.ID, Quantity: 3},
			{ProductID: second.ID, Quantity: 2},
		},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	require.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("471.00")),
		"total %s", resp.TotalAmount)

	require.Equal(t, 2, productStock(t, db, first.ID))
	require.Equal(t, 0, productStock(t, db, second.ID))
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	const buyers = 8

	errs := make([]error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOrder(testCtx, uint(i+1), &dto.CreateOrderRequest{
				Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
				ShippingAddress: testAddress(),
			})
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		losses++
	}

	require.Equal(t, 5, wins)
	require.Equal(t, 3, losses)
	require.Equal(t, 0, productStock(t, db, product.ID))
	require.Equal(t, int64(5), countRows(t, db, &model.Order{}))
	require.Equal(t, int64(5), countRows(t, db, &model.OrderItem{}))
}

func TestListUserAddresses(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	// inline checkout address is saved for later reuse
	_, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	other := &model.Address{
		UserID:       2,
		AddressLine1: "44 Park Street",
		City:         "Kolkata",
		PostalCode:   "700016",
		Country:      "India",
	}
	require.NoError(t, db.Create(other).Error)

	addresses, err := svc.ListUserAddresses(testCtx, 1)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	require.Equal(t, "12 MG Road", addresses[0].AddressLine1)
	require.Equal(t, uint(1), addresses[0].UserID)

	foreign, err := svc.ListUserAddresses(testCtx, 3)
	require.NoError(t, err)
	require.Empty(t, foreign)
}

func TestUpdateStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)

	err := svc.UpdateStatus(testCtx, 1, "teleported")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	err = svc.UpdateStatus(testCtx, 999, model.OrderStatusShipped)
	require.True(t, errors.Is(err, ErrOrderNotFound))
}

func TestGetOrderOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	product := seedProduct(t, db, "Paracetamol 500mg", "100.00", 5)

	resp, err := svc.CreateOrder(testCtx, 1, &dto.CreateOrderRequest{
		Items:           []*dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	// owner sees it
	order, items, err := svc.GetOrder(testCtx, 1, model.RoleUser, resp.OrderID)
	require.NoError(t, err)
	require.Equal(t, resp.OrderID, order.ID)
	require.Len(t, items, 1)

	// another user does not
	_, _, err = svc.GetOrder(testCtx, 2, model.RoleUser, resp.OrderID)
	require.True(t, errors.Is(err, ErrForbidden))

	// but an admin does
	_, _, err = svc.GetOrder(testCtx, 2, model.RoleAdmin, resp.OrderID)
	require.NoError(t, err)
}
