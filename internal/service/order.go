package service

import (
	"context"
	"errors"
	"fmt"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/model"
	"pharmacy-store/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommitOrderParams is the input of the shared commit routine. The cash
// path and the payment verifier differ only in the payment fields.
type CommitOrderParams struct {
	UserID           uint
	Items            []*dto.OrderItemRequest
	ShippingAddress  dto.ShippingAddress
	PaymentMethod    string
	PaymentStatus    string
	GatewayOrderID   *string
	GatewayPaymentID *string
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID uint, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	CommitOrder(ctx context.Context, params CommitOrderParams) (*model.Order, error)
	GetOrder(ctx context.Context, userID uint, role string, orderID uint) (*model.Order, []*model.OrderItem, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*model.Order, error)
	ListUserAddresses(ctx context.Context, userID uint) ([]*model.Address, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
	logger      *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// CreateOrder is the cash-on-delivery checkout path.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID uint, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	order, err := s.CommitOrder(ctx, CommitOrderParams{
		UserID:          userID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   model.PaymentMethodCOD,
		PaymentStatus:   model.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateOrderResponse{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
	}, nil
}

// CommitOrder creates exactly one order with its items and decrements stock,
// or persists nothing at all. Unit prices are re-read from the product rows
// inside the transaction; a client-supplied price is never trusted. Stock is
// taken with a conditional decrement, so two concurrent checkouts can both
// pass the availability read but only one wins the last unit.
func (s *orderServiceImpl) CommitOrder(ctx context.Context, params CommitOrderParams) (*model.Order, error) {
	if len(params.Items) == 0 {
		return nil, &ValidationError{Reason: "order must contain at least one item"}
	}

	// Merge duplicate product ids, keeping first-seen order.
	productIDs := make([]uint, 0, len(params.Items))
	quantities := make(map[uint]int, len(params.Items))
	for _, item := range params.Items {
		if item.Quantity <= 0 {
			return nil, &ValidationError{Reason: "item quantity must be positive"}
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	if err := validateShippingAddress(&params.ShippingAddress); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		addressID, err := s.resolveAddress(ctx, tx, params.UserID, &params.ShippingAddress)
		if err != nil {
			return err
		}

		products, err := s.productRepo.FindMany(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("read products: %w", err)
		}

		productByID := make(map[uint]*model.Product, len(products))
		for _, product := range products {
			productByID[product.ID] = product
		}

		total := decimal.Zero
		for _, productID := range productIDs {
			product, ok := productByID[productID]
			if !ok {
				return &ProductNotFoundError{ProductID: productID}
			}
			quantity := quantities[productID]
			if product.StockQuantity < quantity {
				return &InsufficientStockError{ProductID: productID}
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(quantity))))
		}

		order = &model.Order{
			UserID:           params.UserID,
			AddressID:        addressID,
			TotalAmount:      total,
			PaymentMethod:    params.PaymentMethod,
			PaymentStatus:    params.PaymentStatus,
			Status:           model.OrderStatusPending,
			GatewayOrderID:   params.GatewayOrderID,
			GatewayPaymentID: params.GatewayPaymentID,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		items := make([]*model.OrderItem, 0, len(productIDs))
		for _, productID := range productIDs {
			items = append(items, &model.OrderItem{
				OrderID:   order.ID,
				ProductID: productID,
				Quantity:  quantities[productID],
				Price:     productByID[productID].Price,
			})
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		// The availability check above can go stale under concurrency; the
		// conditional decrement is the authoritative stock gate.
		for _, productID := range productIDs {
			rows, err := s.productRepo.DecrementStock(ctx, tx, productID, quantities[productID])
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if rows == 0 {
				return &InsufficientStockError{ProductID: productID}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order committed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", params.UserID),
		zap.String("payment_method", params.PaymentMethod),
		zap.String("total_amount", order.TotalAmount.String()),
	)

	return order, nil
}

func validateShippingAddress(addr *dto.ShippingAddress) error {
	if addr.ID != 0 {
		return nil
	}
	if addr.AddressLine1 == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
		return &ValidationError{Reason: "shipping address requires address_line1, city, postal_code and country"}
	}
	return nil
}

func (s *orderServiceImpl) resolveAddress(ctx context.Context, tx *gorm.DB, userID uint, addr *dto.ShippingAddress) (uint, error) {
	if addr.ID != 0 {
		existing, err := s.addressRepo.FindByID(ctx, tx, addr.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, &ValidationError{Reason: "shipping address not found"}
			}
			return 0, fmt.Errorf("find address: %w", err)
		}
		if existing.UserID != userID {
			return 0, &ValidationError{Reason: "shipping address not found"}
		}
		return existing.ID, nil
	}

	address := &model.Address{
		UserID:       userID,
		AddressLine1: addr.AddressLine1,
		AddressLine2: addr.AddressLine2,
		City:         addr.City,
		State:        addr.State,
		PostalCode:   addr.PostalCode,
		Country:      addr.Country,
	}
	if err := s.addressRepo.Create(ctx, tx, address); err != nil {
		return 0, fmt.Errorf("create address: %w", err)
	}

	return address.ID, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID uint, role string, orderID uint) (*model.Order, []*model.OrderItem, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("find order: %w", err)
	}

	if order.UserID != userID && role != model.RoleAdmin {
		return nil, nil, ErrForbidden
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("get order items: %w", err)
	}

	return order, items, nil
}

func (s *orderServiceImpl) ListUserOrders(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListUserAddresses returns the caller's saved shipping addresses, newest
// first, for reuse at checkout.
func (s *orderServiceImpl) ListUserAddresses(ctx context.Context, userID uint) ([]*model.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	switch status {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return &ValidationError{Reason: "unknown order status: " + status}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("update order status: %w", err)
	}

	return nil
}
