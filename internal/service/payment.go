package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"pharmacy-store/internal/client"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/model"
	"pharmacy-store/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateGatewayOrder(ctx context.Context, req *dto.CreateGatewayOrderRequest) (*dto.CreateGatewayOrderResponse, error)
	VerifyAndCommit(ctx context.Context, userID uint, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	GetPaymentDetails(ctx context.Context, paymentID string) (*dto.PaymentDetailsResponse, error)
	Refund(ctx context.Context, req *dto.RefundRequest) (*dto.RefundResponse, error)
}

type paymentServiceImpl struct {
	gateway      client.RazorpayClient
	orderService OrderService
	orderRepo    repository.OrderRepository
	keyID        string
	keySecret    string
	currency     string
	logger       *zap.Logger
}

func NewPaymentService(
	gateway client.RazorpayClient,
	orderService OrderService,
	orderRepo repository.OrderRepository,
	keyID string,
	keySecret string,
	currency string,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		gateway:      gateway,
		orderService: orderService,
		orderRepo:    orderRepo,
		keyID:        keyID,
		keySecret:    keySecret,
		currency:     currency,
		logger:       logger,
	}
}

// minorUnits converts a decimal amount to the gateway's integer minor units
// (paise). Amounts finer than two decimal places are rejected rather than
// silently truncated.
func minorUnits(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, &ValidationError{Reason: "amount must be positive"}
	}
	if !amount.Equal(amount.Round(2)) {
		return 0, &ValidationError{Reason: "amount must have at most two decimal places"}
	}
	return amount.Mul(decimal.NewFromInt(100)).IntPart(), nil
}

// CreateGatewayOrder mints a gateway-side order for the amount. No local row
// is written, so a timeout here is simply retryable.
func (s *paymentServiceImpl) CreateGatewayOrder(ctx context.Context, req *dto.CreateGatewayOrderRequest) (*dto.CreateGatewayOrderResponse, error) {
	amountMinor, err := minorUnits(req.Amount)
	if err != nil {
		return nil, err
	}
	receipt := "rcpt_" + uuid.NewString()

	result, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency, receipt)
	if err != nil {
		s.logger.Warn("gateway order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return &dto.CreateGatewayOrderResponse{
		GatewayOrderID: result.OrderID,
		Amount:         result.Amount,
		Currency:       result.Currency,
		KeyID:          s.keyID,
	}, nil
}

// VerifyAndCommit checks the gateway signature and, on success, runs the
// same commit routine as the cash path with the payment already completed.
// It is safe to retry: a payment id that already committed returns the
// existing order instead of creating a duplicate.
func (s *paymentServiceImpl) VerifyAndCommit(ctx context.Context, userID uint, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return nil, &ValidationError{Reason: "gateway_order_id, gateway_payment_id and signature are required"}
	}

	if !s.signatureValid(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		// Logged distinctly: a bad signature is a tampering signal, not an
		// operational hiccup.
		s.logger.Warn("payment signature mismatch",
			zap.Uint("user_id", userID),
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("gateway_payment_id", req.GatewayPaymentID),
		)
		return nil, ErrSignatureInvalid
	}

	if existing, err := s.orderRepo.FindByGatewayPaymentID(ctx, req.GatewayPaymentID); err == nil {
		return &dto.VerifyPaymentResponse{
			OrderID:   existing.ID,
			PaymentID: req.GatewayPaymentID,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up payment: %w", err)
	}

	order, err := s.orderService.CommitOrder(ctx, CommitOrderParams{
		UserID:           userID,
		Items:            req.OrderDetails.Items,
		ShippingAddress:  req.OrderDetails.ShippingAddress,
		PaymentMethod:    model.PaymentMethodGateway,
		PaymentStatus:    model.PaymentStatusCompleted,
		GatewayOrderID:   &req.GatewayOrderID,
		GatewayPaymentID: &req.GatewayPaymentID,
	})
	if err != nil {
		// A concurrent retry may have won the unique payment-id index; its
		// committed order is the answer.
		if existing, lookupErr := s.orderRepo.FindByGatewayPaymentID(ctx, req.GatewayPaymentID); lookupErr == nil {
			return &dto.VerifyPaymentResponse{
				OrderID:   existing.ID,
				PaymentID: req.GatewayPaymentID,
			}, nil
		}

		commitErr := &OrderCommitFailedError{GatewayPaymentID: req.GatewayPaymentID, Err: err}
		s.logger.Error("verified payment could not be committed, needs reconciliation",
			zap.String("gateway_payment_id", req.GatewayPaymentID),
			zap.Error(err),
		)
		return nil, commitErr
	}

	return &dto.VerifyPaymentResponse{
		OrderID:   order.ID,
		PaymentID: req.GatewayPaymentID,
	}, nil
}

// GetPaymentDetails pulls the payment record straight from the gateway.
func (s *paymentServiceImpl) GetPaymentDetails(ctx context.Context, paymentID string) (*dto.PaymentDetailsResponse, error) {
	if paymentID == "" {
		return nil, &ValidationError{Reason: "payment_id is required"}
	}

	details, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return &dto.PaymentDetailsResponse{
		PaymentID: details.PaymentID,
		OrderID:   details.OrderID,
		Amount:    details.Amount,
		Currency:  details.Currency,
		Status:    details.Status,
		Method:    details.Method,
	}, nil
}

// Refund calls the gateway first and only touches local state on gateway
// success (fail closed).
func (s *paymentServiceImpl) Refund(ctx context.Context, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	if req.PaymentID == "" {
		return nil, &ValidationError{Reason: "payment_id is required"}
	}
	amountMinor, err := minorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Refund(ctx, req.PaymentID, amountMinor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayRefundFailed, err)
	}

	if err := s.orderRepo.MarkRefundedByPaymentID(ctx, req.PaymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Gateway refunded a payment we have no order for; surface in the
			// logs for reconciliation but report the refund that did happen.
			s.logger.Error("refund succeeded for unknown payment id",
				zap.String("gateway_payment_id", req.PaymentID),
				zap.String("refund_id", result.RefundID),
			)
		} else {
			return nil, fmt.Errorf("mark order refunded: %w", err)
		}
	}

	s.logger.Info("refund completed",
		zap.String("gateway_payment_id", req.PaymentID),
		zap.String("refund_id", result.RefundID),
	)

	return &dto.RefundResponse{RefundID: result.RefundID}, nil
}

func (s *paymentServiceImpl) signatureValid(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
