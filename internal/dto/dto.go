package dto

import "github.com/shopspring/decimal"

// -------- auth --------

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// -------- catalog --------

type CreateProductRequest struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	CategoryID           *uint           `json:"category_id"`
	StockQuantity        int             `json:"stock_quantity"`
	Manufacturer         string          `json:"manufacturer"`
	Dosage               string          `json:"dosage"`
	PrescriptionRequired bool            `json:"prescription_required"`
	Featured             bool            `json:"featured"`
}

// UpdateProductRequest carries partial updates; nil fields are untouched.
type UpdateProductRequest struct {
	Name                 *string          `json:"name"`
	Description          *string          `json:"description"`
	Price                *decimal.Decimal `json:"price"`
	CategoryID           *uint            `json:"category_id"`
	StockQuantity        *int             `json:"stock_quantity"`
	Manufacturer         *string          `json:"manufacturer"`
	Dosage               *string          `json:"dosage"`
	PrescriptionRequired *bool            `json:"prescription_required"`
	Featured             *bool            `json:"featured"`
}

// -------- orders --------

type ShippingAddress struct {
	ID           uint   `json:"id"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
	// Display convenience only. The persisted price is always re-read from
	// the product row inside the commit transaction.
	Price decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	Items           []*OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress     `json:"shipping_address"`
}

type CreateOrderResponse struct {
	OrderID     uint            `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// -------- payment --------

type CreateGatewayOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CreateGatewayOrderResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string             `json:"gateway_order_id"`
	GatewayPaymentID string             `json:"gateway_payment_id"`
	Signature        string             `json:"signature"`
	OrderDetails     CreateOrderRequest `json:"order_details"`
}

type VerifyPaymentResponse struct {
	OrderID   uint   `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// PaymentDetailsResponse mirrors the gateway's payment record; Amount is in
// minor units as the gateway reports it.
type PaymentDetailsResponse struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
}

type RefundRequest struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type RefundResponse struct {
	RefundID string `json:"refund_id"`
}

// -------- contact --------

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status"`
}
