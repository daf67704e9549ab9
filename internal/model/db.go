package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PaymentMethodCOD     = "cod"
	PaymentMethodGateway = "gateway"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	FirstName    string `gorm:"size:64"`
	LastName     string `gorm:"size:64"`
	Role         string `gorm:"size:16;index;not null;default:user"` // user, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;uniqueIndex;not null"`
	CreatedAt time.Time
}

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Never negative; decremented only inside the order commit transaction.
	StockQuantity        int    `gorm:"not null"`
	CategoryID           *uint  `gorm:"index"`
	Manufacturer         string `gorm:"size:255"`
	Dosage               string `gorm:"size:128"`
	PrescriptionRequired bool   `gorm:"not null;default:false"`
	Featured             bool   `gorm:"index;not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Address struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	AddressLine1 string `gorm:"size:255;not null"`
	AddressLine2 string `gorm:"size:255"`
	City         string `gorm:"size:128;not null"`
	State        string `gorm:"size:128"`
	PostalCode   string `gorm:"size:32;not null"`
	Country      string `gorm:"size:64;not null"`
	CreatedAt    time.Time
}

type Order struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"index;not null"`
	AddressID     uint            `gorm:"not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"size:16;not null"`       // cod, gateway
	PaymentStatus string          `gorm:"size:16;index;not null"` // pending, completed, refunded
	Status        string          `gorm:"size:16;index;not null"` // pending, processing, shipped, delivered, cancelled
	// Set only on the gateway payment path. The unique index on the payment
	// id is what makes verify-and-commit retries safe.
	GatewayOrderID   *string `gorm:"size:64;index"`
	GatewayPaymentID *string `gorm:"size:64;uniqueIndex"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	// Unit price snapshot taken from the product row at commit time.
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

type ContactMessage struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Email     string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:32"`
	Subject   string `gorm:"size:255"`
	Message   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:16;index;not null;default:new"` // new, read, resolved
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamMember struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:128;not null"`
	Title        string `gorm:"size:128"`
	Bio          string `gorm:"type:text"`
	DisplayOrder int    `gorm:"index;not null;default:0"`
	CreatedAt    time.Time
}
