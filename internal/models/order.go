package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts possibles d'une commande
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id" binding:"required"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity" binding:"required,min=1"`
	Price     float64 `bson:"price" json:"price" binding:"required"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
}

type ShippingAddress struct {
	Name       string `bson:"name" json:"name" binding:"required"`
	Street     string `bson:"street" json:"street" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	PostalCode string `bson:"postal_code" json:"postal_code" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
	Phone      string `bson:"phone" json:"phone"`
}

type PaymentInfo struct {
	RazorpayOrderID   string     `bson:"razorpay_order_id" json:"razorpay_order_id"`
	RazorpayPaymentID string     `bson:"razorpay_payment_id" json:"razorpay_payment_id"`
	Status            string     `bson:"status" json:"status"`
	Method            string     `bson:"method,omitempty" json:"method,omitempty"`
	RefundID          string     `bson:"refund_id,omitempty" json:"refund_id,omitempty"`
	RefundedAt        *time.Time `bson:"refunded_at,omitempty" json:"refunded_at,omitempty"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	Status          string             `bson:"status" json:"status"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shipping_address"`
	PaymentInfo     PaymentInfo        `bson:"payment_info" json:"payment_info"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// ComputeTotal recalcule le total à partir des lignes.
// Le total persisté est toujours ce calcul, jamais la valeur envoyée par le client.
func (o Order) ComputeTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CanTransition valide un changement de statut.
// pending → processing → completed ou cancelled ; pending → cancelled.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	default:
		return false
	}
}
