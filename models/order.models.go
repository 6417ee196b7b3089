package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order represents a checked-out cart. Payment is recorded as a method
// string only; no payment processing happens in this system.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"user_id" json:"user_id"`
	SessionID     string             `bson:"session_id" json:"session_id"`
	Items         []CartItem         `bson:"items" json:"items"`
	Total         Money              `bson:"total" json:"total"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Status        string             `bson:"status" json:"status"` // e.g., "Pending"
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
