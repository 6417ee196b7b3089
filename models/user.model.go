package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types as submitted at signup.
const (
	UserTypeBuyer  = "buyer"
	UserTypeSeller = "seller"
)

// Vendor-profile setup states on the user record. A seller whose
// profile write failed during signup stays "incomplete" until repaired.
const (
	ProfileStatusComplete   = "complete"
	ProfileStatusIncomplete = "incomplete"
)

// Account is the credential record owned by the identity provider.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Disabled     bool               `bson:"disabled" json:"-"`
}

// UID is the account's stable identifier, used to key the user and
// vendor documents.
func (a Account) UID() string { return a.ID.Hex() }

// User is the profile record written alongside the account, keyed by uid.
type User struct {
	UID           string    `bson:"_id" json:"uid"`
	Email         string    `bson:"email" json:"email"`
	Name          string    `bson:"name" json:"name"`
	UserType      string    `bson:"user_type" json:"userType"`
	ProfileStatus string    `bson:"profile_status,omitempty" json:"profileStatus,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	LastLogin     time.Time `bson:"last_login" json:"lastLogin"`
}
