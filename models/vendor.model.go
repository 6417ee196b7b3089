package models

import (
	"time"
)

// Vendor moderation states. Only active vendors are shown to shoppers;
// moderation moves a vendor out of pending.
const (
	VendorStatusPending  = "pending"
	VendorStatusActive   = "active"
	VendorStatusRejected = "rejected"
)

// Vendor represents a storefront in the marketplace catalog.
// The document is keyed by the owner's uid.
type Vendor struct {
	ID               string    `bson:"_id" json:"id"`
	BusinessName     string    `bson:"business_name" json:"businessName"`
	BusinessLocation string    `bson:"business_location" json:"businessLocation"`
	Description      string    `bson:"description" json:"description"`
	BusinessType     string    `bson:"business_type" json:"businessType"`
	Owner            string    `bson:"owner" json:"owner"` // owner's email
	Status           string    `bson:"status" json:"status"`
	BusinessLogo     string    `bson:"business_logo,omitempty" json:"businessLogo,omitempty"`
	Logo             string    `bson:"logo,omitempty" json:"logo,omitempty"` // legacy field, kept for old records
	ProfileImage     string    `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Photos           []string  `bson:"photos,omitempty" json:"photos,omitempty"`
	CuisineType      string    `bson:"cuisine_type" json:"cuisineType"`
	DeliveryTime     int       `bson:"delivery_time" json:"deliveryTime"` // minutes
	MinPrice         int64     `bson:"min_price" json:"minPrice"`         // whole KES
	Rating           float64   `bson:"rating" json:"rating"`              // 0-5
	ReviewCount      int       `bson:"review_count" json:"reviewCount"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}
