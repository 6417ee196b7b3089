package models

// CartItem represents one line in a shopper's cart. Insertion order is
// the display order; IDs are unique within one cart snapshot.
type CartItem struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	UnitPrice Money  `bson:"unit_price" json:"unitPrice"`
	VendorID  string `bson:"vendor_id,omitempty" json:"vendorId,omitempty"`
}

// Cart is the ordered item list for one session, as persisted to the
// session store.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
}
