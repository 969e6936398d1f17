package models

// CommissionRate is the fixed broker commission applied when a property is
// marked Vendido. Not configurable.
const CommissionRate = 0.05

// Sale records a closed deal and the commission owed to the broker.
type Sale struct {
	ID            int64   `json:"id"`
	PropertyID    int64   `json:"property_id"`
	PropertyTitle string  `json:"property_title,omitempty"`
	BrokerID      int64   `json:"broker_id"`
	BrokerName    string  `json:"broker_name,omitempty"`
	Price         float64 `json:"price"`
	Commission    float64 `json:"commission"`
	CreatedAt     string  `json:"created_at"`
}

// Favorite links a user to a saved property. The pair is unique in the
// store; violating it surfaces as a conflict.
type Favorite struct {
	UserID     int64  `json:"user_id"`
	PropertyID int64  `json:"property_id"`
	CreatedAt  string `json:"created_at"`
}
