package models

// User is a platform visitor account (role "user"). Password hash never
// leaves the repository layer.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Broker is a licensed real-estate agent (role "broker"). CRECI is the
// broker license number and is unique together with email.
type Broker struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Creci     string `json:"creci"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Admin is a back-office account (role "admin").
type Admin struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
