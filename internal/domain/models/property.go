package models

// Property mirrors a row of the properties table. Vocabulary (type/status/
// purpose values) follows the painel web: Casa/Apartamento/Terreno,
// Disponível/Negociando/Vendido/Alugado, Venda/Aluguel.
type Property struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Purpose     string  `json:"purpose"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Area        float64 `json:"area"`
	BrokerID    int64   `json:"broker_id"`
	BrokerName  string  `json:"broker_name,omitempty"`
	CreatedAt   string  `json:"created_at"`

	Images []PropertyImage `json:"images,omitempty"`
}

const (
	StatusAvailable   = "Disponível"
	StatusNegotiating = "Negociando"
	StatusSold        = "Vendido"
	StatusRented      = "Alugado"
)

// ValidStatus reports whether s is one of the four recognized listing states.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusNegotiating, StatusSold, StatusRented:
		return true
	}
	return false
}

// PropertyImage is one uploaded media file attached to a listing.
type PropertyImage struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	ObjectKey  string `json:"object_key"`
	URL        string `json:"url"`
	CreatedAt  string `json:"created_at"`
}
