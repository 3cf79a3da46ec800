package models

// Product is one catalogue item returned by product search
type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	ImageURL    string       `json:"imageUrl"`
	Path        string       `json:"path"`
	Description string       `json:"description"`
	StockCount  int          `json:"stockCount"`
	Category    string       `json:"category"`
	Rating      float64      `json:"rating"`
	Quantity    int          `json:"quantity"`
	SubProducts []SubProduct `json:"subProducts,omitempty"`
}

// SubProduct is a variant of a Product
type SubProduct struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"imageUrl"`
	StockCount int     `json:"stockCount"`
}
