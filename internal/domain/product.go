package domain

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
	MRP         float64 `json:"mrp,omitempty"`
	UnitSize    string  `json:"unitSize,omitempty"`
	Stock       int     `json:"stock,omitempty"`
	FarmerName  string  `json:"farmerName,omitempty"`
	ShelfLife   string  `json:"shelfLife,omitempty"`
}

// ProductPage mirrors the server's paginated product listing.
type ProductPage struct {
	Content       []Product `json:"content"`
	Page          int       `json:"number"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}
