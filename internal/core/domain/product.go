package domain

// Product is a catalog item promoted by shopping campaigns. Its ID is kept
// as a string on this side even though the catalog service emits numbers.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	SellerID    string
	ImageURL    string
}

// ProductInput is the writable subset of a product.
type ProductInput struct {
	Name        string  `validate:"required,max=120"`
	Description string  `validate:"omitempty,max=1000"`
	Price       float64 `validate:"gte=0"`
	Quantity    int     `validate:"gte=0"`
	Category    string  `validate:"required,max=60"`
	SellerID    string  `validate:"required,numeric"`
	ImageURL    string  `validate:"omitempty,url"`
}
