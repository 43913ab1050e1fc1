package domain

// Seller owns products in the catalog.
type Seller struct {
	ID    string
	Name  string
	Email string
}
