package domain

// Product is a catalog entry. ID is a UUID string fixed at creation.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
}
