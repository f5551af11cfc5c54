package domain

// Customer identifies a billing/ticketing account.
type Customer struct {
	ID   string
	Name string
}
