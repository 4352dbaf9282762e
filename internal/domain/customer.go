package domain

// Customer is one row of the store's best-customers leaderboard as returned
// by the provider. The shape is a pass-through; only the fields the widget
// renders are typed.
type Customer struct {
	Username string  `json:"username"`
	Avatar   string  `json:"avatar,omitempty"`
	Total    float64 `json:"total,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Rank     int     `json:"rank,omitempty"`
}

// CustomersResponse is a best-customers page from the provider.
type CustomersResponse struct {
	Customers      []Customer `json:"customers"`
	CustomersCount int        `json:"customers_count,omitempty"`
}
