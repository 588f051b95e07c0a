package orders

type CustomerInput struct {
	Name         string  `json:"name" binding:"required"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	BillingTerms *string `json:"billingTerms"`
}

type OrderInput struct {
	CustomerID int64   `json:"customerId" binding:"required"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}
