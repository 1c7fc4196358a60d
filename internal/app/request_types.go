package app

import "github.com/shopspring/decimal"

// PreviewLineRequest is the input for pricing a line without storing it.
type PreviewLineRequest struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	VATRate   int
}

// CreateUserRequest is the input for registering a user.
type CreateUserRequest struct {
	Username string
	Password string // plain text; only the bcrypt hash is stored
	Email    string
	FullName string
}
