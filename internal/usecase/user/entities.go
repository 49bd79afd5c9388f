package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Name  string
	Email string
	Role  string

	// borrower profile
	Income           decimal.Decimal
	CreditScore      int
	EmploymentStatus string

	// lender profile
	InvestmentPreference string
	MinInvestmentAmount  decimal.Decimal
}

type UserDTO struct {
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Profile   map[string]any `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
}
