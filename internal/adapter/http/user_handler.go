package http

import (
	"net/http"

	"student-lending-core/internal/usecase/user"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type registerReq struct {
	Name  string `json:"name"  validate:"required,max=40"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=borrower lender"`

	Income           string `json:"income"            validate:"omitempty,dec2"`
	CreditScore      int    `json:"credit_score"      validate:"gte=0,lte=1000"`
	EmploymentStatus string `json:"employment_status" validate:"max=64"`

	InvestmentPreference string `json:"investment_preference" validate:"max=255"`
	MinInvestmentAmount  string `json:"min_investment_amount" validate:"omitempty,dec2"`
}

// optionalAmount reads a validated dec2 field; empty means zero.
func optionalAmount(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(raw)
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), user.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Role:                 req.Role,
		Income:               optionalAmount(req.Income),
		CreditScore:          req.CreditScore,
		EmploymentStatus:     req.EmploymentStatus,
		InvestmentPreference: req.InvestmentPreference,
		MinInvestmentAmount:  optionalAmount(req.MinInvestmentAmount),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
