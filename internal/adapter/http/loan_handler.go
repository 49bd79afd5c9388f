package http

import (
	"net/http"
	"strings"

	"student-lending-core/internal/domain/loan"
	"student-lending-core/internal/usecase/lending"
	"student-lending-core/pkg/money"

	"github.com/labstack/echo/v4"
)

// LoanHandler serves loan requests, offers and active loans.
type LoanHandler struct{ uc *lending.Usecase }

func NewLoanHandler(uc *lending.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createRequestReq struct {
	Amount       string `json:"amount"        validate:"required,dec2"`
	InterestRate string `json:"interest_rate" validate:"required,dec2"`
	Term         string `json:"term"          validate:"required,term"`
	Purpose      string `json:"purpose"       validate:"max=255"`
}

type createOfferReq struct {
	Amount  string `json:"amount"  validate:"required,dec2"`
	Rate    string `json:"rate"    validate:"required,dec2"`
	Message string `json:"message" validate:"max=500"`
}

func (h *LoanHandler) CreateLoanRequest(c echo.Context) error {
	borrowerID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	var req createRequestReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return fail(c, err)
	}
	rate, err := money.ParseRate(req.InterestRate)
	if err != nil {
		return fail(c, err)
	}
	term, _ := loan.ParseTerm(req.Term) // validated by the "term" tag
	dto, err := h.uc.CreateLoanRequest(c.Request().Context(), lending.CreateRequestInput{
		BorrowerID:   borrowerID,
		Amount:       amount,
		InterestRate: rate,
		Term:         term,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ListLoanRequests is the open marketplace, or the caller's own requests with ?mine=true.
func (h *LoanHandler) ListLoanRequests(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		out []lending.RequestDTO
		err error
	)
	if strings.EqualFold(c.QueryParam("mine"), "true") {
		userID, perr := principal(c)
		if perr != nil {
			return unauthorized(c)
		}
		out, err = h.uc.ListRequestsByBorrower(ctx, userID)
	} else {
		out, err = h.uc.ListOpenRequests(ctx, queryLimit(c))
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_requests": out})
}

func (h *LoanHandler) GetLoanRequest(c echo.Context) error {
	dto, err := h.uc.GetLoanRequest(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CancelLoanRequest(c echo.Context) error {
	borrowerID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	res, err := h.uc.CancelLoanRequest(c.Request().Context(), c.Param("request_id"), borrowerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) CreateOffer(c echo.Context) error {
	lenderID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	var req createOfferReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return fail(c, err)
	}
	rate, err := money.ParseRate(req.Rate)
	if err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.CreateOffer(c.Request().Context(), lending.CreateOfferInput{
		RequestID: c.Param("request_id"),
		LenderID:  lenderID,
		Amount:    amount,
		Rate:      rate,
		Message:   req.Message,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListOffers(c echo.Context) error {
	out, err := h.uc.ListOffers(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"offers": out})
}

// ListMyOffers lists the offers the calling lender has made.
func (h *LoanHandler) ListMyOffers(c echo.Context) error {
	lenderID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListOffersByLender(c.Request().Context(), lenderID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"offers": out})
}

func (h *LoanHandler) AcceptOffer(c echo.Context) error {
	borrowerID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	res, err := h.uc.AcceptOffer(c.Request().Context(), lending.OfferActionInput{OfferID: c.Param("offer_id"), BorrowerID: borrowerID})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) DeclineOffer(c echo.Context) error {
	borrowerID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	dto, err := h.uc.DeclineOffer(c.Request().Context(), lending.OfferActionInput{OfferID: c.Param("offer_id"), BorrowerID: borrowerID})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListActiveLoans(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out})
}

func (h *LoanHandler) PayLoan(c echo.Context) error {
	borrowerID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	dto, err := h.uc.PayLoan(c.Request().Context(), c.Param("loan_id"), borrowerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
