package http

import (
	"context"
	"net/http"

	"student-lending-core/internal/usecase/ledger"
	"student-lending-core/pkg/money"

	"github.com/labstack/echo/v4"
)

type WalletHandler struct{ uc *ledger.Usecase }

func NewWalletHandler(uc *ledger.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type moveReq struct {
	Amount    string `json:"amount"    validate:"required,dec2"`
	Reference string `json:"reference" validate:"max=64"`
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	dto, err := h.uc.GetWallet(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Deposit(c echo.Context) error {
	return h.move(c, h.uc.Deposit)
}

func (h *WalletHandler) Withdraw(c echo.Context) error {
	return h.move(c, h.uc.Withdraw)
}

func (h *WalletHandler) move(c echo.Context, op func(ctx context.Context, in ledger.MoveInput) (*ledger.TransactionDTO, error)) error {
	userID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	var req moveReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return fail(c, err)
	}
	dto, err := op(c.Request().Context(), ledger.MoveInput{UserID: userID, Amount: amount, Reference: req.Reference})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return unauthorized(c)
	}
	txs, err := h.uc.ListTransactions(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": txs})
}
