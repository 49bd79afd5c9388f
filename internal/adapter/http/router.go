package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health *Handler
	Users  *UserHandler
	Wallet *WalletHandler
	Loans  *LoanHandler
}

// Register mounts the API on g. Mutating routes pass through mutating, which
// the caller sets to the idempotency middleware.
func Register(g *echo.Group, h Handlers, mutating ...echo.MiddlewareFunc) {
	g.GET("/health", h.Health.Health)

	g.POST("/users", h.Users.Register, mutating...)
	g.GET("/users/:user_id", h.Users.GetUser)

	g.GET("/wallet", h.Wallet.GetWallet)
	g.POST("/wallet/deposit", h.Wallet.Deposit, mutating...)
	g.POST("/wallet/withdraw", h.Wallet.Withdraw, mutating...)
	g.GET("/wallet/transactions", h.Wallet.ListTransactions)

	g.POST("/loan-requests", h.Loans.CreateLoanRequest, mutating...)
	g.GET("/loan-requests", h.Loans.ListLoanRequests)
	g.GET("/loan-requests/:request_id", h.Loans.GetLoanRequest)
	g.POST("/loan-requests/:request_id/cancel", h.Loans.CancelLoanRequest, mutating...)
	g.POST("/loan-requests/:request_id/offers", h.Loans.CreateOffer, mutating...)
	g.GET("/loan-requests/:request_id/offers", h.Loans.ListOffers)

	g.GET("/offers", h.Loans.ListMyOffers)
	g.POST("/offers/:offer_id/accept", h.Loans.AcceptOffer, mutating...)
	g.POST("/offers/:offer_id/decline", h.Loans.DeclineOffer, mutating...)

	g.GET("/loans", h.Loans.ListLoans)
	g.POST("/loans/:loan_id/pay", h.Loans.PayLoan, mutating...)
}
