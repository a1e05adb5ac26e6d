package api

import (
	"net/http"

	"horizon-server/src/handlers"
	"horizon-server/src/middleware"
	"horizon-server/src/txview"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Deps struct {
	Users    handlers.UserStore
	Banks    handlers.BankStore
	Link     handlers.LinkProvider
	Accounts handlers.AccountService
	Webhooks handlers.WebhookVerifier
	View     *txview.View
	Auth     *middleware.Auth
	Logger   zerolog.Logger

	AllowedOrigins []string
	IsDemo         bool
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(deps.IsDemo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/sign-up", handlers.SignUp(deps.Users, deps.Auth))
		r.Post("/sign-in", handlers.SignIn(deps.Users, deps.Auth))
		r.Post("/sign-out", handlers.SignOut())
		r.Post("/plaid/webhook", handlers.PlaidWebhook(deps.Webhooks, deps.Banks))

		// Protected routes
		r.With(deps.Auth.Middleware).Group(func(r chi.Router) {
			r.Get("/user", handlers.GetUser(deps.Users))

			// Plaid
			r.Post("/plaid/create-link-token", handlers.CreateLinkToken(deps.Link))
			r.Post("/plaid/exchange-public-token", handlers.ExchangePublicToken(deps.Link, deps.Banks))

			// Banks and accounts
			r.Get("/banks", handlers.GetBanks(deps.Banks))
			r.Get("/accounts", handlers.GetAccounts(deps.Accounts))
			r.Get("/accounts/{bank_id}", handlers.GetAccount(deps.Accounts, deps.View))
			r.Get("/accounts/{bank_id}/transactions", handlers.GetTransactions(deps.Accounts, deps.View))
			r.Get("/dashboard", handlers.Dashboard(deps.Accounts, deps.View))
		})
	})

	return r
}
