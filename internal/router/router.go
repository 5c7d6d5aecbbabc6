package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pennyboard/pennyboard-backend/internal/handlers"
	"github.com/pennyboard/pennyboard-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	am := middleware.NewMiddleware(deps.Firebase)
	r.Use(am.FirebaseAuth)

	ush := handlers.NewUserHandlers(deps)
	plh := handlers.NewPlaidHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	smh := handlers.NewSummaryHandlers(deps)
	vwh := handlers.NewViewHandlers(deps)

	r.Mount("/users", ush.UserRoutes())
	r.Mount("/", plh.PlaidRoutes())
	r.Mount("/transactions", txh.TransactionRoutes())
	r.Mount("/summary", smh.SummaryRoutes())
	r.Mount("/views", vwh.ViewRoutes())
	return r
}
