package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/haggle/internal/http/importcsv"
	"github.com/MrJamesThe3rd/haggle/internal/http/me"
	"github.com/MrJamesThe3rd/haggle/internal/http/message"
	authmw "github.com/MrJamesThe3rd/haggle/internal/http/middleware"
	"github.com/MrJamesThe3rd/haggle/internal/http/negotiation"
	"github.com/MrJamesThe3rd/haggle/internal/http/payment"
	"github.com/MrJamesThe3rd/haggle/internal/http/product"
	"github.com/MrJamesThe3rd/haggle/internal/http/public"
	"github.com/MrJamesThe3rd/haggle/internal/http/transaction"
)

type Handlers struct {
	Public       *public.Handler
	Products     *product.Handler
	Import       *importcsv.Handler
	Me           *me.Handler
	Transactions *transaction.Handler
	Negotiations *negotiation.Handler
	Messages     *message.Handler
	Payments     *payment.Handler
}

type Options struct {
	Verifier       authmw.Verifier
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Public.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authmw.Authenticate(opts.Verifier))

		// The feed is long-lived and must not inherit the request timeout.
		r.With(authmw.RequireIdentity).Get("/negotiations/{id}/feed", h.Messages.Feed)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(opts.Timeout))

			h.Public.Routes(r)

			r.Route("/products", func(r chi.Router) {
				r.Route("/import", h.Import.Routes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					h.Products.Routes(r)
				})
			})

			r.Route("/me", func(r chi.Router) {
				h.Me.Routes(r)
				r.Route("/transactions", h.Transactions.Routes)
			})

			r.Route("/negotiations", func(r chi.Router) {
				r.Use(authmw.RequireIdentity)
				r.Use(middleware.AllowContentType("application/json"))

				h.Negotiations.Routes(r)
				h.Messages.Routes(r)
			})

			r.Route("/paypal", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Payments.Routes(r)
			})
		})
	})

	return router
}
