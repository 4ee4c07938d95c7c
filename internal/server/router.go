package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
)

// RouterOptions controls the construction of the API router. Handler sets
// left nil simply do not get their routes mounted, which keeps tests free
// to wire only the slice they exercise.
type RouterOptions struct {
	Authn       func(http.Handler) http.Handler
	RateLimiter *middleware.RateLimiter

	Auth       *AuthHandlers
	Blogs      *BlogHandlers
	Expenses   *ExpenseHandlers
	Incomes    *IncomeHandlers
	Groups     *GroupHandlers
	Reminders  *ReminderHandlers
	Statistics *StatisticsHandlers

	CORSOptions   *cors.Options
	HealthHandler http.HandlerFunc
}

// DefaultCORSOptions returns the development CORS policy matching the
// local web client.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// CORSOptionsForOrigins pins the policy to the configured origins.
func CORSOptionsForOrigins(origins []string) cors.Options {
	opts := DefaultCORSOptions()
	if len(origins) > 0 {
		opts.AllowedOrigins = origins
	}
	return opts
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy and
// the API handlers mounted.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.NewErrorTranslator())

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	// Claims augmentation runs on every request; routes decide what an
	// absent principal means.
	if opts.Authn != nil {
		r.Use(opts.Authn)
	}

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	r.Route("/api", func(api chi.Router) {
		if opts.Auth != nil {
			api.Route("/auth", func(authRoutes chi.Router) {
				if opts.RateLimiter != nil {
					authRoutes.Use(opts.RateLimiter.Middleware)
				}
				authRoutes.Post("/register", opts.Auth.Register)
				authRoutes.Post("/login", opts.Auth.Login)
				authRoutes.Get("/me", opts.Auth.Me)
			})
		}

		if opts.Blogs != nil {
			api.Route("/blogs", func(blogRoutes chi.Router) {
				blogRoutes.Get("/", opts.Blogs.List)
				blogRoutes.Get("/{id}", opts.Blogs.Get)
				blogRoutes.Post("/", opts.Blogs.Create)
				blogRoutes.Put("/{id}", opts.Blogs.Update)
				blogRoutes.Delete("/{id}", opts.Blogs.Delete)
			})
		}

		if opts.Expenses != nil {
			api.Route("/expenses", func(expenseRoutes chi.Router) {
				expenseRoutes.Get("/", opts.Expenses.List)
				expenseRoutes.Get("/{id}", opts.Expenses.Get)
				expenseRoutes.Post("/", opts.Expenses.Create)
				expenseRoutes.Put("/{id}", opts.Expenses.Update)
				expenseRoutes.Delete("/{id}", opts.Expenses.Delete)
			})
		}

		if opts.Incomes != nil {
			api.Route("/incomes", func(incomeRoutes chi.Router) {
				incomeRoutes.Get("/", opts.Incomes.List)
				incomeRoutes.Get("/{id}", opts.Incomes.Get)
				incomeRoutes.Post("/", opts.Incomes.Create)
				incomeRoutes.Put("/{id}", opts.Incomes.Update)
				incomeRoutes.Delete("/{id}", opts.Incomes.Delete)
			})
		}

		if opts.Groups != nil {
			api.Route("/expense-groups", func(groupRoutes chi.Router) {
				groupRoutes.Get("/", opts.Groups.ListExpenseGroups)
				groupRoutes.Get("/{id}", opts.Groups.GetExpenseGroup)
				groupRoutes.Post("/", opts.Groups.CreateExpenseGroup)
				groupRoutes.Put("/{id}", opts.Groups.UpdateExpenseGroup)
				groupRoutes.Delete("/{id}", opts.Groups.DeleteExpenseGroup)
			})
			api.Route("/income-groups", func(groupRoutes chi.Router) {
				groupRoutes.Get("/", opts.Groups.ListIncomeGroups)
				groupRoutes.Get("/{id}", opts.Groups.GetIncomeGroup)
				groupRoutes.Post("/", opts.Groups.CreateIncomeGroup)
				groupRoutes.Put("/{id}", opts.Groups.UpdateIncomeGroup)
				groupRoutes.Delete("/{id}", opts.Groups.DeleteIncomeGroup)
			})
		}

		if opts.Reminders != nil {
			api.Route("/reminders", func(reminderRoutes chi.Router) {
				reminderRoutes.Get("/", opts.Reminders.List)
				reminderRoutes.Get("/{id}", opts.Reminders.Get)
				reminderRoutes.Post("/", opts.Reminders.Create)
				reminderRoutes.Put("/{id}", opts.Reminders.Update)
				reminderRoutes.Delete("/{id}", opts.Reminders.Delete)
			})
		}

		if opts.Statistics != nil {
			api.Get("/statistics", opts.Statistics.Summary)
		}
	})

	return r
}
