package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/bunx"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/server"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/blog"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/ledger"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/reminder"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/statistics"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Starts the HTTP server with the REST endpoints and the ownership authorization pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		// Initialize repositories
		userRepo := repository.NewBunUserRepository(db)
		blogRepo := repository.NewBunBlogRepository(db)
		expenseRepo := repository.NewBunExpenseRepository(db)
		incomeRepo := repository.NewBunIncomeRepository(db)
		expenseGroupRepo := repository.NewBunExpenseGroupRepository(db)
		incomeGroupRepo := repository.NewBunIncomeGroupRepository(db)
		reminderRepo := repository.NewBunReminderRepository(db)

		// Ownership evaluation: one owner lookup per owned resource type.
		evaluator := authz.NewEvaluator()
		evaluator.Register(authz.ResourceBlog, blogRepo.GetOwnerID)
		evaluator.Register(authz.ResourceExpense, expenseRepo.GetOwnerID)
		evaluator.Register(authz.ResourceIncome, incomeRepo.GetOwnerID)
		evaluator.Register(authz.ResourceReminder, reminderRepo.GetOwnerID)

		// Initialize services
		validate := validation.New()
		issuer := auth.NewIssuer(cfg.JWT)
		verifier := auth.NewVerifier(cfg.JWT)
		blogService := blog.NewService(blogRepo, validate)
		expenseService := ledger.NewExpenseService(expenseRepo, validate)
		incomeService := ledger.NewIncomeService(incomeRepo, validate)
		expenseGroupService := ledger.NewExpenseGroupService(expenseGroupRepo, validate)
		incomeGroupService := ledger.NewIncomeGroupService(incomeGroupRepo, validate)
		reminderService := reminder.NewService(reminderRepo, validate)
		statisticsService := statistics.NewService(expenseRepo, incomeRepo)

		rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}

		corsOpts := server.CORSOptionsForOrigins(cfg.AllowedOrigins)

		r := server.NewRouter(server.RouterOptions{
			Authn:       middleware.NewAuthnMiddleware(verifier),
			RateLimiter: rateLimiter,
			Auth:        server.NewAuthHandlers(userRepo, issuer, validate),
			Blogs:       server.NewBlogHandlers(blogService, evaluator),
			Expenses:    server.NewExpenseHandlers(expenseService, evaluator),
			Incomes:     server.NewIncomeHandlers(incomeService, evaluator),
			Groups:      server.NewGroupHandlers(expenseGroupService, incomeGroupService),
			Reminders:   server.NewReminderHandlers(reminderService, evaluator),
			Statistics:  server.NewStatisticsHandlers(statisticsService),
			CORSOptions: &corsOpts,
		})

		// Wrap router with h2c for HTTP/2 cleartext support
		h2cHandler := h2c.NewHandler(r, &http2.Server{})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      h2cHandler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down gracefully", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Printf("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
