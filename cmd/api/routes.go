package main

import (
	"log"
	"net/http"

	httphandlers "centavo/internal/interfaces/http"
	"centavo/internal/shared/config"
	"centavo/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/auth/me", authMiddleware(http.HandlerFunc(deps.AuthHandler.HandleMe)))
	mux.Handle("/api/wallets", authMiddleware(http.HandlerFunc(deps.WalletHandler.HandleWallets)))
	mux.Handle("/api/wallets/{id}", authMiddleware(http.HandlerFunc(deps.WalletHandler.HandleWalletByID)))
	mux.Handle("/api/wallets/{id}/cascade", authMiddleware(http.HandlerFunc(deps.WalletHandler.HandleWalletCascadeDelete)))
	mux.Handle("/api/wallets/{id}/default", authMiddleware(http.HandlerFunc(deps.WalletHandler.HandleSetDefaultWallet)))
	mux.Handle("/api/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/api/transactions/{id}", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))
	mux.Handle("/api/transfers", authMiddleware(http.HandlerFunc(deps.TransferHandler.HandleTransfers)))
	mux.Handle("/api/transfers/{id}", authMiddleware(http.HandlerFunc(deps.TransferHandler.HandleTransferByID)))
	mux.Handle("/api/categories", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategories)))
	mux.Handle("/api/categories/{id}", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategoryByID)))
	mux.Handle("/api/recurring", authMiddleware(http.HandlerFunc(deps.RecurringHandler.HandleRules)))
	mux.Handle("/api/recurring/{id}", authMiddleware(http.HandlerFunc(deps.RecurringHandler.HandleRuleByID)))
	mux.Handle("/api/notifications", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleNotifications)))
	mux.Handle("/api/notifications/{id}/opened", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleMarkOpened)))
	mux.Handle("/api/devices", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))

	// Apply global middleware
	handler := middleware.Logging(middleware.Tracing(middleware.CORS(cfg.Server.AllowedHosts)(mux)))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
