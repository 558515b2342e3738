package main

import (
	"context"
	"log"

	"centavo/internal/domain/notification"
	"centavo/internal/domain/recurring"
	"centavo/internal/domain/transaction"
	"centavo/internal/domain/transfer"
	"centavo/internal/domain/wallet"
	"centavo/internal/infrastructure/firebase"
	"centavo/internal/infrastructure/kafka"
	"centavo/internal/infrastructure/postgres"
	httphandlers "centavo/internal/interfaces/http"
	"centavo/internal/shared/auth"
	"centavo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB             *postgres.DB
	KafkaPublisher *kafka.Publisher

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	WalletHandler       *httphandlers.WalletHandler
	TransactionHandler  *httphandlers.TransactionHandler
	TransferHandler     *httphandlers.TransferHandler
	CategoryHandler     *httphandlers.CategoryHandler
	RecurringHandler    *httphandlers.RecurringHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Services (for scheduler job provider)
	RecurringService *recurring.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	walletRepo := postgres.NewWalletRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	recurringRepo := postgres.NewRecurringRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Initialize Firebase messaging if configured
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase messaging: %v", err)
		} else {
			messenger = fcmClient
			log.Println("Firebase messaging initialized")
		}
	}

	notificationService := notification.NewService(notificationRepo, messenger)

	// Initialize Kafka view invalidation if enabled
	var publisher *kafka.Publisher
	var invalidator wallet.ViewInvalidator
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		invalidator = publisher
		log.Printf("Kafka publisher initialized (topic %s)", cfg.Kafka.Topic)
	}

	// Initialize domain services
	walletService := wallet.NewService(walletRepo, invalidator, notificationService)
	transactionService := transaction.NewService(transactionRepo, walletService)
	transferService := transfer.NewService(transferRepo, walletService)
	recurringService := recurring.NewService(recurringRepo, transactionRepo, walletService)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt, cfg.JWT.TTL)
	walletHandler := httphandlers.NewWalletHandler(walletService)
	transactionHandler := httphandlers.NewTransactionHandler(transactionService)
	transferHandler := httphandlers.NewTransferHandler(transferService)
	categoryHandler := httphandlers.NewCategoryHandler(categoryRepo)
	recurringHandler := httphandlers.NewRecurringHandler(recurringService)
	notificationHandler := httphandlers.NewNotificationHandler(notificationService)

	return &Dependencies{
		DB:                  db,
		KafkaPublisher:      publisher,
		AuthHandler:         authHandler,
		WalletHandler:       walletHandler,
		TransactionHandler:  transactionHandler,
		TransferHandler:     transferHandler,
		CategoryHandler:     categoryHandler,
		RecurringHandler:    recurringHandler,
		NotificationHandler: notificationHandler,
		JWT:                 jwt,
		RecurringService:    recurringService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.KafkaPublisher != nil {
		if err := d.KafkaPublisher.Close(); err != nil {
			log.Printf("Error closing Kafka publisher: %v", err)
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
