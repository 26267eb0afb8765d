package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"btc-custody.backend/internal/config"
	"btc-custody.backend/internal/infrastructure/bitcoin"
	"btc-custody.backend/internal/infrastructure/bitnob"
	"btc-custody.backend/internal/infrastructure/explorer"
	"btc-custody.backend/internal/infrastructure/repositories"
	"btc-custody.backend/internal/interfaces/http/handlers"
	"btc-custody.backend/internal/interfaces/http/middleware"
	"btc-custody.backend/internal/usecases"
	"btc-custody.backend/pkg/crypto"
	"btc-custody.backend/pkg/logger"
	"btc-custody.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Bitcoin primitives, network fixed at construction
	keychain, err := bitcoin.NewKeychain(cfg.Bitcoin.Network)
	if err != nil {
		return fmt.Errorf("failed to initialize keychain: %w", err)
	}
	encoder, err := bitcoin.NewEncoder(cfg.Bitcoin.Network)
	if err != nil {
		return fmt.Errorf("failed to initialize encoder: %w", err)
	}
	validator := bitcoin.NewValidator()
	logger.Info(context.Background(), "Bitcoin primitives initialized", zap.String("network", cfg.Bitcoin.Network))

	sealer, err := crypto.NewMnemonicSealer(cfg.Security.MnemonicEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize mnemonic sealer: %w", err)
	}

	// External clients
	bitnobClient := bitnob.NewClient(cfg.Bitnob.APIURL, cfg.Bitnob.APIKey)
	explorerClient := explorer.NewClient(cfg.Explorer.APIURL)

	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	addressUsecase := usecases.NewAddressUsecase(keychain, encoder, validator, sealer, walletRepo, addressRepo, uow)
	balanceUsecase := usecases.NewBalanceUsecase(bitnobClient, explorerClient, validator, addressRepo)
	walletUsecase := usecases.NewWalletUsecase(bitnobClient)
	currencyUsecase := usecases.NewCurrencyUsecase(bitnobClient, redis.NewCache())
	transactionUsecase := usecases.NewTransactionUsecase(transactionRepo, walletRepo)

	// Initialize handlers
	addressHandler := handlers.NewAddressHandler(addressUsecase, balanceUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	currencyHandler := handlers.NewCurrencyHandler(currencyUsecase)
	transactionHandler := handlers.NewTransactionHandler(transactionUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		addressHandler:     addressHandler,
		walletHandler:      walletHandler,
		currencyHandler:    currencyHandler,
		transactionHandler: transactionHandler,
	})

	// Start server
	log.Printf("🚀 BTC Custody Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
