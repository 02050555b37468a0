package main

import (
	"log/slog"
	"os"

	"github.com/bankcore/banking/internal/adapters/database/memory"
	"github.com/bankcore/banking/internal/core/services"
	"github.com/bankcore/banking/internal/dto"
	"github.com/bankcore/banking/internal/handlers"
	"github.com/bankcore/banking/internal/middleware"
	"github.com/bankcore/banking/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portssvc "github.com/bankcore/banking/internal/core/ports/services"
)

// @title Banking Ledger API
// @version 1.0
// @description In-memory account ledger: accounts, deposits, withdrawals and transfers.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Teach the binding validator about decimal amounts
	dto.RegisterValidations()

	// The whole ledger lives in process memory; one registry per process.
	accountRepo := memory.NewAccountRepository()
	container := &portssvc.ServiceContainer{
		Account: services.NewAccountService(accountRepo),
		Ledger:  services.NewLedgerService(),
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(buildCORSConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func buildCORSConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	allowAll := len(cfg.CORSAllowedOrigins) == 0
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}
