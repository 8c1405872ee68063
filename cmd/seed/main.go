// Command seed creates payment settings for a development business and
// prints a bearer token scoped to it.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"salonpay/internal/config"
	"salonpay/internal/models"
	"salonpay/internal/repositories"
	"salonpay/internal/repositories/cache"
	"salonpay/internal/services/settings"
	"salonpay/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if config.IsProduction() {
		log.Fatal("seed must not run with ENV=production")
	}

	businessID := uuid.New()
	if raw := os.Getenv("SEED_BUSINESS_ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Fatalf("invalid SEED_BUSINESS_ID: %v", err)
		}
		businessID = id
	}

	input := settings.UpdateInput{
		BusinessID:      businessID,
		PayoutOption:    config.GetEnv("SEED_PAYOUT_OPTION", "standard"),
		StripeAccountID: os.Getenv("SEED_STRIPE_ACCOUNT_ID"),
		Currency:        cfg.Currency,
	}
	if raw := os.Getenv("SEED_PLATFORM_FEE_PERCENTAGE"); raw != "" {
		pct, err := decimal.NewFromString(raw)
		if err != nil {
			log.Fatalf("invalid SEED_PLATFORM_FEE_PERCENTAGE: %v", err)
		}
		input.PlatformFeePercentage = &pct
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
		}
	}()

	cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.SettingsCacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis connection: %v", err)
		}
	}()

	svc := settings.NewService(repositories.NewPaymentSettingsRepository(db), cacheService, nil)
	ps, err := svc.Upsert(context.Background(), input)
	if err != nil {
		log.Fatalf("failed to save payment settings: %v", err)
	}

	role := config.GetEnv("SEED_ROLE", models.RoleOwner)
	token, err := utils.GenerateToken(&models.BusinessClaims{
		BusinessID: businessID,
		UserID:     "seed-" + role,
		Role:       role,
	}, cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	log.Printf("✅ Payment settings saved for business %s (payout=%s, account=%q)",
		ps.BusinessID, ps.PayoutOption, ps.StripeAccountID)
	fmt.Println(token)
}
