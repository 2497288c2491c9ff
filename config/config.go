package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Price table keys. Every key must resolve to a configured Stripe price id at
// startup; a missing price is a boot failure, never a request-time 500.
const (
	PriceRestaurantBase   = "restaurant_base"
	PricePremiumMonthly   = "premium_monthly"
	PricePremiumYearly    = "premium_yearly"
	PricePromotionMonthly = "promotion_monthly"
	PricePromotionYearly  = "promotion_yearly"
	PriceOperatorMonthly  = "operator_monthly"
	PriceOperatorYearly   = "operator_yearly"
	PriceBoostStarter     = "boost_starter"
	PriceBoostGrowth      = "boost_growth"
	PriceBoostMax         = "boost_max"
)

var requiredPriceKeys = []string{
	PriceRestaurantBase,
	PricePremiumMonthly,
	PricePremiumYearly,
	PricePromotionMonthly,
	PricePromotionYearly,
	PriceOperatorMonthly,
	PriceOperatorYearly,
	PriceBoostStarter,
	PriceBoostGrowth,
	PriceBoostMax,
}

type Config struct {
	Port string `validate:"required"`

	DBHost     string `validate:"required"`
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBName     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`

	RedisAddr     string `validate:"required"`
	RedisPassword string
	RedisDB       int

	SupabaseJWTSecret string `validate:"required"`

	StripeSecretKey     string `validate:"required"`
	StripeWebhookSecret string `validate:"required"`
	CheckoutSuccessURL  string `validate:"required,url"`
	CheckoutCancelURL   string `validate:"required,url"`
	PriceIDs            map[string]string

	ViatorAPIKey  string `validate:"required"`
	ViatorBaseURL string `validate:"required,url"`

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	R2 R2Config
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

// Load builds the Config from the environment. Call godotenv.Load first.
func Load() *Config {
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	viatorBase := os.Getenv("VIATOR_BASE_URL")
	if viatorBase == "" {
		viatorBase = "https://api.viator.com"
	}

	cfg := &Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CheckoutSuccessURL:  os.Getenv("CHECKOUT_SUCCESS_URL"),
		CheckoutCancelURL:   os.Getenv("CHECKOUT_CANCEL_URL"),

		ViatorAPIKey:  os.Getenv("VIATOR_API_KEY"),
		ViatorBaseURL: viatorBase,

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),

		R2: R2Config{
			AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
			PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
			Region:          "auto",
		},

		PriceIDs: loadPriceTable(),
	}

	return cfg
}

func loadPriceTable() map[string]string {
	return map[string]string{
		PriceRestaurantBase:   os.Getenv("STRIPE_PRICE_RESTAURANT_BASE"),
		PricePremiumMonthly:   os.Getenv("STRIPE_PRICE_PREMIUM_MONTHLY"),
		PricePremiumYearly:    os.Getenv("STRIPE_PRICE_PREMIUM_YEARLY"),
		PricePromotionMonthly: os.Getenv("STRIPE_PRICE_PROMOTION_MONTHLY"),
		PricePromotionYearly:  os.Getenv("STRIPE_PRICE_PROMOTION_YEARLY"),
		PriceOperatorMonthly:  os.Getenv("STRIPE_PRICE_OPERATOR_MONTHLY"),
		PriceOperatorYearly:   os.Getenv("STRIPE_PRICE_OPERATOR_YEARLY"),
		PriceBoostStarter:     os.Getenv("STRIPE_PRICE_BOOST_STARTER"),
		PriceBoostGrowth:      os.Getenv("STRIPE_PRICE_BOOST_GROWTH"),
		PriceBoostMax:         os.Getenv("STRIPE_PRICE_BOOST_MAX"),
	}
}

// Validate checks required settings and the exhaustiveness of the price table.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, key := range requiredPriceKeys {
		if c.PriceIDs[key] == "" {
			return fmt.Errorf("missing Stripe price id for %q", key)
		}
	}
	return nil
}

// PriceID returns the configured Stripe price for a known key. Validate has
// already guaranteed presence, so a miss here is a programming error.
func (c *Config) PriceID(key string) string {
	id, ok := c.PriceIDs[key]
	if !ok || id == "" {
		panic(fmt.Sprintf("unknown price key %q", key))
	}
	return id
}
