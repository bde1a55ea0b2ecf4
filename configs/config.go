package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	// Browser exit routes for the checkout return flow.
	SuccessURL  string
	CheckoutURL string
	ShopURL     string

	// Payment gateway. Secret key is required: checkout is core.
	StripeSecretKey string
	StripeBaseURL   string

	// Email (SES).
	SESRegion string
	FromEmail string
	CcEmail   string

	// Optional per-request gateways; a missing key surfaces as a
	// configuration error on that endpoint, not at startup.
	SearchAPIKey   string
	SearchEngineID string
	SearchBaseURL  string
	OCRAPIKey      string
	OCRBaseURL     string
	ChatAPIKey     string
	ChatBaseURL    string
	ChatModel      string

	// Diploma object store.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	LogLevel string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return &Config{
		DBSource:  getEnv("DB_SOURCE", "aet.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: MustGetEnv("JWT_SECRET"),
		JWTTTL:    time.Duration(24) * time.Hour,

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "https://app.americantranslationservice.com/checkout/success"),
		CheckoutURL: getEnv("CHECKOUT_RETRY_URL", "https://app.americantranslationservice.com/checkout"),
		ShopURL:     getEnv("SHOP_URL", "https://www.americantranslationservice.com"),

		StripeSecretKey: MustGetEnv("STRIPE_SECRET_KEY"),
		StripeBaseURL:   os.Getenv("STRIPE_BASE_URL"),

		SESRegion: getEnv("SES_REGION", "us-east-1"),
		FromEmail: os.Getenv("FROM_EMAIL"),
		CcEmail:   os.Getenv("CC_EMAIL"),

		SearchAPIKey:   os.Getenv("SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("SEARCH_ENGINE_ID"),
		SearchBaseURL:  os.Getenv("SEARCH_BASE_URL"),
		OCRAPIKey:      os.Getenv("OCR_API_KEY"),
		OCRBaseURL:     os.Getenv("OCR_BASE_URL"),
		ChatAPIKey:     os.Getenv("CHAT_API_KEY"),
		ChatBaseURL:    os.Getenv("CHAT_BASE_URL"),
		ChatModel:      os.Getenv("CHAT_MODEL"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "aet-diplomas"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
