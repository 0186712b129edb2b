package config

import (
	"os"
	"strconv"
	"strings"
)

type Tables struct {
	Quotes      string
	Orders      string
	Invoices    string
	Projects    string
	Users       string
	Offers      string
	Identifiers string
	Effects     string
}

type AWS struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	DynamoEndpoint  string
	S3Endpoint      string
	DocumentsBucket string
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
}

type PayPal struct {
	ClientID string
	Secret   string
	Mode     string
}

type SMTP struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Config is the process configuration, read once at startup.
type Config struct {
	Port                   string
	JWTSecret              string
	Currency               string
	CheckoutProvider       string
	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	RateLimit              string
	FrontendURL            string

	AWS    AWS
	Tables Tables
	Stripe Stripe
	PayPal PayPal
	SMTP   SMTP
	Redis  Redis
}

const (
	CheckoutProviderPayPal      = "paypal"
	CheckoutProviderMercadoPago = "mercadopago"
)

// Load reads the environment. Callers import github.com/joho/godotenv/autoload
// so a local .env is merged first.
func Load() Config {
	return Config{
		Port:                   getenvDefault("PORT", "8080"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		Currency:               strings.ToLower(getenvDefault("PAYMENT_CURRENCY", "eur")),
		CheckoutProvider:       strings.ToLower(getenvDefault("CHECKOUT_PROVIDER", CheckoutProviderPayPal)),
		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     parseMockFlag(os.Getenv("PAYMENT_GATEWAY_MOCK")),
		RateLimit:              getenvDefault("RATE_LIMIT", "10-M"),
		FrontendURL:            getenvDefault("FRONTEND_URL", "http://localhost:3000"),
		AWS: AWS{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
			S3Endpoint:      os.Getenv("S3_ENDPOINT"),
			DocumentsBucket: os.Getenv("DOCUMENTS_BUCKET"),
		},
		Tables: Tables{
			Quotes:      getenvDefault("QUOTES_TABLE", "quotes"),
			Orders:      getenvDefault("ORDERS_TABLE", "orders"),
			Invoices:    getenvDefault("INVOICES_TABLE", "invoices"),
			Projects:    getenvDefault("PROJECTS_TABLE", "projects"),
			Users:       getenvDefault("USERS_TABLE", "users"),
			Offers:      getenvDefault("OFFERS_TABLE", "offers"),
			Identifiers: getenvDefault("IDENTIFIERS_TABLE", "identifiers"),
			Effects:     getenvDefault("EFFECTS_TABLE", "effects"),
		},
		Stripe: Stripe{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		PayPal: PayPal{
			ClientID: os.Getenv("PAYPAL_CLIENT_ID"),
			Secret:   os.Getenv("PAYPAL_SECRET"),
			Mode:     strings.ToLower(getenvDefault("PAYPAL_MODE", "sandbox")),
		},
		SMTP: SMTP{
			Host:       os.Getenv("SMTP_HOST"),
			Port:       getenvInt("SMTP_PORT", 587),
			Username:   os.Getenv("SMTP_USERNAME"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			From:       getenvDefault("MAIL_FROM", "no-reply@localhost"),
			AdminEmail: os.Getenv("ADMIN_EMAIL"),
		},
		Redis: Redis{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenvDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func parseMockFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on", "mock":
		return true
	default:
		return false
	}
}
