package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"smartfood-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries everything the handlers need. It is built once in main and
// passed down explicitly, no package-level mutable state.
type Config struct {
	Port      string
	GinMode   string
	DBPath    string
	JWTSecret []byte
	TokenTTL  time.Duration

	// Pricing constants applied to every order.
	DeliveryFee float64
	TaxRate     float64

	// SandboxPayments keeps the always-succeeds capture stub enabled.
	// There is no real gateway behind it; turning this off disables
	// the payment endpoint entirely.
	SandboxPayments bool

	SendGridAPIKey string
	FromEmail      string
}

// Load reads .env (if present) and environment variables into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		DBPath:          getEnv("DB_PATH", "smartfood.db"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "smartfood_super_secret_2024")),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),
		DeliveryFee:     getEnvFloat("DELIVERY_FEE", 2.99),
		TaxRate:         getEnvFloat("TAX_RATE", 0.08),
		SandboxPayments: getEnvBool("SANDBOX_PAYMENTS", true),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		FromEmail:       getEnv("FROM_EMAIL", "orders@smartfood.local"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Invalid value for %s, using default %v", key, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("Invalid value for %s, using default %v", key, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid value for %s, using default %v", key, fallback)
	}
	return fallback
}

// InitDB opens the sqlite database and migrates all models.
func InitDB(cfg *Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
	return db
}

// Migrate runs auto-migration for every model. Split out so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Payment{},
		&models.Rating{},
	)
}
