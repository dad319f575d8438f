package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Vehicle cost service
	VehicleCostServiceURL string
	VehicleCostTimeout    time.Duration

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "caravel-backend")
	viper.SetDefault("VEHICLE_COST_SERVICE_URL", "http://localhost:8090")
	viper.SetDefault("VEHICLE_COST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.VehicleCostServiceURL = viper.GetString("VEHICLE_COST_SERVICE_URL")
	vehicleCostTimeoutStr := viper.GetString("VEHICLE_COST_TIMEOUT")
	vehicleCostTimeout, err := time.ParseDuration(vehicleCostTimeoutStr)
	if err != nil {
		vehicleCostTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for VEHICLE_COST_TIMEOUT ('%s'). Defaulting to %s.\n", vehicleCostTimeoutStr, vehicleCostTimeout.String())
	}
	cfg.VehicleCostTimeout = vehicleCostTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
