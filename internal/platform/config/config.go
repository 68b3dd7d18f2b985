package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// JWTIssuer restricts accepted tokens to this issuer; empty accepts any.
	JWTIssuer string

	// DBMaxConns caps the pgx pool size; zero keeps the driver default.
	DBMaxConns int32

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP.
	RateLimit string

	// ContactTrigramSearch enables pg_trgm similarity search on contact
	// names. Leave off if the trigram migration was skipped (it needs the
	// pg_trgm extension, which not every hosted Postgres allows).
	ContactTrigramSearch bool
}

// LoadConfig loads configuration from environment variables and .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "tidybooks")
	viper.SetDefault("PGSQL_MAX_CONNS", 0)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CONTACT_TRIGRAM_SEARCH", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if !viper.IsSet("JWT_SECRET") {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.DBMaxConns = viper.GetInt32("PGSQL_MAX_CONNS")
	if cfg.DBMaxConns < 0 {
		log.Printf("Warning: Negative value for PGSQL_MAX_CONNS (%d). Using the driver default.\n", cfg.DBMaxConns)
		cfg.DBMaxConns = 0
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.ContactTrigramSearch = viper.GetBool("CONTACT_TRIGRAM_SEARCH")

	return cfg, nil
}
