package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The database block is optional: when
// DB_HOST is unset the server runs against the legacy REST API at
// API_URL instead, and when both are present the REST API doubles as a
// failover target for issuances and sectors.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address (empty = REST fallback)
	DBPort         string // database port number
	DBName         string // database name
	APIURL         string // legacy REST backend base URL
	APIKey         string // bearer token for the legacy backend
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
}

// HasDB reports whether a MySQL backend is configured.
func (c Config) HasDB() bool { return c.DBHost != "" }

// Load reads configuration values from environment variables and
// returns a Config. Missing required values cause the program to exit
// with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         os.Getenv("DB_NAME"),
		APIURL:         os.Getenv("API_URL"),
		APIKey:         os.Getenv("API_KEY"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   intenv("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: intenv("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     intenv("BCRYPT_COST", 10),
	}
	if !cfg.HasDB() && cfg.APIURL == "" {
		log.Fatal("config: set DB_HOST for MySQL or API_URL for the REST fallback")
	}
	if cfg.HasDB() && (cfg.DBUser == "" || cfg.DBName == "") {
		log.Fatal("config: DB_HOST is set but DB_USER or DB_NAME is missing")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intenv is like getenv but converts the value into an integer.
func intenv(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
