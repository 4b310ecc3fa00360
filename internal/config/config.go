package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time provides the hold TTL duration type

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, durations for TTLs.
type Config struct {
	Env       string        // application environment (e.g. "dev", "prod")
	Port      string        // HTTP port to listen on
	DBUser    string        // database username
	DBPass    string        // database password (optional)
	DBHost    string        // database host address
	DBPort    string        // database port number
	DBName    string        // database name
	JWTSecret string        // secret used to verify externally issued JWTs
	HoldTTL   time.Duration // how long a seat hold lives before expiring
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when it
// exists; real environment variables always win.  Required variables are
// enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	_ = godotenv.Load() // best effort; absence of .env is not an error
	return Config{
		Env:       must("APP_ENV"),                          // environment (dev/test/prod)
		Port:      must("APP_PORT"),                         // port to bind the HTTP server
		DBUser:    must("DB_USER"),                          // database user
		DBPass:    os.Getenv("DB_PASS"),                     // database password (empty allowed)
		DBHost:    must("DB_HOST"),                          // database host
		DBPort:    must("DB_PORT"),                          // database port
		DBName:    must("DB_NAME"),                          // database name
		JWTSecret: must("JWT_SECRET"),                       // secret used for verifying JWTs
		HoldTTL:   durOrDefault("HOLD_TTL", 5*time.Minute), // seat hold time-to-live
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// durOrDefault parses an optional duration variable ("5m", "90s").  An
// unset or malformed value falls back to the provided default.
func durOrDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid duration for %s: %q; using %s", key, v, def)
		return def
	}
	return d
}
