package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr           string
	ReleaseMode    bool
	AllowedOrigins []string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
	CookieDomain  string
}

type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

// RateLimitConfig holds per-action budgets, all over a fixed one-minute window.
type RateLimitConfig struct {
	Login   int
	Upload  int
	Booking int
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Env vars win over .env values.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.releasemode", false)
	v.SetDefault("server.origins", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.publicbaseurl", "")
	v.SetDefault("email.from", "bookings@honkakutattoo.com")
	v.SetDefault("ratelimit.login", 5)
	v.SetDefault("ratelimit.upload", 10)
	v.SetDefault("ratelimit.booking", 5)

	// Postgres and admin bootstrap keep their conventional, unprefixed names.
	for _, key := range []string{
		"DATABASE_URL", "PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
		"ADMIN_EMAIL", "ADMIN_PASSWORD", "RESEND_API_KEY",
	} {
		if err := v.BindEnv(strings.ToLower(key), key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetDefault("pghost", "localhost")
	v.SetDefault("pgport", "5432")
	v.SetDefault("pgsslmode", "disable")

	cfg := Config{
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			ReleaseMode:    v.GetBool("server.releasemode"),
			AllowedOrigins: splitOrigins(v.GetString("server.origins")),
		},
		Postgres: PostgresConfig{
			DatabaseURL: v.GetString("database_url"),
			Host:        v.GetString("pghost"),
			Port:        v.GetString("pgport"),
			User:        v.GetString("pguser"),
			Password:    v.GetString("pgpassword"),
			Database:    v.GetString("pgdatabase"),
			SSLMode:     v.GetString("pgsslmode"),
		},
		Auth: AuthConfig{
			AdminEmail:    strings.TrimSpace(v.GetString("admin_email")),
			AdminPassword: v.GetString("admin_password"),
			CookieDomain:  v.GetString("auth.cookiedomain"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("storage.bucket"),
			Region:        v.GetString("storage.region"),
			Endpoint:      v.GetString("storage.endpoint"),
			PublicBaseURL: v.GetString("storage.publicbaseurl"),
		},
		Email: EmailConfig{
			ResendAPIKey: v.GetString("resend_api_key"),
			From:         v.GetString("email.from"),
		},
		RateLimit: RateLimitConfig{
			Login:   v.GetInt("ratelimit.login"),
			Upload:  v.GetInt("ratelimit.upload"),
			Booking: v.GetInt("ratelimit.booking"),
		},
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
