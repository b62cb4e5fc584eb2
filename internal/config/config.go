package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
)

type Config struct {
	Environment string `env:"ENV" env-default:"development"`
	Port        string `env:"PORT" env-default:"8001"`
	Host        string `env:"HOST" env-default:"http://localhost:8001"` // Public base URL used to build upload links
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	TrustProxy  bool   `env:"TRUST_PROXY" env-default:"false"` // Honour X-Forwarded-For when resolving client IPs

	MongoURI string `env:"MONGODB_URL" env-default:"mongodb://localhost:27017/zhufengketang"`
	RedisURI string `env:"REDIS_URI"` // Optional; enables the seed lock and the shared rate limiter

	JWTSecret string        `env:"JWT_SECRET_KEY"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:","`

	PublicDir      string `env:"PUBLIC_DIR" env-default:"public"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" env-default:"10485760"`

	CloudinaryName      string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" env-default:"avatars"`
}

// Load reads the process environment. Call godotenv first if a .env file should apply.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrConfig, err)
	}
	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	cfg.Host = strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
	return &cfg, cfg.Validate()
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("%w: JWT_SECRET_KEY is not set", apperr.ErrConfig)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: TOKEN_TTL must be positive", apperr.ErrConfig)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("%w: UPLOAD_MAX_BYTES must be positive", apperr.ErrConfig)
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Hostname is the bare host of HOST, used for the production host check.
func (c *Config) Hostname() string {
	u, err := url.Parse(c.Host)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func parseOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		part = strings.TrimSpace(part)
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}
