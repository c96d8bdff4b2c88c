package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Checkout   CheckoutConfig
	Stripe     StripeConfig
	Email      EmailConfig
	Catalog    CatalogConfig
	LocalStore LocalStoreConfig
	Flags      FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRINTSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"PRINTSHOP_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"PRINTSHOP_APP_BASE_URL" default:"http://localhost:5181"`
	CORSOrigins  string `envconfig:"PRINTSHOP_APP_CORS_ORIGINS" default:"*"`
	LogLevel     string `envconfig:"PRINTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRINTSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Origins splits the configured CORS origin list.
func (a AppConfig) Origins() []string {
	parts := strings.Split(a.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type DBConfig struct {
	DSN    string `envconfig:"PRINTSHOP_DB_DSN"`
	Driver string `envconfig:"PRINTSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRINTSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"PRINTSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRINTSHOP_DB_USER"`
	LegacyPassword string `envconfig:"PRINTSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRINTSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRINTSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRINTSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRINTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig selects the fulfillment strategy at boot. The two modes are
// mutually exclusive deployments, never a runtime branch.
type CheckoutConfig struct {
	Mode                  string        `envconfig:"PRINTSHOP_CHECKOUT_MODE" default:"hosted"`
	SuccessURL            string        `envconfig:"PRINTSHOP_CHECKOUT_SUCCESS_URL" default:"http://localhost:3000/checkout/success"`
	CancelURL             string        `envconfig:"PRINTSHOP_CHECKOUT_CANCEL_URL" default:"http://localhost:3000/checkout/cancel"`
	WebhookIdempotencyTTL time.Duration `envconfig:"PRINTSHOP_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
}

func (c CheckoutConfig) IsHosted() bool {
	return strings.EqualFold(c.Mode, CheckoutModeHosted)
}

func (c CheckoutConfig) IsSimulated() bool {
	return strings.EqualFold(c.Mode, CheckoutModeSimulated)
}

func (c CheckoutConfig) validate() error {
	if !c.IsHosted() && !c.IsSimulated() {
		return fmt.Errorf("checkout mode must be %q or %q, got %q", CheckoutModeHosted, CheckoutModeSimulated, c.Mode)
	}
	return nil
}

type StripeConfig struct {
	APIKey string `envconfig:"PRINTSHOP_STRIPE_API_KEY"`
	Secret string `envconfig:"PRINTSHOP_STRIPE_SECRET"`
	Env    string `envconfig:"PRINTSHOP_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type EmailConfig struct {
	Endpoint   string        `envconfig:"PRINTSHOP_EMAIL_ENDPOINT"`
	ServiceID  string        `envconfig:"PRINTSHOP_EMAIL_SERVICE_ID"`
	TemplateID string        `envconfig:"PRINTSHOP_EMAIL_TEMPLATE_ID"`
	PublicKey  string        `envconfig:"PRINTSHOP_EMAIL_PUBLIC_KEY"`
	ToName     string        `envconfig:"PRINTSHOP_EMAIL_TO_NAME"`
	ToEmail    string        `envconfig:"PRINTSHOP_EMAIL_TO_EMAIL"`
	FromName   string        `envconfig:"PRINTSHOP_EMAIL_FROM_NAME" default:"Photography Order System"`
	Timeout    time.Duration `envconfig:"PRINTSHOP_EMAIL_TIMEOUT" default:"10s"`
}

type CatalogConfig struct {
	ImageBaseURL string        `envconfig:"PRINTSHOP_CATALOG_IMAGE_BASE_URL"`
	FetchTimeout time.Duration `envconfig:"PRINTSHOP_CATALOG_FETCH_TIMEOUT" default:"15s"`
}

type LocalStoreConfig struct {
	Dir string `envconfig:"PRINTSHOP_LOCALSTORE_DIR" default:".localstore"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PRINTSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PRINTSHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
