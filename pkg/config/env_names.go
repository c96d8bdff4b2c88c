package config

// EnvPrefix scopes every environment variable this service reads.
const EnvPrefix = "printshop"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	CheckoutModeHosted    = "hosted"
	CheckoutModeSimulated = "simulated"
)

const (
	EnvAppEnv   = "PRINTSHOP_APP_ENV"
	EnvPort     = "PRINTSHOP_APP_PORT"
	EnvBaseURL  = "PRINTSHOP_APP_BASE_URL"
	EnvDBDSN    = "PRINTSHOP_DB_DSN"
	EnvDBHost   = "PRINTSHOP_DB_HOST"
	EnvDBUser   = "PRINTSHOP_DB_USER"
	EnvDBName   = "PRINTSHOP_DB_NAME"
	EnvRedisURL = "PRINTSHOP_REDIS_URL"

	EnvCheckoutMode = "PRINTSHOP_CHECKOUT_MODE"
	EnvStripeAPIKey = "PRINTSHOP_STRIPE_API_KEY"
	EnvStripeSecret = "PRINTSHOP_STRIPE_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
