package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/northlight-prints/storefront-backend/pkg/config"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

// Client holds the Stripe API handle used by hosted checkout plus the
// webhook signing secret. Simulated deployments never construct one.
type Client struct {
	api           *stripe.Client
	live          bool
	signingSecret string
}

// NewClient validates the configured keys and initializes Stripe. The key
// mode must agree with PRINTSHOP_STRIPE_ENV so a test deployment cannot
// charge real cards.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	live, err := resolveMode(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if err := checkSecretKey(apiKey, live); err != nil {
		return nil, err
	}

	signingSecret := strings.TrimSpace(cfg.Secret)
	if signingSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret is required for hosted checkout")
	}
	if !strings.HasPrefix(signingSecret, "whsec_") {
		return nil, fmt.Errorf("stripe webhook secret must be a whsec_ signing secret")
	}

	api := stripe.NewClient(apiKey)
	stripe.Key = apiKey

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe ready for hosted checkout (%s mode)", modeName(live)))
	}

	return &Client{
		api:           api,
		live:          live,
		signingSecret: signingSecret,
	}, nil
}

// API returns the underlying Stripe API client.
func (c *Client) API() *stripe.Client {
	if c == nil {
		return nil
	}
	return c.api
}

// Environment reports "live" or "test".
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return modeName(c.live)
}

// SigningSecret returns the webhook signing secret.
func (c *Client) SigningSecret() string {
	if c == nil {
		return ""
	}
	return c.signingSecret
}

func resolveMode(env string) (bool, error) {
	switch env {
	case "live":
		return true, nil
	case "", "test":
		return false, nil
	default:
		return false, fmt.Errorf("stripe environment must be %q or %q, got %q", "test", "live", env)
	}
}

// checkSecretKey accepts standard (sk_) and restricted (rk_) secret keys,
// as long as the key's mode matches the configured environment.
func checkSecretKey(key string, live bool) error {
	if key == "" {
		return fmt.Errorf("stripe api key is required for hosted checkout")
	}
	mode := modeName(live)
	for _, prefix := range []string{"sk_", "rk_"} {
		if strings.HasPrefix(key, prefix+mode) {
			return nil
		}
	}
	return fmt.Errorf("stripe api key does not match %s mode (want sk_%s or rk_%s)", mode, mode, mode)
}

func modeName(live bool) string {
	if live {
		return "live"
	}
	return "test"
}
