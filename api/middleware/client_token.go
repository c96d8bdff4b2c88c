package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

const clientTokenHeader = "X-Client-Token"

type clientTokenKey struct{}

// ClientToken tags every request with the caller's storage token. The token
// namespaces the client's cart, order history, and preferences; a first-time
// caller gets a fresh one echoed back in the response header.
func ClientToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(clientTokenHeader)
			if token == "" {
				token = uuid.NewString()
			}

			w.Header().Set(clientTokenHeader, token)

			ctx := WithClientToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithClientToken stores the caller's storage token on the context.
func WithClientToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, clientTokenKey{}, token)
}

// ClientTokenFromContext returns the storage token tagged by ClientToken.
func ClientTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(clientTokenKey{}).(string)
	return token
}
