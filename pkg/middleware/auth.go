package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/api"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var errMissingBearer = errors.New("missing bearer token")

// AgentAuth requires an HS256 bearer token whose subject is the {agentID}
// path parameter. It must be mounted inside the /agents/{agentID} route so
// that the parameter is resolved.
func AgentAuth(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearer(r)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			var claims jwt.RegisteredClaims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				slog.Warn("agent token rejected", "error", err)
				api.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if claims.Subject != chi.URLParam(r, "agentID") {
				api.WriteError(w, http.StatusForbidden, "token does not belong to this agent")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IssueAgentToken signs a token for agentID valid for ttl.
func IssueAgentToken(secret []byte, agentID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   agentID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign agent token: %w", err)
	}
	return signed, nil
}

func bearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errMissingBearer
	}
	return token, nil
}
