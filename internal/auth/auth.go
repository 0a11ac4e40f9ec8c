// Package auth authenticates vendor requests from HS256 bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
)

// ActorTypeSeller is the only actor type admitted to vendor routes.
const ActorTypeSeller = "seller"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrNotSeller    = errors.New("token does not belong to a seller")
)

// Actor is the authenticated caller.
type Actor struct {
	ID       string
	Type     string
	SellerID string
}

// Claims are the token claims issued to vendor members.
type Claims struct {
	ActorID   string `json:"actor_id"`
	ActorType string `json:"actor_type"`
	SellerID  string `json:"seller_id"`
	jwt.RegisteredClaims
}

type actorKey struct{}

// WithActor stores actor in ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the authenticated actor.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// Authenticate rejects requests without a valid seller token with 401.
func Authenticate(cfg *Config, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "auth")
	key := []byte(cfg.Secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := verify(cfg, key, r.Header.Get("Authorization"))
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func verify(cfg *Config, key []byte, header string) (Actor, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return Actor{}, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
		return Actor{}, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}
	if cfg.Audience != "" && !claims.VerifyAudience(cfg.Audience, true) {
		return Actor{}, fmt.Errorf("%w: unexpected audience", ErrInvalidToken)
	}

	if claims.ActorType != ActorTypeSeller || claims.SellerID == "" {
		return Actor{}, ErrNotSeller
	}

	id := claims.ActorID
	if id == "" {
		id = claims.Subject
	}

	return Actor{ID: id, Type: claims.ActorType, SellerID: claims.SellerID}, nil
}

// Issue signs a seller token. Used by tooling and tests.
func Issue(cfg *Config, actorID, sellerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ActorID:   actorID,
		ActorType: ActorTypeSeller,
		SellerID:  sellerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
