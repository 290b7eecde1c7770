package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/pkg/jwt"
	"bed-admission-service/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	PrincipalKey      contextKey = "principal"
	TokenIDKey        contextKey = "token_id"
	TokenExpiresAtKey contextKey = "token_expires_at"
)

const RevokedTokenKeyPrefix = jwt.RevokedTokenKeyPrefix

// DevPrincipal is used for unauthenticated requests in development mode
var DevPrincipal = entity.Principal{Subject: "dev-user", Role: entity.RoleAdmin}

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	devMode     bool
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client, devMode bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
		devMode:     devMode,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if m.devMode {
				next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), DevPrincipal)))
				return
			}
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Reject tokens on the deny-list
		if claims.ID != "" {
			exists, err := m.redisClient.Exists(r.Context(), jwt.RevokedTokenKey(claims.ID)).Result()
			if err != nil {
				response.InternalServerError(w, "Failed to validate token")
				return
			}
			if exists > 0 {
				response.Unauthorized(w, "Token has been revoked")
				return
			}
		}

		ctx := WithPrincipal(r.Context(), entity.Principal{Subject: claims.Subject, Role: claims.Role})
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, TokenExpiresAtKey, claims.ExpiresAt.Time)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithPrincipal stores the authenticated caller in ctx
func WithPrincipal(ctx context.Context, principal entity.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// GetPrincipalFromContext extracts the authenticated caller from context
func GetPrincipalFromContext(ctx context.Context) (entity.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(entity.Principal)
	return principal, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetTokenExpiryFromContext returns the expiry of the request's token.
// Zero when the token carries no exp claim.
func GetTokenExpiryFromContext(ctx context.Context) time.Time {
	expiresAt, _ := ctx.Value(TokenExpiresAtKey).(time.Time)
	return expiresAt
}

// ActorFromContext names the caller for audit entries
func ActorFromContext(ctx context.Context) string {
	if principal, ok := GetPrincipalFromContext(ctx); ok && principal.Subject != "" {
		return principal.Subject
	}
	return "anonymous"
}
