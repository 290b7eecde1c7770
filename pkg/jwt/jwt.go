package jwt

import (
	"errors"
	"time"

	"bed-admission-service/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims issued by the identity provider. Subject identifies the caller,
// ID (jti) is checked against the revocation deny-list.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RevokedTokenKeyPrefix prefixes deny-listed token IDs in Redis
const RevokedTokenKeyPrefix = "revoked_token:"

// RevokedTokenKey is the deny-list key for a token ID
func RevokedTokenKey(tokenID string) string {
	return RevokedTokenKeyPrefix + tokenID
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken signs a token for subject with role. Used by tooling and tests;
// production tokens come from the identity provider.
func (s *JWTService) GenerateToken(subject, role string, ttl time.Duration) (string, string, error) {
	tokenID := uuid.New().String()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, errors.New("token is missing subject or role")
	}

	return claims, nil
}
