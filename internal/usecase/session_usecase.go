package usecase

import (
	"context"
	"errors"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/service"
	"bed-admission-service/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoToken = errors.New("request carries no token")
)

// SessionUsecase manages the token deny-list. Tokens are issued by the
// identity provider; this service can only revoke them.
type SessionUsecase interface {
	// Logout revokes the caller's own token until it would have expired
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	// RevokeToken revokes any token by ID for the configured revocation TTL
	RevokeToken(ctx context.Context, tokenID string) error
}

type sessionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	redisClient   *redis.Client
	auditService  service.AuditService
	revocationTTL time.Duration
	now           func() time.Time
}

func NewSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	redisClient *redis.Client,
	auditService service.AuditService,
	revocationTTL time.Duration,
) SessionUsecase {
	return &sessionUsecase{
		db:            db,
		log:           log,
		redisClient:   redisClient,
		auditService:  auditService,
		revocationTTL: revocationTTL,
		now:           time.Now,
	}
}

func (u *sessionUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrNoToken
	}

	ttl := u.revocationTTL
	if !expiresAt.IsZero() {
		ttl = expiresAt.Sub(u.now())
	}
	if ttl <= 0 {
		// Already expired, the signature check rejects it
		return nil
	}

	return u.revoke(ctx, tokenID, ttl, "logout")
}

func (u *sessionUsecase) RevokeToken(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return &ValidationError{Field: "token_id", Message: "token_id is required"}
	}
	return u.revoke(ctx, tokenID, u.revocationTTL, "admin")
}

func (u *sessionUsecase) revoke(ctx context.Context, tokenID string, ttl time.Duration, reason string) error {
	if err := u.redisClient.Set(ctx, jwt.RevokedTokenKey(tokenID), reason, ttl).Err(); err != nil {
		u.log.Warnf("Failed to revoke token %s: %+v", tokenID, err)
		return err
	}

	u.log.WithFields(logrus.Fields{
		"token_id": tokenID,
		"reason":   reason,
		"ttl":      ttl.String(),
	}).Info("Token revoked")

	recordAudit(ctx, u.db, u.log, u.auditService, entity.AuditActionTokenRevoke, "token", tokenID, nil,
		map[string]interface{}{"reason": reason, "expires_in": ttl.String()})
	return nil
}
