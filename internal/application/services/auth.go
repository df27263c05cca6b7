package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"file-exchange-api/config"
	"file-exchange-api/internal/application/ports"
	domain "file-exchange-api/internal/domain/user"
	"file-exchange-api/internal/infrastructure/mq"
	"file-exchange-api/internal/infrastructure/token"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailNotVerified      = errors.New("email not verified")
	ErrInvalidToken          = errors.New("invalid token")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

// Burned when login hits an unknown email, so the password check costs
// the same whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	userRepository domain.Repository
	codec          *token.Service
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger

	publicURL  string
	sessionTTL time.Duration
}

func NewAuthService(
	userRepository domain.Repository,
	codec *token.Service,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	cfg config.APP,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		codec:          codec,
		mq:             rbMQ,
		mCounter:       mCounter,
		logger:         logger,

		publicURL:  cfg.PublicURL,
		sessionTTL: cfg.SessionTTL,
	}
}

// Signup creates a client-role, unverified account and queues the
// verification mail. The user row is durable before the token naming
// that email leaves the process; mail dispatch is best-effort and never
// fails the signup.
func (as *AuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := as.userRepository.CreateUser(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
	})
	if err != nil {
		return nil, err
	}

	verifToken, err := as.codec.MintVerification(u.Email)
	if err != nil {
		as.logger.Error("failed to mint verification token", zap.Error(err), zap.String("email", u.Email))
	} else {
		as.dispatch(mq.Event{
			Id:        uuid.New(),
			TS:        time.Now(),
			Kind:      mq.KindVerificationEmail,
			Recipient: u.Email,
			Subject:   "Verify Your Email",
			Body:      fmt.Sprintf("Click to verify: %s/verify-email/%s", as.publicURL, verifToken),
		})
	}

	as.mCounter.WithLabelValues("users_signed_up_total").Inc()

	return u, nil
}

func (as *AuthService) VerifyEmail(ctx context.Context, tokenStr string) (*domain.User, error) {
	email, err := as.codec.ParseVerification(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := as.userRepository.MarkVerified(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}

	as.mCounter.WithLabelValues("emails_verified_total").Inc()

	return u, nil
}

// Login checks credentials and mints a session token. Unknown email and
// wrong password are indistinguishable to the caller. Unverified
// client-role users are refused; ops users are exempt from the
// verification gate.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if !u.IsVerified && u.Role == domain.RoleClient {
		return "", ErrEmailNotVerified
	}

	sessionToken, err := as.codec.MintSession(uint64(u.ID), as.sessionTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	as.mCounter.WithLabelValues("logins_total").Inc()

	return sessionToken, nil
}

func (as *AuthService) Authenticate(ctx context.Context, sessionToken string) (*domain.User, error) {
	id, err := as.codec.ParseSession(sessionToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := as.userRepository.FetchUserByID(ctx, domain.ID(id))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}

	return u, nil
}

func (as *AuthService) dispatch(e mq.Event) {
	select {
	case as.mq.GetInputChan() <- e:
	default:
		as.logger.Warn("notification queue full, event dropped",
			zap.String("kind", e.Kind),
			zap.String("recipient", e.Recipient),
		)
	}
}
