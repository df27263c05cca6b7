// Package token mints and verifies the signed tokens the service hands
// out: email-verification tokens, bearer session tokens and expiring
// download tokens. All three are HS256 JWTs over a single process-wide
// secret held here.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers malformed, forged and wrong-shape tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired means the signature verified but the expiry passed.
	ErrTokenExpired = errors.New("token expired")
)

type Service struct {
	secret []byte
}

func New(secret string) *Service { return &Service{secret: []byte(secret)} }

type VerificationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type DownloadClaims struct {
	FileID uint64 `json:"file_id"`
	jwt.RegisteredClaims
}

// MintVerification signs a token naming the email to be verified. It
// carries no expiry, matching the account-verification contract.
func (s *Service) MintVerification(email string) (string, error) {
	claims := VerificationClaims{Email: email}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) ParseVerification(tokenStr string) (string, error) {
	claims := new(VerificationClaims)
	if err := s.parse(tokenStr, claims); err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}

// MintSession signs a bearer token whose subject is the user id.
func (s *Service) MintSession(userID uint64, expiresIn time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) ParseSession(tokenStr string) (uint64, error) {
	claims := new(jwt.RegisteredClaims)
	if err := s.parse(tokenStr, claims, jwt.WithExpirationRequired()); err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

// MintDownload signs a token exchanging for one file, valid for expiresIn.
func (s *Service) MintDownload(fileID uint64, expiresIn time.Duration) (string, error) {
	claims := DownloadClaims{
		FileID: fileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) ParseDownload(tokenStr string) (uint64, error) {
	claims := new(DownloadClaims)
	if err := s.parse(tokenStr, claims, jwt.WithExpirationRequired()); err != nil {
		return 0, err
	}
	if claims.FileID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.FileID, nil
}

func (s *Service) parse(tokenStr string, claims jwt.Claims, opts ...jwt.ParserOption) error {
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !tok.Valid {
		return ErrTokenInvalid
	}
	return nil
}
