package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-exchange-api/internal/application/ports"
	"file-exchange-api/internal/application/services"
	domain "file-exchange-api/internal/domain/user"
	userDB "file-exchange-api/internal/infrastructure/db/postgres/user"
	"file-exchange-api/internal/interface/api/rest/dto/auth"
)

type fakeAuthService struct {
	SignupFunc       func(ctx context.Context, email, password string) (*domain.User, error)
	VerifyEmailFunc  func(ctx context.Context, token string) (*domain.User, error)
	LoginFunc        func(ctx context.Context, email, password string) (string, error)
	AuthenticateFunc func(ctx context.Context, sessionToken string) (*domain.User, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	if f.SignupFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SignupFunc(ctx, email, password)
}

func (f *fakeAuthService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	if f.VerifyEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.VerifyEmailFunc(ctx, token)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if f.LoginFunc == nil {
		return "", errors.New("not used")
	}
	return f.LoginFunc(ctx, email, password)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, sessionToken string) (*domain.User, error) {
	if f.AuthenticateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.AuthenticateFunc(ctx, sessionToken)
}

func newRouterWithAuthController(t *testing.T, as ports.Auth) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewAuthController(r, zap.NewNop(), as)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var b []byte
	switch v := body.(type) {
	case nil:
	case string:
		b = []byte(v)
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAuthController_SignupHandler(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		body       any
		signup     func(ctx context.Context, email, password string) (*domain.User, error)
		wantStatus int
		wantErr    string
	}{
		{
			name:       "invalid JSON",
			body:       "{bad json",
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid json",
		},
		{
			name:       "invalid email",
			body:       auth.SignupRequest{Email: "not-an-email", Password: "pw1"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:       "missing password",
			body:       auth.SignupRequest{Email: "a@x.com"},
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name: "duplicate email",
			body: auth.SignupRequest{Email: "a@x.com", Password: "pw1"},
			signup: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, userDB.ErrEmailAlreadyExists
			},
			wantStatus: http.StatusBadRequest,
			wantErr:    "Email already registered",
		},
		{
			name: "repository error",
			body: auth.SignupRequest{Email: "a@x.com", Password: "pw1"},
			signup: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to sign up",
		},
		{
			name: "success",
			body: auth.SignupRequest{Email: "a@x.com", Password: "pw1"},
			signup: func(ctx context.Context, email, password string) (*domain.User, error) {
				return &domain.User{
					ID:           1,
					Email:        email,
					PasswordHash: "$2a$10$secret",
					Role:         domain.RoleClient,
					CreatedAt:    now,
				}, nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newRouterWithAuthController(t, &fakeAuthService{SignupFunc: tt.signup})
			rr := doJSON(t, r, http.MethodPost, "/signup", tt.body)
			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
				return
			}

			assert.Equal(t, float64(1), resp["id"])
			assert.Equal(t, "a@x.com", resp["email"])
			assert.Equal(t, "client", resp["role"])
			assert.Equal(t, false, resp["is_verified"])
			assert.NotContains(t, rr.Body.String(), "secret")
		})
	}
}

func TestAuthController_VerifyEmailHandler(t *testing.T) {
	tests := []struct {
		name       string
		verify     func(ctx context.Context, token string) (*domain.User, error)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "invalid token",
			verify: func(ctx context.Context, token string) (*domain.User, error) {
				return nil, services.ErrInvalidToken
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Invalid or expired token"},
		},
		{
			name: "repository error",
			verify: func(ctx context.Context, token string) (*domain.User, error) {
				return nil, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "failed to verify email"},
		},
		{
			name: "success",
			verify: func(ctx context.Context, token string) (*domain.User, error) {
				return &domain.User{ID: 1, Email: "a@x.com", Role: domain.RoleClient, IsVerified: true}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"message": "Email verified successfully"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newRouterWithAuthController(t, &fakeAuthService{VerifyEmailFunc: tt.verify})
			rr := doJSON(t, r, http.MethodGet, "/verify-email/some-token", nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp)
		})
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	form := func(username, password string) url.Values {
		v := url.Values{}
		if username != "" {
			v.Set("username", username)
		}
		if password != "" {
			v.Set("password", password)
		}
		return v
	}

	tests := []struct {
		name       string
		form       url.Values
		login      func(ctx context.Context, email, password string) (string, error)
		wantStatus int
		wantErr    string
	}{
		{
			name:       "missing username",
			form:       form("", "pw1"),
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:       "missing password",
			form:       form("a@x.com", ""),
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name: "unknown email",
			form: form("ghost@x.com", "pw1"),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "", services.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Invalid credentials",
		},
		{
			name: "wrong password",
			form: form("a@x.com", "nope"),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "", services.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Invalid credentials",
		},
		{
			name: "unverified email",
			form: form("a@x.com", "pw1"),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "", services.ErrEmailNotVerified
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Email not verified",
		},
		{
			name: "service error",
			form: form("a@x.com", "pw1"),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to log in",
		},
		{
			name: "success",
			form: form("a@x.com", "pw1"),
			login: func(ctx context.Context, email, password string) (string, error) {
				return "session-token", nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newRouterWithAuthController(t, &fakeAuthService{LoginFunc: tt.login})
			rr := doForm(t, r, "/login", tt.form)
			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
				return
			}
			assert.Equal(t, "session-token", resp["access_token"])
			assert.Equal(t, "bearer", resp["token_type"])
		})
	}
}

// Unknown account and wrong password must be indistinguishable on the
// wire.
func TestAuthController_Login_NoAccountEnumeration(t *testing.T) {
	r := newRouterWithAuthController(t, &fakeAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (string, error) {
			return "", services.ErrInvalidCredentials
		},
	})

	unknown := doForm(t, r, "/login", url.Values{"username": {"ghost@x.com"}, "password": {"pw1"}})
	wrongPw := doForm(t, r, "/login", url.Values{"username": {"real@x.com"}, "password": {"bad"}})

	require.Equal(t, unknown.Code, wrongPw.Code)
	require.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}
