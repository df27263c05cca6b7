package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-exchange-api/internal/application/ports"
	"file-exchange-api/internal/application/services"
	userDB "file-exchange-api/internal/infrastructure/db/postgres/user"
	"file-exchange-api/internal/interface/api/rest/dto/auth"
	"file-exchange-api/internal/interface/api/rest/dto/user"
	"file-exchange-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteSignup, ac.SignupHandler)
	r.GET(RouteVerifyEmail, ac.VerifyEmailHandler)
	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) SignupHandler(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateSignup(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.authService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to sign up"},
		)
		ac.logger.Error("Signup() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (ac *AuthController) VerifyEmailHandler(c *gin.Context) {
	u, err := ac.authService.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to verify email"},
		)
		ac.logger.Error("VerifyEmail() error", zap.Error(err))
		return
	}

	ac.logger.Info("email verified", zap.String("email", u.Email))

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid form"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	sessionToken, err := ac.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, services.ErrEmailNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not verified"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to log in"},
			)
			ac.logger.Error("Login() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": sessionToken,
		"token_type":   "bearer",
	})
}
