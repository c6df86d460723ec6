package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/dto"
	"github.com/vibast-solutions/ms-go-social/app/middleware"
	"github.com/vibast-solutions/ms-go-social/app/service"
	"github.com/vibast-solutions/ms-go-social/app/types"
	"github.com/vibast-solutions/ms-go-social/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	authService service.AuthService
	cfg         *config.Config
}

func NewAuthController(authService service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg}
}

func (c *AuthController) SignUp(ctx echo.Context) error {
	req, err := types.NewSignUpRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind signup request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("username", req.Username).Debug("Signup validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("username", req.Username).Info("Signup request received")
	if err = c.authService.SignUp(ctx.Request().Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch), errors.Is(err, service.ErrWeakPassword):
			logrus.WithField("username", req.Username).Warn("Signup failed: invalid password input")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrUsernameAndEmailTaken),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			logrus.WithField("username", req.Username).Warn("Signup failed: conflict")
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("username", req.Username).Error("Signup failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("username", req.Username).Info("User signed up")
	return ctx.JSON(http.StatusCreated, dto.MessageResponse{
		Message: "Check your email to activate your account",
	})
}

func (c *AuthController) Activate(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "token is required"})
	}

	logrus.Info("Activation request received")
	message, err := c.authService.Activate(ctx.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
			logrus.Warn("Activation failed: invalid or expired token")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid or expired token"})
		case errors.Is(err, service.ErrUserNotFound):
			logrus.Warn("Activation failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).Error("Activation failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.Info("Account activated")
	return ctx.String(http.StatusOK, message)
}

func (c *AuthController) LogIn(ctx echo.Context) error {
	req, err := types.NewLogInRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Login validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("identifier", req.Identifier).Info("Login request received")
	pair, err := c.authService.LogIn(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			logrus.WithField("identifier", req.Identifier).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
		case errors.Is(err, service.ErrAccountNotActivated):
			logrus.WithField("identifier", req.Identifier).Warn("Login failed: account not activated")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Account not activated"})
		}
		logrus.WithError(err).WithField("identifier", req.Identifier).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	c.setRefreshCookie(ctx, pair.RefreshToken)

	logrus.WithField("identifier", req.Identifier).Info("Login successful")
	return ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: pair.AccessToken})
}

func (c *AuthController) LogOut(ctx echo.Context) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		logrus.Warn("Logout failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", userID).Info("Logout request received")
	if err := c.authService.LogOut(ctx.Request().Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Logout failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	c.clearRefreshCookie(ctx)

	logrus.WithField("user_id", userID).Info("Logout successful")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out successfully"})
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	cookie, err := ctx.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		logrus.Debug("Refresh failed: missing cookie")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "refresh token not found"})
	}

	logrus.Info("Refresh request received")
	pair, err := c.authService.Refresh(ctx.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
			logrus.Warn("Refresh failed: invalid or expired token")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired refresh token"})
		}
		logrus.WithError(err).Error("Refresh failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	c.setRefreshCookie(ctx, pair.RefreshToken)

	logrus.Info("Refresh successful")
	return ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: pair.AccessToken})
}

func (c *AuthController) UpdatePassword(ctx echo.Context) error {
	req, err := types.NewUpdatePasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Update password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		logrus.Warn("Update password failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", userID).Info("Update password request received")
	if err = c.authService.UpdatePassword(ctx.Request().Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch), errors.Is(err, service.ErrWeakPassword):
			logrus.WithField("user_id", userID).Warn("Update password failed: invalid password input")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrCurrentPasswordInvalid):
			logrus.WithField("user_id", userID).Warn("Update password failed: current password mismatch")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "current password is incorrect"})
		case errors.Is(err, service.ErrUserNotFound):
			logrus.WithField("user_id", userID).Warn("Update password failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Update password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Password updated")
	return ctx.JSON(http.StatusOK, dto.UpdatePasswordResponse{
		Success: true,
		Message: "password updated successfully",
	})
}

func (c *AuthController) RequestEmailChange(ctx echo.Context) error {
	req, err := types.NewUpdateEmailRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update email request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Update email validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		logrus.Warn("Update email failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", userID).Info("Email change requested")
	if err = c.authService.RequestEmailChange(ctx.Request().Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			logrus.WithField("user_id", userID).Warn("Email change failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		case errors.Is(err, service.ErrEmailTaken):
			logrus.WithField("user_id", userID).Warn("Email change failed: email taken")
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "email already registered"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Email change failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Email change mail sent")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Check your new email to confirm the change",
	})
}

func (c *AuthController) ConfirmEmailChange(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "token is required"})
	}

	logrus.Info("Email change confirmation received")
	message, err := c.authService.ConfirmEmailChange(ctx.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
			logrus.Warn("Email change confirmation failed: invalid or expired token")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired token"})
		case errors.Is(err, service.ErrUserNotFound):
			logrus.Warn("Email change confirmation failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		case errors.Is(err, service.ErrEmailTaken):
			logrus.Warn("Email change confirmation failed: email taken")
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "email already registered"})
		}
		logrus.WithError(err).Error("Email change confirmation failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.Info("Email updated")
	return ctx.String(http.StatusOK, message)
}

func (c *AuthController) setRefreshCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/auth",
		MaxAge:   int(c.cfg.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   c.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) clearRefreshCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
