package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type SignUpRequest struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Description     string `json:"description,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func NewSignUpRequestFromContext(ctx echo.Context) (*SignUpRequest, error) {
	var body SignUpRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *SignUpRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Username) == "" {
		return errors.New("name and username are required")
	}
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("email and password are required")
	}

	return nil
}

type LogInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func NewLogInRequestFromContext(ctx echo.Context) (*LogInRequest, error) {
	var body LogInRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *LogInRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("identifier and password are required")
	}

	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

func NewUpdatePasswordRequestFromContext(ctx echo.Context) (*UpdatePasswordRequest, error) {
	var body UpdatePasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdatePasswordRequest) Validate() error {
	if strings.TrimSpace(r.CurrentPassword) == "" || strings.TrimSpace(r.NewPassword) == "" {
		return errors.New("current_password and new_password are required")
	}

	return nil
}

type UpdateEmailRequest struct {
	NewEmail string `json:"new_email"`
}

func NewUpdateEmailRequestFromContext(ctx echo.Context) (*UpdateEmailRequest, error) {
	var body UpdateEmailRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateEmailRequest) Validate() error {
	if strings.TrimSpace(r.NewEmail) == "" {
		return errors.New("new_email is required")
	}

	return nil
}
