package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
	"github.com/vibast-solutions/ms-go-social/app/repository"
	"github.com/vibast-solutions/ms-go-social/app/types"
	"github.com/vibast-solutions/ms-go-social/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrEmailTaken             = errors.New("email already registered")
	ErrUsernameAndEmailTaken  = errors.New("username and email already taken")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountNotActivated    = errors.New("account not activated")
	ErrUserNotFound           = errors.New("user not found")
	ErrCurrentPasswordInvalid = errors.New("current password is incorrect")
	ErrWeakPassword           = errors.New("password does not meet policy requirements")
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	SetActive(ctx context.Context, id uint64) error
	UpdatePasswordHash(ctx context.Context, id uint64, passwordHash string) error
	UpdateRefreshTokenHash(ctx context.Context, id uint64, hash sql.NullString) error
	UpdateEmail(ctx context.Context, id uint64, email string) error
	Delete(ctx context.Context, id uint64) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	SignUp(ctx context.Context, req *types.SignUpRequest) error
	Activate(ctx context.Context, token string) (string, error)
	LogIn(ctx context.Context, req *types.LogInRequest) (*TokenPair, error)
	LogOut(ctx context.Context, userID uint64) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	UpdatePassword(ctx context.Context, userID uint64, req *types.UpdatePasswordRequest) error
	RequestEmailChange(ctx context.Context, userID uint64, req *types.UpdateEmailRequest) error
	ConfirmEmailChange(ctx context.Context, token string) (string, error)
}

type authService struct {
	userRepo userRepository
	codec    *TokenCodec
	mailer   Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo userRepository, codec *TokenCodec, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (s *authService) SignUp(ctx context.Context, req *types.SignUpRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if err := s.cfg.PasswordPolicy.Validate(req.Password); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	usernameTaken, err := s.userRepo.UsernameTaken(ctx, username)
	if err != nil {
		return err
	}
	emailTaken, err := s.userRepo.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	switch {
	case usernameTaken && emailTaken:
		return ErrUsernameAndEmailTaken
	case usernameTaken:
		return ErrUsernameTaken
	case emailTaken:
		return ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		user.Description = sql.NullString{String: desc, Valid: true}
	}

	// The pre-flight availability checks can lose a race; the unique
	// indexes are the real arbiter.
	if err = s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmailTaken
		}
		return err
	}

	// Everything after the insert compensates by removing the row, so a
	// failed signup never leaves a half-created account behind.
	if err = s.sendActivation(user); err != nil {
		if deleteErr := s.userRepo.Delete(ctx, user.ID); deleteErr != nil {
			logrus.WithError(deleteErr).WithField("user_id", user.ID).Error("failed to roll back user after signup failure")
		}
		return err
	}

	return nil
}

func (s *authService) sendActivation(user *entity.User) error {
	token, err := s.codec.Issue(TokenKindActivation, user.ID)
	if err != nil {
		return err
	}
	return s.mailer.SendActivationEmail(user.Email, user.Name, token)
}

func (s *authService) Activate(ctx context.Context, token string) (string, error) {
	claims, err := s.codec.Verify(TokenKindActivation, token)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if user.IsActive {
		return "Account already activated", nil
	}

	if err = s.userRepo.SetActive(ctx, user.ID); err != nil {
		return "", err
	}

	return "Account activated successfully", nil
}

func (s *authService) LogIn(ctx context.Context, req *types.LogInRequest) (*TokenPair, error) {
	user, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error as a wrong password so callers cannot probe for
		// registered identifiers.
		return nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountNotActivated
	}

	return s.issueSession(ctx, user.ID)
}

func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.userRepo.FindByEmail(ctx, strings.ToLower(identifier))
	}
	return s.userRepo.FindByUsername(ctx, identifier)
}

// issueSession mints a fresh access/refresh pair and stores the hash of the
// refresh token, invalidating whatever session existed before.
func (s *authService) issueSession(ctx context.Context, userID uint64) (*TokenPair, error) {
	accessToken, err := s.codec.Issue(TokenKindAccess, userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.codec.Issue(TokenKindRefresh, userID)
	if err != nil {
		return nil, err
	}

	hash := sql.NullString{String: hashRefreshToken(refreshToken), Valid: true}
	if err = s.userRepo.UpdateRefreshTokenHash(ctx, userID, hash); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) LogOut(ctx context.Context, userID uint64) error {
	return s.userRepo.UpdateRefreshTokenHash(ctx, userID, sql.NullString{})
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Verify(TokenKindRefresh, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.RefreshTokenHash.Valid {
		return nil, ErrInvalidToken
	}

	if hashRefreshToken(refreshToken) != user.RefreshTokenHash.String {
		return nil, ErrInvalidToken
	}

	// Rotation: the new hash replaces the old one, so the token presented
	// here can never be redeemed a second time.
	return s.issueSession(ctx, user.ID)
}

func (s *authService) UpdatePassword(ctx context.Context, userID uint64, req *types.UpdatePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrCurrentPasswordInvalid
	}

	if err = s.cfg.PasswordPolicy.Validate(req.NewPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// The stored refresh-token hash survives a password change; the
	// single session stays valid until logout or expiry.
	return s.userRepo.UpdatePasswordHash(ctx, userID, string(hashedPassword))
}

func (s *authService) RequestEmailChange(ctx context.Context, userID uint64, req *types.UpdateEmailRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	newEmail := normalizeEmail(req.NewEmail)
	taken, err := s.userRepo.EmailTaken(ctx, newEmail)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	token, err := s.codec.IssueEmailChange(userID, newEmail)
	if err != nil {
		return err
	}

	// Mail goes to the address being claimed, proving control of the new
	// inbox. Nothing is written until the token comes back.
	return s.mailer.SendEmailChangeEmail(newEmail, user.Name, token)
}

func (s *authService) ConfirmEmailChange(ctx context.Context, token string) (string, error) {
	claims, err := s.codec.Verify(TokenKindEmailChange, token)
	if err != nil {
		return "", err
	}
	if claims.NewEmail == "" {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	// The unique index on users.email settles the race between the
	// availability check at request time and this commit.
	if err = s.userRepo.UpdateEmail(ctx, user.ID, claims.NewEmail); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateEntry) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return "Email updated successfully", nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
