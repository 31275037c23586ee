package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, key, candidate string) (bool, error)
}

type VerificationSender interface {
	SendVerification(ctx context.Context, to, username, token string) error
}

type TokenManager interface {
	Issue(userID string, purpose auth.Purpose) (string, error)
	Parse(token string, purpose auth.Purpose) (*auth.Claims, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Profile, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	VerifyEmail(ctx context.Context, token string) (*Profile, error)

	// Authenticate resolves a session token to its user. Every failure is
	// an auth error.
	Authenticate(ctx context.Context, token string) (*User, error)

	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo    Repository
	captcha CaptchaVerifier
	mailer  VerificationSender
	tokens  TokenManager
}

func NewService(repo Repository, captcha CaptchaVerifier, mailer VerificationSender, tokens TokenManager) Service {
	return &service{
		repo:    repo,
		captcha: captcha,
		mailer:  mailer,
		tokens:  tokens,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email := normalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)

	if email == "" || input.Password == "" || username == "" ||
		input.CaptchaKey == "" || input.CaptchaCode == "" {
		s.countRegistration(metrics.ResultInvalid)
		return nil, ErrRegisterFieldsRequired
	}
	if !validEmail(email) {
		s.countRegistration(metrics.ResultInvalid)
		return nil, ErrInvalidEmail
	}

	if err := s.checkCaptcha(ctx, input.CaptchaKey, input.CaptchaCode); err != nil {
		s.countRegistration(metrics.ResultInvalid)
		return nil, err
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.countRegistration(metrics.ResultInvalid)
		return nil, ErrEmailExists
	case !errors.Is(err, ErrUserNotFound):
		s.countRegistration(metrics.ResultFailed)
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		s.countRegistration(metrics.ResultFailed)
		return nil, err
	}

	u := &User{
		Email:    email,
		Username: username,
		Password: hashed,
		Role:     RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailExists) {
			s.countRegistration(metrics.ResultInvalid)
		} else {
			s.countRegistration(metrics.ResultFailed)
		}
		return nil, err
	}

	s.sendVerification(ctx, u)

	s.countRegistration(metrics.ResultOK)
	log.Info("register service completed",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", email),
	)

	return u.ToProfile(), nil
}

// sendVerification is best effort: failures are logged and never fail the
// registration.
func (s *service) sendVerification(ctx context.Context, u *User) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "sendVerification"),
		zap.String("user_id", u.ID.Hex()),
	)

	token, err := s.tokens.Issue(u.ID.Hex(), auth.PurposeEmailVerify)
	if err != nil {
		log.Error("failed to issue verification token", zap.Error(err))
		return
	}

	if err := s.mailer.SendVerification(ctx, u.Email, u.Username, token); err != nil {
		log.Error("failed to send verification email", zap.Error(err))
		return
	}

	log.Info("verification email sent")
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.CaptchaKey == "" || input.CaptchaCode == "" {
		s.countLogin(metrics.ResultInvalid)
		return nil, ErrLoginFieldsRequired
	}

	if err := s.checkCaptcha(ctx, input.CaptchaKey, input.CaptchaCode); err != nil {
		s.countLogin(metrics.ResultInvalid)
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("email not found")
			s.countLogin(metrics.ResultInvalid)
		} else {
			s.countLogin(metrics.ResultFailed)
		}
		return nil, err
	}

	ok, legacy := CheckPassword(input.Password, u.Password)
	if !ok {
		log.Info("password not match", zap.String("user_id", u.ID.Hex()))
		s.countLogin(metrics.ResultInvalid)
		return nil, ErrInvalidPassword
	}

	if legacy {
		s.upgradePassword(ctx, u.ID, input.Password)
	}

	token, err := s.tokens.Issue(u.ID.Hex(), auth.PurposeSession)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		s.countLogin(metrics.ResultFailed)
		return nil, err
	}

	s.countLogin(metrics.ResultOK)
	log.Info("login service completed", zap.String("user_id", u.ID.Hex()))

	return &LoginResult{Token: token, User: u.ToProfile()}, nil
}

// upgradePassword replaces a legacy plain digest with its bcrypt hash.
func (s *service) upgradePassword(ctx context.Context, id primitive.ObjectID, password string) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "upgradePassword"),
		zap.String("user_id", id.Hex()),
	)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return
	}
	if err := s.repo.UpdatePassword(ctx, id, hashed); err != nil {
		log.Error("failed to rehash legacy password", zap.Error(err))
		return
	}
	log.Info("legacy password rehashed")
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyEmail"),
	)

	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenRequired
	}

	claims, err := s.tokens.Parse(token, auth.PurposeEmailVerify)
	if err != nil {
		log.Info("invalid verification token", zap.Error(err))
		return nil, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.repo.MarkVerified(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("email verified", zap.String("user_id", u.ID.Hex()))
	return u.ToProfile(), nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.Parse(token, auth.PurposeSession)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return u, nil
}

func (s *service) GetProfile(ctx context.Context) (*Profile, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.ToProfile(), nil
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", userID.Hex()),
	)

	if params.Username == nil && params.Avatar == nil && params.Phone == nil {
		return nil, ErrEmptyProfileUpdate
	}
	if params.Username != nil {
		name := strings.TrimSpace(*params.Username)
		if name == "" {
			return nil, ErrInvalidUsername
		}
		params.Username = &name
	}

	u, err := s.repo.UpdateProfile(ctx, userID, params)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated")
	return u.ToProfile(), nil
}

func (s *service) checkCaptcha(ctx context.Context, key, code string) error {
	ok, err := s.captcha.Verify(ctx, key, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCaptcha
	}
	return nil
}

func (s *service) countRegistration(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func (s *service) countLogin(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
