// Package services contains server-side business logic. UserService covers
// accounts and sessions; ContactService covers the owner-scoped address book.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/avatars"
	"github.com/dmitrijs2005/contactbook/internal/server/mailer"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/users"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
	"github.com/google/uuid"
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AvatarProcessor interface {
	Process(ctx context.Context, userID string, src io.Reader) (string, error)
}

// UserDeps are the collaborators of UserService. MailTimeout bounds each
// verification mail; zero means no extra bound.
type UserDeps struct {
	Users       users.Repository
	Tokens      TokenIssuer
	Hasher      PasswordHasher
	Notifier    mailer.Notifier
	Avatars     AvatarProcessor
	MailTimeout time.Duration
	Log         logging.Logger
}

type UserService struct {
	users       users.Repository
	tokens      TokenIssuer
	hasher      PasswordHasher
	notifier    mailer.Notifier
	avatars     AvatarProcessor
	mailTimeout time.Duration
	log         logging.Logger
}

func NewUserService(d UserDeps) *UserService {
	log := d.Log
	if log == nil {
		log = logging.Nop{}
	}
	return &UserService{
		users:       d.Users,
		tokens:      d.Tokens,
		hasher:      d.Hasher,
		notifier:    d.Notifier,
		avatars:     d.Avatars,
		mailTimeout: d.MailTimeout,
		log:         log.With("module", "users"),
	}
}

// Signup registers a new unverified account with a Gravatar avatar and mails
// the verification link. A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Signup(ctx context.Context, req validation.Signup) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(&req); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	verificationToken := uuid.NewString()
	user, err := s.users.Create(ctx, &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Subscription:      common.DefaultSubscription,
		AvatarURL:         avatars.GravatarURL(req.Email),
		VerificationToken: &verificationToken,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	s.sendVerification(ctx, user.Email, verificationToken)

	return user, nil
}

// Login checks credentials and starts a new session, replacing any previous
// one. Unknown email and wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, req validation.Login) (string, *models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(&req); err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing token: %w", err)
	}
	if err := s.users.SetToken(ctx, user.ID, &token); err != nil {
		return "", nil, fmt.Errorf("error storing token: %w", err)
	}
	user.Token = &token

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return token, user, nil
}

// Logout clears the stored session token so it no longer authenticates.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.users.SetToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("error clearing token: %w", err)
	}
	s.log.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

// UpdateAvatar processes the uploaded image and records its URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, src io.Reader) (string, error) {
	url, err := s.avatars.Process(ctx, userID, src)
	if err != nil {
		if errors.Is(err, avatars.ErrInvalidImage) {
			return "", validation.NewError("avatar must be a JPEG, PNG or GIF image")
		}
		return "", fmt.Errorf("error processing avatar: %w", err)
	}

	if err := s.users.SetAvatar(ctx, userID, url); err != nil {
		return "", fmt.Errorf("error saving avatar: %w", err)
	}
	return url, nil
}

// RequestVerification re-sends the verification link. Delivery problems are
// logged, not returned.
func (s *UserService) RequestVerification(ctx context.Context, req validation.VerifyRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(&req); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error searching user: %w", err)
	}
	if user.Verified || user.VerificationToken == nil {
		return common.ErrorAlreadyVerified
	}

	s.sendVerification(ctx, user.Email, *user.VerificationToken)
	return nil
}

// ConfirmVerification consumes token. It succeeds at most once per token.
func (s *UserService) ConfirmVerification(ctx context.Context, token string) error {
	user, err := s.users.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error verifying user: %w", err)
	}
	s.log.Info(ctx, "user verified", "user_id", user.ID)
	return nil
}

func (s *UserService) sendVerification(ctx context.Context, email, token string) {
	if s.mailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.mailTimeout)
		defer cancel()
	}
	if err := s.notifier.SendVerification(ctx, email, token); err != nil {
		s.log.Warn(ctx, "verification mail not sent", "email", email, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
