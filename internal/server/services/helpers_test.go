package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/avatars"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/memory"
	"golang.org/x/crypto/bcrypt"
)

type sentMail struct {
	email string
	token string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeNotifier) SendVerification(_ context.Context, email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{email: email, token: token})
	return f.err
}

func (f *fakeNotifier) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}
	}
	return f.sent[len(f.sent)-1]
}

type fakeAvatars struct {
	url string
	err error
}

func (f *fakeAvatars) Process(_ context.Context, userID string, src io.Reader) (string, error) {
	if _, err := io.ReadAll(src); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "/" + avatars.Key(userID), nil
}

var errInvalidImage = errors.Join(avatars.ErrInvalidImage)

type userFixture struct {
	svc      *UserService
	repo     *memory.UserRepository
	tokens   *auth.TokenService
	notifier *fakeNotifier
	avatars  *fakeAvatars
}

func newUserFixture() *userFixture {
	repo := memory.NewUserRepository()
	tokens := auth.NewTokenService("test-secret", time.Hour, repo)
	f := &userFixture{repo: repo, tokens: tokens, notifier: &fakeNotifier{}, avatars: &fakeAvatars{}}
	f.svc = NewUserService(UserDeps{
		Users:       repo,
		Tokens:      tokens,
		Hasher:      auth.NewHasher(bcrypt.MinCost),
		Notifier:    f.notifier,
		Avatars:     f.avatars,
		MailTimeout: time.Second,
	})
	return f
}
