package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/avatars"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/memory"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Str0ng!Pass"

type captureNotifier struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (c *captureNotifier) SendVerification(_ context.Context, email, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[email] = token
	return nil
}

func (c *captureNotifier) tokenFor(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens[email]
}

type testEnv struct {
	handler   http.Handler
	users     *memory.UserRepository
	notifier  *captureNotifier
	tempDir   string
	avatarDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	contacts := memory.NewContactRepository()
	tokens := auth.NewTokenService("test-secret", time.Hour, users)
	notifier := &captureNotifier{tokens: map[string]string{}}

	avatarDir := t.TempDir()
	store, err := avatars.NewLocalStore(avatarDir, "/avatars")
	require.NoError(t, err)

	userSvc := services.NewUserService(services.UserDeps{
		Users:       users,
		Tokens:      tokens,
		Hasher:      auth.NewHasher(bcrypt.MinCost),
		Notifier:    notifier,
		Avatars:     avatars.NewProcessor(store),
		MailTimeout: time.Second,
		Log:         logging.Nop{},
	})

	tempDir := t.TempDir()
	h := NewRouter(Options{
		Users:          userSvc,
		Contacts:       services.NewContactService(contacts, logging.Nop{}),
		Auth:           tokens,
		Logger:         logging.Nop{},
		TempDir:        tempDir,
		AvatarDir:      avatarDir,
		RequestTimeout: 5 * time.Second,
	})

	return &testEnv{handler: h, users: users, notifier: notifier, tempDir: tempDir, avatarDir: avatarDir}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(t *testing.T, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPatch, "/users/avatars", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register signs up and logs in, returning the session token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/users/signup", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[messageResponse](t, rec).Message
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for x := 0; x < 400; x++ {
		for y := 0; y < 300; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
