package httpapi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const defaultMaxUpload = 5 << 20

type UserService interface {
	Signup(ctx context.Context, req validation.Signup) (*models.User, error)
	Login(ctx context.Context, req validation.Login) (string, *models.User, error)
	Logout(ctx context.Context, userID string) error
	UpdateAvatar(ctx context.Context, userID string, src io.Reader) (string, error)
	RequestVerification(ctx context.Context, req validation.VerifyRequest) error
	ConfirmVerification(ctx context.Context, token string) error
}

type ContactService interface {
	List(ctx context.Context, ownerID string) ([]models.Contact, error)
	Get(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Create(ctx context.Context, ownerID string, req validation.ContactCreate) (*models.Contact, error)
	Update(ctx context.Context, ownerID, id string, req validation.ContactUpdate) (*models.Contact, error)
	SetFavorite(ctx context.Context, ownerID, id string, req validation.Favorite) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Options configures NewRouter. AvatarDir, when set, is served under
// /avatars/. TempDir holds uploads while they are processed; empty means
// os.TempDir().
type Options struct {
	Users          UserService
	Contacts       ContactService
	Auth           Authenticator
	Logger         logging.Logger
	TempDir        string
	AvatarDir      string
	RequestTimeout time.Duration
	CORSOrigins    []string
	MaxUploadBytes int64
}

type handler struct {
	users     UserService
	contacts  ContactService
	auth      Authenticator
	log       logging.Logger
	tempDir   string
	maxUpload int64
}

func NewRouter(o Options) http.Handler {
	log := o.Logger
	if log == nil {
		log = logging.Nop{}
	}
	h := &handler{
		users:     o.Users,
		contacts:  o.Contacts,
		auth:      o.Auth,
		log:       log.With("module", "http"),
		tempDir:   o.TempDir,
		maxUpload: o.MaxUploadBytes,
	}
	if h.maxUpload <= 0 {
		h.maxUpload = defaultMaxUpload
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	origins := o.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	if o.RequestTimeout > 0 {
		r.Use(middleware.Timeout(o.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.Get("/verify/{token}", h.confirmVerification)
		r.Post("/verify", h.requestVerification)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Get("/logout", h.logout)
			r.Get("/current", h.current)
			r.Patch("/avatars", h.updateAvatar)
		})
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.listContacts)
		r.Post("/", h.createContact)
		r.Get("/{id}", h.getContact)
		r.Patch("/{id}", h.updateContact)
		r.Patch("/{id}/favorite", h.updateFavorite)
		r.Delete("/{id}", h.deleteContact)
	})

	if o.AvatarDir != "" {
		files := http.StripPrefix("/avatars/", http.FileServer(http.Dir(o.AvatarDir)))
		r.Get("/avatars/*", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				writeMessage(w, http.StatusNotFound, msgNotFound)
				return
			}
			files.ServeHTTP(w, r)
		})
	}

	return r
}
