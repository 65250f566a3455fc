// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/contactbook/internal/filex"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/avatars"
	"github.com/dmitrijs2005/contactbook/internal/server/config"
	"github.com/dmitrijs2005/contactbook/internal/server/httpapi"
	"github.com/dmitrijs2005/contactbook/internal/server/mailer"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	handler http.Handler
}

// NewApp builds every component from c. An empty DatabaseDSN runs on the
// in-memory store; an empty SMTPHost logs verification links instead of
// mailing them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	repos, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	handler, err := buildHandler(ctx, c, logger, repos)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, repos: repos, handler: handler}, nil
}

func buildHandler(ctx context.Context, c *config.Config, logger logging.Logger, repos repomanager.RepositoryManager) (http.Handler, error) {
	tempDir, err := filex.EnsureDir(c.TempDir)
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}

	store, avatarDir, err := newAvatarStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("avatar store: %w", err)
	}

	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration, repos.Users())

	users := services.NewUserService(services.UserDeps{
		Users:       repos.Users(),
		Tokens:      tokens,
		Hasher:      auth.NewHasher(c.BcryptCost),
		Notifier:    newNotifier(c, logger),
		Avatars:     avatars.NewProcessor(store),
		MailTimeout: c.MailTimeout,
		Log:         logger,
	})
	contacts := services.NewContactService(repos.Contacts(), logger)

	return httpapi.NewRouter(httpapi.Options{
		Users:          users,
		Contacts:       contacts,
		Auth:           tokens,
		Logger:         logger,
		TempDir:        tempDir,
		AvatarDir:      avatarDir,
		RequestTimeout: c.RequestTimeout,
		CORSOrigins:    c.CORSOriginList(),
	}), nil
}

// newAvatarStore also returns the directory to serve under /avatars/, which
// is empty for the S3 backend.
func newAvatarStore(ctx context.Context, c *config.Config) (avatars.Store, string, error) {
	if c.AvatarBackend == config.AvatarBackendS3 {
		s, err := avatars.NewS3Store(ctx, avatars.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		return s, "", err
	}

	s, err := avatars.NewLocalStore(c.AvatarDir, "/avatars")
	if err != nil {
		return nil, "", err
	}
	return s, s.Dir(), nil
}

func newNotifier(c *config.Config, logger logging.Logger) mailer.Notifier {
	if c.SMTPHost == "" {
		return mailer.NewLogNotifier(c.PublicURL, logger.With("module", "mailer"))
	}
	return mailer.NewSMTPNotifier(mailer.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.MailFrom,
	}, c.PublicURL)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then releases the storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	srv := httpapi.NewHTTPServer(app.config.ListenAddr, app.handler, app.logger)
	runErr := srv.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing storage failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
