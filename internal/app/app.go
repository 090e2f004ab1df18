// Package app assembles the gophdrive client from its configuration:
// local database, persisted session, object store, mail and clipboard
// adapters, and the inventory, upload and share services behind the REPL.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophdrive/internal/cli"
	"github.com/dmitrijs2005/gophdrive/internal/clipboard"
	"github.com/dmitrijs2005/gophdrive/internal/config"
	"github.com/dmitrijs2005/gophdrive/internal/cryptox"
	"github.com/dmitrijs2005/gophdrive/internal/events"
	"github.com/dmitrijs2005/gophdrive/internal/identity"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/localdb"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/notify"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/share"
	"github.com/dmitrijs2005/gophdrive/internal/storage"
	"github.com/dmitrijs2005/gophdrive/internal/upload"
)

// Collaborator constructors, replaceable in tests.
var (
	newObjectStore = func(ctx context.Context, c *config.Config, logger logging.Logger) (storage.ObjectStore, error) {
		return storage.NewS3Store(ctx, storage.S3Options{
			Region:       c.S3Region,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			UsePathStyle: c.S3UsePathStyle,
		}, logger)
	}

	newIdentityProvider = func(c *config.Config, out io.Writer, logger logging.Logger) identity.Provider {
		return identity.NewGoogleProvider(identity.GoogleConfig{
			ClientID:     c.GoogleClientID,
			ClientSecret: c.GoogleClientSecret,
			CallbackAddr: c.CallbackAddr,
			CookieSecret: c.SessionSecret,
		}, out, logger)
	}

	newSender = func(c *config.Config, logger logging.Logger) notify.Sender {
		return notify.NewEmailJSClient(notify.EmailJSConfig{
			Endpoint:   c.EmailJSEndpoint,
			ServiceID:  c.EmailJSServiceID,
			TemplateID: c.EmailJSTemplateID,
			PublicKey:  c.EmailJSPublicKey,
			PrivateKey: c.EmailJSPrivateKey,
		}, logger)
	}

	newClipboard = func() share.Clipboard { return clipboard.System{} }
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	bus       *events.Bus
	inventory *inventory.Manager
	uploads   *upload.Orchestrator
	shares    *share.Orchestrator
	cli       *cli.App
}

// NewApp wires every component for c. Logs go to logOut as JSON; the REPL
// talks over in and out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, parseLevel(c.LogLevel))

	db, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	secret := []byte(c.SessionSecret)
	sessions, err := session.OpenStore(ctx, db, secret, c.SessionValidity, logger)
	cryptox.Wipe(secret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := newObjectStore(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	bus := events.NewBus()
	inv := inventory.NewManager(store, bus, inventory.Options{
		BrowseTTL:   c.BrowseURLTTL,
		Concurrency: c.RefreshConcurrency,
	}, logger)
	uploads := upload.New(store, bus, c.MaxBatchSize, logger)
	shares := share.New(store, newSender(c, logger), newClipboard(), c.ShareURLTTL, logger)

	ui := cli.NewApp(cli.Deps{
		Identity:  newIdentityProvider(c, out, logger),
		Sessions:  sessions,
		Inventory: inv,
		Uploads:   uploads,
		Shares:    shares,
		Logger:    logger,
		In:        in,
		Out:       out,
	})

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		bus:       bus,
		inventory: inv,
		uploads:   uploads,
		shares:    shares,
		cli:       ui,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves the REPL until it exits or a termination signal cancels ctx,
// then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	app.logger.Info(ctx, "Starting gophdrive...")
	app.cli.Run(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close database", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
