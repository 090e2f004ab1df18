package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

const (
	providerName   = "google"
	sessionCookie  = "gophdrive_oauth"
	shutdownPeriod = 2 * time.Second
)

// seams for tests
var (
	beginAuthHandler = gothic.BeginAuthHandler
	completeUserAuth = gothic.CompleteUserAuth
	listenTCP        = func(addr string) (net.Listener, error) { return net.Listen("tcp", addr) }
)

// GoogleConfig configures the Google OAuth2 sign-in.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	// CallbackAddr is the host:port of the loopback server receiving the
	// OAuth redirect. It must match the redirect URI registered with Google.
	CallbackAddr string
	// CookieSecret signs the short-lived OAuth state cookie.
	CookieSecret string
}

// GoogleProvider signs users in through Google using a loopback redirect:
// it serves /auth/google and /auth/google/callback on CallbackAddr for the
// duration of one SignIn call.
type GoogleProvider struct {
	cfg    GoogleConfig
	store  sessions.Store
	out    io.Writer
	logger logging.Logger
}

// NewGoogleProvider registers the Google provider with goth and returns a
// Provider that prints the sign-in URL to out.
func NewGoogleProvider(cfg GoogleConfig, out io.Writer, logger logging.Logger) *GoogleProvider {
	store := cookie.NewStore([]byte(cfg.CookieSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
	})
	gothic.Store = store

	goth.UseProviders(google.New(cfg.ClientID, cfg.ClientSecret, callbackURL(cfg.CallbackAddr), "email", "profile"))

	return &GoogleProvider{
		cfg:    cfg,
		store:  store,
		out:    out,
		logger: logger.With("module", "identity"),
	}
}

func callbackURL(addr string) string {
	return "http://" + addr + "/auth/" + providerName + "/callback"
}

type authResult struct {
	user goth.User
	err  error
}

// SignIn starts the loopback server, asks the user to open the sign-in URL
// and waits for the provider callback or ctx cancellation.
func (p *GoogleProvider) SignIn(ctx context.Context) (UserIdentity, error) {
	ln, err := listenTCP(p.cfg.CallbackAddr)
	if err != nil {
		return UserIdentity{}, common.Wrap(common.ErrAuth, err)
	}

	results := make(chan authResult, 1)
	srv := &http.Server{
		Handler:           newRouter(p.store, results),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error(ctx, "callback server stopped", "error", err)
		}
	}()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	loginURL := "http://" + p.cfg.CallbackAddr + "/auth/" + providerName
	fmt.Fprintf(p.out, "Open this URL in your browser to sign in:\n  %s\n", loginURL)
	p.logger.Info(ctx, "waiting for oauth callback", "addr", p.cfg.CallbackAddr)

	select {
	case <-ctx.Done():
		return UserIdentity{}, common.Wrap(common.ErrAuth, ctx.Err())
	case res := <-results:
		if res.err != nil {
			return UserIdentity{}, common.Wrap(common.ErrAuth, res.err)
		}
		u := fromGothUser(res.user)
		p.logger.Info(ctx, "signed in", "email", u.Email)
		return u, nil
	}
}

func newRouter(store sessions.Store, results chan<- authResult) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(sessionCookie, store))

	r.GET("/auth/:provider", func(c *gin.Context) {
		withProvider(c)
		beginAuthHandler(c.Writer, c.Request)
	})

	r.GET("/auth/:provider/callback", func(c *gin.Context) {
		withProvider(c)

		user, err := completeUserAuth(c.Writer, c.Request)
		deliver(results, authResult{user: user, err: err})
		if err != nil {
			c.String(http.StatusUnauthorized, "Sign-in failed: %v", err)
			return
		}
		c.String(http.StatusOK, "Signed in as %s. You can close this tab.", user.Email)
	})

	return r
}

// withProvider copies the :provider path parameter into the query, where
// gothic looks for it.
func withProvider(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()
}

// deliver hands the first callback result to SignIn; repeated callbacks
// (browser reloads) are dropped.
func deliver(results chan<- authResult, res authResult) {
	select {
	case results <- res:
	default:
	}
}

func fromGothUser(u goth.User) UserIdentity {
	name := u.Name
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return UserIdentity{
		ID:         u.UserID,
		Email:      u.Email,
		Name:       name,
		PictureURL: u.AvatarURL,
	}
}
