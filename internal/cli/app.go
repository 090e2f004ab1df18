package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/identity"
	"github.com/dmitrijs2005/gophdrive/internal/inventory"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/session"
	"github.com/dmitrijs2005/gophdrive/internal/share"
	"github.com/dmitrijs2005/gophdrive/internal/upload"
	"golang.org/x/term"
)

const defaultWidth = 80

// Terminal probes, replaceable in tests.
var (
	isTerminal = term.IsTerminal
	getSize    = term.GetSize
)

// SessionStore persists the signed-in session between runs.
type SessionStore interface {
	Save(ctx context.Context, sess *session.Session) error
	Restore(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// Deps are the collaborators an App drives.
type Deps struct {
	Identity  identity.Provider
	Sessions  SessionStore
	Inventory *inventory.Manager
	Uploads   *upload.Orchestrator
	Shares    *share.Orchestrator
	Logger    logging.Logger

	In  io.Reader
	Out io.Writer
}

// lockedWriter serialises writes from the REPL and the inventory watcher.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// App is the interactive client. Commands run on the REPL goroutine; only
// the inventory watcher runs beside it.
type App struct {
	identity  identity.Provider
	sessions  SessionStore
	inventory *inventory.Manager
	uploads   *upload.Orchestrator
	shares    *share.Orchestrator
	logger    logging.Logger

	scanner *bufio.Scanner
	out     io.Writer
	tty     bool
	width   int

	sess      *session.Session
	stopWatch context.CancelFunc
	watchDone chan struct{}

	link     *share.Link
	linkName string
}

// NewApp builds an App over d. Nil In/Out default to the process stdio.
func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	a := &App{
		identity:  d.Identity,
		sessions:  d.Sessions,
		inventory: d.Inventory,
		uploads:   d.Uploads,
		shares:    d.Shares,
		logger:    d.Logger.With("module", "cli"),
		scanner:   bufio.NewScanner(in),
		out:       &lockedWriter{w: out},
		width:     defaultWidth,
	}

	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		a.tty = isTerminal(fd)
		if w, _, err := getSize(fd); err == nil && w > 0 {
			a.width = w
		}
	}

	return a
}

// Run restores a saved session if there is one and serves commands until
// the input ends or the user exits. The session is kept for the next run.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "gophdrive (type 'help' for commands)")

	a.restore(ctx)
	defer a.stopWatching()

	runREPL(ctx, a, a.status, a.scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sess.Active()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	return "(" + a.sess.Identity.DisplayName() + ")"
}

func (a *App) restore(ctx context.Context) {
	sess, err := a.sessions.Restore(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNoSession) {
			a.logger.Warn(ctx, "restore session", "error", err)
		}
		return
	}

	a.begin(ctx, sess)
	fmt.Fprintf(a.out, "Welcome back, %s\n", sess.Identity.DisplayName())
}

// begin binds sess and starts the inventory watcher for it.
func (a *App) begin(ctx context.Context, sess *session.Session) {
	a.stopWatching()

	a.sess = sess
	a.link, a.linkName = nil, ""
	a.inventory.Bind(sess)

	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.stopWatch, a.watchDone = cancel, done

	go func() {
		defer close(done)
		a.inventory.Watch(wctx, sess, a.onRefresh)
	}()

	a.logger.Info(ctx, "session started", "session", sess.ID.String(), "namespace", sess.Namespace)
}

func (a *App) stopWatching() {
	if a.stopWatch == nil {
		return
	}
	a.stopWatch()
	<-a.watchDone
	a.stopWatch, a.watchDone = nil, nil
}

// onRefresh reports background refreshes triggered by uploads and deletes.
func (a *App) onRefresh(inv inventory.Inventory, err error) {
	if err != nil {
		if !errors.Is(err, common.ErrNoSession) {
			fmt.Fprintln(a.out, "\n(file list could not be refreshed:", err.Error()+")")
		}
		return
	}
	fmt.Fprintf(a.out, "\n(file list updated: %d file(s))\n", inv.Len())
}

// report renders the outcome of a command and returns err unchanged.
func (a *App) report(err error, okMsg string) error {
	renderOutcome(a.out, common.OutcomeOf(err, okMsg))
	return err
}
