package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/mpdash/internal/client/router"
	"github.com/dmitrijs2005/mpdash/internal/client/services"
	"github.com/dmitrijs2005/mpdash/internal/client/session"
	"github.com/dmitrijs2005/mpdash/internal/client/tokenstore"
	"github.com/dmitrijs2005/mpdash/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Deps are the collaborators an App is built from.
type Deps struct {
	Auth     services.AuthService
	Products services.ProductService
	Store    tokenstore.Store
	Identity *session.IdentityResolver
	Logger   logging.Logger

	// BaseURL is only displayed by the status command.
	BaseURL string

	In  io.Reader
	Out io.Writer
}

type App struct {
	session  *session.Controller
	auth     services.AuthService
	products services.ProductService
	logger   logging.Logger
	baseURL  string

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	location router.Resolution
	moved    bool
	mode     Mode
}

// NewApp builds the App and the session controller it navigates for.
func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Identity == nil {
		d.Identity = session.NewIdentityResolver("")
	}

	a := &App{
		auth:     d.Auth,
		products: d.Products,
		logger:   d.Logger,
		baseURL:  d.BaseURL,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}
	a.session = session.New(d.Auth, d.Store,
		session.WithNavigator(a),
		session.WithLogger(d.Logger),
		session.WithIdentityResolver(d.Identity),
	)
	a.session.Subscribe(a.onSessionChange)
	return a
}

// Session exposes the controller, mainly for the composition root.
func (a *App) Session() *session.Controller {
	return a.session
}

// Run restores a persisted session, shows the initial view and serves
// the REPL until the input ends or the user quits.
func (a *App) Run(ctx context.Context, pingInterval time.Duration) {
	a.session.Restore(ctx)
	a.Navigate(router.PathRoot)

	printlnFn("Welcome to mpdash (type 'help' for commands)")
	a.flush(ctx)

	if pingInterval > 0 {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go a.StartOnlineStatusWatcher(watchCtx, pingInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Navigate resolves path against the route table for the current
// session and remembers the result; the view is rendered by flush.
func (a *App) Navigate(path string) {
	res := router.Resolve(a.session.State().Authenticated(), path)

	a.mu.Lock()
	a.location = res
	a.moved = true
	a.mu.Unlock()

	if res.Redirected() {
		a.logger.Debug(context.Background(), "guard redirect", "from", res.From, "to", res.Route.Path)
	}
}

// enter moves to path without scheduling a render.
func (a *App) enter(path string) {
	res := router.Resolve(a.isLoggedIn(), path)

	a.mu.Lock()
	a.location = res
	a.mu.Unlock()
}

// Location returns the route currently shown.
func (a *App) Location() router.Resolution {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated()
}

// flush renders the current location if it changed since the last call.
func (a *App) flush(ctx context.Context) {
	a.mu.Lock()
	moved := a.moved
	a.moved = false
	loc := a.location
	a.mu.Unlock()

	if moved {
		a.render(ctx, loc)
	}
}

// onSessionChange re-guards the current location once a session
// operation settles without an authenticated user.
func (a *App) onSessionChange(s session.State) {
	a.logger.Debug(context.Background(), "session state", "status", s.Status().String())
	if s.Loading || s.Authenticated() {
		return
	}

	a.mu.Lock()
	protected := a.location.Route.Protected
	path := a.location.Route.Path
	a.mu.Unlock()

	if protected {
		a.Navigate(path)
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "backend connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the backend every interval and keeps
// the connectivity mode shown in the prompt up to date.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.State().User; u != nil {
		s = u.Username
	}
	if m := a.getMode(); m != ModeUnknown {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s != "" {
		s = "(" + s + ") "
	}
	return s + a.Location().Route.Path
}
