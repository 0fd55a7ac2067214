// Package session owns the client's authentication state: the current
// user, the loading flag and the last error message. It coordinates the
// auth endpoints with the persisted token and triggers navigation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/mpdash/internal/client/api"
	"github.com/dmitrijs2005/mpdash/internal/client/models"
	"github.com/dmitrijs2005/mpdash/internal/client/router"
	"github.com/dmitrijs2005/mpdash/internal/client/tokenstore"
	"github.com/dmitrijs2005/mpdash/internal/logging"
)

// Auth is the part of the auth service the controller drives.
type Auth interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AccessToken, error)
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

// Navigator moves the client to another location.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type subscriber struct {
	id int
	fn func(State)
}

// Controller is the single owner of session state. It is safe for
// concurrent use; every operation bumps a generation counter and a
// result is committed only while its generation is still current.
type Controller struct {
	auth     Auth
	store    tokenstore.Store
	identity *IdentityResolver
	nav      Navigator
	logger   logging.Logger

	mu     sync.Mutex
	state  State
	gen    uint64
	subs   []subscriber
	nextID int

	restoreOnce sync.Once
}

type Option func(*Controller)

func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithIdentityResolver(r *IdentityResolver) Option {
	return func(c *Controller) { c.identity = r }
}

// New returns a controller in the initial loading state.
func New(auth Auth, store tokenstore.Store, opts ...Option) *Controller {
	c := &Controller{
		auth:     auth,
		store:    store,
		identity: NewIdentityResolver(""),
		nav:      NavigatorFunc(func(string) {}),
		logger:   logging.Discard(),
		state:    State{Loading: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for every state change. Callbacks run outside
// the controller lock, in registration order.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Restore brings back a persisted session. It runs at most once; later
// calls return immediately. Failures clear the stored token and leave
// the session unauthenticated without reporting an error.
func (c *Controller) Restore(ctx context.Context) {
	c.restoreOnce.Do(func() { c.restore(ctx) })
}

func (c *Controller) restore(ctx context.Context) {
	gen := c.begin(false)

	tok, ok, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn(ctx, "stored session unreadable", "error", err)
		_ = c.commit(gen, func(s *State) error {
			c.clearStore(ctx)
			*s = State{}
			return nil
		})
		return
	}
	if !ok {
		_ = c.commit(gen, func(s *State) error {
			*s = State{}
			return nil
		})
		return
	}

	user, err := c.auth.CurrentUser(ctx, tok.UserID)
	if err != nil {
		c.logger.Warn(ctx, "session restore failed", "user_id", tok.UserID, "error", err)
		_ = c.commit(gen, func(s *State) error {
			c.clearStore(ctx)
			*s = State{}
			return nil
		})
		return
	}

	if err := c.commit(gen, func(s *State) error {
		*s = State{User: user}
		return nil
	}); err == nil {
		c.logger.Info(ctx, "session restored", "user_id", user.ID)
	}
}

// Login authenticates, persists the token with its identifier, fetches
// the user and navigates to the dashboard. On failure Err holds the
// backend detail (or DefaultLoginError) and the error is returned.
func (c *Controller) Login(ctx context.Context, creds models.Credentials) error {
	gen := c.begin(true)
	return c.login(ctx, gen, creds, DefaultLoginError)
}

// Signup creates the account and then logs in with the same
// username and password.
func (c *Controller) Signup(ctx context.Context, data models.SignupData) error {
	gen := c.begin(true)

	if _, err := c.auth.Signup(ctx, data); err != nil {
		return c.fail(ctx, gen, err, DefaultSignupError)
	}
	return c.login(ctx, gen, models.Credentials{Username: data.Username, Password: data.Password}, DefaultSignupError)
}

// Logout clears the stored token and the user, then navigates to the
// login view. Any operation still in flight is superseded. It never
// fails; store errors are logged.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	c.clearStore(ctx)
	c.state = State{}
	snap := c.state
	c.mu.Unlock()

	c.logger.Info(ctx, "logged out")
	c.publish(snap)
	c.nav.Navigate(router.PathLogin)
}

func (c *Controller) login(ctx context.Context, gen uint64, creds models.Credentials, fallback string) error {
	tok, err := c.auth.Login(ctx, creds)
	if err != nil {
		return c.fail(ctx, gen, err, fallback)
	}

	userID, err := c.identity.UserID(*tok)
	if err != nil {
		c.logger.Warn(ctx, "token subject unreadable, using id 0", "error", err)
		userID = 0
	}

	if err := c.commitStore(gen, func() error {
		return c.store.Save(ctx, tok.AccessToken, userID)
	}); err != nil {
		if errors.Is(err, ErrSuperseded) {
			return err
		}
		return c.fail(ctx, gen, fmt.Errorf("persist session: %w", err), fallback)
	}

	// The token is already saved and stays saved when the profile fetch
	// fails; Restore retries it on the next start.
	user, err := c.auth.CurrentUser(ctx, userID)
	if err != nil {
		return c.fail(ctx, gen, err, fallback)
	}

	if err := c.commit(gen, func(s *State) error {
		*s = State{User: user}
		return nil
	}); err != nil {
		return err
	}

	c.logger.Info(ctx, "logged in", "user_id", user.ID)
	c.nav.Navigate(router.PathDashboard)
	return nil
}

// fail records err in the state and returns it, unless the operation
// was superseded.
func (c *Controller) fail(ctx context.Context, gen uint64, err error, fallback string) error {
	msg := fallback
	if detail, ok := api.Detail(err); ok {
		msg = detail
	}

	if cerr := c.commit(gen, func(s *State) error {
		s.Loading = false
		s.Err = msg
		return nil
	}); cerr != nil {
		return cerr
	}

	c.logger.Warn(ctx, "session operation failed", "error", err)
	return err
}

// begin starts a new generation and switches the state to loading.
func (c *Controller) begin(clearErr bool) uint64 {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state.Loading = true
	if clearErr {
		c.state.Err = ""
	}
	snap := c.state
	c.mu.Unlock()

	c.publish(snap)
	return gen
}

// commit applies fn to the state if gen is still current.
func (c *Controller) commit(gen uint64, fn func(*State) error) error {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	err := fn(&c.state)
	snap := c.state
	c.mu.Unlock()

	c.publish(snap)
	return err
}

// commitStore runs a store write under the lock if gen is still
// current, without touching the published state.
func (c *Controller) commitStore(gen uint64, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	return fn()
}

// clearStore must be called with c.mu held.
func (c *Controller) clearStore(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error(ctx, "clear stored session", "error", err)
	}
}

func (c *Controller) publish(s State) {
	c.mu.Lock()
	subs := make([]func(State), len(c.subs))
	for i, sub := range c.subs {
		subs[i] = sub.fn
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
