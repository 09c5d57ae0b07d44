package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"subtracker/internal/app/client/localstore"
	"subtracker/internal/domain/subscription"
)

type State int

const (
	StateUnauthenticated State = iota
	StateRemote
	StateGuest
)

func (s State) String() string {
	switch s {
	case StateRemote:
		return "remote"
	case StateGuest:
		return "guest"
	default:
		return "unauthenticated"
	}
}

// Profile is the cached identity of the signed-in user.
type Profile struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Session struct {
	Token string
	User  Profile
}

// API is the server as the controller sees it.
type API interface {
	SetToken(token string)
	Register(ctx context.Context, email, password, name string) (Session, error)
	Login(ctx context.Context, email, password string) (Session, error)
	List(ctx context.Context) ([]subscription.Subscription, error)
	Create(ctx context.Context, req subscription.Request) (subscription.Subscription, error)
	Update(ctx context.Context, id int, req subscription.Request) (subscription.Subscription, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (subscription.Stats, error)
}

// LocalStore is the client's persistent key/value state.
type LocalStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) bool
}

const guestFallbackQuestion = "Cannot reach the server. Continue in guest mode? Guest data stays on this device only."

// Controller owns the client state machine and mediates every data operation.
type Controller struct {
	api      API
	store    LocalStore
	guest    guestCache
	prompter Prompter
	now      func() time.Time
	log      *slog.Logger

	mu      sync.RWMutex
	state   State
	profile Profile
	list    []subscription.Subscription
}

// NewController wires the controller. prompter may be nil, in which case guest fallback is never offered
// and Load reports ErrNetwork to the caller instead.
func NewController(api API, store LocalStore, prompter Prompter, log *slog.Logger) *Controller {
	return &Controller{
		api:      api,
		store:    store,
		guest:    guestCache{store: store},
		prompter: prompter,
		now:      time.Now,
		log:      log.With("component", "controller"),
		list:     []subscription.Subscription{},
	}
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

func (c *Controller) Profile() (Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.profile, c.state == StateRemote
}

// Subscriptions returns a copy of the current list.
func (c *Controller) Subscriptions() []subscription.Subscription {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]subscription.Subscription, len(c.list))
	copy(out, c.list)

	return out
}

func (c *Controller) Find(id int) (subscription.Subscription, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.list {
		if s.ID == id {
			return s, true
		}
	}

	return subscription.Subscription{}, false
}

// Restore picks the starting state from what was persisted and loads the list when signed in.
func (c *Controller) Restore(ctx context.Context) error {
	guestMode, _, err := c.store.Get(localstore.KeyGuestMode)
	if err != nil {
		return localStorageErr(err)
	}
	if guestMode == "true" {
		c.setState(StateGuest, Profile{})
		return c.Load(ctx)
	}

	token, ok, err := c.store.Get(localstore.KeyToken)
	if err != nil {
		return localStorageErr(err)
	}
	if !ok || token == "" {
		c.setState(StateUnauthenticated, Profile{})
		return nil
	}

	var profile Profile
	if raw, ok, err := c.store.Get(localstore.KeyUser); err == nil && ok {
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			c.log.Warn("cached profile is unreadable", "error", err)
		}
	}

	c.api.SetToken(token)
	c.setState(StateRemote, profile)

	return c.Load(ctx)
}

func (c *Controller) Register(ctx context.Context, email, password, name string) error {
	s, err := c.api.Register(ctx, email, password, name)
	if err != nil {
		return err
	}

	return c.signIn(ctx, s)
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	s, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	return c.signIn(ctx, s)
}

func (c *Controller) signIn(ctx context.Context, s Session) error {
	profile, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := c.store.Set(localstore.KeyToken, s.Token); err != nil {
		return localStorageErr(err)
	}
	if err := c.store.Set(localstore.KeyUser, string(profile)); err != nil {
		return localStorageErr(err)
	}
	if err := c.store.Delete(localstore.KeyGuestMode); err != nil {
		return localStorageErr(err)
	}

	c.api.SetToken(s.Token)
	c.setState(StateRemote, s.User)
	c.log.Debug("signed in", "user_id", s.User.ID)

	return c.Load(ctx)
}

// EnterGuest switches to local-only mode. It never touches the network.
func (c *Controller) EnterGuest(ctx context.Context) error {
	if err := c.store.Set(localstore.KeyGuestMode, "true"); err != nil {
		return localStorageErr(err)
	}

	c.api.SetToken("")
	c.setState(StateGuest, Profile{})

	return c.Load(ctx)
}

// Logout forgets the token, profile and guest flag. The guest list itself is kept.
func (c *Controller) Logout() error {
	c.api.SetToken("")
	c.setState(StateUnauthenticated, Profile{})
	c.setList([]subscription.Subscription{})

	var errs []error
	for _, key := range []string{localstore.KeyToken, localstore.KeyUser, localstore.KeyGuestMode} {
		if err := c.store.Delete(key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return localStorageErr(errors.Join(errs...))
	}

	return nil
}

func (c *Controller) Load(ctx context.Context) error {
	switch c.State() {
	case StateGuest:
		list, err := c.guest.load()
		if err != nil {
			return err
		}
		c.setList(list)
		return nil
	case StateRemote:
		list, err := c.api.List(ctx)
		if err != nil {
			return c.remoteLoadFailed(ctx, err)
		}
		c.setList(list)
		return nil
	default:
		return ErrNotAuthenticated
	}
}

func (c *Controller) remoteLoadFailed(ctx context.Context, err error) error {
	if errors.Is(err, ErrNetwork) {
		c.log.Warn("server unreachable", "error", err)
		if c.prompter != nil && c.prompter.Confirm(guestFallbackQuestion) {
			return c.EnterGuest(ctx)
		}
		return err
	}

	return c.checkSession(err)
}

// checkSession forces a logout when the server rejected the token.
func (c *Controller) checkSession(err error) error {
	if !IsAuthFailure(err) {
		return err
	}

	c.log.Info("session rejected by server, logging out", "error", err)
	if lerr := c.Logout(); lerr != nil {
		c.log.Warn("clear session", "error", lerr)
	}

	return fmt.Errorf("%w: %v", ErrSessionExpired, err)
}

func (c *Controller) Add(ctx context.Context, f subscription.Fields) error {
	switch c.State() {
	case StateGuest:
		if missing := f.Missing(); len(missing) > 0 {
			return fmt.Errorf("%w: missing required fields: %s", subscription.ErrInvalidInput, strings.Join(missing, ", "))
		}
		if err := f.Validate(); err != nil {
			return err
		}
		return c.mutateGuest(func(list []subscription.Subscription) ([]subscription.Subscription, error) {
			s := subscription.Subscription{ID: nextID(list), CreatedAt: c.now().UTC()}
			f.ApplyTo(&s)
			return append(list, s), nil
		})
	case StateRemote:
		if _, err := c.api.Create(ctx, requestFrom(f)); err != nil {
			return c.checkSession(err)
		}
		return c.Load(ctx)
	default:
		return ErrNotAuthenticated
	}
}

func (c *Controller) Update(ctx context.Context, id int, f subscription.Fields) error {
	switch c.State() {
	case StateGuest:
		if err := f.Validate(); err != nil {
			return err
		}
		return c.mutateGuest(func(list []subscription.Subscription) ([]subscription.Subscription, error) {
			for i := range list {
				if list[i].ID == id {
					f.ApplyTo(&list[i])
					return list, nil
				}
			}
			return nil, subscription.ErrNotFound
		})
	case StateRemote:
		if _, err := c.api.Update(ctx, id, requestFrom(f)); err != nil {
			return c.checkSession(err)
		}
		return c.Load(ctx)
	default:
		return ErrNotAuthenticated
	}
}

func (c *Controller) Delete(ctx context.Context, id int) error {
	switch c.State() {
	case StateGuest:
		return c.mutateGuest(func(list []subscription.Subscription) ([]subscription.Subscription, error) {
			for i := range list {
				if list[i].ID == id {
					return append(list[:i], list[i+1:]...), nil
				}
			}
			return nil, subscription.ErrNotFound
		})
	case StateRemote:
		if err := c.api.Delete(ctx, id); err != nil {
			return c.checkSession(err)
		}
		return c.Load(ctx)
	default:
		return ErrNotAuthenticated
	}
}

// mutateGuest reads the cache, applies fn and writes the result back before updating the view.
func (c *Controller) mutateGuest(fn func([]subscription.Subscription) ([]subscription.Subscription, error)) error {
	list, err := c.guest.load()
	if err != nil {
		return err
	}

	list, err = fn(list)
	if err != nil {
		return err
	}

	if err := c.guest.save(list); err != nil {
		return err
	}
	c.setList(list)

	return nil
}

func (c *Controller) Cards(now time.Time) []Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cards := make([]Card, 0, len(c.list))
	for _, s := range c.list {
		cards = append(cards, NewCard(s, now))
	}

	return cards
}

func (c *Controller) Stats() subscription.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return subscription.Summarize(c.list)
}

// Totals reports the totals for the current mode. Signed in, the server computes them; a guest's come
// from the local cache.
func (c *Controller) Totals(ctx context.Context) (subscription.Stats, error) {
	switch c.State() {
	case StateGuest:
		list, err := c.guest.load()
		if err != nil {
			return subscription.Stats{}, err
		}
		return subscription.Summarize(list), nil
	case StateRemote:
		st, err := c.api.Stats(ctx)
		if err != nil {
			return subscription.Stats{}, c.checkSession(err)
		}
		return st, nil
	default:
		return subscription.Stats{}, ErrNotAuthenticated
	}
}

func (c *Controller) setState(state State, profile Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = state
	c.profile = profile
}

func (c *Controller) setList(list []subscription.Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = list
}

func requestFrom(f subscription.Fields) subscription.Request {
	return subscription.Request{
		AppName:      f.AppName,
		Category:     f.Category,
		Price:        f.Price,
		BillingCycle: f.BillingCycle,
		NextBilling:  f.NextBilling,
		Notes:        f.Notes,
	}
}

func nextID(list []subscription.Subscription) int {
	maxID := 0
	for _, s := range list {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	return maxID + 1
}
