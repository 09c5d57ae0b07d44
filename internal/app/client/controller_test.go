package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subtracker/internal/app/client/localstore"
	"subtracker/internal/domain/subscription"
	"subtracker/internal/utils/logger"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) SetToken(token string) {
	m.Called(token)
}

func (m *MockAPI) Register(ctx context.Context, email, password, name string) (Session, error) {
	args := m.Called(ctx, email, password, name)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockAPI) List(ctx context.Context) ([]subscription.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockAPI) Create(ctx context.Context, req subscription.Request) (subscription.Subscription, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(subscription.Subscription), args.Error(1)
}

func (m *MockAPI) Update(ctx context.Context, id int, req subscription.Request) (subscription.Subscription, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(subscription.Subscription), args.Error(1)
}

func (m *MockAPI) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) Stats(ctx context.Context) (subscription.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(subscription.Stats), args.Error(1)
}

type stubPrompter struct {
	answer bool
	asked  int
}

func (p *stubPrompter) Confirm(string) bool {
	p.asked++
	return p.answer
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("quota exceeded") }
func (brokenStore) Set(string, string) error         { return errors.New("quota exceeded") }
func (brokenStore) Delete(string) error              { return errors.New("quota exceeded") }

func ptr[T any](v T) *T {
	return &v
}

func netflixFields() subscription.Fields {
	return subscription.Fields{
		AppName:      ptr("Netflix"),
		Category:     ptr("entertainment"),
		Price:        ptr(subscription.MustMoney("15.49")),
		BillingCycle: ptr(subscription.Monthly),
		NextBilling:  ptr(subscription.MustDate("2025-01-01")),
	}
}

func remoteSub(id int, price string) subscription.Subscription {
	return subscription.Subscription{
		ID:           id,
		UserID:       1,
		AppName:      "Netflix",
		Category:     "entertainment",
		Price:        subscription.MustMoney(price),
		BillingCycle: subscription.Monthly,
		NextBilling:  subscription.MustDate("2025-01-01"),
		CreatedAt:    time.Now(),
	}
}

func TestController_Login(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	store := localstore.NewMemory()
	c := NewController(api, store, nil, logger.Discard())

	api.On("Login", ctx, "a@x.com", "secret1").
		Return(Session{Token: "tok", User: Profile{ID: 1, Email: "a@x.com"}}, nil)
	api.On("SetToken", "tok").Return()
	api.On("List", ctx).Return([]subscription.Subscription{remoteSub(1, "15.49")}, nil)

	require.NoError(t, c.Login(ctx, "a@x.com", "secret1"))

	assert.Equal(t, StateRemote, c.State())
	profile, ok := c.Profile()
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", profile.Email)
	assert.Len(t, c.Subscriptions(), 1)

	token, ok, _ := store.Get(localstore.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
	api.AssertExpectations(t)
}

func TestController_LoginFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	c := NewController(api, localstore.NewMemory(), nil, logger.Discard())

	api.On("Login", ctx, "a@x.com", "bad").
		Return(Session{}, &APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"})

	err := c.Login(ctx, "a@x.com", "bad")

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", UserMessage(err))
	assert.Equal(t, StateUnauthenticated, c.State())
}

func TestController_RemoteMutationsReload(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	store := localstore.NewMemory()
	require.NoError(t, store.Set(localstore.KeyToken, "tok"))
	c := NewController(api, store, nil, logger.Discard())

	api.On("SetToken", "tok").Return()
	api.On("List", ctx).Return([]subscription.Subscription{}, nil).Once()
	require.NoError(t, c.Restore(ctx))
	assert.Equal(t, StateRemote, c.State())

	api.On("Create", ctx, mock.MatchedBy(func(r subscription.Request) bool {
		return *r.AppName == "Netflix" && r.Price.Equal(subscription.MustMoney("15.49"))
	})).Return(remoteSub(1, "15.49"), nil)
	api.On("List", ctx).Return([]subscription.Subscription{remoteSub(1, "15.49")}, nil).Once()
	require.NoError(t, c.Add(ctx, netflixFields()))
	assert.Len(t, c.Subscriptions(), 1)

	api.On("Update", ctx, 1, mock.Anything).Return(remoteSub(1, "17.99"), nil)
	api.On("List", ctx).Return([]subscription.Subscription{remoteSub(1, "17.99")}, nil).Once()
	require.NoError(t, c.Update(ctx, 1, subscription.Fields{Price: ptr(subscription.MustMoney("17.99"))}))
	s, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, "17.99", s.Price.Format())

	api.On("Delete", ctx, 1).Return(nil)
	api.On("List", ctx).Return([]subscription.Subscription{}, nil).Once()
	require.NoError(t, c.Delete(ctx, 1))
	assert.Empty(t, c.Subscriptions())

	api.AssertExpectations(t)
}

func TestController_AuthFailureForcesLogout(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ctx := context.Background()
			api := new(MockAPI)
			store := localstore.NewMemory()
			require.NoError(t, store.Set(localstore.KeyToken, "tok"))
			require.NoError(t, store.Set(localstore.KeyUser, `{"id":1,"email":"a@x.com"}`))
			c := NewController(api, store, nil, logger.Discard())

			api.On("SetToken", "tok").Return()
			api.On("SetToken", "").Return()
			api.On("List", ctx).Return(nil, &APIError{Status: status, Message: "Invalid or expired token"})

			err := c.Restore(ctx)

			require.ErrorIs(t, err, ErrSessionExpired)
			assert.Equal(t, StateUnauthenticated, c.State())
			_, ok, _ := store.Get(localstore.KeyToken)
			assert.False(t, ok, "token must be cleared")
			_, ok, _ = store.Get(localstore.KeyUser)
			assert.False(t, ok)
		})
	}
}

func TestController_NetworkFailureOffersGuest(t *testing.T) {
	tests := []struct {
		name      string
		answer    bool
		wantState State
		wantErr   error
	}{
		{name: "accepted", answer: true, wantState: StateGuest},
		{name: "declined", answer: false, wantState: StateRemote, wantErr: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			api := new(MockAPI)
			store := localstore.NewMemory()
			require.NoError(t, store.Set(localstore.KeyToken, "tok"))
			prompter := &stubPrompter{answer: tt.answer}
			c := NewController(api, store, prompter, logger.Discard())

			api.On("SetToken", mock.Anything).Return()
			api.On("List", ctx).Return(nil, fmt.Errorf("%w: connection refused", ErrNetwork))

			err := c.Restore(ctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, prompter.asked)
			assert.Equal(t, tt.wantState, c.State())
			api.AssertNumberOfCalls(t, "List", 1)
		})
	}
}

func TestController_GuestNeverCallsAPI(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	api.On("SetToken", "").Return()
	store := localstore.NewMemory()
	c := NewController(api, store, nil, logger.Discard())

	require.NoError(t, c.EnterGuest(ctx))
	require.NoError(t, c.Add(ctx, netflixFields()))

	second := netflixFields()
	second.AppName = ptr("Spotify")
	second.Price = ptr(subscription.MustMoney("9.99"))
	require.NoError(t, c.Add(ctx, second))

	require.NoError(t, c.Update(ctx, 1, subscription.Fields{Notes: ptr("family plan")}))
	require.NoError(t, c.Delete(ctx, 2))
	assert.ErrorIs(t, c.Delete(ctx, 42), subscription.ErrNotFound)

	// a new controller over the same store sees the same data
	reloaded := NewController(api, store, nil, logger.Discard())
	require.NoError(t, reloaded.Restore(ctx))

	assert.Equal(t, StateGuest, reloaded.State())
	list := reloaded.Subscriptions()
	require.Len(t, list, 1)
	assert.Equal(t, "Netflix", list[0].AppName)
	assert.Equal(t, "family plan", list[0].Notes)
	assert.Equal(t, "15.49", list[0].Price.Format())

	api.AssertNotCalled(t, "List", mock.Anything)
	api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_GuestValidation(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	api.On("SetToken", "").Return()
	c := NewController(api, localstore.NewMemory(), nil, logger.Discard())
	require.NoError(t, c.EnterGuest(ctx))

	err := c.Add(ctx, subscription.Fields{AppName: ptr("Netflix")})

	require.ErrorIs(t, err, subscription.ErrInvalidInput)
	assert.Equal(t, "missing required fields: category, price, billingCycle, nextBilling", UserMessage(err))
	assert.Empty(t, c.Subscriptions())
}

func TestController_GuestReadsServerSpelling(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	store := localstore.NewMemory()
	require.NoError(t, store.Set(localstore.KeyGuestMode, "true"))
	require.NoError(t, store.Set(localstore.KeySubscriptions, `[
		{"id":"1700000000000","app_name":"Netflix","category":"entertainment","price":15.49,"billing_cycle":"monthly","next_billing":"2025-01-01"},
		{"id":"abc","appName":"Domain","category":"web","price":"12","billingCycle":"yearly","nextBilling":"2025-06-01","notes":"renew"}
	]`))
	c := NewController(api, store, nil, logger.Discard())

	require.NoError(t, c.Restore(ctx))

	list := c.Subscriptions()
	require.Len(t, list, 2)
	assert.Equal(t, "Netflix", list[0].AppName)
	assert.Equal(t, subscription.Monthly, list[0].BillingCycle)
	assert.Equal(t, 1700000000000, list[0].ID)
	assert.Equal(t, 1700000000001, list[1].ID)
	assert.Equal(t, "renew", list[1].Notes)

	st := c.Stats()
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, "16.49", st.MonthlyTotal.Format())
	assert.Equal(t, "197.88", st.YearlyTotal.Format())
}

func TestController_LocalStorageFailure(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	c := NewController(api, brokenStore{}, nil, logger.Discard())

	err := c.Restore(ctx)
	require.ErrorIs(t, err, ErrLocalStorage)

	err = c.EnterGuest(ctx)
	require.ErrorIs(t, err, ErrLocalStorage)
	assert.Equal(t, "Local storage is unavailable or full.", UserMessage(err))
}

func TestController_Logout(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	api.On("SetToken", "").Return()
	store := localstore.NewMemory()
	c := NewController(api, store, nil, logger.Discard())

	require.NoError(t, c.EnterGuest(ctx))
	require.NoError(t, c.Add(ctx, netflixFields()))
	require.NoError(t, c.Logout())

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.ErrorIs(t, c.Load(ctx), ErrNotAuthenticated)
	assert.ErrorIs(t, c.Add(ctx, netflixFields()), ErrNotAuthenticated)

	raw, ok, _ := store.Get(localstore.KeySubscriptions)
	assert.True(t, ok, "guest list survives logout")
	assert.Contains(t, raw, `"appName":"Netflix"`)
}

func signedIn(t *testing.T, ctx context.Context, api *MockAPI, store LocalStore) *Controller {
	t.Helper()

	api.On("Login", ctx, "a@x.com", "secret1").
		Return(Session{Token: "tok", User: Profile{ID: 1, Email: "a@x.com"}}, nil)
	api.On("SetToken", "tok").Return()
	api.On("List", ctx).Return([]subscription.Subscription{remoteSub(1, "15.49")}, nil)

	c := NewController(api, store, nil, logger.Discard())
	require.NoError(t, c.Login(ctx, "a@x.com", "secret1"))

	return c
}

func TestController_TotalsRemote(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	c := signedIn(t, ctx, api, localstore.NewMemory())

	want := subscription.Stats{
		Count:        1,
		MonthlyTotal: subscription.MustMoney("15.49"),
		YearlyTotal:  subscription.MustMoney("185.88"),
	}
	api.On("Stats", ctx).Return(want, nil).Once()

	st, err := c.Totals(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, st)
	api.AssertExpectations(t)
}

func TestController_TotalsRemoteRejectedToken(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	store := localstore.NewMemory()
	c := signedIn(t, ctx, api, store)

	api.On("Stats", ctx).Return(subscription.Stats{}, &APIError{Status: http.StatusForbidden, Message: "Invalid or expired token"})
	api.On("SetToken", "").Return()

	_, err := c.Totals(ctx)

	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, StateUnauthenticated, c.State())
	_, ok, _ := store.Get(localstore.KeyToken)
	assert.False(t, ok)
}

func TestController_TotalsGuestStaysLocal(t *testing.T) {
	ctx := context.Background()
	api := new(MockAPI)
	api.On("SetToken", "").Return()
	c := NewController(api, localstore.NewMemory(), nil, logger.Discard())
	require.NoError(t, c.EnterGuest(ctx))
	require.NoError(t, c.Add(ctx, netflixFields()))

	st, err := c.Totals(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, "185.88", st.YearlyTotal.Format())
	api.AssertNotCalled(t, "Stats", mock.Anything)
}

func TestController_TotalsSignedOut(t *testing.T) {
	c := NewController(new(MockAPI), localstore.NewMemory(), nil, logger.Discard())

	_, err := c.Totals(context.Background())

	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
