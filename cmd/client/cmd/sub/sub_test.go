package sub

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtracker/internal/app/client"
	"subtracker/internal/domain/subscription"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return func(name string) bool { return set[name] }
}

func TestFieldFlags_OnlyChangedAreSet(t *testing.T) {
	f := fieldFlags{price: "$17.99", notes: "", appName: "ignored"}

	got, err := f.fields(changedSet("price", "notes"))
	require.NoError(t, err)

	assert.Nil(t, got.AppName)
	assert.Nil(t, got.BillingCycle)
	require.NotNil(t, got.Price)
	assert.Equal(t, "17.99", got.Price.Format())
	require.NotNil(t, got.Notes)
	assert.Equal(t, "", *got.Notes)
}

func TestFieldFlags_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags fieldFlags
		flag  string
	}{
		{name: "price", flags: fieldFlags{price: "cheap"}, flag: "price"},
		{name: "cycle", flags: fieldFlags{cycle: "weekly"}, flag: "cycle"},
		{name: "date", flags: fieldFlags{nextBilling: "15.01.2025"}, flag: "next"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.fields(changedSet(tt.flag))
			assert.ErrorIs(t, err, subscription.ErrInvalidInput)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"abc", "0", "-3"} {
		_, err := parseID(raw)
		assert.ErrorIs(t, err, subscription.ErrInvalidInput, raw)
	}
}

func TestRender(t *testing.T) {
	color.NoColor = true
	now := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)

	s := subscription.Subscription{
		ID:           1,
		AppName:      "Netflix",
		Category:     "entertainment",
		Price:        subscription.MustMoney("15.49"),
		BillingCycle: subscription.Monthly,
		NextBilling:  subscription.MustDate("2025-01-15"),
		Notes:        "family plan",
	}

	var buf bytes.Buffer
	renderCards(&buf, []client.Card{client.NewCard(s, now)})
	renderStats(&buf, subscription.Summarize([]subscription.Subscription{s}))

	out := buf.String()
	assert.Contains(t, out, "#1 Netflix [entertainment]")
	assert.Contains(t, out, "$15.49 / monthly")
	assert.Contains(t, out, "next Jan 15, 2025 (in 3 days)")
	assert.Contains(t, out, "$185.88 / year")
	assert.Contains(t, out, "family plan")
	assert.Contains(t, out, "Monthly total: $15.49")
	assert.Contains(t, out, "Yearly total:  $185.88")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderCards(&buf, nil)

	assert.Contains(t, buf.String(), "No subscriptions yet")
}
