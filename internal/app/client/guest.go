package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"subtracker/internal/app/client/localstore"
	"subtracker/internal/domain/subscription"
)

// guestRecord is one entry of the guest cache. It is written in camelCase; on read the snake_case
// server spelling is accepted as well, and ids may be numbers or numeric strings.
type guestRecord struct {
	ID           int                       `json:"id"`
	AppName      string                    `json:"appName"`
	Category     string                    `json:"category"`
	Price        subscription.Money        `json:"price"`
	BillingCycle subscription.BillingCycle `json:"billingCycle"`
	NextBilling  string                    `json:"nextBilling"`
	Notes        string                    `json:"notes,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
}

type looseRecord struct {
	ID               json.RawMessage     `json:"id"`
	AppName          string              `json:"appName"`
	AppNameSnake     string              `json:"app_name"`
	Category         string              `json:"category"`
	Price            *subscription.Money `json:"price"`
	BillingCycle     string              `json:"billingCycle"`
	BillingSnake     string              `json:"billing_cycle"`
	NextBilling      string              `json:"nextBilling"`
	NextBillingSnake string              `json:"next_billing"`
	Notes            *string             `json:"notes"`
	CreatedAt        *time.Time          `json:"createdAt"`
	CreatedAtSnake   *time.Time          `json:"created_at"`
}

func (g *guestRecord) UnmarshalJSON(data []byte) error {
	var l looseRecord
	if err := json.Unmarshal(data, &l); err != nil {
		return err
	}

	*g = guestRecord{
		ID:           parseID(l.ID),
		AppName:      firstNonEmpty(l.AppName, l.AppNameSnake),
		Category:     l.Category,
		BillingCycle: subscription.BillingCycle(firstNonEmpty(l.BillingCycle, l.BillingSnake)),
		NextBilling:  firstNonEmpty(l.NextBilling, l.NextBillingSnake),
	}
	if l.Price != nil {
		g.Price = *l.Price
	}
	if l.Notes != nil {
		g.Notes = *l.Notes
	}
	switch {
	case l.CreatedAt != nil:
		g.CreatedAt = *l.CreatedAt
	case l.CreatedAtSnake != nil:
		g.CreatedAt = *l.CreatedAtSnake
	}

	return nil
}

func parseID(raw json.RawMessage) int {
	raw = bytes.Trim(bytes.TrimSpace(raw), `"`)
	id, err := strconv.Atoi(string(raw))
	if err != nil || id < 0 {
		return 0
	}

	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func (g guestRecord) model() subscription.Subscription {
	next, _ := subscription.ParseDate(g.NextBilling)

	return subscription.Subscription{
		ID:           g.ID,
		AppName:      g.AppName,
		Category:     g.Category,
		Price:        g.Price,
		BillingCycle: g.BillingCycle,
		NextBilling:  next,
		Notes:        g.Notes,
		CreatedAt:    g.CreatedAt,
	}
}

func newGuestRecord(s subscription.Subscription) guestRecord {
	return guestRecord{
		ID:           s.ID,
		AppName:      s.AppName,
		Category:     s.Category,
		Price:        s.Price,
		BillingCycle: s.BillingCycle,
		NextBilling:  s.NextBilling.String(),
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
}

// guestCache reads and writes the guest list under one local store key.
type guestCache struct {
	store LocalStore
}

func (c guestCache) load() ([]subscription.Subscription, error) {
	raw, ok, err := c.store.Get(localstore.KeySubscriptions)
	if err != nil {
		return nil, localStorageErr(err)
	}
	if !ok || raw == "" {
		return []subscription.Subscription{}, nil
	}

	var records []guestRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: guest list is unreadable: %v", ErrLocalStorage, err)
	}

	list := make([]subscription.Subscription, 0, len(records))
	next := nextGuestID(records)
	for _, r := range records {
		if r.ID == 0 {
			r.ID = next
			next++
		}
		list = append(list, r.model())
	}

	return list, nil
}

func (c guestCache) save(list []subscription.Subscription) error {
	records := make([]guestRecord, 0, len(list))
	for _, s := range list {
		records = append(records, newGuestRecord(s))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode guest list: %w", err)
	}
	if err := c.store.Set(localstore.KeySubscriptions, string(data)); err != nil {
		return localStorageErr(err)
	}

	return nil
}

func nextGuestID(records []guestRecord) int {
	maxID := 0
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	return maxID + 1
}
