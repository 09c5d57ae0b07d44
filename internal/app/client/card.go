package client

import (
	"fmt"
	"time"

	"subtracker/internal/domain/subscription"
)

// Card is what a front-end shows for one subscription.
type Card struct {
	ID               int
	AppName          string
	Category         string
	Price            subscription.Money
	BillingCycle     subscription.BillingCycle
	NextBilling      subscription.Date
	DaysUntilBilling int
	YearlyCost       subscription.Money
	Notes            string
}

func NewCard(s subscription.Subscription, now time.Time) Card {
	return Card{
		ID:               s.ID,
		AppName:          s.AppName,
		Category:         s.Category,
		Price:            s.Price,
		BillingCycle:     s.BillingCycle,
		NextBilling:      s.NextBilling,
		DaysUntilBilling: s.DaysUntilBilling(now),
		YearlyCost:       s.YearlyCost().Round(),
		Notes:            s.Notes,
	}
}

// DueLabel is "today", "in 1 day", "in 5 days" or "3 days ago".
func (c Card) DueLabel() string {
	switch d := c.DaysUntilBilling; {
	case d == 0:
		return "today"
	case d == 1:
		return "in 1 day"
	case d > 1:
		return fmt.Sprintf("in %d days", d)
	case d == -1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", -d)
	}
}

// NextBillingLabel renders the date like "Jan 15, 2025".
func (c Card) NextBillingLabel() string {
	return c.NextBilling.Time().Format("Jan 2, 2006")
}
