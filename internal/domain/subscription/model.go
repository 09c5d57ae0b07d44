package subscription

import (
	"sort"
	"strings"
	"time"
)

type Subscription struct {
	ID           int
	UserID       int
	AppName      string
	Category     string
	Price        Money
	BillingCycle BillingCycle
	NextBilling  Date
	Notes        string
	CreatedAt    time.Time
}

// YearlyCost is what the subscription costs over a year.
func (s Subscription) YearlyCost() Money {
	if s.BillingCycle == Monthly {
		return s.Price.Mul(12)
	}

	return s.Price
}

// MonthlyCost spreads a yearly price evenly over twelve months.
func (s Subscription) MonthlyCost() Money {
	if s.BillingCycle == Yearly {
		return s.Price.Div(12)
	}

	return s.Price
}

func (s Subscription) DaysUntilBilling(now time.Time) int {
	return s.NextBilling.DaysUntil(now)
}

// Fields carries attributes for create and partial update. A nil field was not provided.
type Fields struct {
	AppName      *string
	Category     *string
	Price        *Money
	BillingCycle *BillingCycle
	NextBilling  *Date
	Notes        *string
}

// Missing names the attributes a new subscription cannot be created without.
func (f Fields) Missing() []string {
	var missing []string
	if f.AppName == nil || strings.TrimSpace(*f.AppName) == "" {
		missing = append(missing, "appName")
	}
	if f.Category == nil || strings.TrimSpace(*f.Category) == "" {
		missing = append(missing, "category")
	}
	if f.Price == nil {
		missing = append(missing, "price")
	}
	if f.BillingCycle == nil || *f.BillingCycle == "" {
		missing = append(missing, "billingCycle")
	}
	if f.NextBilling == nil || f.NextBilling.IsZero() {
		missing = append(missing, "nextBilling")
	}

	return missing
}

// Validate checks only the attributes that are present.
func (f Fields) Validate() error {
	if f.AppName != nil && strings.TrimSpace(*f.AppName) == "" {
		return errorf("appName must not be empty")
	}
	if f.Category != nil && strings.TrimSpace(*f.Category) == "" {
		return errorf("category must not be empty")
	}
	if f.Price != nil && f.Price.IsNegative() {
		return errorf("price must not be negative")
	}
	if f.Price != nil && !f.Price.HasCentsPrecision() {
		return errorf("price must have at most two decimal places")
	}
	if f.BillingCycle != nil {
		if err := f.BillingCycle.Validate(); err != nil {
			return errorf("%v", err)
		}
	}
	if f.NextBilling != nil && f.NextBilling.IsZero() {
		return errorf("nextBilling must be a date")
	}

	return nil
}

func (f Fields) IsEmpty() bool {
	return f.AppName == nil && f.Category == nil && f.Price == nil &&
		f.BillingCycle == nil && f.NextBilling == nil && f.Notes == nil
}

// ApplyTo merges the provided attributes into s and leaves the rest untouched.
func (f Fields) ApplyTo(s *Subscription) {
	if f.AppName != nil {
		s.AppName = strings.TrimSpace(*f.AppName)
	}
	if f.Category != nil {
		s.Category = strings.TrimSpace(*f.Category)
	}
	if f.Price != nil {
		s.Price = *f.Price
	}
	if f.BillingCycle != nil {
		s.BillingCycle = *f.BillingCycle
	}
	if f.NextBilling != nil {
		s.NextBilling = *f.NextBilling
	}
	if f.Notes != nil {
		s.Notes = *f.Notes
	}
}

// SortNewestFirst orders by creation time, newest first. Equal timestamps fall back to the higher id.
func SortNewestFirst(list []Subscription) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
