package subscription

import (
	"fmt"
	"strings"
)

type BillingCycle string

const (
	Monthly BillingCycle = "monthly"
	Yearly  BillingCycle = "yearly"
)

func (c BillingCycle) Validate() error {
	switch c {
	case Monthly, Yearly:
		return nil
	default:
		return fmt.Errorf("billing cycle must be %q or %q, got %q", Monthly, Yearly, string(c))
	}
}

func ParseBillingCycle(s string) (BillingCycle, error) {
	c := BillingCycle(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}

	return c, nil
}
