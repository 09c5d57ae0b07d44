package sub

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subtracker/internal/domain/subscription"
)

// fieldFlags are the subscription attributes as typed on the command line.
type fieldFlags struct {
	appName     string
	category    string
	price       string
	cycle       string
	nextBilling string
	notes       string
}

func (f *fieldFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.appName, "name", "n", "", "app or service name")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category, e.g. entertainment")
	cmd.Flags().StringVarP(&f.price, "price", "p", "", "price per billing cycle, e.g. 15.49")
	cmd.Flags().StringVar(&f.cycle, "cycle", "", "billing cycle: monthly or yearly")
	cmd.Flags().StringVarP(&f.nextBilling, "next", "d", "", "next billing date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free text; an empty value clears it")
}

// fields converts the flags the user actually set. Untouched flags stay nil so an edit leaves them alone.
func (f *fieldFlags) fields(changed func(name string) bool) (subscription.Fields, error) {
	var out subscription.Fields

	if changed("name") {
		name := strings.TrimSpace(f.appName)
		out.AppName = &name
	}
	if changed("category") {
		category := strings.TrimSpace(f.category)
		out.Category = &category
	}
	if changed("notes") {
		notes := strings.TrimSpace(f.notes)
		out.Notes = &notes
	}

	if changed("price") {
		price, err := subscription.ParseMoney(strings.TrimPrefix(strings.TrimSpace(f.price), "$"))
		if err != nil {
			return out, fmt.Errorf("%w: price must be a number", subscription.ErrInvalidInput)
		}
		out.Price = &price
	}

	if changed("cycle") {
		cycle, err := subscription.ParseBillingCycle(f.cycle)
		if err != nil {
			return out, fmt.Errorf("%w: %v", subscription.ErrInvalidInput, err)
		}
		out.BillingCycle = &cycle
	}

	if changed("next") {
		next, err := subscription.ParseDate(strings.TrimSpace(f.nextBilling))
		if err != nil {
			return out, fmt.Errorf("%w: next billing must look like YYYY-MM-DD", subscription.ErrInvalidInput)
		}
		out.NextBilling = &next
	}

	return out, nil
}
