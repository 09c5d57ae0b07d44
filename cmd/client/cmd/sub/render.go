package sub

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"subtracker/internal/app/client"
	"subtracker/internal/domain/subscription"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	mutedColor = color.New(color.FgHiBlack)
	priceColor = color.New(color.FgGreen)
	soonColor  = color.New(color.FgYellow)
	lateColor  = color.New(color.FgRed)
)

// dueSoonDays is how close a billing date has to be before it is highlighted.
const dueSoonDays = 3

func renderCards(w io.Writer, cards []client.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No subscriptions yet. Add one with `subtracker sub add`.")
		return
	}

	for _, c := range cards {
		fmt.Fprintf(w, "%s %s %s\n",
			mutedColor.Sprintf("#%d", c.ID),
			titleColor.Sprint(c.AppName),
			mutedColor.Sprintf("[%s]", c.Category),
		)
		fmt.Fprintf(w, "   %s / %s   next %s %s   %s\n",
			priceColor.Sprintf("$%s", c.Price.Format()),
			c.BillingCycle,
			c.NextBillingLabel(),
			dueColor(c.DaysUntilBilling).Sprintf("(%s)", c.DueLabel()),
			mutedColor.Sprintf("$%s / year", c.YearlyCost.Format()),
		)
		if c.Notes != "" {
			fmt.Fprintf(w, "   %s\n", c.Notes)
		}
		fmt.Fprintln(w)
	}
}

func dueColor(days int) *color.Color {
	switch {
	case days < 0:
		return lateColor
	case days <= dueSoonDays:
		return soonColor
	default:
		return mutedColor
	}
}

func renderStats(w io.Writer, st subscription.Stats) {
	fmt.Fprintf(w, "%s %d\n", titleColor.Sprint("Subscriptions:"), st.Count)
	fmt.Fprintf(w, "%s %s\n", titleColor.Sprint("Monthly total:"), priceColor.Sprintf("$%s", st.MonthlyTotal.Format()))
	fmt.Fprintf(w, "%s %s\n", titleColor.Sprint("Yearly total: "), priceColor.Sprintf("$%s", st.YearlyTotal.Format()))
}
