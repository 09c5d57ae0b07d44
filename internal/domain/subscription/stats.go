package subscription

type Stats struct {
	Count        int
	MonthlyTotal Money
	YearlyTotal  Money
}

// Summarize totals the list. Rounding to cents happens once, after summing.
func Summarize(list []Subscription) Stats {
	monthly, yearly := Zero, Zero
	for _, s := range list {
		monthly = monthly.Add(s.MonthlyCost())
		yearly = yearly.Add(s.YearlyCost())
	}

	return Stats{
		Count:        len(list),
		MonthlyTotal: monthly.Round(),
		YearlyTotal:  yearly.Round(),
	}
}
