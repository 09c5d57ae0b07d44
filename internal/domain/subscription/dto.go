package subscription

import "time"

// Request is the camelCase body accepted on create and update. Every attribute is optional on the wire;
// the service decides which are required.
type Request struct {
	AppName      *string       `json:"appName,omitempty" maxLength:"200" doc:"Application or service name" example:"Netflix"`
	Category     *string       `json:"category,omitempty" maxLength:"100" doc:"Free-form category tag" example:"entertainment"`
	Price        *Money        `json:"price,omitempty" doc:"Price per billing cycle"`
	BillingCycle *BillingCycle `json:"billingCycle,omitempty" enum:"monthly,yearly" doc:"How often the price is charged"`
	NextBilling  *Date         `json:"nextBilling,omitempty" doc:"Next charge date (YYYY-MM-DD)"`
	Notes        *string       `json:"notes,omitempty" maxLength:"2000" nullable:"true" doc:"Optional notes"`
}

func (r Request) Fields() Fields {
	return Fields{
		AppName:      r.AppName,
		Category:     r.Category,
		Price:        r.Price,
		BillingCycle: r.BillingCycle,
		NextBilling:  r.NextBilling,
		Notes:        r.Notes,
	}
}

// Response is the snake_case shape returned by the API.
type Response struct {
	ID           int          `json:"id" example:"1"`
	UserID       int          `json:"user_id" example:"1"`
	AppName      string       `json:"app_name" example:"Netflix"`
	Category     string       `json:"category" example:"entertainment"`
	Price        Money        `json:"price"`
	BillingCycle BillingCycle `json:"billing_cycle" enum:"monthly,yearly"`
	NextBilling  Date         `json:"next_billing"`
	Notes        *string      `json:"notes" nullable:"true"`
	CreatedAt    time.Time    `json:"created_at"`
}

func NewResponse(s Subscription) Response {
	var notes *string
	if s.Notes != "" {
		n := s.Notes
		notes = &n
	}

	return Response{
		ID:           s.ID,
		UserID:       s.UserID,
		AppName:      s.AppName,
		Category:     s.Category,
		Price:        s.Price,
		BillingCycle: s.BillingCycle,
		NextBilling:  s.NextBilling,
		Notes:        notes,
		CreatedAt:    s.CreatedAt,
	}
}

func NewListResponse(list []Subscription) []Response {
	out := make([]Response, 0, len(list))
	for _, s := range list {
		out = append(out, NewResponse(s))
	}

	return out
}

func (r Response) Model() Subscription {
	s := Subscription{
		ID:           r.ID,
		UserID:       r.UserID,
		AppName:      r.AppName,
		Category:     r.Category,
		Price:        r.Price,
		BillingCycle: r.BillingCycle,
		NextBilling:  r.NextBilling,
		CreatedAt:    r.CreatedAt,
	}
	if r.Notes != nil {
		s.Notes = *r.Notes
	}

	return s
}

type StatsResponse struct {
	Count        int   `json:"count" example:"3"`
	MonthlyTotal Money `json:"monthly_total"`
	YearlyTotal  Money `json:"yearly_total"`
}

func NewStatsResponse(st Stats) StatsResponse {
	return StatsResponse{
		Count:        st.Count,
		MonthlyTotal: st.MonthlyTotal,
		YearlyTotal:  st.YearlyTotal,
	}
}
