package subscription

import (
	"subtracker/internal/domain/subscription"
)

type listOutput struct {
	Body []subscription.Response
}

type createInput struct {
	Body subscription.Request
}

type output struct {
	Body subscription.Response
}

type findInput struct {
	ID int `path:"id" minimum:"1" example:"1" doc:"Subscription ID"`
}

type updateInput struct {
	ID   int `path:"id" minimum:"1" example:"1" doc:"Subscription ID"`
	Body subscription.Request
}

type deleteOutput struct {
	Body messageResponse
}

type messageResponse struct {
	Message string `json:"message" example:"Subscription deleted successfully"`
}

type statsOutput struct {
	Body subscription.StatsResponse
}
