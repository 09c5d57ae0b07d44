package health

import "time"

const StatusOK = "OK"

type Input struct{}

type Output struct {
	Body HealthResponse
}

type HealthResponse struct {
	Status    string    `json:"status" example:"OK" doc:"Health status of the service"`
	Timestamp time.Time `json:"timestamp" doc:"Server time in UTC"`
}
