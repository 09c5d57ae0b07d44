package user

import "time"

type registerInput struct {
	Body registerRequest
}

type registerRequest struct {
	Email    string `json:"email" maxLength:"254" doc:"Login email" example:"a@x.com"`
	Password string `json:"password" maxLength:"72" doc:"Plain password, at least 6 characters"`
	Name     string `json:"name,omitempty" maxLength:"100" doc:"Optional display name"`
}

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Email    string `json:"email" doc:"Login email" example:"a@x.com"`
	Password string `json:"password" doc:"Plain password"`
}

type authOutput struct {
	Body authResponse
}

type authResponse struct {
	Message string      `json:"message" example:"Login successful"`
	Token   string      `json:"token" doc:"Bearer token, valid for seven days"`
	User    userPayload `json:"user"`
}

type userPayload struct {
	ID    int     `json:"id" example:"1"`
	Email string  `json:"email" example:"a@x.com"`
	Name  *string `json:"name" nullable:"true"`
}

type meOutput struct {
	Body meResponse
}

type meResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name" nullable:"true"`
	CreatedAt time.Time `json:"created_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
