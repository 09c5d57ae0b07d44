package user

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}
