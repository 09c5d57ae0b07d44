// Package localstore keeps the client's small key/value state: token, profile, guest flag and guest list.
package localstore

const (
	KeyToken         = "token"
	KeyUser          = "user"
	KeyGuestMode     = "guestMode"
	KeySubscriptions = "subscriptions"
)
