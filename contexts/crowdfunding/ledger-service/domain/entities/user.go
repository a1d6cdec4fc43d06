package entities

// User is created once per distinct caller and never changes afterwards.
// Usernames are display-only and may repeat across users.
type User struct {
	ID       Principal
	Username string
}
