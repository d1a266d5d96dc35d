package domain

// User is an account that may log in and manage the catalog.
// Password holds whatever the configured hasher produced; with the default
// plain hasher that is the password itself.
type User struct {
	ID       int64
	Username string
	Password string
}
