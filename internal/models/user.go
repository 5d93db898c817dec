package models

// User is a locally registered account. The password hash lives next to the
// profile because auth here is a local mock, not a real identity system.
type User struct {
	ID    string
	Email string
	Name  string

	// Age and Gender are optional profile fields; zero values mean unset.
	Age    int
	Gender string

	// PasswordHash is a bcrypt hash of the registration password.
	PasswordHash string
}

// ProfileUpdate carries the fields UpdateProfile may change in place.
// Nil pointers leave the current value untouched.
type ProfileUpdate struct {
	Name   *string
	Age    *int
	Gender *string
}
