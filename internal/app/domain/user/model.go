package user

// User is a registered customer. Email is the primary identity and is never
// renamed once the record exists.
type User struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	HashedPassword string `json:"hashedPassword,omitempty"`
	Address        string `json:"address"`
}

// Public returns a copy safe to hand back to the caller.
func (u User) Public() User {
	u.HashedPassword = ""
	return u
}
