package token

import "time"

// IDLength is the fixed length of every token identifier.
const IDLength = 20

// Token is the bearer credential bound to one user email. Possession of the
// id together with the matching email is the whole authorization story.
type Token struct {
	ID      string    `json:"tokenId"`
	Email   string    `json:"email"`
	Expires time.Time `json:"expires"`
}

// Expired reports whether the token has passed its expiry at the given time.
func (t Token) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}
