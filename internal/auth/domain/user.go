package domain

import (
	"strings"
	"time"
)

// User is the stored identity record. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	Country      string    `json:"country"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the sanitized projection returned to clients.
type UserView struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Country   string `json:"country"`
}

func (u *User) View() *UserView {
	return &UserView{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Username:  u.Username,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Country:   u.Country,
	}
}

// Identifier selects a user by exactly one of its unique keys.
type Identifier struct {
	ID       string
	Email    string
	Username string
}

// Validate rejects identifiers with zero or several populated fields.
func (i Identifier) Validate() error {
	set := 0
	for _, v := range []string{i.ID, i.Email, i.Username} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return NewValidationError(map[string]string{"identifier": "one of id, email or username is required"})
	case set > 1:
		return ErrAmbiguousIdentifier
	}
	return nil
}

// ParseLoginIdentifier interprets the login form's username field: anything
// containing '@' is an email, everything else a username.
func ParseLoginIdentifier(input string) Identifier {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "@") {
		return Identifier{Email: NormalizeEmail(input)}
	}
	return Identifier{Username: input}
}

// NormalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
