package security

import (
	"errors"
	"regexp"
	"unicode"
)

var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrBadUsername    = errors.New("username must be 5-15 alphanumeric characters")
	ErrBadPassword    = errors.New("password must be 8-20 characters with at least one uppercase letter and one number")
	ErrBadCredentials = errors.New("invalid username or password")
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{5,15}$`)

type Account struct {
	Username string
	Password string
}

// CredentialStore holds cashier accounts for the lifetime of the process.
// Accounts are not persisted anywhere.
type CredentialStore struct {
	accounts []Account
}

// NewCredentialStore seeds the store; entries failing the username rule
// are kept as-is (operators configure them deliberately).
func NewCredentialStore(seed []Account) *CredentialStore {
	s := &CredentialStore{}
	s.accounts = append(s.accounts, seed...)
	return s
}

// CheckUsername validates the format and rejects duplicates without
// registering anything.
func (s *CredentialStore) CheckUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrBadUsername
	}
	for _, a := range s.accounts {
		if a.Username == username {
			return ErrUsernameTaken
		}
	}
	return nil
}

// SignUp validates and registers a new cashier account.
func (s *CredentialStore) SignUp(username, password string) error {
	if err := s.CheckUsername(username); err != nil {
		return err
	}
	if !validPassword(password) {
		return ErrBadPassword
	}
	s.accounts = append(s.accounts, Account{Username: username, Password: password})
	return nil
}

// Login checks the pair against the registered accounts.
func (s *CredentialStore) Login(username, password string) error {
	for _, a := range s.accounts {
		if a.Username == username && a.Password == password {
			return nil
		}
	}
	return ErrBadCredentials
}

// validPassword: 8-20 characters, at least one uppercase letter and one
// digit. Spelled out because Go's regexp has no lookahead.
func validPassword(pw string) bool {
	runes := []rune(pw)
	if len(runes) < 8 || len(runes) > 20 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}
