package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by Compare when the password is wrong.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher turns a password into its stored form and checks it later.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
}

// PlainHasher stores passwords as given. It keeps compatibility with
// databases that hold plain-text passwords and offers no protection at rest.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// BcryptHasher hashes passwords with bcrypt at the configured cost.
type BcryptHasher struct {
	Cost int
}

// Hash hashes a plaintext password with configured cost.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies a password against its hashed value.
func (BcryptHasher) Compare(stored, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// NewPasswordHasher returns the hasher for mode ("plain" or "bcrypt").
func NewPasswordHasher(mode string, cost int) (PasswordHasher, error) {
	switch mode {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: cost}, nil
	default:
		return nil, errors.New("unknown password hashing mode: " + mode)
	}
}
