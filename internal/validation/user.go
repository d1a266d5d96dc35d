package validation

import "github.com/spec-kit/catalog-service/internal/domain"

// UserInput carries raw field text from a request.
type UserInput struct {
	Username *string
	Password *string
}

// User checks the fields required to create or replace a user.
func User(in UserInput) (domain.User, error) {
	if err := checkRequired("username", deref(in.Username)); err != nil {
		return domain.User{}, err
	}
	if err := checkRequired("password", deref(in.Password)); err != nil {
		return domain.User{}, err
	}
	return domain.User{Username: *in.Username, Password: *in.Password}, nil
}
