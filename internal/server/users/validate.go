package users

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/atfurman/taskapp/internal/common"
)

// notLiteralPassword rejects passwords containing the word "password" in any
// case. Mirrors the account-creation rule on the client side.
func notLiteralPassword(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(strings.ToLower(s), "password") {
		return fmt.Errorf(`must not contain "password"`)
	}
	return nil
}

func validateProfile(name, email string, age int) error {
	err := validation.Errors{
		"name":  validation.Validate(name, validation.Required),
		"email": validation.Validate(email, validation.Required, is.Email),
		"age":   validation.Validate(age, validation.Min(0)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

func validatePassword(password string) error {
	err := validation.Validate(password,
		validation.Required,
		validation.Length(7, 0),
		validation.By(notLiteralPassword),
	)
	if err != nil {
		return fmt.Errorf("%w: password %v", common.ErrorValidation, err)
	}
	return nil
}
