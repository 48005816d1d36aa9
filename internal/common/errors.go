package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already in use")

	// service specific errors
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// validation errors; wrap with field detail, e.g.
	// fmt.Errorf("%w: password too short", ErrorValidation)
	ErrorValidation   = errors.New("validation error")
	ErrorInvalidField = errors.New("invalid field")

	ErrorInvalidToken = errors.New("invalid token")
)
