package httperr

import (
	"errors"
	"net/http"
)

// Kind groups business error codes into the response classes the API exposes.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindSlotConflict
	KindDuplicateIdentity
)

func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotConflict, KindDuplicateIdentity:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness is a rule violation caused by the request itself.
func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindInvalidInput}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Code: code, Kind: KindUnauthorized}
}

func ErrForbidden(code string) error {
	return BusinessError{Code: code, Kind: KindForbidden}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrSlotConflict() error {
	return BusinessError{Code: CodeSlotConflict, Kind: KindSlotConflict}
}

func ErrDuplicate(code string) error {
	return BusinessError{Code: code, Kind: KindDuplicateIdentity}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of a business error; ok is false for anything else.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
