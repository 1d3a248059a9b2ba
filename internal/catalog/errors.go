package catalog

import "errors"

// Kind classifies a service failure for callers that need a machine-readable
// reason, such as the HTTP layer. Raw store errors never cross the service
// boundary; they surface as KindStoreUnavailable.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindDuplicateUser    Kind = "duplicate_user"
	KindUserNotFound     Kind = "user_not_found"
	KindWrongPassword    Kind = "wrong_password"
	KindNoSession        Kind = "no_session"
	KindInvalidID        Kind = "invalid_id"
	KindInvalidSortKey   Kind = "invalid_sort_key"
	KindStoreUnavailable Kind = "store_unavailable"
	KindUnknown          Kind = "unknown"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateUser    = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrNoSession        = errors.New("no active session")
	ErrInvalidID        = errors.New("invalid book id")
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// KindOf maps an error returned by the service to its Kind.
// Returns an empty Kind for nil.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrDuplicateUser):
		return KindDuplicateUser
	case errors.Is(err, ErrUserNotFound):
		return KindUserNotFound
	case errors.Is(err, ErrWrongPassword):
		return KindWrongPassword
	case errors.Is(err, ErrNoSession):
		return KindNoSession
	case errors.Is(err, ErrInvalidID):
		return KindInvalidID
	case errors.Is(err, ErrInvalidSortKey):
		return KindInvalidSortKey
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	}
	return KindUnknown
}
