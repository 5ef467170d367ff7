package gallery

import (
	"errors"

	"github.com/reelgrid/reelgrid/internal/appwrite"
)

// ErrInvalidArgument is returned when an operation is invoked without a
// required identifier. No network call is made in that case.
var ErrInvalidArgument = errors.New("gallery: item id is required")

// FetchError wraps a listing failure after all fallbacks are exhausted.
// The manager has already settled to an empty collection by the time this
// is returned; callers surface it as a banner, not a crash.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "gallery: fetch failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// UpdateError wraps a rejected remote edit. Local state is untouched and
// the operation can be retried by re-invoking it.
type UpdateError struct {
	Err error
}

func (e *UpdateError) Error() string { return "gallery: update failed: " + e.Err.Error() }
func (e *UpdateError) Unwrap() error { return e.Err }

// DeleteError wraps a rejected remote delete. Local state is untouched.
type DeleteError struct {
	Err error
}

func (e *DeleteError) Error() string { return "gallery: delete failed: " + e.Err.Error() }
func (e *DeleteError) Unwrap() error { return e.Err }

// IsAuthorization reports whether err stems from a permission rejection,
// which the UI words differently from a generic failure.
func IsAuthorization(err error) bool {
	return errors.Is(err, appwrite.ErrUnauthorized)
}
