package application

import (
	"errors"

	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

// Service-level errors the HTTP layer maps onto status codes. Ownership
// failures and missing rows share one error so responses never reveal whether
// a foreign id exists.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInvalidLogin     = errors.New("email or password incorrect")
	ErrNotOwned         = errors.New("not found")
	ErrOrderSetMismatch = errors.New("milestone list is out of date, reload and try again")
	ErrGoalLimit        = errors.New("a daily plan can hold at most 5 goals")
	ErrImageRequired    = errors.New("a representative image is required")
	ErrInvalidImage     = errors.New("only image files can be uploaded")
	ErrStoreUnavailable = errors.New("service temporarily unavailable, try again shortly")
)

// mapRepoErr converts repository sentinels into service errors, passing
// anything unrecognized through untouched.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotOwned
	case errors.Is(err, repository.ErrUnavailable):
		return ErrStoreUnavailable
	default:
		return err
	}
}
