// Package guard holds the pure ownership and visibility predicates applied
// before every owner-scoped read or mutation.
package guard

import (
	"errors"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// ErrForbidden is returned when the acting user does not own the resource.
// Callers must not distinguish it from a missing resource in anything they
// expose; the two are deliberately conflated so existence never leaks.
var ErrForbidden = errors.New("forbidden")

// AssertOwner fails when the acting user is not the resource owner.
func AssertOwner(actingUserID, resourceOwnerID string) error {
	if actingUserID == "" || actingUserID != resourceOwnerID {
		return ErrForbidden
	}
	return nil
}

// PublicOnly returns the visibility value every public-facing read filters
// by. It is never combined with an owner filter.
func PublicOnly() entity.Visibility {
	return entity.VisibilityPublic
}
