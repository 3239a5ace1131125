package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

func TestAssertOwner(t *testing.T) {
	assert.NoError(t, AssertOwner("u1", "u1"))
	assert.ErrorIs(t, AssertOwner("u1", "u2"), ErrForbidden)
	assert.ErrorIs(t, AssertOwner("", ""), ErrForbidden)
	assert.ErrorIs(t, AssertOwner("", "u1"), ErrForbidden)
}

func TestPublicOnly(t *testing.T) {
	assert.Equal(t, entity.VisibilityPublic, PublicOnly())
}
