package orderedlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item string

func (i item) Key() string { return string(i) }

func list(ids ...string) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item(id)
	}
	return out
}

func TestMove(t *testing.T) {
	items := list("a", "b", "c", "d")

	assert.Equal(t, []string{"b", "c", "a", "d"}, IDs(Move(items, "a", "c")))
	assert.Equal(t, []string{"c", "a", "b", "d"}, IDs(Move(items, "c", "a")))
	// unknown ids and self-drops leave the ordering alone
	assert.Equal(t, IDs(items), IDs(Move(items, "x", "b")))
	assert.Equal(t, IDs(items), IDs(Move(items, "b", "b")))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c", "d"}, IDs(items))
}

func TestMoveBy(t *testing.T) {
	items := list("a", "b", "c")

	assert.Equal(t, []string{"b", "a", "c"}, IDs(MoveBy(items, 0, 1)))
	assert.Equal(t, []string{"a", "c", "b"}, IDs(MoveBy(items, 2, -1)))
	// out of range is a no-op
	assert.Equal(t, IDs(items), IDs(MoveBy(items, 0, -1)))
	assert.Equal(t, IDs(items), IDs(MoveBy(items, 2, 1)))
	assert.Equal(t, IDs(items), IDs(MoveBy(items, 5, 0)))
}

func TestListOptimisticRevert(t *testing.T) {
	l := New(list("c", "a", "b"))

	l.Apply(Move(l.Items(), "c", "b"))
	assert.Equal(t, []string{"a", "b", "c"}, IDs(l.Items()))

	// server refused: back to last confirmed ordering
	l.Revert()
	assert.Equal(t, []string{"c", "a", "b"}, IDs(l.Items()))
}

func TestRevertLeavesAppliedSliceIntact(t *testing.T) {
	l := New(list("a", "b", "c"))

	next := Move(l.Items(), "c", "a")
	l.Apply(next)
	l.Revert()

	// the caller's optimistic slice keeps its ordering after the rollback
	assert.Equal(t, []string{"c", "a", "b"}, IDs(next))
	assert.Equal(t, []string{"a", "b", "c"}, IDs(l.Items()))
}

func TestListCommit(t *testing.T) {
	l := New(list("a", "b"))

	l.Apply(Move(l.Items(), "b", "a"))
	l.Commit()
	l.Apply(Move(l.Items(), "a", "b"))
	l.Revert()

	assert.Equal(t, []string{"b", "a"}, IDs(l.Items()))
}
