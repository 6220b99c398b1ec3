package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionDiscardsCommentOnSwitch(t *testing.T) {
	s := NewSelection()

	s.Select("wd-1")
	s.SetComment("looks legit")
	assert.Equal(t, "looks legit", s.Comment())

	// reselecting the same item keeps the draft
	s.Select("wd-1")
	assert.Equal(t, "looks legit", s.Comment())

	s.Select("wd-2")
	assert.Equal(t, "wd-2", s.SelectedID())
	assert.Equal(t, "", s.Comment())
}

func TestSelectionBusyFlagPerItem(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Begin("wd-1"))
	assert.False(t, s.Begin("wd-1"), "double submit must be refused")
	assert.True(t, s.Busy("wd-1"))

	// another item is not gated by wd-1's flag
	assert.True(t, s.Begin("wd-2"))

	s.End("wd-1")
	assert.False(t, s.Busy("wd-1"))
	assert.True(t, s.Begin("wd-1"))
}

func TestSelectionCommentKeptOnFailure(t *testing.T) {
	s := NewSelection()
	s.Select("wd-1")
	s.SetComment("duplicate request")

	// action fails: End without ClearComment
	assert.True(t, s.Begin("wd-1"))
	s.End("wd-1")
	assert.Equal(t, "duplicate request", s.Comment())

	// action succeeds: comment cleared, selection kept
	assert.True(t, s.Begin("wd-1"))
	s.ClearComment()
	s.End("wd-1")
	assert.Equal(t, "", s.Comment())
	assert.Equal(t, "wd-1", s.SelectedID())
}
