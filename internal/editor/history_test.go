package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"courseforge/internal/model"
)

func docTitled(title string) model.CourseDocument {
	return model.CourseDocument{Title: title}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	e := New(docTitled("D0"))

	const n = 5
	for i := 1; i <= n; i++ {
		e.Apply(docTitled(fmt.Sprintf("D%d", i)))
	}
	require.Equal(t, fmt.Sprintf("D%d", n), e.Current().Title)

	for i := 0; i < n; i++ {
		require.True(t, e.Undo())
	}
	require.Equal(t, "D0", e.Current().Title)
	require.False(t, e.CanUndo())

	for i := 0; i < n; i++ {
		require.True(t, e.Redo())
	}
	require.Equal(t, fmt.Sprintf("D%d", n), e.Current().Title)
	require.False(t, e.CanRedo())
}

func TestUndoEmptyIsNoOp(t *testing.T) {
	e := New(docTitled("D0"))
	require.False(t, e.Undo())
	require.Equal(t, "D0", e.Current().Title)
	require.False(t, e.Redo())
	require.Equal(t, "D0", e.Current().Title)
}

func TestApplyClearsRedo(t *testing.T) {
	e := New(docTitled("D0"))
	e.Apply(docTitled("D1"))
	e.Apply(docTitled("D2"))

	require.True(t, e.Undo())
	require.True(t, e.CanRedo())

	e.Apply(docTitled("D1b"))
	require.False(t, e.CanRedo())
	require.False(t, e.Redo(), "redo after a fresh apply must be a no-op")
	require.Equal(t, "D1b", e.Current().Title)
}

func TestAddChapterUndoRedoScenario(t *testing.T) {
	e := New(model.CourseDocument{Title: "T", Outline: []model.CourseNode{}})

	next, first := AddChapter(e.Current())
	e.Apply(next)
	require.Len(t, e.Current().Outline, 1)

	next, second := AddChapter(e.Current())
	e.Apply(next)
	require.Len(t, e.Current().Outline, 2)

	require.True(t, e.Undo())
	require.Len(t, e.Current().Outline, 1)

	require.True(t, e.Undo())
	require.Len(t, e.Current().Outline, 0)

	require.True(t, e.Redo())
	require.True(t, e.Redo())
	require.Len(t, e.Current().Outline, 2)
	require.Equal(t, first.ID, e.Current().Outline[0].ID, "redo restores the original ids")
	require.Equal(t, second.ID, e.Current().Outline[1].ID)
}

func TestSnapshotsUnaffectedByLaterMutation(t *testing.T) {
	e := New(model.CourseDocument{Outline: []model.CourseNode{}})

	next, chapter := AddChapter(e.Current())
	e.Apply(next)

	renamed := chapter
	renamed.Title = "Renamed"
	next, err := UpdateNode(e.Current(), renamed)
	require.NoError(t, err)
	e.Apply(next)

	require.True(t, e.Undo())
	require.Equal(t, "Nouveau Chapitre", e.Current().Outline[0].Title)
}

func TestDirtyTracking(t *testing.T) {
	e := New(docTitled("D0"))
	require.False(t, e.Dirty())

	e.Apply(docTitled("D1"))
	require.True(t, e.Dirty())

	e.MarkSaved()
	require.False(t, e.Dirty())

	require.True(t, e.Undo())
	require.True(t, e.Dirty(), "undo past the save point makes the session dirty again")
}

func TestReplaceIsUndoableButClean(t *testing.T) {
	e := New(docTitled("local"))
	e.Apply(docTitled("edited"))

	e.Replace(docTitled("remote"))
	require.Equal(t, "remote", e.Current().Title)
	require.False(t, e.Dirty())

	require.True(t, e.Undo())
	require.Equal(t, "edited", e.Current().Title)
}
