package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	doc := DefaultCourse()
	clone := doc.Clone()

	clone.Outline[0].Title = "changed"
	clone.Outline[0].Content[0].Value = "changed"

	require.Equal(t, "Introduction", doc.Outline[0].Title)
	require.NotEqual(t, "changed", doc.Outline[0].Content[0].Value)
}

func TestNewBlockDefaults(t *testing.T) {
	text := NewBlock(BlockText)
	require.Equal(t, "Nouveau texte...", text.Value)
	require.NotEmpty(t, text.ID)

	image := NewBlock(BlockImage)
	require.Empty(t, image.Value)
	require.NotEqual(t, text.ID, image.ID)
}

func TestFindNodeNested(t *testing.T) {
	leaf := NewNode("leaf")
	mid := NewNode("mid")
	mid.Children = []CourseNode{leaf}
	root := NewNode("root")
	root.Children = []CourseNode{mid}
	doc := CourseDocument{Outline: []CourseNode{root}}

	found, ok := doc.FindNode(leaf.ID)
	require.True(t, ok)
	require.Equal(t, "leaf", found.Title)

	_, ok = doc.FindNode("missing")
	require.False(t, ok)
}

func TestFindBlockNested(t *testing.T) {
	block := NewBlock(BlockQuiz)
	child := NewNode("child")
	child.Content = []ContentBlock{block}
	root := NewNode("root")
	root.Children = []CourseNode{child}
	doc := CourseDocument{Outline: []CourseNode{root}}

	found, ok := doc.FindBlock(block.ID)
	require.True(t, ok)
	require.Equal(t, BlockQuiz, found.Kind)
}

func TestValidKind(t *testing.T) {
	for _, k := range []BlockKind{BlockText, BlockImage, BlockVideo, BlockLink, BlockQuiz} {
		require.True(t, ValidKind(k))
	}
	require.False(t, ValidKind("audio"))
}
