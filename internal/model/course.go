package model

import (
	"time"

	"github.com/google/uuid"
)

// BlockKind defines the type of a content block
type BlockKind string

const (
	BlockText  BlockKind = "text"  // Rich text markup
	BlockImage BlockKind = "image" // Image URL
	BlockVideo BlockKind = "video" // Video URL (embed or direct file)
	BlockLink  BlockKind = "link"  // External resource link
	BlockQuiz  BlockKind = "quiz"  // JSON-encoded QuizData in Value
)

// ValidKind reports whether k is one of the supported block kinds.
func ValidKind(k BlockKind) bool {
	switch k {
	case BlockText, BlockImage, BlockVideo, BlockLink, BlockQuiz:
		return true
	}
	return false
}

// ContentBlock is the atomic unit of authored content. Kind never changes
// after creation; Value is interpreted according to Kind.
type ContentBlock struct {
	ID      string    `json:"id" bson:"id"`
	Kind    BlockKind `json:"type" bson:"type"`
	Value   string    `json:"value" bson:"value"`
	Caption string    `json:"caption,omitempty" bson:"caption,omitempty"` // Images, videos, links
}

// CourseNode is a chapter or sub-chapter. Children and Content are owned
// exclusively by the node; a node with neither is a placeholder.
type CourseNode struct {
	ID       string         `json:"id" bson:"id"`
	Title    string         `json:"title" bson:"title"`
	Icon     string         `json:"icon,omitempty" bson:"icon,omitempty"` // Emoji or 1-2 chars
	Children []CourseNode   `json:"children" bson:"children"`
	Content  []ContentBlock `json:"content" bson:"content"`
}

// CourseDocument is the whole course: header metadata plus the outline tree.
// The cloud record id is not part of the document itself.
type CourseDocument struct {
	Title       string       `json:"title" bson:"title"`
	Author      string       `json:"author" bson:"author"`
	Description string       `json:"description" bson:"description"`
	Outline     []CourseNode `json:"outline" bson:"outline"`
}

// CourseRecord is the persisted envelope around a document.
type CourseRecord struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	Title     string         `json:"title" bson:"title"`
	Data      CourseDocument `json:"data" bson:"data"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// NewID returns a fresh unique id for nodes and blocks.
func NewID() string {
	return uuid.New().String()
}

// NewNode creates an empty node with a fresh id.
func NewNode(title string) CourseNode {
	return CourseNode{
		ID:       NewID(),
		Title:    title,
		Children: []CourseNode{},
		Content:  []ContentBlock{},
	}
}

// NewBlock creates a block of the given kind with its default value.
func NewBlock(kind BlockKind) ContentBlock {
	value := ""
	if kind == BlockText {
		value = "Nouveau texte..."
	}
	return ContentBlock{
		ID:    NewID(),
		Kind:  kind,
		Value: value,
	}
}

// Clone returns a deep copy of the document. History snapshots rely on
// clones never aliasing slices with the original.
func (d CourseDocument) Clone() CourseDocument {
	out := d
	out.Outline = cloneNodes(d.Outline)
	return out
}

// Clone returns a deep copy of the node and its subtree.
func (n CourseNode) Clone() CourseNode {
	out := n
	out.Children = cloneNodes(n.Children)
	if n.Content != nil {
		out.Content = make([]ContentBlock, len(n.Content))
		copy(out.Content, n.Content)
	}
	return out
}

func cloneNodes(nodes []CourseNode) []CourseNode {
	if nodes == nil {
		return nil
	}
	out := make([]CourseNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// FindNode locates a node by id anywhere in the outline.
func (d CourseDocument) FindNode(id string) (CourseNode, bool) {
	return findNode(d.Outline, id)
}

func findNode(nodes []CourseNode, id string) (CourseNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if found, ok := findNode(n.Children, id); ok {
			return found, true
		}
	}
	return CourseNode{}, false
}

// FindBlock locates a content block by id anywhere in the outline.
func (d CourseDocument) FindBlock(id string) (ContentBlock, bool) {
	return findBlock(d.Outline, id)
}

func findBlock(nodes []CourseNode, id string) (ContentBlock, bool) {
	for _, n := range nodes {
		for _, b := range n.Content {
			if b.ID == id {
				return b, true
			}
		}
		if found, ok := findBlock(n.Children, id); ok {
			return found, true
		}
	}
	return ContentBlock{}, false
}

// DefaultCourse is the built-in starter course shown before anything is
// loaded or authored.
func DefaultCourse() CourseDocument {
	return CourseDocument{
		Title:       "Mon Nouveau Cours",
		Author:      "Auteur",
		Description: "Ceci est la description de votre formation. Cliquez sur le bouton 'Éditer' en haut à droite pour commencer à personnaliser le contenu.",
		Outline: []CourseNode{
			{
				ID:    NewID(),
				Title: "Introduction",
				Icon:  "👋",
				Content: []ContentBlock{
					{
						ID:    NewID(),
						Kind:  BlockText,
						Value: "Bienvenue dans votre nouvel espace de formation. Cliquez sur 'Éditer' pour modifier ce texte ou ajouter du contenu.",
					},
				},
				Children: []CourseNode{},
			},
		},
	}
}
