package editor

import (
	"errors"

	"courseforge/internal/model"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrBlockNotFound = errors.New("content block not found")
	ErrUnknownField  = errors.New("unknown header field")
)

// HeaderField names one of the root metadata fields
type HeaderField string

const (
	FieldTitle       HeaderField = "title"
	FieldAuthor      HeaderField = "author"
	FieldDescription HeaderField = "description"
)

// All functions below are pure: they take the current document and return a
// new one, rebuilding only the path from the mutated node to the root and
// sharing untouched subtrees. Callers route the result through Editor.Apply.

// UpdateHeader replaces one root metadata field.
func UpdateHeader(doc model.CourseDocument, field HeaderField, value string) (model.CourseDocument, error) {
	switch field {
	case FieldTitle:
		doc.Title = value
	case FieldAuthor:
		doc.Author = value
	case FieldDescription:
		doc.Description = value
	default:
		return doc, ErrUnknownField
	}
	return doc, nil
}

// AddChapter appends a new top-level chapter with a fresh id.
func AddChapter(doc model.CourseDocument) (model.CourseDocument, model.CourseNode) {
	chapter := model.NewNode("Nouveau Chapitre")
	outline := make([]model.CourseNode, len(doc.Outline), len(doc.Outline)+1)
	copy(outline, doc.Outline)
	doc.Outline = append(outline, chapter)
	return doc, chapter
}

// AddSubChapter appends a new child with a fresh id under the given parent.
func AddSubChapter(doc model.CourseDocument, parentID string) (model.CourseDocument, model.CourseNode, error) {
	child := model.NewNode("Nouveau Sous-chapitre")
	outline, found := mutateNode(doc.Outline, parentID, func(n model.CourseNode) (model.CourseNode, bool) {
		children := make([]model.CourseNode, len(n.Children), len(n.Children)+1)
		copy(children, n.Children)
		n.Children = append(children, child)
		return n, true
	})
	if !found {
		return doc, model.CourseNode{}, ErrNodeNotFound
	}
	doc.Outline = outline
	return doc, child, nil
}

// AddContentBlock appends a block of the given kind, with its default value,
// to the node's content.
func AddContentBlock(doc model.CourseDocument, nodeID string, kind model.BlockKind) (model.CourseDocument, model.ContentBlock, error) {
	block := model.NewBlock(kind)
	outline, found := mutateNode(doc.Outline, nodeID, func(n model.CourseNode) (model.CourseNode, bool) {
		content := make([]model.ContentBlock, len(n.Content), len(n.Content)+1)
		copy(content, n.Content)
		n.Content = append(content, block)
		return n, true
	})
	if !found {
		return doc, model.ContentBlock{}, ErrNodeNotFound
	}
	doc.Outline = outline
	return doc, block, nil
}

// UpdateNode replaces the node whose id matches updated.ID, wherever it sits
// in the outline. The replacement keeps the node's position; its subtree is
// whatever the caller supplies.
func UpdateNode(doc model.CourseDocument, updated model.CourseNode) (model.CourseDocument, error) {
	outline, found := mutateNode(doc.Outline, updated.ID, func(model.CourseNode) (model.CourseNode, bool) {
		return updated, true
	})
	if !found {
		return doc, ErrNodeNotFound
	}
	doc.Outline = outline
	return doc, nil
}

// DeleteNode removes the node with the given id and its entire subtree in
// one mutation.
func DeleteNode(doc model.CourseDocument, id string) (model.CourseDocument, error) {
	outline, found := mutateNode(doc.Outline, id, func(n model.CourseNode) (model.CourseNode, bool) {
		return n, false
	})
	if !found {
		return doc, ErrNodeNotFound
	}
	doc.Outline = outline
	return doc, nil
}

// UpdateBlock replaces the value and caption of the block whose id matches.
// The kind is immutable: whatever kind the stored block has is kept.
func UpdateBlock(doc model.CourseDocument, updated model.ContentBlock) (model.CourseDocument, error) {
	outline, found := mutateBlock(doc.Outline, updated.ID, func(b model.ContentBlock) (model.ContentBlock, bool) {
		b.Value = updated.Value
		b.Caption = updated.Caption
		return b, true
	})
	if !found {
		return doc, ErrBlockNotFound
	}
	doc.Outline = outline
	return doc, nil
}

// DeleteBlock removes the block with the given id from its node's content.
func DeleteBlock(doc model.CourseDocument, blockID string) (model.CourseDocument, error) {
	outline, found := mutateBlock(doc.Outline, blockID, func(b model.ContentBlock) (model.ContentBlock, bool) {
		return b, false
	})
	if !found {
		return doc, ErrBlockNotFound
	}
	doc.Outline = outline
	return doc, nil
}

// mutateNode locates id in a single traversal and applies fn to it. fn
// returns the replacement and whether to keep the node; returning false
// removes it together with its subtree. Only the ancestor chain is copied.
func mutateNode(nodes []model.CourseNode, id string, fn func(model.CourseNode) (model.CourseNode, bool)) ([]model.CourseNode, bool) {
	for i, n := range nodes {
		if n.ID == id {
			replacement, keep := fn(n)
			out := make([]model.CourseNode, 0, len(nodes))
			out = append(out, nodes[:i]...)
			if keep {
				out = append(out, replacement)
			}
			return append(out, nodes[i+1:]...), true
		}
		if children, found := mutateNode(n.Children, id, fn); found {
			out := make([]model.CourseNode, len(nodes))
			copy(out, nodes)
			out[i].Children = children
			return out, true
		}
	}
	return nodes, false
}

// mutateBlock locates the block by id across all nodes and applies fn,
// with the same keep/remove contract as mutateNode.
func mutateBlock(nodes []model.CourseNode, blockID string, fn func(model.ContentBlock) (model.ContentBlock, bool)) ([]model.CourseNode, bool) {
	for i, n := range nodes {
		for j, b := range n.Content {
			if b.ID != blockID {
				continue
			}
			replacement, keep := fn(b)
			content := make([]model.ContentBlock, 0, len(n.Content))
			content = append(content, n.Content[:j]...)
			if keep {
				content = append(content, replacement)
			}
			content = append(content, n.Content[j+1:]...)

			out := make([]model.CourseNode, len(nodes))
			copy(out, nodes)
			out[i].Content = content
			return out, true
		}
		if children, found := mutateBlock(n.Children, blockID, fn); found {
			out := make([]model.CourseNode, len(nodes))
			copy(out, nodes)
			out[i].Children = children
			return out, true
		}
	}
	return nodes, false
}
