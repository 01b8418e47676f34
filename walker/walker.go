package walker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/loader"
)

// DefaultMaxDepth is the default maximum traversal depth.
const DefaultMaxDepth = 100

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// WalkContext provides contextual information about the current node.
type WalkContext struct {
	// Document is the identity of the document being walked.
	Document string

	// Pointer is the JSON pointer to the current node. Empty at the root.
	Pointer string

	// Key is the mapping key or sequence index that led to the current
	// node. Empty at the root.
	Key string

	ctx context.Context
}

// Context returns the context supplied via WithContext, or
// context.Background when none was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx != nil {
		return wc.ctx
	}
	return context.Background()
}

// Location returns the node's position as "document#/pointer".
func (wc *WalkContext) Location() string {
	return wc.Document + "#" + wc.Pointer
}

// NodeHandler is called for every node visited during traversal.
type NodeHandler func(wc *WalkContext, node *yaml.Node) Action

// Walker traverses a document node tree, invoking handlers as it goes.
type Walker struct {
	maxDepth int
	userCtx  context.Context
	onNode   NodeHandler
	onRef    RefHandler
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets the maximum traversal depth.
// If depth is not positive, it is silently ignored and the default (100) is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context().
func WithContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WithNodeHandler sets a handler called for every node in the tree.
func WithNodeHandler(fn NodeHandler) Option {
	return func(w *Walker) {
		w.onNode = fn
	}
}

// WithRefHandler sets a handler called for every reference object
// (a mapping whose $ref key holds a scalar) encountered during traversal.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) {
		w.onRef = fn
	}
}

// Walk traverses doc's node tree in document order, invoking the
// configured handlers. Mapping values are visited in key order and
// sequence items in index order. Alias nodes are followed to their
// anchors; the depth limit bounds traversal of self-referential alias
// structures.
func Walk(doc *loader.Document, opts ...Option) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("walking document: no document to walk")
	}

	w := &Walker{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(w)
	}

	_, err := w.visit(doc, doc.Root, "", "", 0)
	return err
}

func (w *Walker) visit(doc *loader.Document, node *yaml.Node, pointer, key string, depth int) (Action, error) {
	if depth > w.maxDepth {
		return Stop, fmt.Errorf("walking %s#%s: maximum depth %d exceeded", doc.Identity, pointer, w.maxDepth)
	}
	if w.userCtx != nil {
		if err := w.userCtx.Err(); err != nil {
			return Stop, err
		}
	}

	node = loader.Unalias(node)
	wc := &WalkContext{
		Document: doc.Identity,
		Pointer:  pointer,
		Key:      key,
		ctx:      w.userCtx,
	}

	if w.onNode != nil {
		switch action := w.onNode(wc, node); action {
		case SkipChildren:
			return Continue, nil
		case Stop:
			return Stop, nil
		}
	}

	if w.onRef != nil {
		if ref, ok := loader.RefTarget(node); ok {
			info := &RefInfo{
				Ref:        ref,
				Document:   doc.Identity,
				SourcePath: pointer,
			}
			switch action := w.onRef(wc, info); action {
			case SkipChildren:
				return Continue, nil
			case Stop:
				return Stop, nil
			}
		}
	}

	switch {
	case loader.IsMapping(node):
		for i := 0; i+1 < len(node.Content); i += 2 {
			childKey := loader.Unalias(node.Content[i]).Value
			childPointer := pointer + "/" + escapePointerToken(childKey)
			action, err := w.visit(doc, node.Content[i+1], childPointer, childKey, depth+1)
			if err != nil || action == Stop {
				return Stop, err
			}
		}
	case loader.IsSequence(node):
		for i, item := range node.Content {
			childKey := strconv.Itoa(i)
			action, err := w.visit(doc, item, pointer+"/"+childKey, childKey, depth+1)
			if err != nil || action == Stop {
				return Stop, err
			}
		}
	}

	return Continue, nil
}

func escapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}
