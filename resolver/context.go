package resolver

import (
	"github.com/upsight/schematools/loader"
)

// Frame identifies one resolved location: a (document identity, pointer)
// pair. The invariant maintained by ResolveFully is that no Frame key
// appears twice in one active resolution chain.
type Frame struct {
	// Document is the owning document's identity.
	Document string
	// Pointer is the canonical pointer from the document root ("" for the
	// root itself).
	Pointer string
}

// Key returns the visitation key for cycle detection and diagnostics,
// e.g. "annotation.yaml#/definitions/annotation_id".
func (f Frame) Key() string {
	return f.Document + "#" + f.Pointer
}

// Context is the resolution context: the document relative file references
// resolve against, plus the visitation stack for the current top-level
// resolution request. Contexts are immutable; push returns a derived
// Context, so sibling resolution chains never share stack state.
type Context struct {
	doc   *loader.Document
	stack []Frame
}

// NewContext creates a resolution context rooted at doc with an empty
// visitation stack. Each independent top-level resolution request should
// start from a fresh context.
func NewContext(doc *loader.Document) *Context {
	return &Context{doc: doc}
}

// Current returns the document that relative file references resolve
// against.
func (c *Context) Current() *loader.Document {
	return c.doc
}

// Chain returns the visitation keys traversed so far, in order.
func (c *Context) Chain() []string {
	keys := make([]string, len(c.stack))
	for i, f := range c.stack {
		keys[i] = f.Key()
	}
	return keys
}

// depth returns the number of frames on the visitation stack.
func (c *Context) depth() int {
	return len(c.stack)
}

// onStack reports whether key is already on the visitation stack.
func (c *Context) onStack(key string) bool {
	for _, f := range c.stack {
		if f.Key() == key {
			return true
		}
	}
	return false
}

// push returns a derived context whose current document is doc and whose
// stack has frame appended. The receiver is not modified; the new stack is
// copied so derived contexts cannot alias each other's frames.
func (c *Context) push(doc *loader.Document, frame Frame) *Context {
	stack := make([]Frame, len(c.stack), len(c.stack)+1)
	copy(stack, c.stack)
	return &Context{doc: doc, stack: append(stack, frame)}
}
