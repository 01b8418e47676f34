package loader

import (
	"path"
	"sync"

	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/schemaerrors"
)

// LoadFunc reads and parses the document with the given logical identity,
// returning its root node. Implementations report failures as
// *schemaerrors.LoadError.
type LoadFunc func(identity string) (*yaml.Node, error)

// Document is a loaded schema document: a logical identity plus the root of
// its parsed node tree. Documents are immutable after load.
type Document struct {
	// Identity is the logical slash-separated path, e.g. "subdir/more.yaml".
	Identity string
	// Root is the document's root node, with the yaml document wrapper
	// already unwrapped.
	Root *yaml.Node
}

// Store holds loaded documents keyed by identity. Loads of distinct
// identities may run concurrently; each entry is written once behind a
// sync.Once barrier, so no reader observes a partially constructed Document
// and repeated loads return the same instance.
type Store struct {
	load   LoadFunc
	logger Logger

	mu      sync.Mutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	once sync.Once
	doc  *Document
	err  error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger used for load diagnostics.
// The default is NopLogger.
func WithLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store backed by the given LoadFunc.
func NewStore(load LoadFunc, opts ...StoreOption) *Store {
	s := &Store{
		load:    load,
		logger:  NopLogger{},
		entries: make(map[string]*storeEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize canonicalizes a document identity so that equivalent relative
// paths compare equal (e.g. "subdir/../common.yaml" and "common.yaml").
func Normalize(identity string) string {
	return path.Clean(identity)
}

// Load returns the document with the given identity, loading it on first
// use. Loading is idempotent: every call with the same identity returns the
// same *Document (or the same error). Failures are reported as
// *schemaerrors.LoadError.
func (s *Store) Load(identity string) (*Document, error) {
	identity = Normalize(identity)

	s.mu.Lock()
	e, ok := s.entries[identity]
	if !ok {
		e = &storeEntry{}
		s.entries[identity] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		root, err := s.load(identity)
		if err != nil {
			s.logger.Debug("document load failed", "identity", identity, "error", err)
			e.err = err
			return
		}
		s.logger.Debug("document loaded", "identity", identity)
		e.doc = &Document{Identity: identity, Root: unwrapDocument(root)}
	})
	return e.doc, e.err
}

// Get returns the already-loaded document with the given identity, or false
// if it has not been loaded (or failed to load).
func (s *Store) Get(identity string) (*Document, bool) {
	identity = Normalize(identity)

	s.mu.Lock()
	e, ok := s.entries[identity]
	s.mu.Unlock()
	if !ok || e.doc == nil {
		return nil, false
	}
	return e.doc, true
}

// Identities returns the identities of all successfully loaded documents.
// Order is unspecified.
func (s *Store) Identities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.entries))
	for id, e := range s.entries {
		if e.doc != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// unwrapDocument strips the yaml document wrapper node so callers always see
// the mapping/sequence/scalar root directly.
func unwrapDocument(node *yaml.Node) *yaml.Node {
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return node.Content[0]
	}
	return node
}

// NewLoadError wraps err as a *schemaerrors.LoadError for the identity.
// LoadFunc implementations outside this package can use it to satisfy the
// Store's error contract.
func NewLoadError(identity, message string, err error) error {
	return &schemaerrors.LoadError{Identity: identity, Message: message, Cause: err}
}
