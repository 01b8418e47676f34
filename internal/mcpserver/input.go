package mcpserver

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/loader"
)

// inlineIdentity is the document identity assigned to inline content.
const inlineIdentity = "inline.yaml"

// docInput represents the two ways a schema document can be provided to a
// tool. Exactly one of File or Content must be set.
type docInput struct {
	Root    string `json:"root,omitempty"    jsonschema:"Directory containing the schema documents (default: server root)"`
	File    string `json:"file,omitempty"    jsonschema:"Schema document path relative to root"`
	Content string `json:"content,omitempty" jsonschema:"Inline YAML schema document. File refs still resolve against root."`
}

// storeCache holds one document store per root directory for the session.
// Stores cache loaded documents per identity, so repeated tool calls over
// the same document set reuse parsed trees.
type storeCache struct {
	mu     sync.Mutex
	stores map[string]*loader.Store
}

var stores = &storeCache{stores: make(map[string]*loader.Store)}

func (c *storeCache) forRoot(root string) *loader.Store {
	root = filepath.Clean(root)
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.stores[root]; ok {
		return s
	}
	s := loader.NewStore(loader.FileLoader(root))
	c.stores[root] = s
	return s
}

// resolve loads the document described by the input and returns it along
// with the store it was loaded from, so refs to sibling documents keep
// working.
func (d docInput) resolve() (*loader.Store, *loader.Document, error) {
	root := d.Root
	if root == "" {
		root = cfg.Root
	}

	switch {
	case d.File != "" && d.Content != "":
		return nil, nil, fmt.Errorf("file and content are mutually exclusive")
	case d.File != "":
		store := stores.forRoot(root)
		doc, err := store.Load(d.File)
		if err != nil {
			return nil, nil, err
		}
		return store, doc, nil
	case d.Content != "":
		// Inline content gets its own store: the synthetic identity must
		// not leak into the shared per-root cache.
		store := loader.NewStore(inlineLoader(d.Content, root))
		doc, err := store.Load(inlineIdentity)
		if err != nil {
			return nil, nil, err
		}
		return store, doc, nil
	default:
		return nil, nil, fmt.Errorf("one of file or content must be set")
	}
}

// inlineLoader serves the inline document under inlineIdentity and
// delegates every other identity to the filesystem, so inline documents
// can still reference files under root.
func inlineLoader(content, root string) loader.LoadFunc {
	files := loader.FileLoader(root)
	return func(identity string) (*yaml.Node, error) {
		if identity != inlineIdentity {
			return files(identity)
		}
		var node yaml.Node
		if err := yaml.Unmarshal([]byte(content), &node); err != nil {
			return nil, loader.NewLoadError(identity, "parsing inline content", err)
		}
		return &node, nil
	}
}
