// Package walker provides a traversal API for schema document trees.
//
// The walker visits every node of a loaded document in document order,
// allowing handlers to inspect nodes and reference objects in a single
// pass. This is useful for analysis tasks such as inventorying every
// $ref in a document set and reporting its resolution status.
//
// # Quick Start
//
// Walk a document and collect all reference values:
//
//	doc, _ := store.Load("annotation.yaml")
//
//	var refs []string
//	err := walker.Walk(doc,
//	    walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
//	        refs = append(refs, ref.Ref)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Built-in Collectors
//
// [CollectRefs] walks a set of documents and resolves every reference it
// finds, returning a [RefInventory] that separates resolved references
// from broken ones (unresolvable or circular):
//
//	inventory, err := walker.CollectRefs(resolver, "annotation.yaml")
//	for _, report := range inventory.Broken {
//	    fmt.Printf("%s at %s: %s\n", report.Ref, report.SourcePath, report.Status)
//	}
package walker
