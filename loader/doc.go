// Package loader provides the document store for schematools.
//
// A Store holds every loaded schema document keyed by its logical identity
// (a slash-separated relative path such as "common.yaml" or
// "subdir/more.yaml"). Documents are parsed once, are immutable after load,
// and repeated loads of the same identity return the same *Document
// instance. Reference resolution depends on this identity guarantee for
// cycle-key comparisons.
//
// The Store delegates reading and parsing bytes to a LoadFunc. FileLoader
// returns a LoadFunc that reads YAML or JSON files beneath a root directory
// with path traversal protection.
//
// Document trees are represented as *yaml.Node values from
// go.yaml.in/yaml/v4. The node helpers in this package (MappingGet, RefTarget,
// ScalarValue, and friends) are the shared vocabulary the resolver, composer,
// and validator use to walk those trees.
package loader
