package resolver

import (
	"net/url"
	"strings"
)

// Ref is a parsed reference string.
type Ref struct {
	// File is the relative file path part. Empty means the reference stays
	// in the referencing document.
	File string
	// HasFragment is true when the reference contained a '#'. A reference
	// without a fragment targets the referenced document's root.
	HasFragment bool
	// Segments are the decoded fragment path segments. Empty with
	// HasFragment set means the fragment was "#" or "#/", i.e. the root.
	Segments []string
}

// IsLocal reports whether the reference stays within the current document.
func (r Ref) IsLocal() bool {
	return r.File == ""
}

// ParseRef splits a reference string into its file and fragment parts and
// decodes the fragment segments. Each segment is percent-decoded and then
// JSON-Pointer-unescaped per RFC 6901 (~1 -> /, ~0 -> ~).
func ParseRef(ref string) Ref {
	file, fragment, hasFragment := strings.Cut(ref, "#")
	parsed := Ref{File: file, HasFragment: hasFragment}
	if !hasFragment {
		return parsed
	}

	fragment = strings.TrimPrefix(fragment, "/")
	if fragment == "" {
		return parsed
	}
	for _, raw := range strings.Split(fragment, "/") {
		parsed.Segments = append(parsed.Segments, decodeSegment(raw))
	}
	return parsed
}

// decodeSegment percent-decodes a fragment segment, falling back to the raw
// text when the escape sequence is malformed, then unescapes JSON Pointer
// tokens.
func decodeSegment(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	return unescapeJSONPointer(decoded)
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// pointerString renders decoded segments as a canonical pointer ("" for the
// root, "/a/b" otherwise). Used for visitation keys and diagnostics.
func pointerString(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(escapeJSONPointer(seg))
	}
	return b.String()
}

// escapeJSONPointer escapes JSON Pointer tokens for display.
func escapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}
