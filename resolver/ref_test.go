package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want Ref
	}{
		{
			name: "same-document fragment",
			ref:  "#/definitions/annotation_id",
			want: Ref{HasFragment: true, Segments: []string{"definitions", "annotation_id"}},
		},
		{
			name: "other-document root",
			ref:  "common.yaml",
			want: Ref{File: "common.yaml"},
		},
		{
			name: "other-document fragment",
			ref:  "subdir/more.yaml#/definitions/more_id",
			want: Ref{File: "subdir/more.yaml", HasFragment: true, Segments: []string{"definitions", "more_id"}},
		},
		{
			name: "bare fragment marker",
			ref:  "#",
			want: Ref{HasFragment: true},
		},
		{
			name: "root fragment",
			ref:  "#/",
			want: Ref{HasFragment: true},
		},
		{
			name: "empty reference",
			ref:  "",
			want: Ref{},
		},
		{
			name: "percent-decoded segment",
			ref:  "#/definitions/with%20space",
			want: Ref{HasFragment: true, Segments: []string{"definitions", "with space"}},
		},
		{
			name: "json pointer escapes",
			ref:  "#/paths/~1pets~1{id}/~0meta",
			want: Ref{HasFragment: true, Segments: []string{"paths", "/pets/{id}", "~meta"}},
		},
		{
			name: "malformed percent escape kept verbatim",
			ref:  "#/definitions/50%25",
			want: Ref{HasFragment: true, Segments: []string{"definitions", "50%"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRef(tt.ref))
		})
	}
}

func TestPointerString(t *testing.T) {
	assert.Equal(t, "", pointerString(nil))
	assert.Equal(t, "/definitions/annotation_id", pointerString([]string{"definitions", "annotation_id"}))
	// Segments containing pointer metacharacters are re-escaped for display.
	assert.Equal(t, "/paths/~1pets", pointerString([]string{"paths", "/pets"}))
}
