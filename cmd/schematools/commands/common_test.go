package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureRoot      = "../../../testdata/schemas"
	fixtureInstances = "../../../testdata/instances"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"valid": true, "count": 2}

	require.NoError(t, OutputStructured(data, FormatJSON))
	require.NoError(t, OutputStructured(data, FormatYAML))
	assert.Error(t, OutputStructured(data, FormatText))
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		arg      string
		wantFile string
		wantRef  string
		wantErr  bool
	}{
		{arg: "a.yaml#/definitions/x", wantFile: "a.yaml", wantRef: "#/definitions/x"},
		{arg: "a.yaml#", wantFile: "a.yaml", wantRef: "#"},
		{arg: "a.yaml", wantFile: "a.yaml", wantRef: "#"},
		{arg: "subdir/more.yaml#/definitions/more_id", wantFile: "subdir/more.yaml", wantRef: "#/definitions/more_id"},
		{arg: "#/definitions/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			file, ref, err := splitLocation(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, file)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}
