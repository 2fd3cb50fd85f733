package relevance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsValid(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"defaults", DefaultWeights(), false},
		{"single factor", Weights{Location: 1.0}, false},
		{"sums low", Weights{Location: 0.5}, true},
		{"sums high", Weights{Location: 0.6, Demographics: 0.6}, true},
		{"negative", Weights{Location: 1.2, Income: -0.2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
location: 0.4
demographics: 0.2
interests: 0.1
income: 0.1
veteran: 0.1
category: 0.1
`), 0o644))

	w, err := LoadWeights(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, w.Location, 0.001)
	assert.InDelta(t, 0.1, w.Category, 0.001)
}

func TestLoadWeightsInvalidTotal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location: 0.4\n"), 0o644))

	_, err := LoadWeights(path)
	assert.Error(t, err)
}

func TestLoadWeightsMissingFile(t *testing.T) {
	_, err := LoadWeights(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
