package relevance

import (
	"math"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Weights are the per-factor weights of the scorer. They must sum to 1.
type Weights struct {
	Location     float64 `yaml:"location"`
	Demographics float64 `yaml:"demographics"`
	Interests    float64 `yaml:"interests"`
	Income       float64 `yaml:"income"`
	Veteran      float64 `yaml:"veteran"`
	Category     float64 `yaml:"category"`
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		Location:     0.25,
		Demographics: 0.20,
		Interests:    0.20,
		Income:       0.15,
		Veteran:      0.10,
		Category:     0.10,
	}
}

// Validate checks that every weight is non-negative and the total is 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"location":     w.Location,
		"demographics": w.Demographics,
		"interests":    w.Interests,
		"income":       w.Income,
		"veteran":      w.Veteran,
		"category":     w.Category,
	} {
		if v < 0 {
			return eris.Errorf("relevance: weight %q is negative", name)
		}
	}
	total := w.Location + w.Demographics + w.Interests + w.Income + w.Veteran + w.Category
	if math.Abs(total-1) > 0.001 {
		return eris.Errorf("relevance: weights sum to %.3f, want 1.000", total)
	}
	return nil
}

// LoadWeights reads a weights override file. Fields omitted from the
// file default to zero, so override files must spell out all six.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, eris.Wrapf(err, "relevance: read weights file %s", path)
	}

	var w Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, eris.Wrapf(err, "relevance: parse weights file %s", path)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}
