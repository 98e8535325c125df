package inference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nexgen/riskops/internal/risk"
	"nexgen/riskops/internal/risk/feature"
)

func validArtifact() *Artifact {
	return &Artifact{
		ModelID:  "delay_risk",
		Version:  "1.0.0",
		Kind:     ArtifactKindLogistic,
		Features: []string{"x1", "x2"},
		Weights:  map[string]float64{"x1": 0.5, "x2": -0.25},
	}
}

func TestNewLogisticModel(t *testing.T) {
	m, err := NewLogisticModel(validArtifact())
	require.NoError(t, err)
	require.Equal(t, "delay_risk@1.0.0", m.Version())
	require.Equal(t, []string{"x1", "x2"}, m.FeatureSchema())
}

func TestNewLogisticModelRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{"unknown kind", func(a *Artifact) { a.Kind = "gbdt" }},
		{"empty version", func(a *Artifact) { a.Version = "" }},
		{"empty features", func(a *Artifact) { a.Features = nil }},
		{"weight count mismatch", func(a *Artifact) { delete(a.Weights, "x2") }},
		{"weight name mismatch", func(a *Artifact) {
			delete(a.Weights, "x2")
			a.Weights["x3"] = 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art := validArtifact()
			tt.mutate(art)
			_, err := NewLogisticModel(art)
			require.Error(t, err)
			require.True(t, risk.IsModelLoad(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.True(t, risk.IsModelLoad(err))
	require.Equal(t, "MODEL_LOAD", risk.ErrKind(err))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, risk.IsModelLoad(err))
}

func TestLoadValidFile(t *testing.T) {
	doc := `{
		"model_id": "delay_risk",
		"version": "2.1",
		"kind": "logistic",
		"features": ["x1"],
		"weights": {"x1": 1.0},
		"intercept": 0
	}`
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "delay_risk@2.1", m.Version())
}

func TestParseFromReader(t *testing.T) {
	m, err := Parse(strings.NewReader(`{"model_id":"m","version":"1","kind":"logistic","features":["a"],"weights":{"a":2},"intercept":-1}`))
	require.NoError(t, err)

	vec := feature.New([]string{"a"}, map[string]float64{"a": 0.5})
	p, err := m.PredictProbability(vec)
	require.NoError(t, err)
	// sigmoid(-1 + 2*0.5) = sigmoid(0) = 0.5
	require.InDelta(t, 0.5, p, 1e-9)
}

func TestPredictProbabilityRange(t *testing.T) {
	m, err := NewLogisticModel(&Artifact{
		ModelID:   "m",
		Version:   "1",
		Kind:      ArtifactKindLogistic,
		Features:  []string{"x"},
		Weights:   map[string]float64{"x": 1000},
		Intercept: 500,
	})
	require.NoError(t, err)

	for _, x := range []float64{-1e6, -1, 0, 1, 1e6} {
		vec := feature.New([]string{"x"}, map[string]float64{"x": x})
		p, err := m.PredictProbability(vec)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 1.0)
	}
}

func TestPredictProbabilityDeterministic(t *testing.T) {
	m, err := NewLogisticModel(validArtifact())
	require.NoError(t, err)

	vec := feature.New([]string{"x1", "x2"}, map[string]float64{"x1": 1.5, "x2": -2})
	p1, err := m.PredictProbability(vec)
	require.NoError(t, err)
	p2, err := m.PredictProbability(vec)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}

func TestPredictProbabilityMissingFeature(t *testing.T) {
	m, err := NewLogisticModel(validArtifact())
	require.NoError(t, err)

	vec := feature.New([]string{"x1"}, map[string]float64{"x1": 1})
	_, err = m.PredictProbability(vec)
	require.Error(t, err)
	require.True(t, risk.IsFeatureValidation(err))
	require.Equal(t, "FEATURE_VALIDATION", risk.ErrKind(err))
}

func TestValidateVector(t *testing.T) {
	m, err := NewLogisticModel(validArtifact())
	require.NoError(t, err)

	full := feature.New([]string{"x1", "x2"}, map[string]float64{"x1": 1, "x2": 2})
	require.NoError(t, ValidateVector(m, full))

	partial := feature.New([]string{"x2"}, map[string]float64{"x2": 2})
	err = ValidateVector(m, partial)
	require.Error(t, err)

	var verr *risk.FeatureValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"x1"}, verr.Missing)
}
