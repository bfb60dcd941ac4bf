package describer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

func TestRuleBased_KnownCombination(t *testing.T) {
	d := NewRuleBased()

	desc, err := d.Describe(context.Background(), nil, entity.DefectCrack, entity.SeverityHigh)
	require.NoError(t, err)
	require.Equal(t,
		"Significant linear discontinuity detected in structural element. The crack extent suggests potential load path disruption or material fatigue. Location and propagation pattern indicate need for immediate structural assessment.",
		desc.Explanation)
	require.Contains(t, desc.RecommendedAction, "licensed structural engineer")
}

func TestRuleBased_CoversAllTypesAndSeverities(t *testing.T) {
	d := NewRuleBased()
	ctx := context.Background()

	for _, defectType := range []entity.DefectType{entity.DefectCrack, entity.DefectCorrosion, entity.DefectSpalling} {
		for _, severity := range []entity.SeverityLevel{entity.SeverityLow, entity.SeverityMedium, entity.SeverityHigh} {
			desc, err := d.Describe(ctx, nil, defectType, severity)
			require.NoError(t, err)
			require.NotEmpty(t, desc.Explanation)
			require.NotEmpty(t, desc.RecommendedAction)
		}
	}
}

func TestRuleBased_UnknownTypeFallsBackToGeneric(t *testing.T) {
	d := NewRuleBased()

	desc, err := d.Describe(context.Background(), nil, entity.DefectType("rust_stain"), entity.SeverityMedium)
	require.NoError(t, err)
	require.Equal(t, "Medium severity rust_stain detected requiring engineering assessment.", desc.Explanation)
	require.Equal(t, "Consult with licensed structural engineer for evaluation and repair recommendations.", desc.RecommendedAction)
}

func TestRuleBased_Deterministic(t *testing.T) {
	d := NewRuleBased()
	ctx := context.Background()

	first, err := d.Describe(ctx, nil, entity.DefectSpalling, entity.SeverityLow)
	require.NoError(t, err)
	second, err := d.Describe(ctx, nil, entity.DefectSpalling, entity.SeverityLow)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
