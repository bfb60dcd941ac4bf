package assessor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

func box(w, h float64) entity.BoundingBox {
	return entity.BoundingBox{X1: 0, Y1: 0, X2: w, Y2: h}
}

func TestAssess_Crack(t *testing.T) {
	a := New()

	tests := []struct {
		name          string
		box           entity.BoundingBox
		imgW, imgH    int
		confidence    float64
		wantSeverity  entity.SeverityLevel
		wantReasoning string
	}{
		{
			// aspect 8.1, relArea 0.0506: первое правило
			name: "long crack with significant extent", box: box(243, 30), imgW: 480, imgH: 300, confidence: 0.5,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Long crack with significant extent, potential structural concern",
		},
		{
			// aspect ровно 8 и relArea ровно 0.05: строгие неравенства,
			// первое правило не срабатывает, падаем до порога relArea>0.03
			name: "boundary aspect 8 relative area 0.05", box: box(240, 30), imgW: 480, imgH: 300, confidence: 0.5,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Moderate crack requiring monitoring and potential repair",
		},
		{
			// relArea 0.151 при низкой вытянутости
			name: "large crack by area", box: box(200, 121), imgW: 400, imgH: 400, confidence: 0.5,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Large crack covering substantial area, requires immediate attention",
		},
		{
			// maxDimension 400 и aspect 20 при relArea 0.026
			name: "extensive linear crack", box: box(400, 20), imgW: 640, imgH: 480, confidence: 0.9,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Extensive linear crack, may indicate structural movement",
		},
		{
			// aspect 14 и maxDimension 280: вторая половина OR-условия
			name: "moderate crack by elongation", box: box(280, 20), imgW: 640, imgH: 480, confidence: 0.5,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Moderate crack requiring monitoring and potential repair",
		},
		{
			name: "clearly visible crack by confidence", box: box(100, 50), imgW: 640, imgH: 480, confidence: 0.85,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Clearly visible crack, should be assessed by engineer",
		},
		{
			name: "small localized crack", box: box(50, 40), imgW: 640, imgH: 480, confidence: 0.5,
			wantSeverity: entity.SeverityLow, wantReasoning: "Small localized crack, likely superficial but should be documented",
		},
		{
			// нулевая высота рамки не должна ронять движок
			name: "zero height box", box: box(100, 0), imgW: 640, imgH: 480, confidence: 0.9,
			wantSeverity: entity.SeverityLow, wantReasoning: "Small localized crack, likely superficial but should be documented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, reasoning := a.Assess(entity.DefectCrack, tt.box, tt.imgW, tt.imgH, tt.confidence)
			require.Equal(t, tt.wantSeverity, severity)
			require.Equal(t, tt.wantReasoning, reasoning)
		})
	}
}

func TestAssess_Corrosion(t *testing.T) {
	a := New()

	tests := []struct {
		name          string
		box           entity.BoundingBox
		imgW, imgH    int
		confidence    float64
		wantSeverity  entity.SeverityLevel
		wantReasoning string
	}{
		{
			// relArea 0.2: первое правило срабатывает независимо от уверенности
			name: "extensive corrosion ignores confidence", box: box(200, 200), imgW: 500, imgH: 400, confidence: 0.1,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Extensive corrosion with likely material degradation, immediate assessment needed",
		},
		{
			// relArea ровно 0.12: строгое неравенство, падаем до порога 0.04
			name: "boundary relative area 0.12", box: box(200, 120), imgW: 500, imgH: 400, confidence: 0.9,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Moderate corrosion present, risk of progression if untreated",
		},
		{
			name: "large corroded area with high confidence", box: box(300, 200), imgW: 2000, imgH: 2000, confidence: 0.75,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Large corroded area indicating advanced deterioration",
		},
		{
			// conf ровно 0.7 не проходит второе правило
			name: "boundary confidence 0.7", box: box(300, 200), imgW: 2000, imgH: 2000, confidence: 0.7,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Significant corroded area requiring remediation planning",
		},
		{
			name: "surface level corrosion", box: box(100, 100), imgW: 2000, imgH: 2000, confidence: 0.9,
			wantSeverity: entity.SeverityLow, wantReasoning: "Surface-level corrosion detected, monitor for progression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, reasoning := a.Assess(entity.DefectCorrosion, tt.box, tt.imgW, tt.imgH, tt.confidence)
			require.Equal(t, tt.wantSeverity, severity)
			require.Equal(t, tt.wantReasoning, reasoning)
		})
	}
}

func TestAssess_Spalling(t *testing.T) {
	a := New()

	tests := []struct {
		name          string
		box           entity.BoundingBox
		imgW, imgH    int
		confidence    float64
		wantSeverity  entity.SeverityLevel
		wantReasoning string
	}{
		{
			// relArea 0.11: первое правило важнее второго
			name: "extensive spalling by relative area", box: box(350, 315), imgW: 1000, imgH: 1000, confidence: 0.5,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Extensive spalling, possible reinforcement exposure, structural integrity at risk",
		},
		{
			name: "large spalled region", box: box(300, 150), imgW: 1500, imgH: 1500, confidence: 0.8,
			wantSeverity: entity.SeverityHigh, wantReasoning: "Large spalled region indicating concrete deterioration, urgent repair required",
		},
		{
			// area ровно 40000: строгое неравенство
			name: "boundary area 40000", box: box(200, 200), imgW: 1500, imgH: 1500, confidence: 0.8,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Significant surface spalling, assess for underlying damage",
		},
		{
			name: "moderate spalling by relative area", box: box(250, 200), imgW: 1000, imgH: 1000, confidence: 0.2,
			wantSeverity: entity.SeverityMedium, wantReasoning: "Moderate spalling with material loss, repair recommended",
		},
		{
			name: "minor surface spalling", box: box(80, 80), imgW: 1000, imgH: 1000, confidence: 0.9,
			wantSeverity: entity.SeverityLow, wantReasoning: "Minor surface spalling detected, document and monitor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, reasoning := a.Assess(entity.DefectSpalling, tt.box, tt.imgW, tt.imgH, tt.confidence)
			require.Equal(t, tt.wantSeverity, severity)
			require.Equal(t, tt.wantReasoning, reasoning)
		})
	}
}

func TestAssess_UnknownDefectType(t *testing.T) {
	a := New()

	severity, reasoning := a.Assess(entity.DefectType("rust_stain"), box(100, 100), 640, 480, 0.9)
	require.Equal(t, entity.SeverityMedium, severity)
	require.Equal(t, "Unknown defect type, defaulting to Medium severity", reasoning)
}

func TestAssess_DegenerateImage(t *testing.T) {
	a := New()

	severity, reasoning := a.Assess(entity.DefectCrack, box(100, 100), 0, 480, 0.9)
	require.Equal(t, entity.SeverityLow, severity)
	require.Equal(t, "Degenerate image dimensions, defaulting to Low severity", reasoning)
}

func TestAssess_Deterministic(t *testing.T) {
	a := New()
	b := box(243, 30)

	s1, r1 := a.Assess(entity.DefectCrack, b, 480, 300, 0.77)
	s2, r2 := a.Assess(entity.DefectCrack, b, 480, 300, 0.77)
	require.Equal(t, s1, s2)
	require.Equal(t, r1, r2)
}
