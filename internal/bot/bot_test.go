package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

func TestFormatReport_NoDefects(t *testing.T) {
	report := &entity.InspectionReport{
		Status:  "success",
		Summary: "Inspection completed. No defects detected.",
	}
	require.Equal(t, msgNoDefects, FormatReport(report))
}

func TestFormatReport_WithDefects(t *testing.T) {
	report := &entity.InspectionReport{
		Status:       "success",
		TotalDefects: 2,
		Summary:      "Inspection completed. 2 defects detected.",
		Detections: []entity.DefectAssessment{
			{
				Type:              entity.DefectCrack,
				Confidence:        0.91,
				Severity:          entity.SeverityHigh,
				SeverityReasoning: "Long crack with significant extent, potential structural concern",
			},
			{
				Type:              entity.DefectCorrosion,
				Confidence:        0.6,
				Severity:          entity.SeverityLow,
				SeverityReasoning: "Surface-level corrosion detected, monitor for progression",
			},
		},
	}

	got := FormatReport(report)
	require.Contains(t, got, "Найдено дефектов: 2")
	require.Contains(t, got, "1. трещина — High (уверенность 0.91)")
	require.Contains(t, got, "2. коррозия — Low (уверенность 0.60)")
	require.Contains(t, got, report.Summary)
}

func TestFormatReport_UnknownTypeKeepsRawName(t *testing.T) {
	report := &entity.InspectionReport{
		TotalDefects: 1,
		Detections: []entity.DefectAssessment{
			{Type: entity.DefectType("rust_stain"), Severity: entity.SeverityMedium},
		},
	}
	require.Contains(t, FormatReport(report), "rust_stain")
}
