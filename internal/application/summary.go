package app

import (
	"fmt"
	"strings"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

// summaryNoDefects фиксированный текст сводки для пустого отчёта.
const summaryNoDefects = "Inspection completed. No defects detected."

// Summarize собирает текстовую сводку по списку оценок: общее число
// дефектов, счётчики по типам и по уровням серьёзности (High, Medium, Low),
// плюс призыв к срочной оценке при наличии High.
func Summarize(assessments []entity.DefectAssessment) string {
	total := len(assessments)
	if total == 0 {
		return summaryNoDefects
	}

	severityCounts := make(map[entity.SeverityLevel]int)
	defectCounts := make(map[string]int)
	var defectOrder []string // порядок первого появления типа в отчёте

	for _, a := range assessments {
		severityCounts[a.Severity]++
		name := capitalize(string(a.Type))
		if _, seen := defectCounts[name]; !seen {
			defectOrder = append(defectOrder, name)
		}
		defectCounts[name]++
	}

	parts := []string{fmt.Sprintf("Inspection completed. %d defect%s detected.", total, pluralSuffix(total))}

	typeList := make([]string, 0, len(defectOrder))
	for _, name := range defectOrder {
		count := defectCounts[name]
		typeList = append(typeList, fmt.Sprintf("%d %s%s", count, name, pluralSuffix(count)))
	}
	parts = append(parts, fmt.Sprintf("Types: %s.", strings.Join(typeList, ", ")))

	var severityList []string
	for _, level := range []entity.SeverityLevel{entity.SeverityHigh, entity.SeverityMedium, entity.SeverityLow} {
		if count := severityCounts[level]; count > 0 {
			severityList = append(severityList, fmt.Sprintf("%d %s", count, level))
		}
	}
	parts = append(parts, fmt.Sprintf("Severity: %s.", strings.Join(severityList, ", ")))

	if severityCounts[entity.SeverityHigh] > 0 {
		parts = append(parts, "Immediate engineering assessment recommended for high severity defects.")
	}

	return strings.Join(parts, " ")
}

func pluralSuffix(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
