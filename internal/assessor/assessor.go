package assessor

import (
	"math"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

// aspectEpsilon защищает деление при нулевой ширине или высоте рамки.
const aspectEpsilon = 1e-6

// Assessor детерминированный движок оценки серьёзности дефекта.
// Правила опираются только на геометрию рамки, размеры изображения
// и уверенность детектора: ни внешних вызовов, ни общего состояния.
type Assessor struct{}

// New создаёт движок оценки серьёзности.
func New() *Assessor {
	return &Assessor{}
}

// Assess возвращает уровень серьёзности и текст обоснования.
// Правила для каждого типа дефекта проверяются сверху вниз,
// срабатывает первое подходящее.
func (a *Assessor) Assess(defectType entity.DefectType, box entity.BoundingBox, imageWidth, imageHeight int, confidence float64) (entity.SeverityLevel, string) {
	imageArea := float64(imageWidth) * float64(imageHeight)
	if imageArea <= 0 {
		return entity.SeverityLow, "Degenerate image dimensions, defaulting to Low severity"
	}

	width := box.Width()
	height := box.Height()
	area := width * height

	relativeArea := area / imageArea
	aspectRatio := math.Max(width, height) / math.Max(math.Min(width, height), aspectEpsilon)
	maxDimension := math.Max(width, height)

	switch defectType {
	case entity.DefectCrack:
		return assessCrack(relativeArea, aspectRatio, maxDimension, confidence)
	case entity.DefectCorrosion:
		return assessCorrosion(relativeArea, area, confidence)
	case entity.DefectSpalling:
		return assessSpalling(relativeArea, area, confidence)
	default:
		return entity.SeverityMedium, "Unknown defect type, defaulting to Medium severity"
	}
}

// assessCrack оценивает трещину по протяжённости и доле площади.
func assessCrack(relativeArea, aspectRatio, maxDimension, confidence float64) (entity.SeverityLevel, string) {
	switch {
	case aspectRatio > 8 && relativeArea > 0.05:
		return entity.SeverityHigh, "Long crack with significant extent, potential structural concern"
	case relativeArea > 0.15:
		return entity.SeverityHigh, "Large crack covering substantial area, requires immediate attention"
	case maxDimension > 300 && aspectRatio > 5:
		return entity.SeverityHigh, "Extensive linear crack, may indicate structural movement"
	case relativeArea > 0.03 || (aspectRatio > 4 && maxDimension > 150):
		return entity.SeverityMedium, "Moderate crack requiring monitoring and potential repair"
	case confidence > 0.8 && relativeArea > 0.01:
		return entity.SeverityMedium, "Clearly visible crack, should be assessed by engineer"
	default:
		return entity.SeverityLow, "Small localized crack, likely superficial but should be documented"
	}
}

// assessCorrosion оценивает коррозию по площади поражения.
func assessCorrosion(relativeArea, area, confidence float64) (entity.SeverityLevel, string) {
	switch {
	case relativeArea > 0.12:
		return entity.SeverityHigh, "Extensive corrosion with likely material degradation, immediate assessment needed"
	case area > 50000 && confidence > 0.7:
		return entity.SeverityHigh, "Large corroded area indicating advanced deterioration"
	case relativeArea > 0.04:
		return entity.SeverityMedium, "Moderate corrosion present, risk of progression if untreated"
	case area > 15000:
		return entity.SeverityMedium, "Significant corroded area requiring remediation planning"
	default:
		return entity.SeverityLow, "Surface-level corrosion detected, monitor for progression"
	}
}

// assessSpalling оценивает скол по площади и признакам глубины.
func assessSpalling(relativeArea, area, confidence float64) (entity.SeverityLevel, string) {
	switch {
	case relativeArea > 0.10:
		return entity.SeverityHigh, "Extensive spalling, possible reinforcement exposure, structural integrity at risk"
	case area > 40000 && confidence > 0.75:
		return entity.SeverityHigh, "Large spalled region indicating concrete deterioration, urgent repair required"
	case relativeArea > 0.03:
		return entity.SeverityMedium, "Moderate spalling with material loss, repair recommended"
	case area > 10000:
		return entity.SeverityMedium, "Significant surface spalling, assess for underlying damage"
	default:
		return entity.SeverityLow, "Minor surface spalling detected, document and monitor"
	}
}
