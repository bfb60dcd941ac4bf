package entity

// SeverityLevel уровень серьёзности дефекта.
type SeverityLevel string

const (
	SeverityLow    SeverityLevel = "Low"
	SeverityMedium SeverityLevel = "Medium"
	SeverityHigh   SeverityLevel = "High"
)

// Rank возвращает порядковый номер уровня: Low < Medium < High.
// Используется для группировки в сводке отчёта.
func (s SeverityLevel) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}
