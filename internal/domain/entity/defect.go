package entity

import "strings"

// DefectType тип структурного дефекта.
type DefectType string

const (
	DefectCrack     DefectType = "crack"     // трещина
	DefectCorrosion DefectType = "corrosion" // коррозия
	DefectSpalling  DefectType = "spalling"  // скол/отслоение бетона
)

// ParseDefectType нормализует имя класса от детектора.
// Неизвестные имена не считаются ошибкой: движок оценки серьёзности
// обрабатывает их отдельной веткой.
func ParseDefectType(s string) DefectType {
	return DefectType(strings.ToLower(strings.TrimSpace(s)))
}

// BoundingBox рамка дефекта в пикселях исходного изображения, x1<=x2, y1<=y2.
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width возвращает ширину рамки.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height возвращает высоту рамки.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Area возвращает площадь рамки в пикселях.
func (b BoundingBox) Area() float64 { return b.Width() * b.Height() }

// RawDetection сырое срабатывание детектора: класс, уверенность, рамка.
// Создаётся детектором один раз и дальше не изменяется.
type RawDetection struct {
	Type       DefectType  `json:"defect_type"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"bounding_box"`
}
