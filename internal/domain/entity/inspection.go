package entity

// Description инженерное описание дефекта и рекомендация по ремонту.
type Description struct {
	Explanation       string `json:"explanation"`
	RecommendedAction string `json:"recommended_action"`
}

// DefectAssessment итоговая оценка одного дефекта.
// Собирается пайплайном один раз и после этого не изменяется.
type DefectAssessment struct {
	Type              DefectType    `json:"defect_type"`
	Confidence        float64       `json:"confidence"`
	Severity          SeverityLevel `json:"severity"`
	SeverityReasoning string        `json:"severity_reasoning"`
	Box               BoundingBox   `json:"bounding_box"`
	Explanation       string        `json:"explanation"`
	RecommendedAction string        `json:"recommended_action"`

	// ExplanationFallback выставляется, когда описание подставлено
	// из детерминированного запасного генератора после сбоя основного.
	ExplanationFallback bool `json:"explanation_fallback,omitempty"`
}

// InspectionReport итоговый отчёт по одному изображению.
// Порядок Detections совпадает с порядком выдачи детектора.
type InspectionReport struct {
	Status       string             `json:"status"`
	TotalDefects int                `json:"total_defects"`
	Summary      string             `json:"summary"`
	Detections   []DefectAssessment `json:"detections"`
}
