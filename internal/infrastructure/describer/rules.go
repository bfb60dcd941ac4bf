package describer

import (
	"context"
	"fmt"
	"image"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/port"
)

// RuleBased детерминированный генератор описаний без модели.
// Один и тот же вход всегда даёт один и тот же текст.
type RuleBased struct{}

// NewRuleBased создаёт детерминированный генератор описаний.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Describe возвращает заранее подготовленный текст по типу и серьёзности.
// Вырезанная область не используется.
func (d *RuleBased) Describe(_ context.Context, _ image.Image, defectType entity.DefectType, severity entity.SeverityLevel) (*entity.Description, error) {
	if bySeverity, ok := catalog[defectType]; ok {
		if description, ok := bySeverity[severity]; ok {
			out := description
			return &out, nil
		}
	}

	return &entity.Description{
		Explanation:       fmt.Sprintf("%s severity %s detected requiring engineering assessment.", severity, defectType),
		RecommendedAction: "Consult with licensed structural engineer for evaluation and repair recommendations.",
	}, nil
}

// catalog тексты описаний и рекомендаций по типу дефекта и серьёзности.
var catalog = map[entity.DefectType]map[entity.SeverityLevel]entity.Description{
	entity.DefectCrack: {
		entity.SeverityHigh: {
			Explanation:       "Significant linear discontinuity detected in structural element. The crack extent suggests potential load path disruption or material fatigue. Location and propagation pattern indicate need for immediate structural assessment.",
			RecommendedAction: "Conduct detailed structural evaluation including load capacity analysis. Consider temporary shoring if needed. Implement crack monitoring system and develop repair specifications with licensed structural engineer.",
		},
		entity.SeverityMedium: {
			Explanation:       "Moderate crack formation observed in structural component. The defect exhibits characteristics of early-stage material degradation or settlement-induced stress. Current extent suggests localized rather than systemic issue.",
			RecommendedAction: "Install crack width monitoring gauges. Perform material testing to determine cause. Schedule repair using appropriate epoxy injection or routing and sealing within next maintenance cycle.",
		},
		entity.SeverityLow: {
			Explanation:       "Minor surface crack detected. Defect appears superficial with limited propagation. Likely caused by shrinkage, thermal stress, or minor settlement. No immediate structural concern evident.",
			RecommendedAction: "Document crack location and dimensions. Apply surface sealant to prevent moisture ingress. Schedule for re-inspection in 6-12 months to monitor for progression.",
		},
	},
	entity.DefectCorrosion: {
		entity.SeverityHigh: {
			Explanation:       "Advanced corrosion detected with evidence of significant material loss. The deterioration pattern suggests prolonged exposure to corrosive environment. Potential for reduced load-bearing capacity and progressive structural degradation.",
			RecommendedAction: "Immediate structural assessment required. Perform material thickness testing and load capacity evaluation. Implement corrosion protection system. Plan for member replacement or structural reinforcement as engineering analysis dictates.",
		},
		entity.SeverityMedium: {
			Explanation:       "Moderate corrosion identified on structural surface. Observable oxidation with partial material degradation. Current state indicates active corrosion process requiring intervention to prevent acceleration.",
			RecommendedAction: "Remove corrosion products and assess remaining material thickness. Apply protective coating system per SSPC standards. Improve drainage or ventilation to eliminate moisture source. Monitor quarterly for progression.",
		},
		entity.SeverityLow: {
			Explanation:       "Surface-level corrosion detected with minimal material loss. Early-stage oxidation present, primarily affecting protective coating or superficial material layers. Structural integrity currently maintained.",
			RecommendedAction: "Clean affected area and apply corrosion inhibitor. Restore protective coating system. Address moisture source if identified. Include in routine inspection schedule.",
		},
	},
	entity.DefectSpalling: {
		entity.SeverityHigh: {
			Explanation:       "Extensive concrete spalling with visible material loss detected. Defect severity suggests potential reinforcement exposure or advanced deterioration. Pattern indicates freeze-thaw damage, corrosion-induced pressure, or alkali-silica reaction.",
			RecommendedAction: "Urgent engineering assessment required. Remove loose material and inspect for reinforcement corrosion. Perform concrete strength testing. Execute structural repair using compatible materials per ACI 546 guidelines. Address root cause of deterioration.",
		},
		entity.SeverityMedium: {
			Explanation:       "Moderate spalling observed with measurable concrete delamination. Surface layer failure evident, potentially due to reinforcement corrosion, freeze-thaw cycles, or construction defects. Underlying structure requires verification.",
			RecommendedAction: "Remove delaminated concrete and assess extent of damage. Test for chloride content and carbonation depth. Repair using polymer-modified concrete or appropriate patching material. Implement preventive measures for underlying cause.",
		},
		entity.SeverityLow: {
			Explanation:       "Minor surface spalling detected affecting concrete cover. Limited material loss observed, likely due to localized impact, minor freeze-thaw action, or finishing issues. Structural reinforcement not compromised.",
			RecommendedAction: "Remove loose material and clean surface. Apply concrete patching compound for affected areas. Seal surface to prevent moisture penetration. Monitor during regular inspections.",
		},
	},
}

// Проверка реализации интерфейса
var _ port.DefectDescriber = (*RuleBased)(nil)
