package port

import (
	"context"
	"image"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

// DefectDescriber интерфейс генератора инженерных описаний дефектов
type DefectDescriber interface {
	// Describe генерирует описание и рекомендацию для вырезанной
	// области дефекта с учётом типа и серьёзности
	Describe(ctx context.Context, crop image.Image, defectType entity.DefectType, severity entity.SeverityLevel) (*entity.Description, error)
}
