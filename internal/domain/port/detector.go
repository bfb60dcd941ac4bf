package port

import (
	"context"
	"image"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

// DefectDetector интерфейс детектора дефектов
type DefectDetector interface {
	// Detect находит дефекты на изображении и возвращает их
	// в порядке выдачи модели
	Detect(ctx context.Context, img image.Image) ([]entity.RawDetection, error)

	// Highlight создаёт изображение с подсветкой дефектов
	Highlight(img image.Image, detections []entity.RawDetection) ([]byte, error)
}
