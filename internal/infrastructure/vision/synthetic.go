package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/port"
)

// SyntheticDetector детерминированная заглушка детектора для демо и тестов.
// Рамки строятся от размеров изображения, классы назначаются хэшем
// координат рамки. В боевом режиме не используется.
type SyntheticDetector struct{}

// NewSyntheticDetector создаёт синтетический детектор.
func NewSyntheticDetector() *SyntheticDetector {
	return &SyntheticDetector{}
}

// Detect возвращает два псевдодефекта с детерминированными рамками:
// одну вытянутую область и одну компактную.
func (d *SyntheticDetector) Detect(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	_ = ctx

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return nil, errors.New("empty image")
	}

	boxes := []entity.BoundingBox{
		{X1: 0.10 * w, Y1: 0.20 * h, X2: 0.55 * w, Y2: 0.26 * h},
		{X1: 0.60 * w, Y1: 0.50 * h, X2: 0.85 * w, Y2: 0.80 * h},
	}

	detections := make([]entity.RawDetection, 0, len(boxes))
	for _, box := range boxes {
		detections = append(detections, entity.RawDetection{
			Type:       classFromBox(box),
			Confidence: confidenceFromBox(box),
			Box:        box,
		})
	}

	return detections, nil
}

// Highlight рисует рамки дефектов средствами стандартной библиотеки
// и возвращает JPEG.
func (d *SyntheticDetector) Highlight(img image.Image, detections []entity.RawDetection) ([]byte, error) {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	green := color.RGBA{G: 255, A: 255}
	for _, detection := range detections {
		rect := image.Rect(
			int(detection.Box.X1), int(detection.Box.Y1),
			int(detection.Box.X2), int(detection.Box.Y2),
		).Intersect(bounds)
		drawBox(canvas, rect, green, 2)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func drawBox(dst *image.RGBA, rect image.Rectangle, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetRGBA(x, rect.Min.Y+t, c)
			dst.SetRGBA(x, rect.Max.Y-1-t, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.SetRGBA(rect.Min.X+t, y, c)
			dst.SetRGBA(rect.Max.X-1-t, y, c)
		}
	}
}

func hashBox(box entity.BoundingBox) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%.0f:%.0f:%.0f:%.0f", box.X1, box.Y1, box.X2, box.Y2)
	return h.Sum32()
}

func classFromBox(box entity.BoundingBox) entity.DefectType {
	types := []entity.DefectType{entity.DefectCrack, entity.DefectCorrosion, entity.DefectSpalling}
	return types[hashBox(box)%3]
}

func confidenceFromBox(box entity.BoundingBox) float64 {
	return 0.55 + float64(hashBox(box)%40)/100
}

// Проверка реализации интерфейса
var _ port.DefectDetector = (*SyntheticDetector)(nil)
