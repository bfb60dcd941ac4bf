//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

// GoCVDetector заглушка детектора для сборки без OpenCV.
type GoCVDetector struct {
	MinAreaRatio          float64
	MaxSide               int
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxUnderexposedRatio  float64
	ElongatedAspect       float64
	RustHueMax            float64
	RustSatMin            float64
}

// NewGoCVDetector создаёт детектор-заглушку (без OpenCV).
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{
		MinAreaRatio:          0.001,
		MaxSide:               1024,
		MinImageSide:          200,
		MinSharpnessEdgeRatio: 0.008,
		MaxOverexposedRatio:   0.35,
		MaxUnderexposedRatio:  0.45,
		ElongatedAspect:       4.0,
		RustHueMax:            25,
		RustSatMin:            60,
	}
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) Detect(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	_ = ctx
	_ = img
	return nil, errors.New("gocv build tag is not enabled")
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) Highlight(img image.Image, detections []entity.RawDetection) ([]byte, error) {
	_ = img
	_ = detections
	return nil, errors.New("gocv build tag is not enabled")
}
