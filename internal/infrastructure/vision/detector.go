//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"gocv.io/x/gocv"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

// GoCVDetector детектор дефектов на контурном анализе OpenCV.
// Кандидаты берутся из контуров после Canny, класс назначается
// эвристиками по форме и цвету области.
type GoCVDetector struct {
	MinAreaRatio          float64
	MaxSide               int
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxUnderexposedRatio  float64

	// ElongatedAspect порог вытянутости, выше которого область
	// классифицируется как трещина.
	ElongatedAspect float64
	// RustHueMax и RustSatMin границы среднего цвета области,
	// внутри которых область считается коррозией.
	RustHueMax float64
	RustSatMin float64
}

// NewGoCVDetector создаёт детектор с порогами по умолчанию.
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

// Detect находит дефекты на изображении. Координаты рамок возвращаются
// в пиксельном пространстве исходного изображения.
func (d *GoCVDetector) Detect(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	_ = ctx

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}
	if err := d.checkImageQuality(mat); err != nil {
		return nil, err
	}

	// Приводим изображение к стандартному размеру для стабильных порогов,
	// запоминая масштаб для пересчёта рамок обратно.
	scale := 1.0
	if mat.Cols() > d.MaxSide || mat.Rows() > d.MaxSide {
		scale = float64(d.MaxSide) / float64(maxInt(mat.Cols(), mat.Rows()))
		newW := int(float64(mat.Cols()) * scale)
		newH := int(float64(mat.Rows()) * scale)
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, 50, 150)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)

	minArea := float64(mat.Cols()*mat.Rows()) * d.MinAreaRatio
	detections := make([]entity.RawDetection, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		rect := gocv.BoundingRect(contour)
		area := float64(rect.Dx() * rect.Dy())
		if area < minArea || rect.Dx() == 0 || rect.Dy() == 0 {
			continue
		}

		defectType := d.classify(hsv, rect)
		confidence := d.confidence(contour, area)

		// Рамка пересчитывается в координаты исходного изображения.
		detections = append(detections, entity.RawDetection{
			Type:       defectType,
			Confidence: confidence,
			Box: entity.BoundingBox{
				X1: float64(rect.Min.X) / scale,
				Y1: float64(rect.Min.Y) / scale,
				X2: float64(rect.Max.X) / scale,
				Y2: float64(rect.Max.Y) / scale,
			},
		})
	}

	return detections, nil
}

// classify назначает класс дефекта по форме и среднему цвету области.
// Вытянутые области считаются трещинами, ржавые по цвету — коррозией,
// остальные — сколами.
func (d *GoCVDetector) classify(hsv gocv.Mat, rect image.Rectangle) entity.DefectType {
	aspect := float64(maxInt(rect.Dx(), rect.Dy())) / float64(minInt(rect.Dx(), rect.Dy()))
	if aspect >= d.ElongatedAspect {
		return entity.DefectCrack
	}

	region := hsv.Region(rect)
	defer region.Close()
	mean := region.Mean()

	if mean.Val1 <= d.RustHueMax && mean.Val2 >= d.RustSatMin {
		return entity.DefectCorrosion
	}
	return entity.DefectSpalling
}

// confidence выводит уверенность из заполненности рамки контуром.
func (d *GoCVDetector) confidence(contour gocv.PointVector, rectArea float64) float64 {
	if rectArea <= 0 {
		return 0.3
	}
	fill := gocv.ContourArea(contour) / rectArea
	confidence := 0.3 + 0.65*fill
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

// Highlight рисует прямоугольники вокруг дефектов и возвращает JPEG.
func (d *GoCVDetector) Highlight(img image.Image, detections []entity.RawDetection) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	green := color.RGBA{G: 255, A: 255}
	for _, detection := range detections {
		rect := image.Rect(
			int(detection.Box.X1), int(detection.Box.Y1),
			int(detection.Box.X2), int(detection.Box.Y2),
		)
		gocv.Rectangle(&mat, rect, green, 2)
	}

	out, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// checkImageQuality отсекает снимки, на которых контурный анализ
// даст мусор: слишком маленькие, размытые, пере- или недоэкспонированные.
func (d *GoCVDetector) checkImageQuality(mat gocv.Mat) error {
	if mat.Cols() < d.MinImageSide || mat.Rows() < d.MinImageSide {
		return fmt.Errorf("quality gate failed: image is too small (%dx%d)", mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	if edgeRatio := ratioOfMask(edges); edgeRatio < d.MinSharpnessEdgeRatio {
		return fmt.Errorf("quality gate failed: image is blurry (edge_ratio=%.4f)", edgeRatio)
	}

	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, 250, 255, gocv.ThresholdBinary)
	if overexposed := ratioOfMask(bright); overexposed > d.MaxOverexposedRatio {
		return fmt.Errorf("quality gate failed: overexposed image (ratio=%.4f)", overexposed)
	}

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	if underexposed := ratioOfMask(dark); underexposed > d.MaxUnderexposedRatio {
		return fmt.Errorf("quality gate failed: underexposed image (ratio=%.4f)", underexposed)
	}

	return nil
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
