package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"math"
	"sync"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/assessor"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/port"
)

// Ошибки пайплайна. Транспортный слой выбирает по ним HTTP-статус.
var (
	ErrEmptyImage = errors.New("empty image data")
	ErrDecode     = errors.New("failed to decode image")
	ErrDetection  = errors.New("defect detection failed")
)

// cropPadding отступ в пикселях вокруг рамки дефекта при вырезке области
// для генератора описаний.
const cropPadding = 20

// InspectionConfig таймауты обращений к тяжёлым моделям.
type InspectionConfig struct {
	DetectTimeout   time.Duration
	DescribeTimeout time.Duration
}

// DefaultInspectionConfig возвращает конфигурацию по умолчанию.
func DefaultInspectionConfig() InspectionConfig {
	return InspectionConfig{
		DetectTimeout:   30 * time.Second,
		DescribeTimeout: 15 * time.Second,
	}
}

// InspectionService пайплайн инспекции: декодирование, детекция,
// оценка серьёзности, описание и сводка в одном отчёте.
type InspectionService struct {
	detector  port.DefectDetector
	describer port.DefectDescriber
	fallback  port.DefectDescriber
	assessor  *assessor.Assessor
	cfg       InspectionConfig

	// Модели не реентерабельны: доступ к каждому ресурсу сериализуем.
	detectorMu  sync.Mutex
	describerMu sync.Mutex
}

// NewInspectionService создаёт пайплайн. describer — основной генератор
// описаний, fallback — детерминированный запасной, подставляемый при
// сбое основного для отдельного дефекта.
func NewInspectionService(detector port.DefectDetector, describer, fallback port.DefectDescriber, cfg InspectionConfig) *InspectionService {
	if cfg.DetectTimeout <= 0 {
		cfg.DetectTimeout = DefaultInspectionConfig().DetectTimeout
	}
	if cfg.DescribeTimeout <= 0 {
		cfg.DescribeTimeout = DefaultInspectionConfig().DescribeTimeout
	}

	return &InspectionService{
		detector:  detector,
		describer: describer,
		fallback:  fallback,
		assessor:  assessor.New(),
		cfg:       cfg,
	}
}

// Inspect выполняет полную инспекцию изображения и возвращает отчёт.
// Ошибки декодирования и детекции фатальны для запроса; сбой описания
// одного дефекта закрывается запасным текстом и не роняет отчёт.
func (s *InspectionService) Inspect(ctx context.Context, imageData []byte) (*entity.InspectionReport, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	detections, err := s.detect(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}

	assessments := make([]entity.DefectAssessment, 0, len(detections))
	for _, detection := range detections {
		// При отмене запроса не начинаем новые обращения к моделям.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		assessments = append(assessments, s.processDetection(ctx, img, detection))
	}

	return &entity.InspectionReport{
		Status:       "success",
		TotalDefects: len(assessments),
		Summary:      Summarize(assessments),
		Detections:   assessments,
	}, nil
}

// Highlight возвращает копию изображения с подсветкой дефектов из отчёта.
func (s *InspectionService) Highlight(imageData []byte, report *entity.InspectionReport) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	detections := make([]entity.RawDetection, 0, len(report.Detections))
	for _, a := range report.Detections {
		detections = append(detections, entity.RawDetection{
			Type:       a.Type,
			Confidence: a.Confidence,
			Box:        a.Box,
		})
	}

	return s.detector.Highlight(img, detections)
}

// detect вызывает детектор под мьютексом и с таймаутом.
func (s *InspectionService) detect(ctx context.Context, img image.Image) ([]entity.RawDetection, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.DetectTimeout)
	defer cancel()

	s.detectorMu.Lock()
	defer s.detectorMu.Unlock()

	return s.detector.Detect(callCtx, img)
}

// processDetection проводит одно срабатывание через оценку серьёзности
// и генерацию описания. Детекции независимы друг от друга.
func (s *InspectionService) processDetection(ctx context.Context, img image.Image, detection entity.RawDetection) entity.DefectAssessment {
	bounds := img.Bounds()
	severity, reasoning := s.assessor.Assess(detection.Type, detection.Box, bounds.Dx(), bounds.Dy(), detection.Confidence)

	crop := cropRegion(img, detection.Box)
	description, usedFallback := s.describe(ctx, crop, detection.Type, severity)

	return entity.DefectAssessment{
		Type:                detection.Type,
		Confidence:          round3(detection.Confidence),
		Severity:            severity,
		SeverityReasoning:   reasoning,
		Box:                 detection.Box,
		Explanation:         description.Explanation,
		RecommendedAction:   description.RecommendedAction,
		ExplanationFallback: usedFallback,
	}
}

// describe вызывает основной генератор описаний, а при его сбое
// подставляет запасной детерминированный текст.
func (s *InspectionService) describe(ctx context.Context, crop image.Image, defectType entity.DefectType, severity entity.SeverityLevel) (*entity.Description, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.DescribeTimeout)
	defer cancel()

	s.describerMu.Lock()
	description, err := s.describer.Describe(callCtx, crop, defectType, severity)
	s.describerMu.Unlock()
	if err == nil {
		return description, false
	}

	log.Printf("Describer failed for %s (%s): %v, using fallback", defectType, severity, err)

	description, err = s.fallback.Describe(ctx, crop, defectType, severity)
	if err != nil {
		// Запасной генератор детерминированный и в норме не ошибается.
		return &entity.Description{
			Explanation:       fmt.Sprintf("%s severity %s detected requiring engineering assessment.", severity, defectType),
			RecommendedAction: "Consult with licensed structural engineer for evaluation and repair recommendations.",
		}, true
	}

	return description, true
}

// cropRegion вырезает область дефекта с отступом, зажимая её
// в границы изображения.
func cropRegion(img image.Image, box entity.BoundingBox) image.Image {
	bounds := img.Bounds()
	x1 := maxInt(bounds.Min.X, int(box.X1)-cropPadding)
	y1 := maxInt(bounds.Min.Y, int(box.Y1)-cropPadding)
	x2 := minInt(bounds.Max.X, int(box.X2)+cropPadding)
	y2 := minInt(bounds.Max.Y, int(box.Y2)+cropPadding)
	rect := image.Rect(x1, y1, x2, y2)

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}

	// Форматы без SubImage копируем вручную.
	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), img, rect.Min, draw.Src)
	return crop
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
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
