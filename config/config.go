package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Режимы детектора и генератора описаний.
const (
	DetectorGoCV      = "gocv"
	DetectorSynthetic = "synthetic"

	DescriberRules = "rules"
	DescriberVLM   = "vlm"
)

// Config настройки сервиса из окружения.
type Config struct {
	HTTPAddr      string
	TelegramToken string

	DetectorMode  string // gocv | synthetic
	DescriberMode string // rules | vlm
	VLMEndpoint   string

	DetectTimeout   time.Duration
	DescribeTimeout time.Duration
}

// Load читает настройки из .env и переменных окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		DetectorMode:    getEnv("DETECTOR_MODE", DetectorGoCV),
		DescriberMode:   getEnv("DESCRIBER_MODE", DescriberRules),
		VLMEndpoint:     os.Getenv("VLM_ENDPOINT"),
		DetectTimeout:   getDuration("DETECT_TIMEOUT", 30*time.Second),
		DescribeTimeout: getDuration("DESCRIBE_TIMEOUT", 15*time.Second),
	}

	if cfg.DetectorMode != DetectorGoCV && cfg.DetectorMode != DetectorSynthetic {
		return nil, errors.New("DETECTOR_MODE must be gocv or synthetic")
	}
	if cfg.DescriberMode != DescriberRules && cfg.DescriberMode != DescriberVLM {
		return nil, errors.New("DESCRIBER_MODE must be rules or vlm")
	}
	if cfg.DescriberMode == DescriberVLM && cfg.VLMEndpoint == "" {
		return nil, errors.New("VLM_ENDPOINT is required when DESCRIBER_MODE=vlm")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
