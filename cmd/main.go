package main

import (
	"log"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/config"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/api"
	app "github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/application"
	telegram "github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/bot"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/container"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/port"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/infrastructure/describer"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/infrastructure/storage"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Детектор создаётся один раз и живёт всё время работы процесса.
	var detector port.DefectDetector
	switch cfg.DetectorMode {
	case config.DetectorSynthetic:
		log.Println("Using synthetic detector (demo mode)")
		detector = vision.NewSyntheticDetector()
	default:
		detector = vision.NewGoCVDetector()
	}

	// Запасной генератор описаний всегда детерминированный.
	fallback := describer.NewRuleBased()
	var defectDescriber port.DefectDescriber = fallback
	if cfg.DescriberMode == config.DescriberVLM {
		log.Printf("Using VLM describer at %s", cfg.VLMEndpoint)
		defectDescriber = describer.NewRemote(cfg.VLMEndpoint)
	}

	userRepo := storage.NewMemoryUserRepository()

	appContainer := container.New(userRepo, detector, defectDescriber, fallback, app.InspectionConfig{
		DetectTimeout:   cfg.DetectTimeout,
		DescribeTimeout: cfg.DescribeTimeout,
	})

	// Telegram-канал поднимается только при заданном токене.
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}

		go func() {
			log.Println("Bot is running...")
			if err := bot.Run(); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	}

	server := api.NewServer(appContainer)
	log.Printf("Inspection API listening on %s", cfg.HTTPAddr)
	if err := server.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
