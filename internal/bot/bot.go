package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/container"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для инспекции инфраструктуры по фотографиям.

📸 Отправьте мне фото конструкции, и я найду структурные дефекты:
трещины, коррозию и сколы бетона.

📋 Команды:
/check — начать проверку
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото конструкции
2️⃣ Бот найдёт дефекты и оценит их серьёзность
3️⃣ Вы получите отчёт: список дефектов с рекомендациями + фото с подсветкой

💡 Рекомендации:
• Снимайте при хорошем освещении
• Фото должно быть чётким

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото конструкции для проверки на дефекты."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото конструкции для проверки на дефекты."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoDefects       = "✅ Дефекты не обнаружены."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// defectNames русские названия типов дефектов для ответов бота.
var defectNames = map[entity.DefectType]string{
	entity.DefectCrack:     "трещина",
	entity.DefectCorrosion: "коррозия",
	entity.DefectSpalling:  "скол бетона",
}

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		container: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.container.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.container.UserService.SetState(ctx, user.ID, user.ChatID, entity.StateMainMenu)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		b.container.UserService.BeginCheck(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		b.container.UserService.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto прогоняет фото через пайплайн инспекции и отвечает отчётом.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	b.container.UserService.SetState(ctx, userID, chatID, entity.StateProcessing)
	b.sendMessage(chatID, msgProcessing)

	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		b.container.UserService.SetState(ctx, userID, chatID, entity.StateMainMenu)
		return
	}

	report, err := b.container.InspectionService.Inspect(ctx, imageData)
	if err != nil {
		log.Printf("Inspection failed: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		b.container.UserService.SetState(ctx, userID, chatID, entity.StateMainMenu)
		return
	}

	b.sendMessage(chatID, FormatReport(report))

	if report.TotalDefects > 0 {
		if highlighted, err := b.container.InspectionService.Highlight(imageData, report); err == nil {
			b.sendPhoto(chatID, highlighted)
		} else {
			log.Printf("Highlight failed: %v", err)
		}
	}

	b.container.UserService.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// FormatReport переводит отчёт в текст сообщения для чата.
func FormatReport(report *entity.InspectionReport) string {
	if report.TotalDefects == 0 {
		return msgNoDefects
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️ Найдено дефектов: %d\n", report.TotalDefects)

	for i, d := range report.Detections {
		name, ok := defectNames[d.Type]
		if !ok {
			name = string(d.Type)
		}
		fmt.Fprintf(&sb, "\n%d. %s — %s (уверенность %.2f)\n%s\n", i+1, name, d.Severity, d.Confidence, d.SeverityReasoning)
	}

	fmt.Fprintf(&sb, "\n%s", report.Summary)
	return sb.String()
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет изображение с подсветкой дефектов
func (b *Bot) sendPhoto(chatID int64, data []byte) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "report.jpg", Bytes: data})
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}
