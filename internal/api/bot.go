package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "place-lens/internal/application"
	"place-lens/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я узнаю места по фотографиям.

📸 Пришлите фото, и я попробую понять, что на нём за место, где оно и чем известно.

📋 Команды:
/check — снова принимать фото после /cancel
/last — последний ответ модели без обработки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото (можно файлом)
2️⃣ Бот уменьшит его и спросит мультимодальную модель
3️⃣ Вы получите: что это, где это и чем место примечательно

💡 Если на фото не место (еда, документ, человек) или модель не уверена, бот так и скажет.

📋 Команды:
/check — принимать фото
/last — сырой ответ модели
/cancel — перестать принимать фото`

	msgAwaitingPhoto   = "📸 Отправьте фото для проверки."
	msgCancelled       = "❌ Фото больше не принимаются. Отправьте /check, чтобы продолжить."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Смотрю на фото..."
	msgNotAwaiting     = "📋 Сейчас фото не принимаются. Отправьте /check."
	msgNoHistory       = "Пока нечего показать: сначала пришлите фото."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgUnsupported     = "⚠️ Не получилось прочитать файл как изображение."

	maxDownloadBytes = 20 << 20
)

// Bot Telegram-интерфейс к AnalysisService
type Bot struct {
	api      *tgbotapi.BotAPI
	users    *app.UserService
	analysis *app.AnalysisService
	log      *zap.Logger
	timeout  time.Duration
	http     *http.Client
}

// NewBot авторизуется в Telegram и создаёт бота
func NewBot(token string, users *app.UserService, analysis *app.AnalysisService, timeout time.Duration, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	log.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return &Bot{
		api:      api,
		users:    users,
		analysis: analysis,
		log:      log,
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// Run обрабатывает обновления по одному до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if fileID, ok := imageFileID(msg); ok {
		b.handlePhoto(ctx, msg, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = b.users.BeginCheck(ctx, userID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		_, err = b.users.BeginCheck(ctx, userID, chatID)
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "cancel":
		_, err = b.users.Cancel(ctx, userID, chatID)
		b.sendMessage(chatID, msgCancelled)

	case "last":
		var user *entity.User
		user, err = b.users.Get(ctx, userID, chatID)
		if err == nil {
			if user.LastRaw == "" {
				b.sendMessage(chatID, msgNoHistory)
			} else {
				b.sendMessage(chatID, truncate(user.LastRaw))
			}
		}

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		b.log.Warn("update user state", zap.Int64("user", userID), zap.Error(err))
	}
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	if _, err := b.users.StartProcessing(ctx, userID, chatID); err != nil {
		if errors.Is(err, app.ErrNotAwaitingPhoto) {
			b.sendMessage(chatID, msgNotAwaiting)
			return
		}
		b.log.Error("start processing", zap.Int64("user", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	b.sendMessage(chatID, msgProcessing)
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.Debug("chat action", zap.Error(err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	raw := ""
	defer func() {
		if _, err := b.users.FinishProcessing(ctx, userID, chatID, raw); err != nil {
			b.log.Warn("finish processing", zap.Int64("user", userID), zap.Error(err))
		}
	}()

	imageData, err := b.downloadFile(reqCtx, fileID)
	if err != nil {
		b.log.Error("download photo", zap.Int64("user", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	b.log.Info("photo received", zap.Int64("user", userID), zap.Int("bytes", len(imageData)))

	out, err := b.analysis.AnalyzeBytes(reqCtx, imageData)
	if err != nil {
		b.log.Error("analyze photo", zap.Int64("user", userID), zap.Error(err))
		if errors.Is(err, entity.ErrUnsupportedImage) {
			b.sendMessage(chatID, msgUnsupported)
		} else {
			b.sendMessage(chatID, msgProcessingError)
		}
		return
	}

	raw = out.Raw
	b.sendMessage(chatID, FormatAnalysis(out))
}

// imageFileID берёт фото наибольшего размера или документ с image/* MIME
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("file is larger than %d bytes", maxDownloadBytes)
	}

	return data, nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}
