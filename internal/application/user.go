package app

import (
	"context"
	"errors"

	"place-lens/internal/domain/entity"
	"place-lens/internal/domain/port"
)

var ErrNotAwaitingPhoto = errors.New("photo was not requested, send /check first")

// UserService состояние диалога с пользователем бота.
type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState меняет только состояние, остальные поля пользователя не трогает.
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	// Get заводит пользователя, если его ещё нет
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateState(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// StartProcessing принимает фото только после /check, иначе ErrNotAwaitingPhoto.
func (s *UserService) StartProcessing(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if !user.AcceptsPhotos() {
		return user, ErrNotAwaitingPhoto
	}

	return s.SetState(ctx, userID, chatID, entity.StateProcessing)
}

// FinishProcessing сохраняет ответ модели, бот снова ждёт фото.
// Пустой raw означает ошибку: счётчик и последний ответ не меняются.
// Отмена ctx (остановка бота) запись не прерывает, иначе пользователь застрянет в processing.
func (s *UserService) FinishProcessing(ctx context.Context, userID, chatID int64, raw string) (*entity.User, error) {
	ctx = context.WithoutCancel(ctx)
	if raw == "" {
		return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
	}

	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	user.RecordAnalysis(raw)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
