package port

import (
	"context"

	"place-lens/internal/domain/entity"
)

// UserRepository хранилище собеседников бота
type UserRepository interface {
	// Get возвращает пользователя, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет пользователя целиком
	Save(ctx context.Context, user *entity.User) error

	// UpdateState меняет только состояние
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
