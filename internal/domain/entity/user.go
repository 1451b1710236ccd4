package entity

// UserState этап диалога с ботом
type UserState string

const (
	StateMainMenu      UserState = "main_menu"
	StateAwaitingPhoto UserState = "awaiting_photo"
	StateProcessing    UserState = "processing"
)

// User собеседник бота
type User struct {
	ID       int64
	ChatID   int64
	State    UserState
	Analyzed int    // сколько фото уже разобрано
	LastRaw  string // последний сырой ответ модели, для /last
}

// NewUser создаёт пользователя в главном меню
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState переводит пользователя в новое состояние
func (u *User) SetState(state UserState) {
	u.State = state
}

// RecordAnalysis запоминает ответ, бот снова ждёт фото
func (u *User) RecordAnalysis(raw string) {
	u.Analyzed++
	u.LastRaw = raw
	u.State = StateAwaitingPhoto
}

// AcceptsPhotos true после /check и до /cancel
func (u *User) AcceptsPhotos() bool {
	return u.State == StateAwaitingPhoto
}
