package entities

import "time"

// User represents a bot user who has written to the bot at least once.
type User struct {
	ID        int64 // Telegram user ID
	ChatID    int64 // private chat the user talks to the bot in
	Username  string
	IsActive  bool
	CreatedAt time.Time
}

func NewUser(id, chatID int64, username string) *User {
	return &User{
		ID:        id,
		ChatID:    chatID,
		Username:  username,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}
