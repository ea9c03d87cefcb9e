package services

import "context"

// ChatSender is the slice of the Telegram client the lead service uses.
// Kept as an interface so tests can swap in a mock.
type ChatSender interface {
	SendMessage(ctx context.Context, text string) error
	SendDocument(ctx context.Context, path, fileName, caption string) error
}
