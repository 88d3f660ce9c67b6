package chat

import (
	"context"

	chatRepo "safelife/database/repository/chat"
	userRepo "safelife/database/repository/user"
	"safelife/models"
)

// ChatService owns conversation bootstrap and message delivery.
type ChatService interface {
	// GetOrCreateConversation returns the conversation ID for two
	// participants, creating the conversation on first use. The result is the
	// same regardless of argument order. A non-empty bookingID scopes the
	// conversation to that booking, so the same pair may hold one general
	// thread plus one per booking.
	GetOrCreateConversation(ctx context.Context, userA, userB, userType, bookingID string) (string, error)
	SendMessage(ctx context.Context, conversationID string, msg models.Message) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	// ListPartners returns who the user is talking to, one entry per thread,
	// with the partner's profile resolved when possible.
	ListPartners(ctx context.Context, userID string) ([]models.ChatPartner, error)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Repo  chatRepo.ChatRepository
	Users userRepo.UserRepository
	Hub   *Hub
}
