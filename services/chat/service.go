package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chatRepo "safelife/database/repository/chat"
	"safelife/models"
	"safelife/utils"
)

// Namespace for deriving conversation IDs from their participant pair.
var conversationNamespace = uuid.MustParse("3b9a7c15-84d2-4e6f-b0a8-6c1d2e3f4a5b")

// ConversationIDFor derives the deterministic conversation ID for a sorted
// participant pair, optionally scoped to a booking.
func ConversationIDFor(participants []string, bookingID string) string {
	key := participants[0] + "|" + participants[1]
	if bookingID != "" {
		key += "|" + bookingID
	}
	return uuid.NewSHA1(conversationNamespace, []byte(key)).String()
}

func (s *DefaultChatService) GetOrCreateConversation(ctx context.Context, userA, userB, userType, bookingID string) (string, error) {
	if userA == "" || userB == "" {
		return "", fmt.Errorf("both participants are required")
	}
	if userA == userB {
		return "", fmt.Errorf("a conversation needs two distinct participants")
	}

	// Sort the pair so lookup and storage are order-independent.
	participants := []string{userA, userB}
	sort.Strings(participants)

	existing, err := s.Repo.FindConversation(ctx, participants, bookingID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	conv := &models.Conversation{
		ID:           ConversationIDFor(participants, bookingID),
		Participants: participants,
		UserType:     userType,
		BookingID:    bookingID,
	}
	if err := s.Repo.InsertConversation(ctx, conv); err != nil {
		if errors.Is(err, chatRepo.ErrConversationExists) {
			// Lost the first-writer race; the other side just created it.
			return conv.ID, nil
		}
		return "", err
	}
	return conv.ID, nil
}

func (s *DefaultChatService) SendMessage(ctx context.Context, conversationID string, msg models.Message) (*models.Message, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation id is required")
	}
	if msg.SenderID == "" || msg.Text == "" {
		return nil, fmt.Errorf("sender and text are required")
	}

	conv, err := s.Repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	msg.ID = uuid.New().String()
	msg.ConversationID = conversationID
	// Server-side timestamp keeps message ordering off client clocks.
	msg.Timestamp = time.Now()

	if err := s.Repo.InsertMessage(ctx, &msg); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.BroadcastToUsers(conv.Participants, Event{Type: EventMessage, Data: msg})
	}
	return &msg, nil
}

func (s *DefaultChatService) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	msgs, err := s.Repo.ListMessages(ctx, conversationID)
	if err != nil {
		utils.GetLogger().Error("failed to list messages",
			zap.String("conversationId", conversationID), zap.Error(err))
		return nil, err
	}
	return msgs, nil
}

func (s *DefaultChatService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.Repo.ListConversationsForUser(ctx, userID)
}

// ListPartners builds the contact list from the user's threads. A partner
// whose profile lookup fails still appears, just without a resolved name.
func (s *DefaultChatService) ListPartners(ctx context.Context, userID string) ([]models.ChatPartner, error) {
	convs, err := s.Repo.ListConversationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	partners := make([]models.ChatPartner, 0, len(convs))
	for _, conv := range convs {
		peerID := ""
		for _, p := range conv.Participants {
			if p != userID {
				peerID = p
				break
			}
		}
		if peerID == "" {
			continue
		}

		partner := models.ChatPartner{
			UserID:         peerID,
			ConversationID: conv.ID,
			BookingID:      conv.BookingID,
		}
		if s.Users != nil {
			if peer, err := s.Users.GetByID(ctx, peerID); err != nil {
				utils.GetLogger().Warn("failed to resolve chat partner",
					zap.String("userId", peerID), zap.Error(err))
			} else {
				partner.Name = peer.Name
				partner.UserType = peer.UserType
			}
		}
		partners = append(partners, partner)
	}
	return partners, nil
}
