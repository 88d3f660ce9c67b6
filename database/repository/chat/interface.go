package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safelife/database"
	"safelife/models"
)

// ErrConversationExists is returned by InsertConversation when the unique
// index rejects a second conversation with the same deterministic ID.
var ErrConversationExists = errors.New("conversation already exists")

// ChatRepository persists conversations ("chats" collection) and their
// messages ("messages" collection, keyed by conversationId).
type ChatRepository interface {
	// FindConversation looks up a conversation by its sorted participant pair
	// and, when bookingID is non-empty, by that booking as well. Returns
	// (nil, nil) when no conversation exists.
	FindConversation(ctx context.Context, participants []string, bookingID string) (*models.Conversation, error)
	// InsertConversation writes a new conversation; a concurrent first-writer
	// losing the race gets ErrConversationExists and should re-read.
	InsertConversation(ctx context.Context, conv *models.Conversation) error
	GetConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	InsertMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns a conversation's messages in chronological order.
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
}

// MongoChatRepo implements ChatRepository using MongoDB.
type MongoChatRepo struct {
	convColl *mongo.Collection
	msgColl  *mongo.Collection
}

// NewMongoChatRepo creates a new ChatRepository backed by MongoDB.
func NewMongoChatRepo() ChatRepository {
	db := database.DB()
	repo := &MongoChatRepo{
		convColl: db.Collection("chats"),
		msgColl:  db.Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	convIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "participants", Value: 1}}},
	}
	if _, err := r.convColl.Indexes().CreateMany(ctx, convIndexes); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	msgIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "timestamp", Value: 1}}},
	}
	if _, err := r.msgColl.Indexes().CreateMany(ctx, msgIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
