package models

import "time"

// Conversation is a chat thread identified by its two participants, optionally
// scoped to a specific booking. Participants are stored sorted so lookups are
// independent of argument order. ID is derived deterministically from the
// sorted pair (plus booking id when present), which lets a unique index make
// first-time creation exactly-once under concurrent opens.
type Conversation struct {
	ID           string    `bson:"id" json:"id"`
	Participants []string  `bson:"participants" json:"participants"`
	UserType     string    `bson:"userType,omitempty" json:"userType,omitempty"`
	BookingID    string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// ChatPartner is one entry of the conversation-partner list, the person on
// the other side of a thread.
type ChatPartner struct {
	UserID         string `json:"userId"`
	Name           string `json:"name,omitempty"`
	UserType       string `json:"userType,omitempty"`
	ConversationID string `json:"conversationId"`
	BookingID      string `json:"bookingId,omitempty"`
}

// Message is a single chat message within a conversation. Timestamp is
// assigned server-side so ordering does not depend on client clocks.
type Message struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversationId" json:"conversationId"`
	SenderID       string    `bson:"senderId" json:"senderId"`
	ReceiverID     string    `bson:"receiverId" json:"receiverId"`
	Text           string    `bson:"text" json:"text"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
	Read           bool      `bson:"read" json:"read"`
}
