package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"teccitas_server/models"

	"github.com/google/uuid"
)

// Broadcaster pushes a new message to clients subscribed to its match room.
// The socket hub implements it; nil disables realtime delivery.
type Broadcaster interface {
	BroadcastNewMessage(matchID string, message models.Message)
}

// ChatService handles per-match messaging. The match id namespace is the
// match engine's output; messages only ever exist under an existing match.
type ChatService struct {
	Store       DocumentStore
	Notifier    Notifier
	Broadcaster Broadcaster
}

// SendMessage appends a message to the match, rolls the match's
// lastMessage/lastMessageTime forward, notifies the other member and
// broadcasts to the match room.
func (cs *ChatService) SendMessage(ctx context.Context, matchID, senderID, text string) (*models.Message, error) {
	if matchID == "" || senderID == "" || text == "" {
		return nil, errors.New("matchId, senderId and text are required")
	}

	matchFields, err := cs.Store.Get(ctx, models.MatchesCollection, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match '%s': %w", matchID, err)
	}
	var match models.Match
	if err := UnmarshalDocument(matchFields, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match '%s': %w", matchID, err)
	}
	if !match.HasMember(senderID) {
		return nil, fmt.Errorf("user '%s' is not a member of match '%s'", senderID, matchID)
	}

	sender := match.UsersData[senderID]
	message := models.Message{
		MessageID:   uuid.New().String(),
		MatchID:     matchID,
		SenderID:    senderID,
		SenderName:  sender.Name,
		SenderPhoto: sender.PhotoURL,
		Text:        text,
		CreatedAt:   cs.Store.ServerTimestamp(),
	}

	messageFields, err := MarshalDocument(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := cs.Store.Put(ctx, models.MessagesCollection(matchID), message.MessageID, messageFields); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	// Roll the match preview forward for the matches list.
	match.LastMessage = &message.Text
	match.LastMessageTime = message.CreatedAt
	updatedMatch, err := MarshalDocument(match)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal match update: %w", err)
	}
	if err := cs.Store.Put(ctx, models.MatchesCollection, matchID, updatedMatch); err != nil {
		return nil, fmt.Errorf("failed to update match preview: %w", err)
	}

	cs.notifyRecipient(ctx, &match, &message)

	if cs.Broadcaster != nil {
		cs.Broadcaster.BroadcastNewMessage(matchID, message)
	}

	return &message, nil
}

// notifyRecipient sends the message push to the other member. Failures are
// logged only; the message is already stored.
func (cs *ChatService) notifyRecipient(ctx context.Context, match *models.Match, message *models.Message) {
	if cs.Notifier == nil {
		return
	}
	recipientID := match.OtherMember(message.SenderID)
	if recipientID == "" {
		return
	}

	fields, err := cs.Store.Get(ctx, models.ProfilesCollection, recipientID)
	if err != nil {
		log.Printf("⚠️ Could not load recipient '%s' for message push: %v", recipientID, err)
		return
	}
	var recipient models.Profile
	if err := UnmarshalDocument(fields, &recipient); err != nil {
		log.Printf("⚠️ Could not unmarshal recipient '%s': %v", recipientID, err)
		return
	}
	if recipient.PushToken == "" {
		return
	}

	cs.Notifier.OnNewMessage(message.MatchID, recipient.PushToken, message.SenderID, message.SenderName, message.Text)
}

// GetMessages returns the match's messages ordered oldest first, the order
// the chat screen renders them in. limit <= 0 means no limit; a positive
// limit keeps the most recent messages.
func (cs *ChatService) GetMessages(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	docs, err := cs.Store.Scan(ctx, models.MessagesCollection(matchID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages for '%s': %w", matchID, err)
	}

	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		var msg models.Message
		if err := UnmarshalDocument(doc.Fields, &msg); err != nil {
			log.Printf("⚠️ Skipping malformed message '%s': %v", doc.ID, err)
			continue
		}
		messages = append(messages, msg)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt == messages[j].CreatedAt {
			return messages[i].MessageID < messages[j].MessageID
		}
		return messages[i].CreatedAt < messages[j].CreatedAt
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	return messages, nil
}
