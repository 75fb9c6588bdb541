package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Notifier receives the outbound side effects of matching and chat. Calls
// are fire-and-forget: implementations log failures and never propagate
// them, so a lost notification cannot roll back a match or a message.
type Notifier interface {
	OnNewMatch(matchID, pushToken, fromUserID, fromUserName, fromUserPhoto string)
	OnNewMessage(matchID, pushToken, senderID, senderName, messageText string)
}

// ExpoNotifier delivers push notifications through the Expo push API, the
// relay the mobile client registers its tokens with.
type ExpoNotifier struct {
	Endpoint string
	Client   *http.Client
}

// NewExpoNotifier creates an ExpoNotifier against the public Expo endpoint.
func NewExpoNotifier() *ExpoNotifier {
	return &ExpoNotifier{
		Endpoint: "https://exp.host/--/api/v2/push/send",
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type expoPushMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Sound string                 `json:"sound"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// OnNewMatch notifies the matched user that someone matched with them.
func (n *ExpoNotifier) OnNewMatch(matchID, pushToken, fromUserID, fromUserName, fromUserPhoto string) {
	n.send(expoPushMessage{
		To:    pushToken,
		Title: "It's a match! 💘",
		Body:  "You matched with " + fromUserName,
		Sound: "default",
		Data: map[string]interface{}{
			"type":          "match",
			"matchId":       matchID,
			"fromUserId":    fromUserID,
			"fromUserName":  fromUserName,
			"fromUserPhoto": fromUserPhoto,
		},
	})
}

// OnNewMessage notifies the other match member of a new chat message.
func (n *ExpoNotifier) OnNewMessage(matchID, pushToken, senderID, senderName, messageText string) {
	n.send(expoPushMessage{
		To:    pushToken,
		Title: senderName,
		Body:  messageText,
		Sound: "default",
		Data: map[string]interface{}{
			"type":     "message",
			"matchId":  matchID,
			"senderId": senderID,
		},
	})
}

func (n *ExpoNotifier) send(msg expoPushMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Failed to marshal push payload: %v", err)
		return
	}

	resp, err := n.Client.Post(n.Endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("❌ Failed to send push notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("❌ Expo push API returned %d", resp.StatusCode)
		return
	}
	log.Printf("✅ Push notification sent (type=%s)", msg.Data["type"])
}
