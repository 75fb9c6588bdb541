package models

// Message is a chat message inside a match, stored under
// matches/{matchId}/messages. Append-only, ordered by createdAt.
type Message struct {
	MessageID   string `dynamodbav:"messageId" json:"messageId"`
	MatchID     string `dynamodbav:"matchId" json:"matchId"`
	SenderID    string `dynamodbav:"senderId" json:"senderId"`
	SenderName  string `dynamodbav:"senderName,omitempty" json:"senderName,omitempty"`
	SenderPhoto string `dynamodbav:"senderPhoto,omitempty" json:"senderPhoto,omitempty"`
	Text        string `dynamodbav:"text" json:"text"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}
