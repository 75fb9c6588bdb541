package models

// LikeRecord is a directed like edge, stored at
// users/{liker}/likes/{liked}. It is the durable signal the match engine
// reads from the other side to detect reciprocity.
type LikeRecord struct {
	Timestamp string `dynamodbav:"timestamp" json:"timestamp"`
}

// PassedRecord marks a target as decided (liked or disliked), stored at
// users/{actor}/passed/{target}. Targets with a passed record are excluded
// from future discovery scans.
type PassedRecord struct {
	Action    string `dynamodbav:"action" json:"action"` // like, dislike
	Timestamp string `dynamodbav:"timestamp" json:"timestamp"`
}

// BlockedRecord is stored at users/{actor}/blocked/{target} when a user
// blocks another, usually alongside a report.
type BlockedRecord struct {
	BlockedAt string `dynamodbav:"blockedAt" json:"blockedAt"`
	Reason    string `dynamodbav:"reason,omitempty" json:"reason,omitempty"`
}

// SwipeOutcome is the result of recording a swipe. MatchID is set only when
// this swipe created the match.
type SwipeOutcome struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"matchId,omitempty"`
}
