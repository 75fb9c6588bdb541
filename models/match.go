package models

// MemberSnapshot is the denormalized display data of one match member,
// captured at match time so the matches list renders without extra reads.
type MemberSnapshot struct {
	Name     string `dynamodbav:"name" json:"name"`
	PhotoURL string `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
}

// Match is the shared record of a mutual like. Its id is the two member ids
// sorted and joined with "_", so both sides resolve to the same document no
// matter who writes first.
type Match struct {
	MatchID         string                    `dynamodbav:"matchId" json:"matchId"`
	Users           []string                  `dynamodbav:"users" json:"users"`
	UsersData       map[string]MemberSnapshot `dynamodbav:"usersData" json:"usersData"`
	CreatedAt       string                    `dynamodbav:"createdAt" json:"createdAt"`
	LastMessage     *string                   `dynamodbav:"lastMessage" json:"lastMessage"`
	LastMessageTime string                    `dynamodbav:"lastMessageTime,omitempty" json:"lastMessageTime,omitempty"`
}

// HasMember reports whether userID is one of the two match members.
func (m *Match) HasMember(userID string) bool {
	for _, id := range m.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherMember returns the member that is not userID. Empty string if
// userID is not a member.
func (m *Match) OtherMember(userID string) string {
	if !m.HasMember(userID) {
		return ""
	}
	for _, id := range m.Users {
		if id != userID {
			return id
		}
	}
	return ""
}
