package models

// Gender values stored on a profile
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// InterestedIn values stored on a profile
const (
	InterestedInMale   = "male"
	InterestedInFemale = "female"
	InterestedInBoth   = "both"
)

// Swipe actions
const (
	SwipeActionLike    = "like"
	SwipeActionDislike = "dislike"
)

// Report statuses
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Top-level collections in the document store
const (
	ProfilesCollection = "users"
	MatchesCollection  = "matches"
	ReportsCollection  = "reports"
)

// LikesCollection is the per-user collection of outgoing likes,
// keyed by the liked user's id.
func LikesCollection(userID string) string {
	return ProfilesCollection + "/" + userID + "/likes"
}

// PassedCollection is the per-user collection of decided targets (like or
// dislike), keyed by target id. Decided targets never reappear in discovery.
func PassedCollection(userID string) string {
	return ProfilesCollection + "/" + userID + "/passed"
}

// BlockedCollection is the per-user collection of blocked users.
func BlockedCollection(userID string) string {
	return ProfilesCollection + "/" + userID + "/blocked"
}

// MessagesCollection is the per-match message collection.
func MessagesCollection(matchID string) string {
	return MatchesCollection + "/" + matchID + "/messages"
}
