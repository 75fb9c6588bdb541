package models

// Report is a user report, stored in the top-level reports collection.
// Moderation workflow (status transitions) happens outside this service.
type Report struct {
	ReportID          string `dynamodbav:"reportId" json:"reportId"`
	ReporterID        string `dynamodbav:"reporterId" json:"reporterId"`
	ReportedUserID    string `dynamodbav:"reportedUserId" json:"reportedUserId"`
	ReportedUserName  string `dynamodbav:"reportedUserName,omitempty" json:"reportedUserName,omitempty"`
	ReportedUserPhoto string `dynamodbav:"reportedUserPhoto,omitempty" json:"reportedUserPhoto,omitempty"`
	Reason            string `dynamodbav:"reason" json:"reason"`
	Details           string `dynamodbav:"details,omitempty" json:"details,omitempty"`
	Status            string `dynamodbav:"status" json:"status"` // pending, reviewed, resolved, dismissed
	CreatedAt         string `dynamodbav:"createdAt" json:"createdAt"`
}
