package models

// Profile defines the structure for user profiles
type Profile struct {
	UserID             string `dynamodbav:"userId" json:"userId"`
	Name               string `dynamodbav:"name" json:"name"`
	Age                int    `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Bio                string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Career             string `dynamodbav:"career,omitempty" json:"career,omitempty"`
	PhotoURL           string `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	Gender             string `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	InterestedIn       string `dynamodbav:"interestedIn,omitempty" json:"interestedIn,omitempty"`
	PushToken          string `dynamodbav:"pushToken,omitempty" json:"pushToken,omitempty"`
	PushTokenUpdatedAt string `dynamodbav:"pushTokenUpdatedAt,omitempty" json:"pushTokenUpdatedAt,omitempty"`
	CreatedAt          string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// SetupComplete reports whether the profile-setup flow has run: discovery
// and swiping require gender and interestedIn to be set.
func (p *Profile) SetupComplete() bool {
	return p.Gender != "" && p.InterestedIn != ""
}
