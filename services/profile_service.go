package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"teccitas_server/models"
	"teccitas_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// ProfileService manages profile documents and the account lifecycle.
type ProfileService struct {
	Store DocumentStore
}

// CreateProfile stores a new profile. Gender and interestedIn are required
// up front: discovery and swiping refuse to run without them.
func (ps *ProfileService) CreateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	if profile.UserID == "" {
		return nil, errors.New("userId is required")
	}
	if !profile.SetupComplete() {
		return nil, ErrProfileIncomplete
	}
	profile.CreatedAt = ps.Store.ServerTimestamp()

	fields, err := MarshalDocument(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := ps.Store.Put(ctx, models.ProfilesCollection, profile.UserID, fields); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return &profile, nil
}

// GetProfile retrieves a profile by user id.
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	fields, err := ps.Store.Get(ctx, models.ProfilesCollection, userID)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := UnmarshalDocument(fields, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile '%s': %w", userID, err)
	}
	profile.UserID = userID
	return &profile, nil
}

// UpdateProfile applies a partial update to an existing profile. Profiles
// are mutated only by their owner, so read-modify-write is safe here.
func (ps *ProfileService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.Profile, error) {
	fields, err := ps.Store.Get(ctx, models.ProfilesCollection, userID)
	if err != nil {
		return nil, err
	}

	for k, v := range updates {
		attr, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update field '%s': %w", k, err)
		}
		fields[k] = attr
	}

	if err := ps.Store.Put(ctx, models.ProfilesCollection, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var profile models.Profile
	if err := UnmarshalDocument(fields, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile '%s': %w", userID, err)
	}
	profile.UserID = userID
	return &profile, nil
}

// RegisterPushToken stores the device push token on the profile so match
// and message notifications can reach this user.
func (ps *ProfileService) RegisterPushToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return errors.New("push token is required")
	}
	_, err := ps.UpdateProfile(ctx, userID, map[string]interface{}{
		"pushToken":          token,
		"pushTokenUpdatedAt": ps.Store.ServerTimestamp(),
	})
	return err
}

// DeleteAccount removes everything the user owns: swipe bookkeeping, the
// profile, the user's matches with their messages, and reports they filed.
// Each deletion is independent; a partial failure is returned but does not
// undo what was already removed.
func (ps *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	log.Printf("🗑️ Deleting account '%s'", userID)

	for _, collection := range []string{
		models.LikesCollection(userID),
		models.PassedCollection(userID),
		models.BlockedCollection(userID),
	} {
		if err := ps.deleteCollection(ctx, collection); err != nil {
			return err
		}
	}

	if err := ps.Store.Delete(ctx, models.ProfilesCollection, userID); err != nil {
		return err
	}

	// The user's matches, messages included.
	matchDocs, err := ps.Store.Scan(ctx, models.MatchesCollection)
	if err != nil {
		return fmt.Errorf("failed to scan matches: %w", err)
	}
	for _, doc := range matchDocs {
		members := utils.ExtractStringList(doc.Fields, "users")
		if !containsString(members, userID) {
			continue
		}
		if err := ps.deleteCollection(ctx, models.MessagesCollection(doc.ID)); err != nil {
			return err
		}
		if err := ps.Store.Delete(ctx, models.MatchesCollection, doc.ID); err != nil {
			return err
		}
	}

	// Reports filed by the user.
	reportDocs, err := ps.Store.Scan(ctx, models.ReportsCollection)
	if err != nil {
		return fmt.Errorf("failed to scan reports: %w", err)
	}
	for _, doc := range reportDocs {
		if utils.ExtractString(doc.Fields, "reporterId") != userID {
			continue
		}
		if err := ps.Store.Delete(ctx, models.ReportsCollection, doc.ID); err != nil {
			return err
		}
	}

	log.Printf("✅ Account '%s' deleted", userID)
	return nil
}

func (ps *ProfileService) deleteCollection(ctx context.Context, collection string) error {
	docs, err := ps.Store.Scan(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to scan '%s': %w", collection, err)
	}
	for _, doc := range docs {
		if err := ps.Store.Delete(ctx, collection, doc.ID); err != nil {
			return err
		}
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
