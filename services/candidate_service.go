package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"teccitas_server/models"
)

// ErrProfileIncomplete means the caller's profile has no gender or
// interestedIn yet: the profile-setup flow must run before discovery.
var ErrProfileIncomplete = errors.New("profile setup incomplete: gender and interestedIn are required")

// CandidateService builds the swipe queue for a user.
type CandidateService struct {
	Store DocumentStore
}

// SelectCandidates filters allProfiles down to the swipe queue for current.
//
// A candidate is dropped when:
//   - its id is current's own id, or in passedIDs / blockedIDs
//   - current is not interested in the candidate's gender
//   - the candidate is not interested in current's gender
//
// Pure function over its inputs; the result is sorted by user id so the
// queue is deterministic.
func SelectCandidates(current models.Profile, allProfiles []models.Profile, passedIDs, blockedIDs []string) ([]models.Profile, error) {
	if !current.SetupComplete() {
		return nil, ErrProfileIncomplete
	}

	exclude := make(map[string]struct{}, len(passedIDs)+len(blockedIDs)+1)
	exclude[current.UserID] = struct{}{}
	for _, id := range passedIDs {
		exclude[id] = struct{}{}
	}
	for _, id := range blockedIDs {
		exclude[id] = struct{}{}
	}

	var candidates []models.Profile
	for _, candidate := range allProfiles {
		if _, excluded := exclude[candidate.UserID]; excluded {
			continue
		}
		if current.InterestedIn != models.InterestedInBoth && candidate.Gender != current.InterestedIn {
			continue
		}
		if candidate.InterestedIn != models.InterestedInBoth && candidate.InterestedIn != current.Gender {
			continue
		}
		candidates = append(candidates, candidate)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].UserID < candidates[j].UserID })
	return candidates, nil
}

// Discover loads the user's profile and exclusion sets from the store and
// returns the filtered swipe queue. The profiles read is a full collection
// scan, fine at this user count.
func (cs *CandidateService) Discover(ctx context.Context, userID string) ([]models.Profile, error) {
	fields, err := cs.Store.Get(ctx, models.ProfilesCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for '%s': %w", userID, err)
	}
	var current models.Profile
	if err := UnmarshalDocument(fields, &current); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile for '%s': %w", userID, err)
	}
	current.UserID = userID

	passedIDs, err := cs.collectIDs(ctx, models.PassedCollection(userID))
	if err != nil {
		return nil, err
	}
	blockedIDs, err := cs.collectIDs(ctx, models.BlockedCollection(userID))
	if err != nil {
		return nil, err
	}

	docs, err := cs.Store.Scan(ctx, models.ProfilesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}

	allProfiles := make([]models.Profile, 0, len(docs))
	for _, doc := range docs {
		var p models.Profile
		if err := UnmarshalDocument(doc.Fields, &p); err != nil {
			log.Printf("⚠️ Skipping malformed profile '%s': %v", doc.ID, err)
			continue
		}
		p.UserID = doc.ID
		allProfiles = append(allProfiles, p)
	}

	return SelectCandidates(current, allProfiles, passedIDs, blockedIDs)
}

func (cs *CandidateService) collectIDs(ctx context.Context, collection string) ([]string, error) {
	docs, err := cs.Store.Scan(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan '%s': %w", collection, err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
