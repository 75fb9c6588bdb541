package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"teccitas_server/models"
	"teccitas_server/utils"
)

// MatchService records swipe decisions and turns reciprocal likes into a
// single shared match record.
type MatchService struct {
	Store    DocumentStore
	Notifier Notifier
}

// RecordSwipe records actor's decision on target and reports whether it
// completed a match.
//
// Dislike: the target gets a passed record and never reappears in the
// actor's queue. Like: a like record and a passed record are written, then
// the target's own likes are read back. If the target already liked the
// actor, the match record is created with a conditional put on the
// deterministic pair key — a concurrent like from the other side, or a
// retry of this call, finds the record already created and stays silent, so
// the match exists exactly once and the push notification fires exactly
// once.
//
// Each step is a separate store write with no transaction across them. A
// crash between steps can leave a like without its passed record; the
// candidate then reappears and a repeat like safely overwrites the same
// documents, with the conditional create still guarding the match.
//
// Store errors during the reciprocity read or the create are returned as
// errors, never as a NoMatch outcome: dropping a real match silently would
// be invisible to both users.
func (ms *MatchService) RecordSwipe(ctx context.Context, actor, target models.Profile, action string) (models.SwipeOutcome, error) {
	if actor.UserID == "" || target.UserID == "" {
		return models.SwipeOutcome{}, errors.New("actor and target user ids are required")
	}
	if actor.UserID == target.UserID {
		return models.SwipeOutcome{}, errors.New("cannot swipe on yourself")
	}
	if action != models.SwipeActionLike && action != models.SwipeActionDislike {
		return models.SwipeOutcome{}, fmt.Errorf("unknown swipe action '%s'", action)
	}

	timestamp := ms.Store.ServerTimestamp()

	if action == models.SwipeActionDislike {
		if err := ms.putPassed(ctx, actor.UserID, target.UserID, action, timestamp); err != nil {
			return models.SwipeOutcome{}, err
		}
		return models.SwipeOutcome{}, nil
	}

	// 1. Record the like edge: this is what the other side's reciprocity
	// check reads.
	likeFields, err := MarshalDocument(models.LikeRecord{Timestamp: timestamp})
	if err != nil {
		return models.SwipeOutcome{}, fmt.Errorf("failed to marshal like record: %w", err)
	}
	if err := ms.Store.Put(ctx, models.LikesCollection(actor.UserID), target.UserID, likeFields); err != nil {
		return models.SwipeOutcome{}, fmt.Errorf("failed to record like: %w", err)
	}

	// 2. Exclude the target from future discovery.
	if err := ms.putPassed(ctx, actor.UserID, target.UserID, action, timestamp); err != nil {
		return models.SwipeOutcome{}, err
	}

	// 3. Did the target already like the actor?
	_, err = ms.Store.Get(ctx, models.LikesCollection(target.UserID), actor.UserID)
	if errors.Is(err, ErrDocumentNotFound) {
		// Pending: the match will trigger from the target's side if they
		// ever like back.
		return models.SwipeOutcome{}, nil
	}
	if err != nil {
		return models.SwipeOutcome{}, fmt.Errorf("reciprocity check failed: %w", err)
	}

	return ms.createMatch(ctx, actor, target, timestamp)
}

// createMatch conditionally creates the shared match record and fires the
// notification when this caller won the create.
func (ms *MatchService) createMatch(ctx context.Context, actor, target models.Profile, timestamp string) (models.SwipeOutcome, error) {
	matchID := utils.MatchKey(actor.UserID, target.UserID)

	match := models.Match{
		MatchID: matchID,
		Users:   []string{actor.UserID, target.UserID},
		UsersData: map[string]models.MemberSnapshot{
			actor.UserID:  {Name: actor.Name, PhotoURL: actor.PhotoURL},
			target.UserID: {Name: target.Name, PhotoURL: target.PhotoURL},
		},
		CreatedAt:       timestamp,
		LastMessage:     nil,
		LastMessageTime: timestamp,
	}
	sort.Strings(match.Users)

	fields, err := MarshalDocument(match)
	if err != nil {
		return models.SwipeOutcome{}, fmt.Errorf("failed to marshal match: %w", err)
	}

	created, err := ms.Store.PutIfAbsent(ctx, models.MatchesCollection, matchID, fields)
	if err != nil {
		return models.SwipeOutcome{}, fmt.Errorf("failed to create match '%s': %w", matchID, err)
	}
	if !created {
		// The other side's swipe (or a retry of this one) created the match
		// first. Stay quiet so the notification is not duplicated.
		log.Printf("ℹ️ Match '%s' already exists, skipping notification", matchID)
		return models.SwipeOutcome{}, nil
	}

	log.Printf("💘 Match created: %s", matchID)

	if ms.Notifier != nil && target.PushToken != "" {
		ms.Notifier.OnNewMatch(matchID, target.PushToken, actor.UserID, actor.Name, actor.PhotoURL)
	}

	return models.SwipeOutcome{Matched: true, MatchID: matchID}, nil
}

func (ms *MatchService) putPassed(ctx context.Context, actorID, targetID, action, timestamp string) error {
	fields, err := MarshalDocument(models.PassedRecord{Action: action, Timestamp: timestamp})
	if err != nil {
		return fmt.Errorf("failed to marshal passed record: %w", err)
	}
	if err := ms.Store.Put(ctx, models.PassedCollection(actorID), targetID, fields); err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// GetMatch loads one match record.
func (ms *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	fields, err := ms.Store.Get(ctx, models.MatchesCollection, matchID)
	if err != nil {
		return nil, err
	}
	var match models.Match
	if err := UnmarshalDocument(fields, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match '%s': %w", matchID, err)
	}
	return &match, nil
}

// ListMatches returns the user's matches, most recent activity first, for
// the matches/chat listing screen.
func (ms *MatchService) ListMatches(ctx context.Context, userID string) ([]models.Match, error) {
	docs, err := ms.Store.Scan(ctx, models.MatchesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan matches: %w", err)
	}

	matches := make([]models.Match, 0)
	for _, doc := range docs {
		var match models.Match
		if err := UnmarshalDocument(doc.Fields, &match); err != nil {
			log.Printf("⚠️ Skipping malformed match '%s': %v", doc.ID, err)
			continue
		}
		if match.HasMember(userID) {
			matches = append(matches, match)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		ti, tj := matches[i].LastMessageTime, matches[j].LastMessageTime
		if ti == "" {
			ti = matches[i].CreatedAt
		}
		if tj == "" {
			tj = matches[j].CreatedAt
		}
		if ti == tj {
			return matches[i].MatchID < matches[j].MatchID
		}
		return ti > tj
	})

	return matches, nil
}
