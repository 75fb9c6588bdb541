package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"teccitas_server/models"
	"teccitas_server/services"
	"teccitas_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorderNotifier captures notification side effects for assertions.
type recorderNotifier struct {
	mu       sync.Mutex
	matches  []string
	messages []recordedMessagePush
}

type recordedMessagePush struct {
	matchID   string
	pushToken string
	senderID  string
	text      string
}

func (r *recorderNotifier) OnNewMatch(matchID, pushToken, fromUserID, fromUserName, fromUserPhoto string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = append(r.matches, matchID)
}

func (r *recorderNotifier) OnNewMessage(matchID, pushToken, senderID, senderName, messageText string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, recordedMessagePush{
		matchID:   matchID,
		pushToken: pushToken,
		senderID:  senderID,
		text:      messageText,
	})
}

func (r *recorderNotifier) matchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}

func (r *recorderNotifier) messagePushes() []recordedMessagePush {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedMessagePush(nil), r.messages...)
}

func testProfiles() (models.Profile, models.Profile) {
	ana := models.Profile{
		UserID:       "ana",
		Name:         "Ana",
		PhotoURL:     "https://cdn.example/ana.jpg",
		PushToken:    "ExponentPushToken[ana]",
		Gender:       models.GenderFemale,
		InterestedIn: models.InterestedInBoth,
	}
	bruno := models.Profile{
		UserID:       "bruno",
		Name:         "Bruno",
		PhotoURL:     "https://cdn.example/bruno.jpg",
		PushToken:    "ExponentPushToken[bruno]",
		Gender:       models.GenderMale,
		InterestedIn: models.InterestedInFemale,
	}
	return ana, bruno
}

func TestRecordSwipeDislike(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	matchService := &services.MatchService{Store: store}
	ana, bruno := testProfiles()

	outcome, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionDislike)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	// Dislike writes the exclusion but no like edge.
	passed, err := store.Get(ctx, models.PassedCollection("ana"), "bruno")
	require.NoError(t, err)
	assert.Equal(t, "dislike", utils.ExtractString(passed, "action"))

	_, err = store.Get(ctx, models.LikesCollection("ana"), "bruno")
	assert.ErrorIs(t, err, services.ErrDocumentNotFound)
}

func TestRecordSwipeValidation(t *testing.T) {
	ctx := context.Background()
	matchService := &services.MatchService{Store: services.NewMemoryStore()}
	ana, bruno := testProfiles()

	_, err := matchService.RecordSwipe(ctx, ana, ana, models.SwipeActionLike)
	assert.Error(t, err)

	_, err = matchService.RecordSwipe(ctx, ana, bruno, "superlike")
	assert.Error(t, err)
}

func TestRecordSwipeNoFalseMatch(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	notifier := &recorderNotifier{}
	matchService := &services.MatchService{Store: store, Notifier: notifier}
	ana, bruno := testProfiles()

	outcome, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	// One-sided like: no match record, no notification.
	_, err = store.Get(ctx, models.MatchesCollection, utils.MatchKey("ana", "bruno"))
	assert.ErrorIs(t, err, services.ErrDocumentNotFound)
	assert.Equal(t, 0, notifier.matchCount())
}

func TestRecordSwipeReciprocalLikeCreatesMatch(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	notifier := &recorderNotifier{}
	matchService := &services.MatchService{Store: store, Notifier: notifier}
	ana, bruno := testProfiles()

	outcome, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	outcome, err = matchService.RecordSwipe(ctx, bruno, ana, models.SwipeActionLike)
	require.NoError(t, err)
	assert.True(t, outcome.Matched)
	assert.Equal(t, "ana_bruno", outcome.MatchID)

	match, err := matchService.GetMatch(ctx, "ana_bruno")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ana", "bruno"}, match.Users)
	assert.Equal(t, "Ana", match.UsersData["ana"].Name)
	assert.Equal(t, "https://cdn.example/bruno.jpg", match.UsersData["bruno"].PhotoURL)
	assert.Nil(t, match.LastMessage)
	assert.NotEmpty(t, match.CreatedAt)

	assert.Equal(t, 1, notifier.matchCount())
}

// TestRecordSwipeSymmetry: whichever side swipes last, the match lands at
// the identical deterministic key.
func TestRecordSwipeSymmetry(t *testing.T) {
	ctx := context.Background()
	ana, bruno := testProfiles()

	// ana completes the match.
	storeA := services.NewMemoryStore()
	svcA := &services.MatchService{Store: storeA}
	_, err := svcA.RecordSwipe(ctx, bruno, ana, models.SwipeActionLike)
	require.NoError(t, err)
	outcomeA, err := svcA.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)

	// bruno completes the match.
	storeB := services.NewMemoryStore()
	svcB := &services.MatchService{Store: storeB}
	_, err = svcB.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	outcomeB, err := svcB.RecordSwipe(ctx, bruno, ana, models.SwipeActionLike)
	require.NoError(t, err)

	assert.True(t, outcomeA.Matched)
	assert.True(t, outcomeB.Matched)
	assert.Equal(t, outcomeA.MatchID, outcomeB.MatchID)
}

// TestRecordSwipeIdempotentRelike: repeating a like (crash recovery, UI
// retry) never yields a second match record or a second notification.
func TestRecordSwipeIdempotentRelike(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	notifier := &recorderNotifier{}
	matchService := &services.MatchService{Store: store, Notifier: notifier}
	ana, bruno := testProfiles()

	_, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	_, err = matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)

	outcome, err := matchService.RecordSwipe(ctx, bruno, ana, models.SwipeActionLike)
	require.NoError(t, err)
	assert.True(t, outcome.Matched)

	// A further re-like after the match must stay silent.
	outcome, err = matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	docs, err := store.Scan(ctx, models.MatchesCollection)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, 1, notifier.matchCount())
}

func TestRecordSwipeExclusionStability(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	matchService := &services.MatchService{Store: store}
	candidateService := &services.CandidateService{Store: store}
	ana, bruno := testProfiles()
	seedProfile(t, store, ana)
	seedProfile(t, store, bruno)

	before, err := candidateService.Discover(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"bruno"}, profileIDs(before))

	_, err = matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)

	after, err := candidateService.Discover(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, after)
}

// failingStore wraps a DocumentStore and fails reads on one collection,
// simulating a store outage during the reciprocity check.
type failingStore struct {
	services.DocumentStore
	failCollection string
}

var errStoreDown = errors.New("store unavailable")

func (f *failingStore) Get(ctx context.Context, collection, docID string) (map[string]types.AttributeValue, error) {
	if collection == f.failCollection {
		return nil, errStoreDown
	}
	return f.DocumentStore.Get(ctx, collection, docID)
}

// TestRecordSwipeStoreErrorIsNotNoMatch: an outage during the reciprocity
// check must surface as an error, never be swallowed as "no match".
func TestRecordSwipeStoreErrorIsNotNoMatch(t *testing.T) {
	ctx := context.Background()
	ana, bruno := testProfiles()
	store := &failingStore{
		DocumentStore:  services.NewMemoryStore(),
		failCollection: models.LikesCollection("bruno"),
	}
	matchService := &services.MatchService{Store: store}

	_, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	assert.ErrorIs(t, err, errStoreDown)
}

// TestNaiveCheckThenCreateRace shows why the conditional put is required:
// with a plain read-then-write, two clients that both pass the existence
// check overwrite each other at the same key and the first writer's
// snapshot data is lost. The conditional put under the same interleaving
// admits exactly one creator.
func TestNaiveCheckThenCreateRace(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	matchID := utils.MatchKey("ana", "bruno")

	snapshot := func(writer string) map[string]types.AttributeValue {
		return map[string]types.AttributeValue{
			"writtenBy": &types.AttributeValueMemberS{Value: writer},
		}
	}

	// Interleaving: both sides check before either writes.
	_, errA := store.Get(ctx, models.MatchesCollection, matchID)
	_, errB := store.Get(ctx, models.MatchesCollection, matchID)
	require.ErrorIs(t, errA, services.ErrDocumentNotFound) // client A: "does not exist"
	require.ErrorIs(t, errB, services.ErrDocumentNotFound) // client B: "does not exist"

	require.NoError(t, store.Put(ctx, models.MatchesCollection, matchID, snapshot("A")))
	require.NoError(t, store.Put(ctx, models.MatchesCollection, matchID, snapshot("B")))

	got, err := store.Get(ctx, models.MatchesCollection, matchID)
	require.NoError(t, err)
	// Still one document, but A's write is gone.
	assert.Equal(t, "B", utils.ExtractString(got, "writtenBy"))

	// Same interleaving through PutIfAbsent: one winner, no overwrite.
	require.NoError(t, store.Delete(ctx, models.MatchesCollection, matchID))
	createdA, err := store.PutIfAbsent(ctx, models.MatchesCollection, matchID, snapshot("A"))
	require.NoError(t, err)
	createdB, err := store.PutIfAbsent(ctx, models.MatchesCollection, matchID, snapshot("B"))
	require.NoError(t, err)

	assert.True(t, createdA)
	assert.False(t, createdB)
	got, err = store.Get(ctx, models.MatchesCollection, matchID)
	require.NoError(t, err)
	assert.Equal(t, "A", utils.ExtractString(got, "writtenBy"))
}

// TestConcurrentMutualLikes drives both clients' full like flows in
// parallel repeatedly: every run must end with one match record and at
// most one notification.
func TestConcurrentMutualLikes(t *testing.T) {
	ctx := context.Background()
	ana, bruno := testProfiles()

	for i := 0; i < 50; i++ {
		store := services.NewMemoryStore()
		notifier := &recorderNotifier{}
		matchService := &services.MatchService{Store: store, Notifier: notifier}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := matchService.RecordSwipe(ctx, bruno, ana, models.SwipeActionLike)
			assert.NoError(t, err)
		}()
		wg.Wait()

		docs, err := store.Scan(ctx, models.MatchesCollection)
		require.NoError(t, err)
		require.LessOrEqual(t, len(docs), 1)
		assert.LessOrEqual(t, notifier.matchCount(), 1)
		if len(docs) == 1 {
			assert.Equal(t, utils.MatchKey("ana", "bruno"), docs[0].ID)
		}
	}
}

func TestListMatches(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	matchService := &services.MatchService{Store: store}
	ana, bruno := testProfiles()
	carla := models.Profile{UserID: "carla", Name: "Carla", Gender: models.GenderFemale, InterestedIn: models.InterestedInBoth}

	_, err := matchService.RecordSwipe(ctx, ana, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	_, err = matchService.RecordSwipe(ctx, bruno, ana, models.SwipeActionLike)
	require.NoError(t, err)
	_, err = matchService.RecordSwipe(ctx, carla, bruno, models.SwipeActionLike)
	require.NoError(t, err)
	_, err = matchService.RecordSwipe(ctx, bruno, carla, models.SwipeActionLike)
	require.NoError(t, err)

	brunoMatches, err := matchService.ListMatches(ctx, "bruno")
	require.NoError(t, err)
	assert.Len(t, brunoMatches, 2)

	anaMatches, err := matchService.ListMatches(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, anaMatches, 1)
	assert.Equal(t, "ana_bruno", anaMatches[0].MatchID)

	none, err := matchService.ListMatches(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
