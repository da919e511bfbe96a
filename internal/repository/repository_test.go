package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(opts Options) *ActivityRepository {
	return NewActivityRepository([]model.Activity{
		{Name: "Chess Club", Description: "chess", Schedule: "Fri", MaxParticipants: 3,
			Participants: []string{"a@x.edu", "b@x.edu"}},
		{Name: "Art Club", Description: "art", Schedule: "Thu", MaxParticipants: 2},
	}, opts)
}

func participants(t *testing.T, r *ActivityRepository, name string) []string {
	t.Helper()
	a, err := r.Get(context.Background(), name)
	require.NoError(t, err)
	return a.Participants
}

func TestList_PreservesSeedOrderAndCopies(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Chess Club", list[0].Name)
	assert.Equal(t, "Art Club", list[1].Name)
	assert.NotNil(t, list[1].Participants)

	list[0].Participants[0] = "mutated@x.edu"
	assert.Equal(t, []string{"a@x.edu", "b@x.edu"}, participants(t, r, "Chess Club"))
}

func TestNewActivityRepository_DoesNotAliasSeed(t *testing.T) {
	seed := []model.Activity{{Name: "Chess Club", MaxParticipants: 5, Participants: []string{"a@x.edu"}}}
	r := NewActivityRepository(seed, Options{})

	seed[0].Participants[0] = "changed@x.edu"
	assert.Equal(t, []string{"a@x.edu"}, participants(t, r, "Chess Club"))
}

func TestUnknownActivity_ReturnsNotFound(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()

	for _, name := range []string{"", "Chess", "chess club", "Underwater Basket Weaving"} {
		assert.ErrorIs(t, r.Signup(ctx, name, "a@x.edu"), ErrNotFound, name)
		assert.ErrorIs(t, r.Unregister(ctx, name, "a@x.edu"), ErrNotFound, name)
		_, err := r.Get(ctx, name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestSignup_AppendsOnceAndRejectsDuplicate(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()

	require.NoError(t, r.Signup(ctx, "Chess Club", "c@x.edu"))
	assert.Equal(t, []string{"a@x.edu", "b@x.edu", "c@x.edu"}, participants(t, r, "Chess Club"))

	err := r.Signup(ctx, "Chess Club", "c@x.edu")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, []string{"a@x.edu", "b@x.edu", "c@x.edu"}, participants(t, r, "Chess Club"))
}

func TestSignup_SameEmailDifferentActivities(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()

	require.NoError(t, r.Signup(ctx, "Art Club", "a@x.edu"))
	assert.Equal(t, []string{"a@x.edu"}, participants(t, r, "Art Club"))
}

func TestSignup_AcceptsAnyString(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()

	require.NoError(t, r.Signup(ctx, "Art Club", "not an email"))
	require.NoError(t, r.Signup(ctx, "Art Club", ""))
	assert.Equal(t, []string{"not an email", ""}, participants(t, r, "Art Club"))
}

func TestSignup_CapacityAdvisoryByDefault(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Signup(ctx, "Art Club", fmt.Sprintf("s%d@x.edu", i)))
	}
	assert.Len(t, participants(t, r, "Art Club"), 5)
}

func TestSignup_EnforcedCapacity(t *testing.T) {
	r := newTestRepo(Options{EnforceCapacity: true})
	ctx := context.Background()

	require.NoError(t, r.Signup(ctx, "Art Club", "s1@x.edu"))
	require.NoError(t, r.Signup(ctx, "Art Club", "s2@x.edu"))
	assert.ErrorIs(t, r.Signup(ctx, "Art Club", "s3@x.edu"), ErrActivityFull)

	// Duplicate is reported ahead of capacity.
	assert.ErrorIs(t, r.Signup(ctx, "Art Club", "s1@x.edu"), ErrAlreadyRegistered)

	require.NoError(t, r.Unregister(ctx, "Art Club", "s1@x.edu"))
	assert.NoError(t, r.Signup(ctx, "Art Club", "s3@x.edu"))
}

func TestUnregister_RemovesExactlyThatEntry(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()
	require.NoError(t, r.Signup(ctx, "Chess Club", "c@x.edu"))

	require.NoError(t, r.Unregister(ctx, "Chess Club", "b@x.edu"))
	assert.Equal(t, []string{"a@x.edu", "c@x.edu"}, participants(t, r, "Chess Club"))

	err := r.Unregister(ctx, "Chess Club", "b@x.edu")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSignupUnregister_RoundTrip(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()
	before := participants(t, r, "Chess Club")

	require.NoError(t, r.Signup(ctx, "Chess Club", "round@x.edu"))
	require.NoError(t, r.Unregister(ctx, "Chess Club", "round@x.edu"))

	assert.Equal(t, before, participants(t, r, "Chess Club"))
}

func TestCancelledContext(t *testing.T) {
	r := newTestRepo(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, r.Signup(ctx, "Chess Club", "c@x.edu"), context.Canceled)
	assert.ErrorIs(t, r.Unregister(ctx, "Chess Club", "a@x.edu"), context.Canceled)
}

func TestConcurrentSignups_NoLostUpdates(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.Signup(ctx, "Art Club", fmt.Sprintf("s%d@x.edu", i)))
		}(i)
	}
	wg.Wait()

	assert.Len(t, participants(t, r, "Art Club"), n)
}

func TestConcurrentDuplicateSignup_SingleWinner(t *testing.T) {
	r := newTestRepo(Options{})
	ctx := context.Background()
	const n = 50

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Signup(ctx, "Art Club", "same@x.edu")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrAlreadyRegistered)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, []string{"same@x.edu"}, participants(t, r, "Art Club"))
}

func TestConcurrentSignups_EnforcedCapacityNeverExceeded(t *testing.T) {
	r := newTestRepo(Options{EnforceCapacity: true})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = r.Signup(ctx, "Chess Club", fmt.Sprintf("s%d@x.edu", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, participants(t, r, "Chess Club"), 3)
}

func TestDefaultActivities(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range DefaultActivities() {
		assert.False(t, seen[a.Name], "duplicate activity %q", a.Name)
		seen[a.Name] = true
		assert.NotEmpty(t, a.Description, a.Name)
		assert.NotEmpty(t, a.Schedule, a.Name)
		assert.Positive(t, a.MaxParticipants, a.Name)
		assert.LessOrEqual(t, len(a.Participants), a.MaxParticipants, a.Name)
	}
	for _, name := range []string{"Chess Club", "Programming Class", "Gym Class", "Math Olympiad"} {
		assert.True(t, seen[name], name)
	}
}
