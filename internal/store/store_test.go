package store

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"habit-tracker-go/internal/models"
)

const (
	userA = "auth0|user-a"
	userB = "auth0|user-b"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Habit{},
		&models.SubHabit{},
		&models.Check{},
		&models.Count{},
		&models.WeightUpdate{},
		&models.ActiveDay{},
		&models.Nugget{},
	))
	return New(db)
}

func createHabit(t *testing.T, s *Store, userID, name string) *models.Habit {
	t.Helper()
	habit := &models.Habit{UserID: userID, Name: name}
	require.NoError(t, s.CreateHabit(habit))
	return habit
}

func TestGetHabitOwnershipIndistinguishable(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Meditate")

	_, missingErr := s.GetHabit(userA, habit.ID+100, false)
	_, foreignErr := s.GetHabit(userB, habit.ID, false)

	assert.Equal(t, ErrNotFound, missingErr)
	assert.Equal(t, ErrNotFound, foreignErr)
}

func TestSoftDeleteHidesFromDefaultListing(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Journal")
	createHabit(t, s, userA, "Run")

	require.NoError(t, s.SoftDeleteHabit(userA, habit.ID))

	visible, err := s.ListHabits(userA, false, 0, 100)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, "Run", visible[0].Name)

	all, err := s.ListHabits(userA, true, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.GetHabit(userA, habit.ID, false)
	assert.Equal(t, ErrNotFound, err)

	deleted, err := s.GetHabit(userA, habit.ID, true)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt.Valid)
}

func TestSoftDeleteDoesNotCascade(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Read")
	sub := &models.SubHabit{ParentHabitID: habit.ID, UserID: userA, Name: "Chapter"}
	require.NoError(t, s.CreateSubHabit(sub))

	require.NoError(t, s.SoftDeleteHabit(userA, habit.ID))

	subs, err := s.ListSubHabits(userA, habit.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestHardDeleteCascades(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Stretch")
	keep := createHabit(t, s, userA, "Keep")

	sub := &models.SubHabit{ParentHabitID: habit.ID, UserID: userA, Name: "Hamstrings"}
	require.NoError(t, s.CreateSubHabit(sub))
	require.NoError(t, s.CreateCheck(&models.Check{UserID: userA, HabitID: &habit.ID, Checked: true, CheckDate: time.Now()}))
	require.NoError(t, s.CreateCheck(&models.Check{UserID: userA, SubHabitID: &sub.ID, CheckDate: time.Now()}))
	require.NoError(t, s.CreateCount(&models.Count{UserID: userA, HabitID: habit.ID, Value: 5, CountDate: time.Now()}))
	require.NoError(t, s.CreateWeightUpdate(&models.WeightUpdate{UserID: userA, HabitID: habit.ID, Weight: 70, UpdateDate: time.Now()}))
	keepCheck := &models.Check{UserID: userA, HabitID: &keep.ID, CheckDate: time.Now()}
	require.NoError(t, s.CreateCheck(keepCheck))

	require.NoError(t, s.HardDeleteHabit(userA, habit.ID))

	_, err := s.GetHabit(userA, habit.ID, true)
	assert.Equal(t, ErrNotFound, err)

	subs, err := s.ListSubHabits(userA, habit.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)

	checks, err := s.ListChecks(userA, EventFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, keepCheck.ID, checks[0].ID)

	counts, err := s.ListCounts(userA, EventFilter{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, counts)

	updates, err := s.ListWeightUpdates(userA, EventFilter{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestHardDeleteNotOwned(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Private")
	assert.Equal(t, ErrNotFound, s.HardDeleteHabit(userB, habit.ID))
	_, err := s.GetHabit(userA, habit.ID, false)
	assert.NoError(t, err)
}

func TestListHabitsPagination(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"a", "b", "c", "d"} {
		createHabit(t, s, userA, name)
	}

	page, err := s.ListHabits(userA, false, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Name)
	assert.Equal(t, "c", page[1].Name)
}

func TestExplicitZeroLimitReturnsNoRows(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Walk")
	require.NoError(t, s.CreateCheck(&models.Check{UserID: userA, HabitID: &habit.ID, CheckDate: time.Now()}))

	habits, err := s.ListHabits(userA, false, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, habits)

	checks, err := s.ListChecks(userA, EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, checks)

	// Negative means unset and falls back to the default page size.
	habits, err = s.ListHabits(userA, false, 0, -1)
	require.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestSubHabitsOrderedByIndex(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Routine")
	require.NoError(t, s.CreateSubHabit(&models.SubHabit{ParentHabitID: habit.ID, UserID: userA, Name: "second", OrderIndex: 1}))
	require.NoError(t, s.CreateSubHabit(&models.SubHabit{ParentHabitID: habit.ID, UserID: userA, Name: "first", OrderIndex: 0}))

	subs, err := s.ListSubHabits(userA, habit.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "first", subs[0].Name)
	assert.Equal(t, "second", subs[1].Name)
}

func TestListChecksDateRangeClosedInterval(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Hydrate")

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateCheck(&models.Check{
			UserID:    userA,
			HabitID:   &habit.ID,
			Checked:   true,
			CheckDate: base.AddDate(0, 0, i),
		}))
	}

	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 3)
	checks, err := s.ListChecks(userA, EventFilter{Start: &start, End: &end, Limit: 100})
	require.NoError(t, err)
	require.Len(t, checks, 3)

	// Newest first, bounds inclusive.
	assert.True(t, checks[0].CheckDate.Equal(end))
	assert.True(t, checks[2].CheckDate.Equal(start))
}

func TestListChecksScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	habitA := createHabit(t, s, userA, "Mine")
	habitB := createHabit(t, s, userB, "Theirs")
	require.NoError(t, s.CreateCheck(&models.Check{UserID: userA, HabitID: &habitA.ID, CheckDate: time.Now()}))
	require.NoError(t, s.CreateCheck(&models.Check{UserID: userB, HabitID: &habitB.ID, CheckDate: time.Now()}))

	checks, err := s.ListChecks(userA, EventFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, userA, checks[0].UserID)
}

func TestCountsOrderedNewestFirstAndSigned(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Push-ups")

	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateCount(&models.Count{UserID: userA, HabitID: habit.ID, Value: 10, CountDate: base}))
	require.NoError(t, s.CreateCount(&models.Count{UserID: userA, HabitID: habit.ID, Value: -3, CountDate: base.Add(time.Hour)}))

	counts, err := s.ListCounts(userA, EventFilter{HabitID: &habit.ID, Limit: 100})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, float64(-3), counts[0].Value)
	assert.Equal(t, float64(10), counts[1].Value)
}

func TestUpsertActiveDayReplacesSameDay(t *testing.T) {
	s := newTestStore(t)

	morning := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)

	first := &models.ActiveDay{UserID: userA, Date: morning, Validated: false}
	require.NoError(t, s.UpsertActiveDay(first))

	second := &models.ActiveDay{
		UserID:      userA,
		Date:        evening,
		Validated:   true,
		SummaryData: models.JSONMap{"completed": float64(3)},
	}
	require.NoError(t, s.UpsertActiveDay(second))

	days, err := s.ListActiveDays(userA, EventFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, first.ID, days[0].ID)
	assert.True(t, days[0].Validated)
}

func TestUpsertActiveDayDistinctDaysAndUsers(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertActiveDay(&models.ActiveDay{UserID: userA, Date: day}))
	require.NoError(t, s.UpsertActiveDay(&models.ActiveDay{UserID: userA, Date: day.AddDate(0, 0, 1)}))
	require.NoError(t, s.UpsertActiveDay(&models.ActiveDay{UserID: userB, Date: day}))

	daysA, err := s.ListActiveDays(userA, EventFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, daysA, 2)

	daysB, err := s.ListActiveDays(userB, EventFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, daysB, 1)
}

func TestNuggetSingleton(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetNugget()
	assert.Equal(t, ErrNotFound, err)

	first, err := s.SetNugget("one")
	require.NoError(t, err)

	second, err := s.SetNugget("two")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, s.db.Model(&models.Nugget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	nugget, err := s.GetNugget()
	require.NoError(t, err)
	assert.Equal(t, "two", nugget.Text)
}

func TestGetOrCreateSettings(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.GetOrCreateSettings(userA)
	require.NoError(t, err)
	assert.Equal(t, userA, settings.UserID)

	settings.Name = "Jane"
	require.NoError(t, s.SaveSettings(settings))

	again, err := s.GetOrCreateSettings(userA)
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Name)
}

func TestDeleteScopedByOwner(t *testing.T) {
	s := newTestStore(t)
	habit := createHabit(t, s, userA, "Floss")
	check := &models.Check{UserID: userA, HabitID: &habit.ID, CheckDate: time.Now()}
	require.NoError(t, s.CreateCheck(check))

	assert.Equal(t, ErrNotFound, s.DeleteCheck(userB, check.ID))
	assert.NoError(t, s.DeleteCheck(userA, check.ID))
	assert.Equal(t, ErrNotFound, s.DeleteCheck(userA, check.ID))
}

func TestJSONBlobRoundTrip(t *testing.T) {
	s := newTestStore(t)
	habit := &models.Habit{
		UserID: userA,
		Name:   "Lift",
		CountSettings: models.JSONMap{
			"target": float64(50),
			"unit":   "reps",
			"nested": map[string]any{"step_size": float64(1)},
		},
	}
	require.NoError(t, s.CreateHabit(habit))

	got, err := s.GetHabit(userA, habit.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "reps", got.CountSettings["unit"])
	nested, ok := got.CountSettings["nested"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), nested["step_size"])
}
