package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"skillcircle/internal/database"
	"skillcircle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createTestCircle(t *testing.T, repo CircleRepository, creator *models.User, maxMembers int) *models.StudyCircle {
	t.Helper()
	circle := &models.StudyCircle{
		Name:       "Go Study Group",
		Topic:      "Programming",
		SkillLevel: models.DifficultyBeginner,
		Goals:      "Learn Go together",
		CreatorID:  creator.ID,
		MaxMembers: maxMembers,
		IsActive:   true,
	}
	require.NoError(t, repo.Create(context.Background(), circle))
	return circle
}

func TestCircleCreate_CreatorIsMember(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "creator")

	circle := createTestCircle(t, repo, creator, 5)

	loaded, err := repo.GetByID(context.Background(), circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.MemberCount)
	require.Len(t, loaded.Members, 1)
	assert.Equal(t, creator.ID, loaded.Members[0].ID)

	member, err := repo.IsMember(context.Background(), circle.ID, creator.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestCircleAddMember_Capacity(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "capcreator")
	second := createTestUser(t, db, "capsecond")
	third := createTestUser(t, db, "capthird")

	circle := createTestCircle(t, repo, creator, 2)

	require.NoError(t, repo.AddMember(context.Background(), circle.ID, second.ID))

	err := repo.AddMember(context.Background(), circle.ID, third.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeCapacity, appErr.Code)

	// Member count never overshoots the cap.
	loaded, err := repo.GetByID(context.Background(), circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.MemberCount)
}

func TestCircleAddMember_ConcurrentJoins(t *testing.T) {
	t.Parallel()
	// File-backed database with immediate write transactions so concurrent
	// joiners queue on the write lock instead of failing with SQLITE_BUSY.
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_busy_timeout=10000",
		filepath.Join(t.TempDir(), "circles.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "racecreator")
	circle := createTestCircle(t, repo, creator, 3)

	const contenders = 8
	users := make([]*models.User, contenders)
	for i := range users {
		users[i] = createTestUser(t, db, fmt.Sprintf("racer%d", i))
	}

	start := make(chan struct{})
	errs := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = repo.AddMember(context.Background(), circle.ID, users[i].ID)
		}(i)
	}
	close(start)
	wg.Wait()

	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
		}
	}
	assert.Equal(t, 2, joined, "the circle had exactly two open seats")

	loaded, err := repo.GetByID(context.Background(), circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.MemberCount)
	assert.LessOrEqual(t, loaded.MemberCount, loaded.MaxMembers)

	var memberships int64
	require.NoError(t, db.Model(&models.CircleMember{}).
		Where("circle_id = ?", circle.ID).
		Count(&memberships).Error)
	assert.EqualValues(t, 3, memberships)
}

func TestCircleAddMember_Duplicate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "dupcreator")
	joiner := createTestUser(t, db, "dupjoiner")

	circle := createTestCircle(t, repo, creator, 5)

	require.NoError(t, repo.AddMember(context.Background(), circle.ID, joiner.ID))

	err := repo.AddMember(context.Background(), circle.ID, joiner.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)

	loaded, err := repo.GetByID(context.Background(), circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.MemberCount)
}

func TestCircleAddMember_MissingCircle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	user := createTestUser(t, db, "lost")

	err := repo.AddMember(context.Background(), 9999, user.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCircleRemoveMember(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "rmcreator")
	joiner := createTestUser(t, db, "rmjoiner")
	stranger := createTestUser(t, db, "rmstranger")

	circle := createTestCircle(t, repo, creator, 5)
	require.NoError(t, repo.AddMember(context.Background(), circle.ID, joiner.ID))

	// A non-member cannot leave.
	err := repo.RemoveMember(context.Background(), circle.ID, stranger.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)

	require.NoError(t, repo.RemoveMember(context.Background(), circle.ID, joiner.ID))

	loaded, err := repo.GetByID(context.Background(), circle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.MemberCount)

	member, err := repo.IsMember(context.Background(), circle.ID, joiner.ID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestCircleList_Filters(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "listcreator")

	goCircle := createTestCircle(t, repo, creator, 5)

	inactive := &models.StudyCircle{
		Name:       "Dormant",
		Topic:      "History",
		SkillLevel: models.DifficultyAdvanced,
		Goals:      "nothing right now",
		CreatorID:  creator.ID,
		MaxMembers: 5,
		IsActive:   true,
	}
	require.NoError(t, repo.Create(context.Background(), inactive))
	require.NoError(t, db.Model(&models.StudyCircle{}).
		Where("id = ?", inactive.ID).
		UpdateColumn("is_active", false).Error)

	all, err := repo.List(context.Background(), CircleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, goCircle.ID, all[0].ID)

	// Case-insensitive topic match.
	byTopic, err := repo.List(context.Background(), CircleFilter{Topic: "program"})
	require.NoError(t, err)
	assert.Len(t, byTopic, 1)

	none, err := repo.List(context.Background(), CircleFilter{SkillLevel: models.DifficultyAdvanced})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCircleDelete_RemovesMembershipsAndMessages(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	creator := createTestUser(t, db, "delcreator")

	circle := createTestCircle(t, repo, creator, 5)

	circleID := circle.ID
	require.NoError(t, db.Create(&models.Message{
		SenderID:    creator.ID,
		CircleID:    &circleID,
		Content:     "hello circle",
		MessageType: models.MessageTypeGroup,
	}).Error)

	require.NoError(t, repo.Delete(context.Background(), circle.ID))

	_, err := repo.GetByID(context.Background(), circle.ID)
	require.Error(t, err)

	var memberCount int64
	require.NoError(t, db.Model(&models.CircleMember{}).Where("circle_id = ?", circleID).Count(&memberCount).Error)
	assert.Zero(t, memberCount)

	var msgCount int64
	require.NoError(t, db.Model(&models.Message{}).Where("circle_id = ?", circleID).Count(&msgCount).Error)
	assert.Zero(t, msgCount)
}
