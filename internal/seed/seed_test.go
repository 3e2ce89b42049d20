package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillcircle/internal/database"
	"skillcircle/internal/models"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeederRun(t *testing.T) {
	db := newSeedTestDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(Options{NumUsers: 5, NumCourses: 8, NumCircles: 2}))

	assert.EqualValues(t, 5, count(t, db, &models.User{}))
	assert.EqualValues(t, 8, count(t, db, &models.Course{}))
	assert.EqualValues(t, 2, count(t, db, &models.StudyCircle{}))

	// Every circle's denormalized counter matches its membership rows, and no
	// circle is seeded past its cap.
	var circles []models.StudyCircle
	require.NoError(t, db.Find(&circles).Error)
	for _, circle := range circles {
		var members int64
		require.NoError(t, db.Model(&models.CircleMember{}).
			Where("circle_id = ?", circle.ID).Count(&members).Error)
		assert.EqualValues(t, circle.MemberCount, members)
		assert.LessOrEqual(t, circle.MemberCount, circle.MaxMembers)
	}

	// Group messages only come from members.
	var groupMessages []models.Message
	require.NoError(t, db.Where("message_type = ?", models.MessageTypeGroup).Find(&groupMessages).Error)
	for _, msg := range groupMessages {
		require.NotNil(t, msg.CircleID)
		var membership int64
		require.NoError(t, db.Model(&models.CircleMember{}).
			Where("circle_id = ? AND user_id = ?", *msg.CircleID, msg.SenderID).
			Count(&membership).Error)
		assert.EqualValues(t, 1, membership)
	}
}

func TestSeederRun_NeedsTwoUsers(t *testing.T) {
	db := newSeedTestDB(t)
	assert.Error(t, NewSeeder(db).Run(Options{NumUsers: 1}))
}

func TestSeederClearAll(t *testing.T) {
	db := newSeedTestDB(t)
	seeder := NewSeeder(db)
	require.NoError(t, seeder.Run(Options{NumUsers: 3, NumCourses: 2, NumCircles: 1}))

	require.NoError(t, seeder.ClearAll())

	assert.Zero(t, count(t, db, &models.User{}))
	assert.Zero(t, count(t, db, &models.Course{}))
	assert.Zero(t, count(t, db, &models.StudyCircle{}))
	assert.Zero(t, count(t, db, &models.Message{}))
	assert.Zero(t, count(t, db, &models.CircleMember{}))
}
