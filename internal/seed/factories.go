// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"skillcircle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	topics = []string{
		"Programming", "Web Development", "Data Science", "Machine Learning",
		"Mathematics", "Languages", "Music Theory", "Photography", "Design",
		"Marketing", "Finance", "Public Speaking", "Writing", "DevOps",
	}

	platforms = []string{
		"Udemy", "Coursera", "edX", "Pluralsight", "LinkedIn Learning",
		"Skillshare", "YouTube", "Khan Academy", "freeCodeCamp",
	}

	difficulties = []models.CourseDifficulty{
		models.DifficultyBeginner,
		models.DifficultyIntermediate,
		models.DifficultyAdvanced,
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
	seq int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the last maxDays days.
func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving. All seeded users
// share the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	role := models.UserRoleLearner
	if f.rnd.Intn(2) == 0 {
		role = models.UserRoleSharer
	}

	// A sequence keeps generated emails unique; the users table enforces it.
	f.seq++

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    strings.ToLower(fmt.Sprintf("%s.%d@%s", gofakeit.Username(), f.seq, gofakeit.DomainName())),
		Password: string(hashedPassword),
		Role:     role,
		Bio:      gofakeit.Sentence(10),
		Skills:   f.skillSet(3),
		Interests: []string{
			topics[f.rnd.Intn(len(topics))],
			topics[f.rnd.Intn(len(topics))],
		},
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (f *Factory) skillSet(n int) []string {
	skills := make([]string, 0, n)
	for i := 0; i < n; i++ {
		skills = append(skills, gofakeit.HackerVerb()+" "+gofakeit.HackerNoun())
	}
	return skills
}

// CreateCourse constructs and persists a sample course owned by the user.
func (f *Factory) CreateCourse(owner *models.User, overrides ...func(*models.Course)) (*models.Course, error) {
	topic := topics[f.rnd.Intn(len(topics))]
	courseType := models.CourseTypeLend
	if f.rnd.Intn(3) == 0 {
		courseType = models.CourseTypeExchange
	}

	course := &models.Course{
		Title:        fmt.Sprintf("%s: %s", topic, gofakeit.Sentence(4)),
		Description:  gofakeit.Paragraph(1, 3, 8, "\n"),
		Platform:     platforms[f.rnd.Intn(len(platforms))],
		ImageURL:     models.DefaultCourseImageURL,
		Availability: models.CourseAvailable,
		Type:         courseType,
		OwnerID:      owner.ID,
		Category:     topic,
		Duration:     fmt.Sprintf("%d hours", f.rnd.Intn(40)+2),
		Difficulty:   difficulties[f.rnd.Intn(len(difficulties))],
		CreatedAt:    f.pastTime(90),
	}

	for _, override := range overrides {
		override(course)
	}

	if err := f.db.Create(course).Error; err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// CreateCircle constructs and persists a sample circle with the creator as
// its first member.
func (f *Factory) CreateCircle(creator *models.User, overrides ...func(*models.StudyCircle)) (*models.StudyCircle, error) {
	topic := topics[f.rnd.Intn(len(topics))]

	circle := &models.StudyCircle{
		Name:         fmt.Sprintf("%s %s Circle", gofakeit.AdjectiveDescriptive(), topic),
		Topic:        topic,
		SkillLevel:   difficulties[f.rnd.Intn(len(difficulties))],
		Availability: "weekday evenings",
		Goals:        gofakeit.Sentence(12),
		Resources:    []string{gofakeit.URL(), gofakeit.URL()},
		CreatorID:    creator.ID,
		MaxMembers:   models.DefaultMaxMembers,
		MemberCount:  1,
		IsActive:     true,
		CreatedAt:    f.pastTime(60),
	}

	for _, override := range overrides {
		override(circle)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(circle).Error; err != nil {
			return err
		}
		return tx.Create(&models.CircleMember{
			CircleID: circle.ID,
			UserID:   creator.ID,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create circle: %w", err)
	}
	return circle, nil
}

// CreateDirectMessage persists a direct message between the two users.
func (f *Factory) CreateDirectMessage(sender, receiver *models.User) (*models.Message, error) {
	receiverID := receiver.ID
	message := &models.Message{
		SenderID:    sender.ID,
		ReceiverID:  &receiverID,
		Content:     gofakeit.Sentence(f.rnd.Intn(12) + 3),
		MessageType: models.MessageTypeDirect,
		CreatedAt:   f.pastTime(30),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("create direct message: %w", err)
	}
	return message, nil
}

// CreateGroupMessage persists a circle message from the given member.
func (f *Factory) CreateGroupMessage(sender *models.User, circle *models.StudyCircle) (*models.Message, error) {
	circleID := circle.ID
	message := &models.Message{
		SenderID:    sender.ID,
		CircleID:    &circleID,
		Content:     gofakeit.Sentence(f.rnd.Intn(12) + 3),
		MessageType: models.MessageTypeGroup,
		CreatedAt:   f.pastTime(30),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("create group message: %w", err)
	}
	return message, nil
}
