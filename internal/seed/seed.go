package seed

import (
	"fmt"
	"log"

	"skillcircle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumCourses  int
	NumCircles  int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
	}
}

// ClearAll removes all seeded data. Tables are cleared child-first so
// foreign keys never block the wipe.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{
		"chatbot_history",
		"messages",
		"course_requests",
		"circle_members",
		"study_circles",
		"courses",
		"users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, courses, circles, memberships and messages.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users, %d courses, %d circles...",
		opts.NumUsers, opts.NumCourses, opts.NumCircles)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	if len(users) < 2 {
		return fmt.Errorf("need at least 2 users to seed relationships")
	}

	for i := 0; i < opts.NumCourses; i++ {
		owner := users[s.factory.rnd.Intn(len(users))]
		if _, err := s.factory.CreateCourse(owner); err != nil {
			return err
		}
	}

	circles := make([]*models.StudyCircle, 0, opts.NumCircles)
	for i := 0; i < opts.NumCircles; i++ {
		creator := users[s.factory.rnd.Intn(len(users))]
		circle, err := s.factory.CreateCircle(creator)
		if err != nil {
			return err
		}
		circles = append(circles, circle)
	}

	// Fill circles with a few extra members and some chatter.
	for _, circle := range circles {
		for i := 0; i < 3; i++ {
			member := users[s.factory.rnd.Intn(len(users))]
			if member.ID == circle.CreatorID {
				continue
			}
			err := s.db.Transaction(func(tx *gorm.DB) error {
				res := tx.Model(&models.StudyCircle{}).
					Where("id = ? AND member_count < max_members", circle.ID).
					UpdateColumn("member_count", gorm.Expr("member_count + 1"))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return gorm.ErrInvalidData // circle full, skip
				}
				return tx.Create(&models.CircleMember{
					CircleID: circle.ID,
					UserID:   member.ID,
				}).Error
			})
			if err != nil {
				// Duplicate membership picks are fine, skip them.
				continue
			}
			if _, err := s.factory.CreateGroupMessage(member, circle); err != nil {
				return err
			}
		}
	}

	// A loose mesh of direct messages between random user pairs.
	for i := 0; i < opts.NumUsers*2; i++ {
		sender := users[s.factory.rnd.Intn(len(users))]
		receiver := users[s.factory.rnd.Intn(len(users))]
		if sender.ID == receiver.ID {
			continue
		}
		if _, err := s.factory.CreateDirectMessage(sender, receiver); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d users, %d courses, %d circles", len(users), opts.NumCourses, len(circles))
	return nil
}
