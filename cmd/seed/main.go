// Command main runs the database seeder for SkillCircle.
package main

import (
	"flag"
	"log"

	"skillcircle/internal/config"
	"skillcircle/internal/database"
	"skillcircle/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 30, "Number of users to create")
	numCourses := flag.Int("courses", 60, "Number of courses to create")
	numCircles := flag.Int("circles", 10, "Number of study circles to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d courses, %d circles, clean=%v\n",
		*numUsers, *numCourses, *numCircles, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumCourses:  *numCourses,
		NumCircles:  *numCircles,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Println("All seeded users have the password: password123")
}
