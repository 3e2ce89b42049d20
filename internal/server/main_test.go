package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillcircle/internal/ai"
	"skillcircle/internal/config"
	"skillcircle/internal/database"
	"skillcircle/internal/middleware"
	"skillcircle/internal/models"
	"skillcircle/internal/repository"
	"skillcircle/internal/service"
)

const testPassword = "password123"

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestServer wires a Server against in-memory SQLite. It skips metrics
// registration, which uses the process-global Prometheus registry and cannot
// run once per test.
func newTestServer(t *testing.T, generator ai.TextGenerator) (*Server, *gorm.DB) {
	t.Helper()
	db := newHandlerTestDB(t)
	cfg := &config.Config{JWTSecret: "handler-test-secret", Port: "5000"}
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	requestRepo := repository.NewCourseRequestRepository(db)
	circleRepo := repository.NewCircleRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	chatbotRepo := repository.NewChatbotRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		requestRepo: requestRepo,
		circleRepo:  circleRepo,
		messageRepo: messageRepo,
		chatbotRepo: chatbotRepo,
	}
	s.userService = service.NewUserService(userRepo, courseRepo, circleRepo, requestRepo, chatbotRepo)
	s.courseService = service.NewCourseService(courseRepo, requestRepo)
	s.circleService = service.NewCircleService(circleRepo)
	s.messageService = service.NewMessageService(messageRepo, userRepo, circleRepo)
	s.chatbotService = service.NewChatbotService(generator, chatbotRepo)
	return s, db
}

// newAuthedApp returns a Fiber app that treats every request as coming from
// *actor, so tests can switch users between requests.
func newAuthedApp(s *Server, actor *uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", *actor)
		return c.Next()
	})
	return app
}

func createHandlerUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: string(hash),
		Role:     models.UserRoleLearner,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
