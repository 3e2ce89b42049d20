package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcircle/internal/models"
)

func TestCourseRequestLifecycle(t *testing.T) {
	s, db := newTestServer(t, nil)
	owner := createHandlerUser(t, db, "owner")
	requester := createHandlerUser(t, db, "requester")

	actor := owner.ID
	app := newAuthedApp(s, &actor)
	app.Post("/api/courses", s.CreateCourse)
	app.Post("/api/courses/:id/request", s.RequestCourseAccess)
	app.Get("/api/courses/requests/sent", s.GetSentRequests)
	app.Get("/api/courses/requests/received", s.GetReceivedRequests)
	app.Put("/api/courses/requests/:id", s.UpdateRequestStatus)

	resp, course := doJSON(t, app, http.MethodPost, "/api/courses", map[string]string{
		"title":       "Intro to SQL",
		"description": "Joins and indexes",
		"platform":    "Coursera",
		"type":        "lend",
		"category":    "Databases",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	courseID := uint(course["id"].(float64))

	// Owners cannot request their own course.
	requestPath := fmt.Sprintf("/api/courses/%d/request", courseID)
	resp, _ = doJSON(t, app, http.MethodPost, requestPath, map[string]string{"reason": "mine"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	actor = requester.ID
	resp, request := doJSON(t, app, http.MethodPost, requestPath, map[string]string{
		"reason":      "Want to learn SQL",
		"time_window": "2 weeks",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, string(models.RequestStatusPending), request["status"])
	requestID := uint(request["id"].(float64))

	resp, _ = doJSON(t, app, http.MethodPost, requestPath, map[string]string{"reason": "again"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "one active request per course")

	// Only the course owner can settle the request.
	settlePath := fmt.Sprintf("/api/courses/requests/%d", requestID)
	resp, _ = doJSON(t, app, http.MethodPut, settlePath, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	actor = owner.ID
	resp, settled := doJSON(t, app, http.MethodPut, settlePath, map[string]string{
		"status":  "approved",
		"message": "Enjoy!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(models.RequestStatusApproved), settled["status"])

	resp, _ = doJSON(t, app, http.MethodPut, settlePath, map[string]string{"status": "denied"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "settled requests stay settled")
}

func TestUpdateCourse_OwnershipAndPartialBody(t *testing.T) {
	s, db := newTestServer(t, nil)
	owner := createHandlerUser(t, db, "owner")
	stranger := createHandlerUser(t, db, "stranger")

	course := &models.Course{
		Title:        "Intro to Go",
		Description:  "d",
		Platform:     "Udemy",
		ImageURL:     models.DefaultCourseImageURL,
		Availability: models.CourseAvailable,
		Type:         models.CourseTypeLend,
		OwnerID:      owner.ID,
		Category:     "Programming",
		Difficulty:   models.DifficultyBeginner,
	}
	require.NoError(t, db.Create(course).Error)

	actor := stranger.ID
	app := newAuthedApp(s, &actor)
	app.Put("/api/courses/:id", s.UpdateCourse)

	path := fmt.Sprintf("/api/courses/%d", course.ID)
	resp, _ := doJSON(t, app, http.MethodPut, path, map[string]string{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	actor = owner.ID
	resp, updated := doJSON(t, app, http.MethodPut, path, map[string]string{"availability": "busy"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "busy", updated["availability"])
	assert.Equal(t, "Intro to Go", updated["title"], "omitted fields are untouched")
}

func TestGetCourse_NotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)
	app := newAuthedApp(s, new(uint))
	app.Get("/api/courses/:id", s.GetCourse)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/courses/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/courses/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
