package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcircle/internal/models"
)

func TestRegister(t *testing.T) {
	s, _ := newTestServer(t, nil)
	app := fiber.New()
	app.Post("/api/auth/register", s.Register)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Amelia",
				"email":    "amelia@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"name":     "Amelia Again",
				"email":    "Amelia@Example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Missing password",
			body: map[string]string{
				"name":  "Bob",
				"email": "bob@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"name":     "Bob",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid role",
			body: map[string]string{
				"name":     "Bob",
				"email":    "bob@example.com",
				"password": "password123",
				"role":     "admin",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusCreated {
				assert.NotEmpty(t, body["token"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	s, db := newTestServer(t, nil)
	createHandlerUser(t, db, "amelia")

	app := fiber.New()
	app.Post("/api/auth/login", s.Login)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "amelia@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "amelia@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_TokenFlow(t *testing.T) {
	s, db := newTestServer(t, nil)
	user := createHandlerUser(t, db, "amelia")
	token, err := s.generateToken(user.ID)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/api/auth/profile", s.AuthRequired(), s.GetProfile)

	get := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, get(""))
	assert.Equal(t, http.StatusUnauthorized, get("Bearer garbage"))

	// A valid token for a deleted account is rejected.
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+token))
}
