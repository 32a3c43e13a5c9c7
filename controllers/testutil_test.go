// File: /controllers/testutil_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alumninet-api/config"
	"alumninet-api/models"
	"alumninet-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens an in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.AlumniProfile{},
		&models.Company{},
		&models.Opportunity{},
		&models.Application{},
		&models.Connection{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// testEmailService returns a service whose sends fail fast; controllers treat
// email failures as non-fatal so tests exercise that path.
func testEmailService() *services.EmailService {
	return services.NewEmailService(&config.Config{
		SMTPHost:  "127.0.0.1",
		SMTPPort:  1,
		FromEmail: "noreply@test.local",
		FromName:  "Test",
	})
}

// asUser stubs the auth middleware, storing the principal the way
// AuthMiddleware would after decoding a token.
func asUser(userID uint, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
		c.Set("verified", true)
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole, verified bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Verified:     verified,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createStudentProfile(t *testing.T, db *gorm.DB, userID uint, name string) {
	t.Helper()

	profile := models.StudentProfile{
		UserID:         userID,
		Name:           name,
		GraduationYear: 2026,
		Major:          "Computer Science",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create student profile: %v", err)
	}
}

func createAlumniProfile(t *testing.T, db *gorm.DB, userID uint, name string) {
	t.Helper()

	profile := models.AlumniProfile{
		UserID:         userID,
		Name:           name,
		GraduationYear: 2018,
		Position:       "Engineer",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create alumni profile: %v", err)
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response list %q: %v", w.Body.String(), err)
	}
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d (body: %s)", want, w.Code, w.Body.String())
	}
}
