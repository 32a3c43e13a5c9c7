// File: /controllers/auth_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"alumninet-api/models"
)

const testJWTSecret = "test-secret"

func authRouter(db *gorm.DB) *gin.Engine {
	ac := NewAuthController(db, testJWTSecret)

	r := gin.New()
	r.POST("/auth/register/student", ac.RegisterStudent)
	r.POST("/auth/register/alumni", ac.RegisterAlumni)
	r.POST("/auth/login", ac.Login)
	return r
}

func TestRegisterStudentAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := doJSON(t, router, http.MethodPost, "/auth/register/student", gin.H{
		"email":           "student@example.com",
		"password":        "password123",
		"name":            "Test Student",
		"graduation_year": 2026,
		"major":           "Computer Science",
		"skills":          []string{"Go", "SQL"},
	})
	requireStatus(t, w, http.StatusCreated)

	var user models.User
	if err := db.First(&user, "email = ?", "student@example.com").Error; err != nil {
		t.Fatalf("expected user row: %v", err)
	}
	if !user.Verified {
		t.Error("students should be auto-verified")
	}
	if user.Role != models.RoleStudent {
		t.Errorf("expected student role, got %s", user.Role)
	}

	var profile models.StudentProfile
	if err := db.First(&profile, "user_id = ?", user.UserID).Error; err != nil {
		t.Fatalf("expected student profile: %v", err)
	}
	if len(profile.Skills) != 2 {
		t.Errorf("expected 2 skills, got %v", profile.Skills)
	}

	// Login immediately
	w = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "student@example.com",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if body["token"] == nil || body["token"] == "" {
		t.Fatal("expected token in login response")
	}

	// The token carries the identity claims the middleware relies on.
	token, err := jwt.Parse(body["token"].(string), func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if uint(claims["user_id"].(float64)) != user.UserID {
		t.Errorf("token user_id = %v, want %d", claims["user_id"], user.UserID)
	}
	if claims["role"] != "student" {
		t.Errorf("token role = %v, want student", claims["role"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	payload := gin.H{
		"email":           "dup@example.com",
		"password":        "password123",
		"name":            "First",
		"graduation_year": 2026,
	}
	w := doJSON(t, router, http.MethodPost, "/auth/register/student", payload)
	requireStatus(t, w, http.StatusCreated)

	w = doJSON(t, router, http.MethodPost, "/auth/register/student", payload)
	requireStatus(t, w, http.StatusBadRequest)
	if decodeBody(t, w)["error"] != "Email already exists" {
		t.Errorf("expected duplicate email error, got %s", w.Body.String())
	}

	// Same email across roles is also rejected.
	w = doJSON(t, router, http.MethodPost, "/auth/register/alumni", gin.H{
		"email":           "dup@example.com",
		"password":        "password123",
		"name":            "Second",
		"graduation_year": 2018,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestRegisterStudentValidation(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	// Missing email
	w := doJSON(t, router, http.MethodPost, "/auth/register/student", gin.H{
		"password":        "password123",
		"name":            "No Email",
		"graduation_year": 2026,
	})
	requireStatus(t, w, http.StatusBadRequest)

	// Short password
	w = doJSON(t, router, http.MethodPost, "/auth/register/student", gin.H{
		"email":           "short@example.com",
		"password":        "abc",
		"name":            "Short Password",
		"graduation_year": 2026,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestAlumniLoginGatedOnVerification(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	w := doJSON(t, router, http.MethodPost, "/auth/register/alumni", gin.H{
		"email":           "alum@example.com",
		"password":        "password123",
		"name":            "Test Alum",
		"graduation_year": 2018,
		"company_name":    "Acme Corp",
		"position":        "Engineer",
	})
	requireStatus(t, w, http.StatusCreated)

	var user models.User
	db.First(&user, "email = ?", "alum@example.com")
	if user.Verified {
		t.Error("alumni must start unverified")
	}

	w = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "alum@example.com",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusForbidden)

	// Admin verifies; login now succeeds.
	db.Model(&user).Update("verified", true)
	w = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "alum@example.com",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusOK)
}

func TestRegisterAlumniReusesCompany(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	for i, email := range []string{"a1@example.com", "a2@example.com"} {
		name := "Acme Corp"
		if i == 1 {
			name = "acme corp"
		}
		w := doJSON(t, router, http.MethodPost, "/auth/register/alumni", gin.H{
			"email":           email,
			"password":        "password123",
			"name":            "Alum",
			"graduation_year": 2018,
			"company_name":    name,
		})
		requireStatus(t, w, http.StatusCreated)
	}

	var count int64
	db.Model(&models.Company{}).Count(&count)
	if count != 1 {
		t.Errorf("case-insensitive match should reuse the company row, got %d rows", count)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(db)

	createUser(t, db, "known@example.com", models.RoleStudent, true)

	// Unknown email
	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "unknown@example.com",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusBadRequest)

	// Wrong password
	w = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "known@example.com",
		"password": "wrongpassword",
	})
	requireStatus(t, w, http.StatusBadRequest)
	if decodeBody(t, w)["error"] != "Invalid credentials" {
		t.Errorf("expected invalid credentials, got %s", w.Body.String())
	}
}
