// File: /controllers/user_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// UserSummary is the directory row shown in search/browse results.
type UserSummary struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	Major       string `json:"major,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

const userSummarySelect = `users.user_id, users.email, users.role,
	COALESCE(student_profiles.name, alumni_profiles.name) AS name,
	alumni_profiles.position AS position,
	student_profiles.major AS major,
	companies.name AS company_name`

func (uc *UserController) summaryQuery() *gorm.DB {
	return uc.db.Table("users").
		Select(userSummarySelect).
		Joins("LEFT JOIN student_profiles ON users.user_id = student_profiles.user_id").
		Joins("LEFT JOIN alumni_profiles ON users.user_id = alumni_profiles.user_id").
		Joins("LEFT JOIN companies ON alumni_profiles.company_id = companies.company_id").
		Where("users.verified = ?", true)
}

// SearchUsers matches verified users by name or email, capped at 20 rows.
func (uc *UserController) SearchUsers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query must be at least 2 characters"})
		return
	}

	searchTerm := "%" + q + "%"

	var users []UserSummary
	if err := uc.summaryQuery().
		Where("(student_profiles.name LIKE ? OR alumni_profiles.name LIKE ? OR users.email LIKE ?)",
			searchTerm, searchTerm, searchTerm).
		Limit(20).
		Scan(&users).Error; err != nil {
		fmt.Printf("Search users error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetAllUsers returns a browsable directory of verified users, newest first.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []UserSummary
	if err := uc.summaryQuery().
		Order("users.created_at DESC").
		Limit(50).
		Scan(&users).Error; err != nil {
		fmt.Printf("Get all users error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}
