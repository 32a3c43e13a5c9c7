// File: /controllers/admin_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/models"
	"alumninet-api/services"
)

type AdminController struct {
	db           *gorm.DB
	emailService *services.EmailService
}

func NewAdminController(db *gorm.DB, emailService *services.EmailService) *AdminController {
	return &AdminController{
		db:           db,
		emailService: emailService,
	}
}

// PendingAlumniInfo is an unverified alumni awaiting admin review.
type PendingAlumniInfo struct {
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Name           string `json:"name"`
	CompanyID      *uint  `json:"company_id"`
	CompanyName    string `json:"company_name"`
	Position       string `json:"position"`
	GraduationYear int    `json:"graduation_year"`
}

// GetPendingUsers lists unverified alumni, oldest registration first.
func (adc *AdminController) GetPendingUsers(c *gin.Context) {
	var pending []PendingAlumniInfo
	err := adc.db.Table("users").
		Select(`users.user_id, users.email, users.role, alumni_profiles.name,
			alumni_profiles.company_id, companies.name AS company_name,
			alumni_profiles.position, alumni_profiles.graduation_year`).
		Joins("JOIN alumni_profiles ON alumni_profiles.user_id = users.user_id").
		Joins("LEFT JOIN companies ON alumni_profiles.company_id = companies.company_id").
		Where("users.role = ? AND users.verified = ?", models.RoleAlumni, false).
		Order("users.created_at ASC").
		Scan(&pending).Error
	if err != nil {
		fmt.Printf("Get pending users error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending users"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// VerifyUser marks an alumni account verified and emails them. The email is
// best-effort and never fails the verification.
func (adc *AdminController) VerifyUser(c *gin.Context) {
	adc.setVerification(c, true)
}

// RevokeUser clears an alumni account's verification and emails them.
func (adc *AdminController) RevokeUser(c *gin.Context) {
	adc.setVerification(c, false)
}

func (adc *AdminController) setVerification(c *gin.Context, verified bool) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := adc.db.Where("user_id = ? AND role = ?", uint(userID), models.RoleAlumni).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or not alumni"})
		return
	}

	if err := adc.db.Model(&user).Update("verified", verified).Error; err != nil {
		fmt.Printf("Update verification error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	go func() {
		var profile models.AlumniProfile
		name := ""
		if err := adc.db.First(&profile, "user_id = ?", user.UserID).Error; err == nil {
			name = profile.Name
		}

		var sendErr error
		if verified {
			sendErr = adc.emailService.SendVerificationApproved(user.Email, name)
		} else {
			sendErr = adc.emailService.SendVerificationRevoked(user.Email, name)
		}
		if sendErr != nil {
			fmt.Printf("Failed to send verification decision email: %v\n", sendErr)
		}
	}()

	if verified {
		c.JSON(http.StatusOK, gin.H{"message": "User verified"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "User revoked"})
	}
}
