// File: /controllers/profile_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/middleware"
	"alumninet-api/models"
)

type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetUserProfile returns another user's public profile shaped by their role.
// Unverified alumni profiles are not viewable.
func (pc *ProfileController) GetUserProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := pc.db.First(&user, "user_id = ?", uint(userID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role == models.RoleAlumni && !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Alumni profile not verified"})
		return
	}

	response := gin.H{
		"user_id":  user.UserID,
		"email":    user.Email,
		"role":     user.Role,
		"verified": user.Verified,
	}

	switch user.Role {
	case models.RoleStudent:
		var profile models.StudentProfile
		if err := pc.db.First(&profile, "user_id = ?", user.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
			return
		}
		response["name"] = profile.Name
		response["phone"] = profile.Phone
		response["graduation_year"] = profile.GraduationYear
		response["major"] = profile.Major
		response["cgpa"] = profile.CGPA
		response["bio"] = profile.Bio
		response["github_url"] = profile.GithubURL
		response["linkedin_url"] = profile.LinkedinURL
		response["portfolio_url"] = profile.PortfolioURL
		response["skills"] = profile.Skills
		response["certifications"] = profile.Certifications
		response["projects"] = profile.Projects

	case models.RoleAlumni:
		var profile models.AlumniProfile
		if err := pc.db.First(&profile, "user_id = ?", user.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alumni profile not found"})
			return
		}
		response["name"] = profile.Name
		response["phone"] = profile.Phone
		response["company_name"] = companyName(pc.db, profile.CompanyID)
		response["position"] = profile.Position
		response["graduation_year"] = profile.GraduationYear
		response["bio"] = profile.Bio
		response["linkedin_url"] = profile.LinkedinURL
		response["github_url"] = profile.GithubURL
		response["experience"] = profile.Experience
		response["education"] = profile.Education
		response["certifications"] = profile.Certifications
		response["skills"] = profile.Skills

	case models.RoleAdmin:
		response["name"] = "Administrator"
	}

	c.JSON(http.StatusOK, response)
}

type UpdateStudentProfileRequest struct {
	Name           string                 `json:"name" binding:"required,max=255"`
	Phone          string                 `json:"phone" binding:"max=20"`
	GraduationYear int                    `json:"graduation_year" binding:"required,min=1900,max=2100"`
	Major          string                 `json:"major" binding:"max=100"`
	CGPA           *float64               `json:"cgpa" binding:"omitempty,min=0,max=10"`
	Bio            string                 `json:"bio"`
	GithubURL      string                 `json:"github_url"`
	LinkedinURL    string                 `json:"linkedin_url"`
	PortfolioURL   string                 `json:"portfolio_url"`
	Skills         models.StringSliceType `json:"skills"`
	Certifications models.StringSliceType `json:"certifications"`
	Projects       models.StringSliceType `json:"projects"`
}

// UpdateStudentProfile replaces the caller's student profile fields.
func (pc *ProfileController) UpdateStudentProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.StudentProfile
	if err := pc.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
		return
	}

	profile.Name = req.Name
	profile.Phone = req.Phone
	profile.GraduationYear = req.GraduationYear
	profile.Major = req.Major
	profile.CGPA = req.CGPA
	profile.Bio = req.Bio
	profile.GithubURL = req.GithubURL
	profile.LinkedinURL = req.LinkedinURL
	profile.PortfolioURL = req.PortfolioURL
	profile.Skills = req.Skills
	profile.Certifications = req.Certifications
	profile.Projects = req.Projects

	if err := pc.db.Save(&profile).Error; err != nil {
		fmt.Printf("Update student profile error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student profile updated successfully"})
}

type UpdateAlumniProfileRequest struct {
	Name           string                 `json:"name" binding:"required,max=255"`
	Phone          string                 `json:"phone" binding:"max=20"`
	CompanyName    string                 `json:"company_name" binding:"max=255"`
	Position       string                 `json:"position" binding:"max=100"`
	GraduationYear int                    `json:"graduation_year" binding:"required,min=1900,max=2100"`
	Bio            string                 `json:"bio"`
	LinkedinURL    string                 `json:"linkedin_url"`
	GithubURL      string                 `json:"github_url"`
	Experience     models.ExperienceList  `json:"experience"`
	Education      models.EducationList   `json:"education"`
	Certifications models.StringSliceType `json:"certifications"`
	Skills         models.StringSliceType `json:"skills"`
}

// UpdateAlumniProfile replaces the caller's alumni profile fields, resolving
// the company name to a row inside the same transaction.
func (pc *ProfileController) UpdateAlumniProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateAlumniProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.AlumniProfile
	if err := pc.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alumni profile not found"})
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		companyID, err := getOrCreateCompany(tx, req.CompanyName)
		if err != nil {
			return err
		}

		profile.Name = req.Name
		profile.Phone = req.Phone
		profile.CompanyID = companyID
		profile.Position = req.Position
		profile.GraduationYear = req.GraduationYear
		profile.Bio = req.Bio
		profile.LinkedinURL = req.LinkedinURL
		profile.GithubURL = req.GithubURL
		profile.Experience = req.Experience
		profile.Education = req.Education
		profile.Certifications = req.Certifications
		profile.Skills = req.Skills

		return tx.Save(&profile).Error
	})
	if err != nil {
		fmt.Printf("Update alumni profile error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alumni profile updated successfully"})
}
