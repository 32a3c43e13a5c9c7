// File: /controllers/opportunity_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/middleware"
	"alumninet-api/models"
	"alumninet-api/services"
)

type OpportunityController struct {
	db           *gorm.DB
	emailService *services.EmailService
}

func NewOpportunityController(db *gorm.DB, emailService *services.EmailService) *OpportunityController {
	return &OpportunityController{
		db:           db,
		emailService: emailService,
	}
}

type CreateOpportunityRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=job internship"`
	CompanyName string `json:"company_name" binding:"required,max=255"`
}

// CreateOpportunity posts a new opportunity under an existing company and
// notifies the poster plus every student by email. Emails are best-effort.
func (oc *OpportunityController) CreateOpportunity(c *gin.Context) {
	alumniID := middleware.UserID(c)

	var req CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var company models.Company
	if err := oc.db.Where("name = ?", req.CompanyName).First(&company).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company not found"})
		return
	}

	opportunity := models.Opportunity{
		AlumniID:    alumniID,
		CompanyID:   company.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		Type:        models.OpportunityType(req.Type),
	}

	if err := oc.db.Create(&opportunity).Error; err != nil {
		fmt.Printf("Create opportunity error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	go oc.notifyOpportunityPosted(alumniID, &opportunity, req.CompanyName)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Opportunity created",
		"opportunity_id": opportunity.OpportunityID,
	})
}

func (oc *OpportunityController) notifyOpportunityPosted(alumniID uint, opportunity *models.Opportunity, companyName string) {
	alumniEmail, alumniName, err := lookupAlumni(oc.db, alumniID)
	if err != nil {
		fmt.Printf("Failed to look up alumni for opportunity email: %v\n", err)
		return
	}

	if err := oc.emailService.SendOpportunityPosted(alumniEmail, alumniName, opportunity.Title, companyName); err != nil {
		fmt.Printf("Failed to send opportunity confirmation email: %v\n", err)
	}

	var students []struct {
		Email string
		Name  string
	}
	if err := oc.db.Table("users").
		Select("users.email, student_profiles.name").
		Joins("JOIN student_profiles ON users.user_id = student_profiles.user_id").
		Where("users.role = ?", models.RoleStudent).
		Scan(&students).Error; err != nil {
		fmt.Printf("Failed to list students for opportunity notice: %v\n", err)
		return
	}

	for _, student := range students {
		if err := oc.emailService.SendNewOpportunityNotice(student.Email, student.Name,
			opportunity.Title, companyName, opportunity.Description, string(opportunity.Type), alumniName); err != nil {
			fmt.Printf("Failed to send opportunity notice to %s: %v\n", student.Email, err)
		}
	}
}

// PostingInfo is an alumni's own posting with its application count.
type PostingInfo struct {
	OpportunityID    uint   `json:"opportunity_id"`
	AlumniID         uint   `json:"alumni_id"`
	CompanyID        uint   `json:"company_id"`
	CompanyName      string `json:"company_name"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	ApplicationCount int64  `json:"application_count"`
}

// GetMyPostings lists the caller's opportunities newest first.
func (oc *OpportunityController) GetMyPostings(c *gin.Context) {
	alumniID := middleware.UserID(c)

	var postings []PostingInfo
	err := oc.db.Table("opportunities").
		Select(`opportunities.opportunity_id, opportunities.alumni_id, opportunities.company_id,
			companies.name AS company_name, opportunities.title, opportunities.description,
			opportunities.type, opportunities.status, opportunities.created_at, opportunities.updated_at,
			(SELECT COUNT(*) FROM applications WHERE applications.opportunity_id = opportunities.opportunity_id) AS application_count`).
		Joins("LEFT JOIN companies ON opportunities.company_id = companies.company_id").
		Where("opportunities.alumni_id = ?", alumniID).
		Order("opportunities.created_at DESC").
		Scan(&postings).Error
	if err != nil {
		fmt.Printf("Get my postings error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch postings"})
		return
	}

	c.JSON(http.StatusOK, postings)
}

type UpdateOpportunityRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=job internship"`
	Status      string `json:"status" binding:"required,oneof=active closed"`
}

// UpdateOpportunity edits a posting. Only the owning alumni may update it.
func (oc *OpportunityController) UpdateOpportunity(c *gin.Context) {
	alumniID := middleware.UserID(c)

	opportunityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opportunity ID"})
		return
	}

	var req UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opportunity models.Opportunity
	if err := oc.db.First(&opportunity, "opportunity_id = ?", uint(opportunityID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}

	if opportunity.AlumniID != alumniID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	opportunity.Title = req.Title
	opportunity.Description = req.Description
	opportunity.Type = models.OpportunityType(req.Type)
	opportunity.Status = models.OpportunityStatus(req.Status)

	if err := oc.db.Save(&opportunity).Error; err != nil {
		fmt.Printf("Update opportunity error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update opportunity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Opportunity updated"})
}

// lookupAlumni returns the email and profile name for an alumni user.
func lookupAlumni(db *gorm.DB, alumniID uint) (string, string, error) {
	var row struct {
		Email string
		Name  string
	}
	err := db.Table("users").
		Select("users.email, alumni_profiles.name").
		Joins("JOIN alumni_profiles ON users.user_id = alumni_profiles.user_id").
		Where("users.user_id = ?", alumniID).
		Scan(&row).Error
	if err != nil {
		return "", "", err
	}
	if row.Email == "" {
		return "", "", fmt.Errorf("alumni %d not found", alumniID)
	}
	return row.Email, row.Name, nil
}

// lookupStudent returns the email and profile name for a student user.
func lookupStudent(db *gorm.DB, studentID uint) (string, string, error) {
	var row struct {
		Email string
		Name  string
	}
	err := db.Table("users").
		Select("users.email, student_profiles.name").
		Joins("JOIN student_profiles ON users.user_id = student_profiles.user_id").
		Where("users.user_id = ?", studentID).
		Scan(&row).Error
	if err != nil {
		return "", "", err
	}
	if row.Email == "" {
		return "", "", fmt.Errorf("student %d not found", studentID)
	}
	return row.Email, row.Name, nil
}
