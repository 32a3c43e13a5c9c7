// File: /controllers/application_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"alumninet-api/database"
	"alumninet-api/middleware"
	"alumninet-api/models"
	"alumninet-api/services"
)

type ApplicationController struct {
	db           *gorm.DB
	emailService *services.EmailService
}

func NewApplicationController(db *gorm.DB, emailService *services.EmailService) *ApplicationController {
	return &ApplicationController{
		db:           db,
		emailService: emailService,
	}
}

// OpportunityListing is what students see when browsing open opportunities.
type OpportunityListing struct {
	OpportunityID uint   `json:"opportunity_id"`
	AlumniID      uint   `json:"alumni_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	CompanyName   string `json:"company_name"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// GetAllOpportunities lists active opportunities for students, newest first.
func (apc *ApplicationController) GetAllOpportunities(c *gin.Context) {
	var listings []OpportunityListing
	err := apc.db.Table("opportunities").
		Select(`opportunities.opportunity_id, opportunities.alumni_id, opportunities.title,
			opportunities.description, opportunities.type, opportunities.status,
			companies.name AS company_name, opportunities.created_at, opportunities.updated_at`).
		Joins("LEFT JOIN companies ON opportunities.company_id = companies.company_id").
		Where("opportunities.status = ?", models.OpportunityStatusActive).
		Order("opportunities.created_at DESC").
		Scan(&listings).Error
	if err != nil {
		fmt.Printf("Get all opportunities error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch opportunities"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

type ApplyRequest struct {
	OpportunityID uint   `json:"opportunity_id" binding:"required"`
	ResumeURL     string `json:"resume_url" binding:"required,max=500"`
}

// ApplyToOpportunity submits a student application to an active opportunity.
// One application per student per opportunity.
func (apc *ApplicationController) ApplyToOpportunity(c *gin.Context) {
	studentID := middleware.UserID(c)

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opportunity models.Opportunity
	if err := apc.db.Where("opportunity_id = ? AND status = ?",
		req.OpportunityID, models.OpportunityStatusActive).First(&opportunity).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found or closed"})
		return
	}

	application := models.Application{
		Reference:     uuid.New().String(),
		OpportunityID: req.OpportunityID,
		StudentID:     studentID,
		ResumeURL:     req.ResumeURL,
		Status:        models.ApplicationStatusPending,
	}

	if err := apc.db.Create(&application).Error; err != nil {
		if database.IsDuplicateEntry(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already applied"})
			return
		}
		fmt.Printf("Apply to opportunity error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply"})
		return
	}

	go apc.notifyApplicationSubmitted(studentID, &opportunity)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Application submitted successfully",
		"reference": application.Reference,
	})
}

func (apc *ApplicationController) notifyApplicationSubmitted(studentID uint, opportunity *models.Opportunity) {
	if studentEmail, studentName, err := lookupStudent(apc.db, studentID); err == nil {
		if err := apc.emailService.SendApplicationSubmitted(studentEmail, studentName, opportunity.Title); err != nil {
			fmt.Printf("Failed to send application confirmation email: %v\n", err)
		}
	}

	if alumniEmail, alumniName, err := lookupAlumni(apc.db, opportunity.AlumniID); err == nil {
		if err := apc.emailService.SendNewApplicationNotice(alumniEmail, alumniName, opportunity.Title); err != nil {
			fmt.Printf("Failed to send new application notice: %v\n", err)
		}
	}
}

// MyApplicationInfo is a student's own application joined with its opportunity.
type MyApplicationInfo struct {
	ApplicationID        uint   `json:"application_id"`
	OpportunityID        uint   `json:"opportunity_id"`
	Reference            string `json:"reference"`
	ResumeURL            string `json:"resume_url"`
	ApplicationStatus    string `json:"application_status"`
	AppliedAt            string `json:"applied_at"`
	OpportunityTitle     string `json:"opportunity_title"`
	OpportunityType      string `json:"opportunity_type"`
	OpportunityStatus    string `json:"opportunity_status"`
	CompanyName          string `json:"company_name"`
	OpportunityCreatedAt string `json:"opportunity_created_at"`
}

// GetMyApplications lists the caller's applications, newest first.
func (apc *ApplicationController) GetMyApplications(c *gin.Context) {
	studentID := middleware.UserID(c)

	var applications []MyApplicationInfo
	err := apc.db.Table("applications").
		Select(`applications.application_id, applications.opportunity_id, applications.reference,
			applications.resume_url, applications.status AS application_status, applications.applied_at,
			opportunities.title AS opportunity_title, opportunities.type AS opportunity_type,
			opportunities.status AS opportunity_status, companies.name AS company_name,
			opportunities.created_at AS opportunity_created_at`).
		Joins("JOIN opportunities ON applications.opportunity_id = opportunities.opportunity_id").
		Joins("LEFT JOIN companies ON opportunities.company_id = companies.company_id").
		Where("applications.student_id = ?", studentID).
		Order("applications.applied_at DESC").
		Scan(&applications).Error
	if err != nil {
		fmt.Printf("Get my applications error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch your applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// ApplicantInfo is an application joined with the applicant's student profile.
type ApplicantInfo struct {
	ApplicationID  uint     `json:"application_id"`
	ResumeURL      string   `json:"resume_url"`
	Status         string   `json:"status"`
	AppliedAt      string   `json:"applied_at"`
	StudentID      uint     `json:"student_id"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	GraduationYear int      `json:"graduation_year"`
	Major          string   `json:"major"`
	CGPA           *float64 `json:"cgpa"`
	Email          string   `json:"email"`
}

// GetApplicationsForOpportunity lists applicants for one of the caller's postings.
func (apc *ApplicationController) GetApplicationsForOpportunity(c *gin.Context) {
	alumniID := middleware.UserID(c)

	opportunityID, err := strconv.ParseUint(c.Param("opportunity_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opportunity ID"})
		return
	}

	var opportunity models.Opportunity
	if err := apc.db.First(&opportunity, "opportunity_id = ?", uint(opportunityID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}
	if opportunity.AlumniID != alumniID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	applications, err := apc.applicantsFor(uint(opportunityID), "")
	if err != nil {
		fmt.Printf("Get applications error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (apc *ApplicationController) applicantsFor(opportunityID uint, status models.ApplicationStatus) ([]ApplicantInfo, error) {
	query := apc.db.Table("applications").
		Select(`applications.application_id, applications.resume_url, applications.status,
			applications.applied_at, student_profiles.user_id AS student_id, student_profiles.name,
			student_profiles.phone, student_profiles.graduation_year, student_profiles.major,
			student_profiles.cgpa, users.email`).
		Joins("JOIN student_profiles ON applications.student_id = student_profiles.user_id").
		Joins("JOIN users ON student_profiles.user_id = users.user_id").
		Where("applications.opportunity_id = ?", opportunityID).
		Order("applications.applied_at DESC")
	if status != "" {
		query = query.Where("applications.status = ?", status)
	}

	applications := make([]ApplicantInfo, 0)
	err := query.Scan(&applications).Error
	return applications, err
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected"`
}

// UpdateApplicationStatus lets the posting alumni move an application through
// pending/accepted/rejected. The student is emailed on the decision.
func (apc *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	alumniID := middleware.UserID(c)

	applicationID, err := strconv.ParseUint(c.Param("application_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var application models.Application
	if err := apc.db.First(&application, "application_id = ?", uint(applicationID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var opportunity models.Opportunity
	if err := apc.db.First(&opportunity, "opportunity_id = ?", application.OpportunityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}
	if opportunity.AlumniID != alumniID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := apc.db.Model(&application).Update("status", req.Status).Error; err != nil {
		fmt.Printf("Update application status error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	go func() {
		studentEmail, studentName, err := lookupStudent(apc.db, application.StudentID)
		if err != nil {
			fmt.Printf("Failed to look up student for decision email: %v\n", err)
			return
		}
		if err := apc.emailService.SendApplicationDecision(studentEmail, studentName, opportunity.Title, req.Status); err != nil {
			fmt.Printf("Failed to send application decision email: %v\n", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}

// GetAcceptedStudents lists accepted applicants for one of the caller's postings.
func (apc *ApplicationController) GetAcceptedStudents(c *gin.Context) {
	alumniID := middleware.UserID(c)

	opportunityID, err := strconv.ParseUint(c.Param("opportunity_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opportunity ID"})
		return
	}

	var opportunity models.Opportunity
	if err := apc.db.First(&opportunity, "opportunity_id = ?", uint(opportunityID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}
	if opportunity.AlumniID != alumniID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	students, err := apc.applicantsFor(uint(opportunityID), models.ApplicationStatusAccepted)
	if err != nil {
		fmt.Printf("Get accepted students error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accepted students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"opportunity_title": opportunity.Title,
		"students":          students,
	})
}

type NotifyAcceptedRequest struct {
	EmailContent string `json:"email_content" binding:"required"`
	StudentIDs   []uint `json:"student_ids" binding:"required,min=1"`
}

// NotifyAcceptedStudents sends the alumni's custom follow-up email to the
// named accepted students.
func (apc *ApplicationController) NotifyAcceptedStudents(c *gin.Context) {
	alumniID := middleware.UserID(c)

	opportunityID, err := strconv.ParseUint(c.Param("opportunity_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opportunity ID"})
		return
	}

	var req NotifyAcceptedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opportunity models.Opportunity
	if err := apc.db.First(&opportunity, "opportunity_id = ?", uint(opportunityID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
		return
	}
	if opportunity.AlumniID != alumniID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	_, alumniName, err := lookupAlumni(apc.db, alumniID)
	if err != nil {
		fmt.Printf("Notify accepted students error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notifications"})
		return
	}

	var students []struct {
		Email string
		Name  string
	}
	if err := apc.db.Table("users").
		Select("users.email, student_profiles.name").
		Joins("JOIN student_profiles ON users.user_id = student_profiles.user_id").
		Where("users.user_id IN ?", req.StudentIDs).
		Scan(&students).Error; err != nil {
		fmt.Printf("Notify accepted students error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notifications"})
		return
	}

	if len(students) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid students found"})
		return
	}

	go func() {
		for _, student := range students {
			if err := apc.emailService.SendAcceptedStudentNotice(student.Email, student.Name,
				opportunity.Title, alumniName, req.EmailContent); err != nil {
				fmt.Printf("Failed to notify accepted student %s: %v\n", student.Email, err)
			}
		}
	}()

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("Notification sent to %d students successfully", len(students)),
		"students_count": len(students),
	})
}
