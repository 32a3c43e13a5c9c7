// File: /controllers/auth_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"alumninet-api/middleware"
	"alumninet-api/models"
)

type AuthController struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthController(db *gorm.DB, jwtSecret string) *AuthController {
	return &AuthController{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

type RegisterStudentRequest struct {
	Email          string                 `json:"email" binding:"required,email"`
	Password       string                 `json:"password" binding:"required,min=6"`
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

// RegisterStudent creates a student account. Students are auto-verified.
func (ac *AuthController) RegisterStudent(c *gin.Context) {
	var req RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	var userID uint
	err = ac.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			return errEmailExists
		}

		user := models.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
			Verified:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		userID = user.UserID

		profile := models.StudentProfile{
			UserID:         user.UserID,
			Name:           req.Name,
			Phone:          req.Phone,
			GraduationYear: req.GraduationYear,
			Major:          req.Major,
			CGPA:           req.CGPA,
			Bio:            req.Bio,
			GithubURL:      req.GithubURL,
			LinkedinURL:    req.LinkedinURL,
			PortfolioURL:   req.PortfolioURL,
			Skills:         req.Skills,
			Certifications: req.Certifications,
			Projects:       req.Projects,
		}
		return tx.Create(&profile).Error
	})

	if err == errEmailExists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}
	if err != nil {
		fmt.Printf("Student registration error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Student registered successfully",
		"user_id": userID,
	})
}

type RegisterAlumniRequest struct {
	Email          string                 `json:"email" binding:"required,email"`
	Password       string                 `json:"password" binding:"required,min=6"`
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

// RegisterAlumni creates an alumni account pending admin verification.
func (ac *AuthController) RegisterAlumni(c *gin.Context) {
	var req RegisterAlumniRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	var userID uint
	err = ac.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			return errEmailExists
		}

		user := models.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAlumni,
			Verified:     false,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		userID = user.UserID

		companyID, err := getOrCreateCompany(tx, req.CompanyName)
		if err != nil {
			return err
		}

		profile := models.AlumniProfile{
			UserID:         user.UserID,
			Name:           req.Name,
			Phone:          req.Phone,
			CompanyID:      companyID,
			Position:       req.Position,
			GraduationYear: req.GraduationYear,
			Bio:            req.Bio,
			LinkedinURL:    req.LinkedinURL,
			GithubURL:      req.GithubURL,
			Experience:     req.Experience,
			Education:      req.Education,
			Certifications: req.Certifications,
			Skills:         req.Skills,
		}
		return tx.Create(&profile).Error
	})

	if err == errEmailExists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}
	if err != nil {
		fmt.Printf("Alumni registration error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Alumni registered (pending admin verification)",
		"user_id": userID,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a signed token carrying
// {user_id, role, verified}. Unverified alumni cannot log in.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Role == models.RoleAlumni && !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account not verified by admin yet"})
		return
	}

	token, err := ac.generateJWT(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"user_id":  user.UserID,
			"email":    user.Email,
			"role":     user.Role,
			"verified": user.Verified,
		},
	})
}

// GetProfile returns the caller's combined account and profile record.
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := ac.db.First(&user, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
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
		if err := ac.db.First(&profile, "user_id = ?", userID).Error; err == nil {
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
		}
	case models.RoleAlumni:
		var profile models.AlumniProfile
		if err := ac.db.First(&profile, "user_id = ?", userID).Error; err == nil {
			response["name"] = profile.Name
			response["phone"] = profile.Phone
			response["position"] = profile.Position
			response["graduation_year"] = profile.GraduationYear
			response["bio"] = profile.Bio
			response["linkedin_url"] = profile.LinkedinURL
			response["github_url"] = profile.GithubURL
			response["experience"] = profile.Experience
			response["education"] = profile.Education
			response["certifications"] = profile.Certifications
			response["skills"] = profile.Skills
			response["company_name"] = companyName(ac.db, profile.CompanyID)
		}
	}

	c.JSON(http.StatusOK, response)
}

func (ac *AuthController) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"role":     string(user.Role),
		"verified": user.Verified,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}

var errEmailExists = fmt.Errorf("email already exists")

// getOrCreateCompany resolves a company name to its id, creating the row on
// first sight. Matching is case-insensitive. Returns nil for a blank name.
func getOrCreateCompany(tx *gorm.DB, name string) (*uint, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}

	var company models.Company
	err := tx.Where("LOWER(name) = LOWER(?)", trimmed).First(&company).Error
	if err == nil {
		return &company.CompanyID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	company = models.Company{Name: trimmed}
	if err := tx.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company.CompanyID, nil
}

func companyName(db *gorm.DB, companyID *uint) string {
	if companyID == nil {
		return ""
	}
	var company models.Company
	if err := db.First(&company, "company_id = ?", *companyID).Error; err != nil {
		return ""
	}
	return company.Name
}
