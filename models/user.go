// File: /models/user.go
package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAlumni  UserRole = "alumni"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	UserID       uint      `json:"user_id" gorm:"primaryKey;column:user_id"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Role         UserRole  `json:"role" gorm:"not null;size:20"`
	Verified     bool      `json:"verified" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StudentProfile holds profile data for student accounts, one row per user.
type StudentProfile struct {
	UserID         uint            `json:"user_id" gorm:"primaryKey;column:user_id"`
	Name           string          `json:"name" gorm:"not null;size:255"`
	Phone          string          `json:"phone" gorm:"size:20"`
	GraduationYear int             `json:"graduation_year" gorm:"not null"`
	Major          string          `json:"major" gorm:"size:100"`
	CGPA           *float64        `json:"cgpa"`
	Bio            string          `json:"bio" gorm:"type:text"`
	GithubURL      string          `json:"github_url" gorm:"size:500"`
	LinkedinURL    string          `json:"linkedin_url" gorm:"size:500"`
	PortfolioURL   string          `json:"portfolio_url" gorm:"size:500"`
	Skills         StringSliceType `json:"skills" gorm:"type:json"`
	Certifications StringSliceType `json:"certifications" gorm:"type:json"`
	Projects       StringSliceType `json:"projects" gorm:"type:json"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// AlumniProfile holds profile data for alumni accounts, one row per user.
type AlumniProfile struct {
	UserID         uint            `json:"user_id" gorm:"primaryKey;column:user_id"`
	Name           string          `json:"name" gorm:"not null;size:255"`
	Phone          string          `json:"phone" gorm:"size:20"`
	CompanyID      *uint           `json:"company_id"`
	Position       string          `json:"position" gorm:"size:100"`
	GraduationYear int             `json:"graduation_year" gorm:"not null"`
	Bio            string          `json:"bio" gorm:"type:text"`
	LinkedinURL    string          `json:"linkedin_url" gorm:"size:500"`
	GithubURL      string          `json:"github_url" gorm:"size:500"`
	Experience     ExperienceList  `json:"experience" gorm:"type:json"`
	Education      EducationList   `json:"education" gorm:"type:json"`
	Certifications StringSliceType `json:"certifications" gorm:"type:json"`
	Skills         StringSliceType `json:"skills" gorm:"type:json"`

	User    User     `json:"-" gorm:"foreignKey:UserID"`
	Company *Company `json:"-" gorm:"foreignKey:CompanyID"`
}

type Company struct {
	CompanyID uint      `json:"company_id" gorm:"primaryKey;column:company_id"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
}
