// File: /models/opportunity.go
package models

import "time"

type OpportunityType string

const (
	OpportunityTypeJob        OpportunityType = "job"
	OpportunityTypeInternship OpportunityType = "internship"
)

type OpportunityStatus string

const (
	OpportunityStatusActive OpportunityStatus = "active"
	OpportunityStatusClosed OpportunityStatus = "closed"
)

type Opportunity struct {
	OpportunityID uint              `json:"opportunity_id" gorm:"primaryKey;column:opportunity_id"`
	AlumniID      uint              `json:"alumni_id" gorm:"not null;index"`
	CompanyID     uint              `json:"company_id" gorm:"not null"`
	Title         string            `json:"title" gorm:"not null;size:255"`
	Description   string            `json:"description" gorm:"type:text"`
	Type          OpportunityType   `json:"type" gorm:"not null;size:20"`
	Status        OpportunityStatus `json:"status" gorm:"not null;default:'active';size:20"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Company Company `json:"-" gorm:"foreignKey:CompanyID"`
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type Application struct {
	ApplicationID uint              `json:"application_id" gorm:"primaryKey;column:application_id"`
	Reference     string            `json:"reference" gorm:"not null;size:36"`
	OpportunityID uint              `json:"opportunity_id" gorm:"not null;uniqueIndex:uk_applications_opp_student"`
	StudentID     uint              `json:"student_id" gorm:"not null;uniqueIndex:uk_applications_opp_student"`
	ResumeURL     string            `json:"resume_url" gorm:"size:500"`
	Status        ApplicationStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	AppliedAt     time.Time         `json:"applied_at" gorm:"autoCreateTime;column:applied_at"`

	Opportunity Opportunity `json:"-" gorm:"foreignKey:OpportunityID"`
}
