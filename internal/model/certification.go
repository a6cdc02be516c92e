package model

import (
	"time"
)

type Certification struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	PortfolioID   uint64     `gorm:"not null;index:idx_cert_portfolio" json:"portfolio_id"`
	Name          string     `gorm:"type:varchar(200);not null" json:"name"`
	Provider      string     `gorm:"type:varchar(200);not null" json:"provider"`
	IssueDate     *time.Time `json:"issue_date"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	CredentialID  *string    `gorm:"type:varchar(255)" json:"credential_id"`
	CredentialURL *string    `gorm:"type:varchar(512)" json:"credential_url"`
}

func (Certification) TableName() string {
	return "portfolio_certifications"
}
