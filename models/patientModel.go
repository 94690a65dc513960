package models

import (
	"time"
)

// Patient is the slim registry view the billing engine needs: identity,
// payer type, and HMO linkage. Demographics and clinical data live with the
// registration module.
type Patient struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	FirstName     string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName      string    `gorm:"column:last_name;not null;index" json:"last_name"`
	PayerType     string    `gorm:"column:payer_type;check:payer_type IN ('cash', 'hmo', 'corporate');not null" json:"payer_type"`
	HMOProviderID *string   `gorm:"column:hmo_provider_id;index" json:"hmo_provider_id"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	Email         string    `gorm:"column:email" json:"email"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Bills         []Bill    `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Department is a billing department (lab, pharmacy, consultation, ...).
type Department struct {
	ID   string `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;unique;not null" json:"name"`
}

func (Department) TableName() string {
	return "department"
}

// HMOProvider is an insurer whose coverage rules the resolver applies.
type HMOProvider struct {
	ID           string            `gorm:"primaryKey;column:id" json:"id"`
	Name         string            `gorm:"column:name;unique;not null" json:"name"`
	ContactEmail string            `gorm:"column:contact_email" json:"contact_email"`
	IsActive     bool              `gorm:"column:is_active;not null" json:"is_active"`
	Coverages    []ServiceCoverage `gorm:"foreignKey:HMOProviderID;references:ID" json:"-"`
}

func (HMOProvider) TableName() string {
	return "hmo_provider"
}

// HMOEnrollment ties a patient to a provider scheme. Claims reference the
// enrollment that funded them.
type HMOEnrollment struct {
	ID            string      `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	HMOProviderID string      `gorm:"column:hmo_provider_id;not null;index" json:"hmo_provider_id"`
	MemberNumber  string      `gorm:"column:member_number;not null" json:"member_number"`
	Scheme        string      `gorm:"column:scheme" json:"scheme"`
	CoverLimit    int64       `gorm:"column:cover_limit" json:"cover_limit"`
	IsActive      bool        `gorm:"column:is_active;not null;index" json:"is_active"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient       Patient     `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	HMOProvider   HMOProvider `gorm:"foreignKey:HMOProviderID;references:ID" json:"-"`
}

func (HMOEnrollment) TableName() string {
	return "hmo_enrollment"
}
