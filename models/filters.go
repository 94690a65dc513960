package models

import "time"

// Typed query filters. Each list operation takes one of these instead of an
// open map, so a bad filter key is a compile error, not a silent no-op.

// BillFilter narrows bill listings.
type BillFilter struct {
	PatientID    string     `form:"patient_id"`
	DepartmentID string     `form:"department_id"`
	Status       string     `form:"status"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
}

// ClaimFilter narrows claim listings.
type ClaimFilter struct {
	HMOProviderID string     `form:"hmo_provider_id"`
	PatientID     string     `form:"patient_id"`
	Status        string     `form:"status"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
}

// CoverageFilter narrows coverage-rule listings.
type CoverageFilter struct {
	HMOProviderID   string `form:"hmo_provider_id"`
	ServiceCategory string `form:"service_category"`
	ActiveOnly      bool   `form:"active_only"`
}
