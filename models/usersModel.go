package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user role
type Role struct {
	ID          int64        `gorm:"primaryKey;column:id" json:"id"`
	Name        string       `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string       `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
}

func (Role) TableName() string {
	return "roles"
}

// SeedRoles inserts initial roles into the database
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: "Admin", Description: "Full access to the system"},
		{Name: "Doctor", Description: "Can render services and view bills"},
		{Name: "Cashier", Description: "Can record payments and reconcile shifts"},
		{Name: "BillingOfficer", Description: "Can create bills and manage coverage rules"},
		{Name: "ClaimsOfficer", Description: "Can manage the HMO claim lifecycle"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// User represents a user in the system. The authenticated user id is the
// actor stamped into claim versions and payment rows.
type User struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	Username  string    `gorm:"size:100;not null;unique;index;column:username" json:"username"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"password"`
	RoleID    int64     `gorm:"index;not null;column:role_id" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Permission represents a permission in the system
type Permission struct {
	ID          int64  `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"size:100;not null;unique;index;column:name" json:"name"`
	Description string `gorm:"type:text;column:description" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

// SeedPermissions inserts initial permissions into the database
func SeedPermissions(db *gorm.DB) error {
	initialPermissions := []Permission{
		{Name: "manage_users", Description: "Create, update, or delete users"},
		{Name: "view_bills", Description: "View bills and payment history"},
		{Name: "create_bills", Description: "Assemble and create bills"},
		{Name: "record_payment", Description: "Record payments and splits"},
		{Name: "manage_claims", Description: "Create and transition HMO claims"},
		{Name: "manage_coverage", Description: "Maintain coverage rules and overrides"},
		{Name: "reconcile_shift", Description: "Open, close, and reconcile cashier shifts"},
		{Name: "issue_code", Description: "Issue and redeem deferred-payment codes"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, permission := range initialPermissions {
			if err := tx.FirstOrCreate(&permission, Permission{Name: permission.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RolePermission represents the association between roles and permissions
type RolePermission struct {
	ID           int64 `gorm:"primaryKey;column:id" json:"id"`
	RoleID       int64 `gorm:"index;column:role_id" json:"role_id"`
	PermissionID int64 `gorm:"index;column:permission_id" json:"permission_id"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// SeedRolePermissions inserts initial role permissions into the database
func SeedRolePermissions(db *gorm.DB) error {
	initialRolePermissions := []RolePermission{
		{RoleID: 1, PermissionID: 1}, // Admin: manage_users
		{RoleID: 1, PermissionID: 2}, // Admin: view_bills
		{RoleID: 1, PermissionID: 3}, // Admin: create_bills
		{RoleID: 1, PermissionID: 4}, // Admin: record_payment
		{RoleID: 1, PermissionID: 5}, // Admin: manage_claims
		{RoleID: 1, PermissionID: 6}, // Admin: manage_coverage
		{RoleID: 1, PermissionID: 7}, // Admin: reconcile_shift
		{RoleID: 1, PermissionID: 8}, // Admin: issue_code
		{RoleID: 2, PermissionID: 2}, // Doctor: view_bills
		{RoleID: 3, PermissionID: 2}, // Cashier: view_bills
		{RoleID: 3, PermissionID: 4}, // Cashier: record_payment
		{RoleID: 3, PermissionID: 7}, // Cashier: reconcile_shift
		{RoleID: 3, PermissionID: 8}, // Cashier: issue_code
		{RoleID: 4, PermissionID: 2}, // BillingOfficer: view_bills
		{RoleID: 4, PermissionID: 3}, // BillingOfficer: create_bills
		{RoleID: 4, PermissionID: 6}, // BillingOfficer: manage_coverage
		{RoleID: 4, PermissionID: 8}, // BillingOfficer: issue_code
		{RoleID: 5, PermissionID: 2}, // ClaimsOfficer: view_bills
		{RoleID: 5, PermissionID: 5}, // ClaimsOfficer: manage_claims
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, rolePermission := range initialRolePermissions {
			if err := tx.FirstOrCreate(&rolePermission, RolePermission{RoleID: rolePermission.RoleID, PermissionID: rolePermission.PermissionID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
