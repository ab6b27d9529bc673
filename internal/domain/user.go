package domain

import "time"

type UserType string

const (
	UserTypeVisitor   UserType = "visitor"
	UserTypeExhibitor UserType = "exhibitor"
	UserTypePartner   UserType = "partner"
	UserTypeAdmin     UserType = "admin"
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeVisitor, UserTypeExhibitor, UserTypePartner, UserTypeAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string      `json:"id" db:"id" validate:"required"`
	Type        UserType    `json:"type" db:"type" validate:"required,oneof=visitor exhibitor partner admin"`
	DisplayName string      `json:"display_name" db:"display_name"`
	Profile     UserProfile `json:"profile"`
	IsActive    bool        `json:"is_active" db:"is_active"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// UserProfile holds the networking attributes used for matchmaking.
// Nil slices and empty strings mean "not provided".
type UserProfile struct {
	Company            string   `json:"company,omitempty"`
	Interests          []string `json:"interests,omitempty"`
	Sectors            []string `json:"sectors,omitempty"`
	Objectives         []string `json:"objectives,omitempty"`
	CollaborationTypes []string `json:"collaboration_types,omitempty"`
	Country            *string  `json:"country,omitempty"`
	CompanySize        *string  `json:"company_size,omitempty"`
	Bio                *string  `json:"bio,omitempty"`
}

// SameCompany reports whether both profiles name the same non-empty company.
// The comparison is exact: case and whitespace variants do not collide.
func (p *UserProfile) SameCompany(other *UserProfile) bool {
	return p.Company != "" && p.Company == other.Company
}
