// Package types provides type definitions for structured data used throughout the fastfolio pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultJobRole is the form sentinel meaning "no particular role"
const DefaultJobRole = "Default"

// CertificateType is the declared format of an uploaded supporting document
type CertificateType string

// Recognized certificate types. Any other tag is accepted on input but skipped by extraction.
const (
	CertificatePDF   CertificateType = "pdf"
	CertificateDoc   CertificateType = "doc"
	CertificateImage CertificateType = "image"
	CertificateText  CertificateType = "txt"
)

// CertificateRef points at a readable byte source and declares its format
type CertificateRef struct {
	Path string          `json:"path" validate:"required"`
	Type CertificateType `json:"type"`
}

// StudentProfile is the inbound profile for one request. It is never mutated after decoding.
type StudentProfile struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"required,email"`

	Phone          string `json:"phone,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	GitHub         string `json:"github,omitempty"`
	JobRole        string `json:"job_role,omitempty"`
	JobDescription string `json:"job_description,omitempty"`

	Education      []string `json:"education,omitempty"`
	Projects       []string `json:"projects,omitempty"`
	Achievements   []string `json:"achievements,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	WorkExperience []string `json:"work_experience,omitempty"`

	Certificates []CertificateRef `json:"certificates,omitempty" validate:"dive"`
}

// Validate validates the StudentProfile using the validator.
func (p *StudentProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// HasJobRole reports whether a concrete job role was chosen
func (p *StudentProfile) HasJobRole() bool {
	role := strings.TrimSpace(p.JobRole)
	return role != "" && role != DefaultJobRole
}

// HasJobDescription reports whether a job description was supplied
func (p *StudentProfile) HasJobDescription() bool {
	return strings.TrimSpace(p.JobDescription) != ""
}

// ContactFields returns the contact fields bound by every rendered variant.
// Contact data always comes from the profile, never from model output.
func (p *StudentProfile) ContactFields() ContactFields {
	return ContactFields{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		LinkedIn: p.LinkedIn,
		GitHub:   p.GitHub,
	}
}

// ContactFields is the flattened contact block shared by all templates
type ContactFields struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	GitHub   string
}
