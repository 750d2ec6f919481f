// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TemplateName identifies a display layout variant
type TemplateName string

// Known template variants
const (
	TemplateModern       TemplateName = "modern"
	TemplateClassic      TemplateName = "classic"
	TemplateMinimal      TemplateName = "minimal"
	TemplateProfessional TemplateName = "professional"
)

// DefaultTemplate is applied when a document carries no template
const DefaultTemplate = TemplateModern

// OrDefault returns the template name, or DefaultTemplate when empty.
func (t TemplateName) OrDefault() TemplateName {
	if strings.TrimSpace(string(t)) == "" {
		return DefaultTemplate
	}
	return t
}

// ResumeDocument is one user-owned résumé
type ResumeDocument struct {
	ID           *uuid.UUID        `json:"id,omitempty"`
	OwnerID      *uuid.UUID        `json:"owner_id,omitempty"`
	Name         string            `json:"name,omitempty"`
	PersonalInfo *PersonalInfo     `json:"personal_info,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []string          `json:"skills"`
	Template     TemplateName      `json:"template"`
	Version      int64             `json:"version,omitempty"`
	CreatedAt    *time.Time        `json:"created_at,omitempty"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

// PersonalInfo holds contact and headline details
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	JobTitle string `json:"job_title" validate:"required"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceEntry is one position held
type ExperienceEntry struct {
	Title            string   `json:"title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date" validate:"required"`
	EndDate          string   `json:"end_date,omitempty"`
	Current          bool     `json:"current"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is one course of study
type EducationEntry struct {
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"start_date" validate:"required"`
	EndDate      string `json:"end_date,omitempty" validate:"required_if=Current false"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// ResumeSummary is the lightweight listing view of a document
type ResumeSummary struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Template  TemplateName `json:"template"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewResumeDocument returns an empty unsaved draft.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Skills:     []string{},
		Template:   DefaultTemplate,
	}
}

// UnmarshalJSON decodes a document, defaulting a missing template to modern.
func (d *ResumeDocument) UnmarshalJSON(data []byte) error {
	type alias ResumeDocument
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.Template = a.Template.OrDefault()
	*d = ResumeDocument(a)
	return nil
}

// Saved reports whether the backend has assigned an id.
func (d *ResumeDocument) Saved() bool {
	return d != nil && d.ID != nil && *d.ID != uuid.Nil
}

// HasPersonalInfo reports whether any personal info field is populated.
func (d *ResumeDocument) HasPersonalInfo() bool {
	return d != nil && !d.PersonalInfo.IsEmpty()
}

// IsEmpty reports whether no field is set.
func (p *PersonalInfo) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, v := range []string{p.Name, p.Email, p.Phone, p.JobTitle, p.Location, p.LinkedIn, p.Website, p.GitHub} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	c := *d
	if d.ID != nil {
		id := *d.ID
		c.ID = &id
	}
	if d.OwnerID != nil {
		owner := *d.OwnerID
		c.OwnerID = &owner
	}
	if d.PersonalInfo != nil {
		pi := *d.PersonalInfo
		c.PersonalInfo = &pi
	}
	if d.CreatedAt != nil {
		t := *d.CreatedAt
		c.CreatedAt = &t
	}
	if d.UpdatedAt != nil {
		t := *d.UpdatedAt
		c.UpdatedAt = &t
	}
	c.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		c.Experience[i] = e.Clone()
	}
	c.Education = append([]EducationEntry{}, d.Education...)
	c.Skills = append([]string{}, d.Skills...)
	return &c
}

// Clone returns a copy with its own responsibilities slice.
func (e ExperienceEntry) Clone() ExperienceEntry {
	e.Responsibilities = append([]string{}, e.Responsibilities...)
	return e
}

// DateRange formats "{start} - {end}", with Present replacing the end date of a current entry.
func DateRange(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	return start + " - " + end
}

// DateRange returns the display date range of the entry.
func (e ExperienceEntry) DateRange() string {
	return DateRange(e.StartDate, e.EndDate, e.Current)
}

// DateRange returns the display date range of the entry.
func (e EducationEntry) DateRange() string {
	return DateRange(e.StartDate, e.EndDate, e.Current)
}
