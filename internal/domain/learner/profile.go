// Package learner models the stored learner profile.
package learner

import (
	"strings"
	"time"

	"github.com/kailas-cloud/careersetu/internal/domain"
)

// Profile defaults.
const (
	DefaultLanguage  = "English"
	DefaultNSQFLevel = 1
)

// AcademicInfo describes the learner's education.
type AcademicInfo struct {
	HighestQualification string `json:"highest_qualification"`
	BackgroundStream     string `json:"background_stream"`
	Institution          string `json:"institution"`
	YearOfCompletion     int    `json:"year_of_completion,omitempty"`
}

// CareerAspirations describes where the learner wants to go.
type CareerAspirations struct {
	TargetRole        string `json:"target_role"`
	PreferredIndustry string `json:"preferred_industry"`
	PreferredLocation string `json:"preferred_location"`
}

// Skills lists what the learner already knows.
type Skills struct {
	Technical      []string `json:"technical_skills"`
	Soft           []string `json:"soft_skills"`
	Certifications []string `json:"certifications"`
}

// Profile is one learner profile per user.
type Profile struct {
	UserID            string            `json:"user_id"`
	FullName          string            `json:"full_name"`
	Age               int               `json:"age,omitempty"`
	PreferredLanguage string            `json:"preferred_language"`
	AcademicInfo      AcademicInfo      `json:"academic_info"`
	CareerAspirations CareerAspirations `json:"career_aspirations"`
	Skills            Skills            `json:"skills"`
	NSQFLevel         int               `json:"nsqf_level"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Normalize fills defaults.
func (p *Profile) Normalize() {
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = DefaultLanguage
	}
	if p.NSQFLevel <= 0 {
		p.NSQFLevel = DefaultNSQFLevel
	}
	if p.Skills.Technical == nil {
		p.Skills.Technical = []string{}
	}
	if p.Skills.Soft == nil {
		p.Skills.Soft = []string{}
	}
	if p.Skills.Certifications == nil {
		p.Skills.Certifications = []string{}
	}
}

// Validate checks the fields a profile cannot be saved without.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.AcademicInfo.HighestQualification) == "" {
		return domain.NewValidation("academic_info.highest_qualification", "is required")
	}
	if strings.TrimSpace(p.CareerAspirations.TargetRole) == "" {
		return domain.NewValidation("career_aspirations.target_role", "is required")
	}
	if p.NSQFLevel < 0 || p.NSQFLevel > 10 {
		return domain.NewValidation("nsqf_level", "must be between 1 and 10")
	}
	return nil
}

// SkillsQuery joins technical skills for the recommender.
func (p *Profile) SkillsQuery() string {
	return strings.Join(p.Skills.Technical, " ")
}

// Interest prefers the target role, then the preferred industry.
func (p *Profile) Interest() string {
	if p.CareerAspirations.TargetRole != "" {
		return p.CareerAspirations.TargetRole
	}
	return p.CareerAspirations.PreferredIndustry
}
