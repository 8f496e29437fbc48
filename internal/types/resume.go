// Package types provides type definitions for structured data used throughout the resume-refiner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"sort"
)

// BasicDetails holds the contact and headline fields of a resume.
type BasicDetails struct {
	FullName string `json:"fullName,omitempty"`
	Title    string `json:"title,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ExperienceEntry represents one work experience item. ID is stable across edits.
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// EducationEntry represents one education item.
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// SectionEntry is a loosely-typed record used by projects, certifications,
// languages, references, activities and custom sections.
type SectionEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// SkillsKind discriminates the two legal wire shapes of the skills section.
type SkillsKind int

const (
	// SkillsFlat is a plain list of skill names.
	SkillsFlat SkillsKind = iota
	// SkillsCategorized maps a category name to a list of skill names.
	SkillsCategorized
)

// Skills is a discriminated union over the two legal skills shapes.
// Consumers switch on Kind instead of probing both fields.
type Skills struct {
	Kind       SkillsKind
	Flat       []string
	Categories map[string][]string
}

// MarshalJSON emits the wire shape matching Kind: a JSON array for flat
// skills, a JSON object for categorized skills.
func (s Skills) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SkillsCategorized:
		if s.Categories == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(s.Categories)
	default:
		if s.Flat == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.Flat)
	}
}

// UnmarshalJSON accepts either legal wire shape.
func (s *Skills) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		s.Kind = SkillsFlat
		s.Flat = flat
		s.Categories = nil
		return nil
	}

	var categories map[string][]string
	if err := json.Unmarshal(data, &categories); err != nil {
		return err
	}
	s.Kind = SkillsCategorized
	s.Categories = categories
	s.Flat = nil
	return nil
}

// All returns every skill name regardless of shape, in deterministic order.
func (s Skills) All() []string {
	if s.Kind == SkillsFlat {
		out := make([]string, len(s.Flat))
		copy(out, s.Flat)
		return out
	}

	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		out = append(out, s.Categories[name]...)
	}
	return out
}

// ResumeDocument is the canonical, mutable, in-session representation of a
// user's resume content.
type ResumeDocument struct {
	BasicDetails   BasicDetails      `json:"basicDetails"`
	Summary        string            `json:"summary,omitempty"`
	Objective      string            `json:"objective,omitempty"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         Skills            `json:"skills"`
	Projects       []SectionEntry    `json:"projects,omitempty"`
	Certifications []SectionEntry    `json:"certifications,omitempty"`
	Languages      []SectionEntry    `json:"languages,omitempty"`
	References     []SectionEntry    `json:"references,omitempty"`
	Activities     []SectionEntry    `json:"activities,omitempty"`
	CustomSections []SectionEntry    `json:"customSections,omitempty"`
}

// Clone creates a deep copy of the document. Both the suggestion applier and
// the committer mutate only clones, never the caller's live reference.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}

	clone := &ResumeDocument{
		BasicDetails: d.BasicDetails,
		Summary:      d.Summary,
		Objective:    d.Objective,
	}

	if d.Experience != nil {
		clone.Experience = make([]ExperienceEntry, len(d.Experience))
		copy(clone.Experience, d.Experience)
	}
	if d.Education != nil {
		clone.Education = make([]EducationEntry, len(d.Education))
		copy(clone.Education, d.Education)
	}

	clone.Skills.Kind = d.Skills.Kind
	if d.Skills.Flat != nil {
		clone.Skills.Flat = make([]string, len(d.Skills.Flat))
		copy(clone.Skills.Flat, d.Skills.Flat)
	}
	if d.Skills.Categories != nil {
		clone.Skills.Categories = make(map[string][]string, len(d.Skills.Categories))
		for name, skills := range d.Skills.Categories {
			copied := make([]string, len(skills))
			copy(copied, skills)
			clone.Skills.Categories[name] = copied
		}
	}

	clone.Projects = cloneEntries(d.Projects)
	clone.Certifications = cloneEntries(d.Certifications)
	clone.Languages = cloneEntries(d.Languages)
	clone.References = cloneEntries(d.References)
	clone.Activities = cloneEntries(d.Activities)
	clone.CustomSections = cloneEntries(d.CustomSections)

	return clone
}

func cloneEntries(entries []SectionEntry) []SectionEntry {
	if entries == nil {
		return nil
	}
	out := make([]SectionEntry, len(entries))
	copy(out, entries)
	return out
}
