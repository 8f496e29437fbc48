// Package convert normalizes loosely-typed parsed-resume objects into the
// canonical ResumeDocument shape.
package convert

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/types"
)

// ToResumeDocument converts a parsed-resume object with arbitrary key casing
// into the canonical document shape. The conversion is total: it never
// panics or errors, unknown fields are ignored, absent fields default to
// empty values, and every sequence entry without an id gets a fresh one.
func ToResumeDocument(raw map[string]any) *types.ResumeDocument {
	index := buildIndex(raw)

	doc := &types.ResumeDocument{
		BasicDetails: types.BasicDetails{
			FullName: lookupString(index, "fullname", "name"),
			Title:    lookupString(index, "title", "jobtitle", "role", "headline"),
			Phone:    lookupString(index, "phone", "phonenumber", "mobile"),
			Email:    lookupString(index, "email", "emailaddress"),
			Location: lookupString(index, "location", "address", "city"),
			Website:  lookupString(index, "website", "portfolio", "url"),
			GitHub:   lookupString(index, "github", "githuburl"),
			LinkedIn: lookupString(index, "linkedin", "linkedinurl"),
		},
		Summary:    lookupString(index, "summary", "professionalsummary", "profile", "about"),
		Objective:  lookupString(index, "objective", "careerobjective"),
		Experience: convertExperience(lookupSlice(index, "experience", "workexperience", "experiences", "employment", "workhistory")),
		Education:  convertEducation(lookupSlice(index, "education", "educations", "academics")),
		Skills:     convertSkills(lookup(index, "skills", "technicalskills", "skillset")),
	}

	// Some parsers nest contact fields under a details object.
	if details := lookupMap(index, "basicdetails", "personaldetails", "contact", "contactinfo"); details != nil {
		nested := buildIndex(details)
		fillIfEmpty(&doc.BasicDetails.FullName, lookupString(nested, "fullname", "name"))
		fillIfEmpty(&doc.BasicDetails.Title, lookupString(nested, "title", "jobtitle", "role"))
		fillIfEmpty(&doc.BasicDetails.Phone, lookupString(nested, "phone", "phonenumber", "mobile"))
		fillIfEmpty(&doc.BasicDetails.Email, lookupString(nested, "email", "emailaddress"))
		fillIfEmpty(&doc.BasicDetails.Location, lookupString(nested, "location", "address", "city"))
		fillIfEmpty(&doc.BasicDetails.Website, lookupString(nested, "website", "portfolio", "url"))
		fillIfEmpty(&doc.BasicDetails.GitHub, lookupString(nested, "github", "githuburl"))
		fillIfEmpty(&doc.BasicDetails.LinkedIn, lookupString(nested, "linkedin", "linkedinurl"))
	}

	doc.Projects = convertSection(lookupSlice(index, "projects", "personalprojects"))
	doc.Certifications = convertSection(lookupSlice(index, "certifications", "certificates", "licenses"))
	doc.Languages = convertSection(lookupSlice(index, "languages", "spokenlanguages"))
	doc.References = convertSection(lookupSlice(index, "references", "referees"))
	doc.Activities = convertSection(lookupSlice(index, "activities", "extracurriculars", "volunteering"))
	doc.CustomSections = convertSection(lookupSlice(index, "customsections", "custom", "additionalsections"))

	return doc
}

// normalizeKey lowercases a key and strips spaces, underscores and hyphens,
// so "full_name", "fullName" and "Full Name" all collapse to "fullname".
func normalizeKey(key string) string {
	var builder strings.Builder
	for _, r := range strings.ToLower(key) {
		if r == ' ' || r == '_' || r == '-' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// buildIndex maps normalized keys to values. When two raw keys collide on
// the same normalized key, a non-empty value is preferred.
func buildIndex(raw map[string]any) map[string]any {
	index := make(map[string]any, len(raw))
	for key, value := range raw {
		normalized := normalizeKey(key)
		if existing, ok := index[normalized]; ok && !isEmptyValue(existing) {
			continue
		}
		index[normalized] = value
	}
	return index
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func lookup(index map[string]any, aliases ...string) any {
	for _, alias := range aliases {
		if value, ok := index[alias]; ok && !isEmptyValue(value) {
			return value
		}
	}
	return nil
}

func lookupString(index map[string]any, aliases ...string) string {
	return stringValue(lookup(index, aliases...))
}

func lookupSlice(index map[string]any, aliases ...string) []any {
	if value, ok := lookup(index, aliases...).([]any); ok {
		return value
	}
	return nil
}

func lookupMap(index map[string]any, aliases ...string) map[string]any {
	if value, ok := lookup(index, aliases...).(map[string]any); ok {
		return value
	}
	return nil
}

// stringValue coerces scalars and string lists into a single string; other
// shapes yield an empty string rather than an error.
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case []any:
		var parts []string
		for _, item := range v {
			if s := stringValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

func fillIfEmpty(target *string, value string) {
	if *target == "" && value != "" {
		*target = value
	}
}

// entryID returns the entry's existing id or assigns a fresh stable one.
func entryID(index map[string]any) string {
	if id := lookupString(index, "id", "uid", "key"); id != "" {
		return id
	}
	return uuid.NewString()
}

func convertExperience(items []any) []types.ExperienceEntry {
	entries := make([]types.ExperienceEntry, 0, len(items))
	for _, item := range items {
		entryMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		index := buildIndex(entryMap)
		entries = append(entries, types.ExperienceEntry{
			ID:          entryID(index),
			Company:     lookupString(index, "company", "employer", "organization", "companyname"),
			Position:    lookupString(index, "position", "title", "role", "jobtitle"),
			StartDate:   lookupString(index, "startdate", "from", "start"),
			EndDate:     lookupString(index, "enddate", "to", "end"),
			Description: lookupString(index, "description", "details", "responsibilities", "summary"),
			Location:    lookupString(index, "location", "city"),
		})
	}
	return entries
}

func convertEducation(items []any) []types.EducationEntry {
	entries := make([]types.EducationEntry, 0, len(items))
	for _, item := range items {
		entryMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		index := buildIndex(entryMap)
		entries = append(entries, types.EducationEntry{
			ID:          entryID(index),
			Institution: lookupString(index, "institution", "school", "university", "college"),
			Degree:      lookupString(index, "degree", "qualification", "course"),
			StartDate:   lookupString(index, "startdate", "from", "start"),
			EndDate:     lookupString(index, "enddate", "to", "end", "graduationdate"),
			Grade:       lookupString(index, "grade", "gpa", "score"),
			Description: lookupString(index, "description", "details"),
			Location:    lookupString(index, "location", "city"),
		})
	}
	return entries
}

func convertSection(items []any) []types.SectionEntry {
	if len(items) == 0 {
		return nil
	}
	entries := make([]types.SectionEntry, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			entries = append(entries, types.SectionEntry{
				ID:    uuid.NewString(),
				Title: strings.TrimSpace(v),
			})
		case map[string]any:
			index := buildIndex(v)
			entries = append(entries, types.SectionEntry{
				ID:          entryID(index),
				Title:       lookupString(index, "title", "name", "language"),
				Subtitle:    lookupString(index, "subtitle", "issuer", "organization", "role", "proficiency"),
				Date:        lookupString(index, "date", "year", "when"),
				Description: lookupString(index, "description", "details", "summary"),
				URL:         lookupString(index, "url", "link"),
			})
		}
	}
	return entries
}

// convertSkills accepts both legal skill shapes: a flat list of names or a
// mapping from category name to names.
func convertSkills(value any) types.Skills {
	switch v := value.(type) {
	case []any:
		var flat []string
		for _, item := range v {
			if s := stringValue(item); s != "" {
				flat = append(flat, s)
			}
		}
		return types.Skills{Kind: types.SkillsFlat, Flat: flat}
	case map[string]any:
		categories := make(map[string][]string, len(v))
		for name, items := range v {
			list, ok := items.([]any)
			if !ok {
				if s := stringValue(items); s != "" {
					categories[name] = []string{s}
				}
				continue
			}
			var skills []string
			for _, item := range list {
				if s := stringValue(item); s != "" {
					skills = append(skills, s)
				}
			}
			categories[name] = skills
		}
		return types.Skills{Kind: types.SkillsCategorized, Categories: categories}
	default:
		return types.Skills{Kind: types.SkillsFlat}
	}
}
