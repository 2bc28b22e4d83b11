package models

import "strings"

// Profile describes the site owner. It is read from the site config file.
type Profile struct {
	FullName       string          `yaml:"fullName"`
	ProfileImage   string          `yaml:"profileImage"`
	JobTitle       string          `yaml:"jobTitle"`
	Summary        string          `yaml:"summary"`
	Contact        Contact         `yaml:"contact"`
	WorkHistory    []WorkItem      `yaml:"workHistory"`
	Certifications []Certification `yaml:"certifications"`
}

// Contact holds the owner's public contact links
type Contact struct {
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedin"`
	GitHub   string `yaml:"github"`
}

// WorkItem is one entry of the work history timeline
type WorkItem struct {
	Role        string   `yaml:"role"`
	Company     string   `yaml:"company"`
	Duration    string   `yaml:"duration"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
}

// Certification is one credential shown on the home page
type Certification struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Date   string `yaml:"date"`
	Icon   string `yaml:"icon"`
}

// FirstName is used as the site logo text
func (p Profile) FirstName() string {
	fields := strings.Fields(p.FullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
