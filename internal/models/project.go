package models

import (
	"slices"
	"time"
)

// IllustrationServices holds the illustration service settings attached to a
// project. The registry stores it as-is and never looks inside.
type IllustrationServices map[string]string

// Project represents a storyboard project tracked by the registry
type Project struct {
	ID                   int                  `json:"id"`
	Name                 string               `json:"name"`
	Description          string               `json:"description"`
	Creator              string               `json:"creator"`
	CreatedDate          time.Time            `json:"created_date"`
	IllustrationServices IllustrationServices `json:"illustration_services"`

	// TeamMembers are stored exactly as supplied. nil means no team.
	TeamMembers []string `json:"team_members"`
}

// HasMember reports whether name appears in the team member list as stored
func (p *Project) HasMember(name string) bool {
	if p.TeamMembers == nil {
		return false
	}
	return slices.Contains(p.TeamMembers, name)
}

// Clone returns a deep copy of the project
func (p *Project) Clone() *Project {
	c := *p
	if p.IllustrationServices != nil {
		c.IllustrationServices = make(IllustrationServices, len(p.IllustrationServices))
		for k, v := range p.IllustrationServices {
			c.IllustrationServices[k] = v
		}
	}
	if p.TeamMembers != nil {
		c.TeamMembers = slices.Clone(p.TeamMembers)
	}
	return &c
}
