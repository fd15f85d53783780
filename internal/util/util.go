package util

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"storyarch/internal/models"
)

// DateLayout is the date format accepted and printed by the CLI
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date. An empty string yields today's date.
func ParseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatMembers renders a team member list for display
func FormatMembers(members []string) string {
	if len(members) == 0 {
		return "-"
	}
	return strings.Join(members, ", ")
}

// FormatServices renders illustration services as sorted key=value pairs
func FormatServices(services models.IllustrationServices) string {
	if len(services) == 0 {
		return "-"
	}

	keys := make([]string, 0, len(services))
	for k := range services {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, services[k])
	}
	return strings.Join(parts, ", ")
}

// SortedProjects returns the projects of an id-keyed map ordered by name, then id
func SortedProjects(projects map[int]*models.Project) []*models.Project {
	out := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FormatID renders a project id zero-padded to seven digits
func FormatID(id int) string {
	return fmt.Sprintf("%07d", id)
}
