package search

import (
	"strings"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
)

// filterProjectsBySkill keeps the projects that match a skill query.
//
// A skill declared anywhere on the profile matches every project; otherwise
// a project matches when its title and description contain the query.
func filterProjectsBySkill(p *profile.Profile, rawSkill string) []profile.Project {
	skill := Normalize(rawSkill)
	if skill == "" {
		out := make([]profile.Project, len(p.Projects))
		copy(out, p.Projects)
		return out
	}

	declared := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		declared[Normalize(s)] = struct{}{}
	}
	_, hasSkill := declared[skill]

	out := make([]profile.Project, 0, len(p.Projects))
	for _, project := range p.Projects {
		if hasSkill || strings.Contains(joinNormalized(project.Title, project.Description), skill) {
			out = append(out, project)
		}
	}
	return out
}
