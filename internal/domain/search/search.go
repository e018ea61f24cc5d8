package search

import (
	"strings"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
)

// Matches groups the entries of each profile section that contain a query.
type Matches struct {
	Skills    []string            `json:"skills"`
	Projects  []profile.Project   `json:"projects"`
	Work      []profile.WorkEntry `json:"work"`
	Education []string            `json:"education"`
}

func emptyMatches() Matches {
	return Matches{
		Skills:    []string{},
		Projects:  []profile.Project{},
		Work:      []profile.WorkEntry{},
		Education: []string{},
	}
}

// searchProfile selects, per section, the entries containing the query.
// An empty query matches nothing.
func searchProfile(p *profile.Profile, rawQuery string) Matches {
	m := emptyMatches()

	q := Normalize(rawQuery)
	if q == "" {
		return m
	}

	for _, s := range p.Skills {
		if strings.Contains(Normalize(s), q) {
			m.Skills = append(m.Skills, s)
		}
	}
	for _, e := range p.Education {
		if strings.Contains(Normalize(e), q) {
			m.Education = append(m.Education, e)
		}
	}
	for _, project := range p.Projects {
		if strings.Contains(joinNormalized(project.Title, project.Description), q) {
			m.Projects = append(m.Projects, project)
		}
	}
	for _, job := range p.Work {
		if strings.Contains(joinNormalized(job.Company, job.Role, job.Description), q) {
			m.Work = append(m.Work, job)
		}
	}
	return m
}
