// Package search answers read-only queries over a single profile snapshot.
//
// Every operation is a pure function of the profile it is given: nothing is
// cached, nothing is mutated, and results never alias the profile's slices.
package search

import "github.com/khoahotran/profile-playground/internal/domain/profile"

// ProfileQuery runs queries against one loaded profile.
type ProfileQuery struct {
	profile *profile.Profile
}

// Query wraps p. A nil profile behaves like an empty one.
func Query(p *profile.Profile) ProfileQuery {
	if p == nil {
		p = &profile.Profile{}
	}
	return ProfileQuery{profile: p}
}

// ProjectsBySkill returns the projects matching skill, or every project when
// skill is empty.
func (q ProfileQuery) ProjectsBySkill(skill string) []profile.Project {
	return filterProjectsBySkill(q.profile, skill)
}

// Search returns the entries of each section containing text. An empty text
// matches nothing.
func (q ProfileQuery) Search(text string) Matches {
	return searchProfile(q.profile, text)
}

// TopSkills returns skill occurrence counts, most frequent first.
func (q ProfileQuery) TopSkills() []SkillCount {
	return rankSkills(q.profile)
}
