package search

import (
	"sort"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
)

// SkillCount is one entry of the top-skills ranking: a normalized skill and
// how many times it appears in the profile.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// rankSkills counts normalized skills and orders them by count, highest
// first. Equal counts keep the order in which the skill was first seen.
func rankSkills(p *profile.Profile) []SkillCount {
	ranked := make([]SkillCount, 0, len(p.Skills))
	index := make(map[string]int, len(p.Skills))

	for _, s := range p.Skills {
		key := Normalize(s)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			ranked[i].Count++
			continue
		}
		index[key] = len(ranked)
		ranked = append(ranked, SkillCount{Skill: key, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}
