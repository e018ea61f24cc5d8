package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
)

var (
	apiProject = profile.Project{Title: "API", Description: "built in go", Links: []string{}}
	uiProject  = profile.Project{Title: "UI", Description: "react app", Links: []string{}}
)

func sampleProfile() *profile.Profile {
	return &profile.Profile{
		Name:      "Ada",
		Email:     "ada@example.com",
		Education: []string{"BSc Computer Science", "Rust Bootcamp"},
		Skills:    []string{"Go", "go", "Rust", "go"},
		Projects: []profile.Project{
			{Title: "Ledger", Description: "Double entry bookkeeping in Rust"},
			{Title: "Gateway", Description: "HTTP edge proxy"},
			{Title: "Dashboard", Description: "React admin UI"},
		},
		Work: []profile.WorkEntry{
			{Company: "Acme", Role: "Backend Engineer", Description: "Payments in Go"},
			{Company: "Globex", Role: "Frontend", Description: "React"},
		},
	}
}

func TestProjectsBySkill_EmptyQueryReturnsAllProjects(t *testing.T) {
	p := sampleProfile()

	got := Query(p).ProjectsBySkill("")

	assert.Equal(t, p.Projects, got)
}

func TestProjectsBySkill_ResultDoesNotAliasProfile(t *testing.T) {
	p := sampleProfile()

	got := Query(p).ProjectsBySkill("")
	require.Len(t, got, 3)
	got[0].Title = "changed"

	assert.Equal(t, "Ledger", p.Projects[0].Title)
}

func TestProjectsBySkill_DeclaredSkillMatchesEveryProject(t *testing.T) {
	p := &profile.Profile{
		Skills:   []string{"go"},
		Projects: []profile.Project{apiProject, uiProject},
	}

	got := Query(p).ProjectsBySkill("GO")

	assert.Equal(t, []profile.Project{apiProject, uiProject}, got)
}

func TestProjectsBySkill_TextMatch(t *testing.T) {
	p := sampleProfile()

	tests := []struct {
		name  string
		skill string
		want  []string
	}{
		{name: "title match", skill: "gate", want: []string{"Gateway"}},
		{name: "description match is case insensitive", skill: "REACT", want: []string{"Dashboard"}},
		{name: "declared skill matches all", skill: "rust", want: []string{"Ledger", "Gateway", "Dashboard"}},
		{name: "title and description are joined by a space", skill: "gateway http", want: []string{"Gateway"}},
		{name: "unknown skill", skill: "haskell", want: []string{}},
		{name: "partial skill only matches text", skill: "Ru", want: []string{"Ledger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(p).ProjectsBySkill(tt.skill)

			titles := make([]string, 0, len(got))
			for _, project := range got {
				titles = append(titles, project.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestProjectsBySkill_PreservesOrder(t *testing.T) {
	p := &profile.Profile{
		Projects: []profile.Project{
			{Title: "one", Description: "x"},
			{Title: "two", Description: "skip"},
			{Title: "three", Description: "x"},
			{Title: "four", Description: "x"},
		},
	}

	got := Query(p).ProjectsBySkill("x")

	require.Len(t, got, 3)
	assert.Equal(t, "one", got[0].Title)
	assert.Equal(t, "three", got[1].Title)
	assert.Equal(t, "four", got[2].Title)
}

func TestSearch_EmptyQueryMatchesNothing(t *testing.T) {
	got := Query(sampleProfile()).Search("")

	assert.Equal(t, []string{}, got.Skills)
	assert.Equal(t, []profile.Project{}, got.Projects)
	assert.Equal(t, []profile.WorkEntry{}, got.Work)
	assert.Equal(t, []string{}, got.Education)
}

func TestSearch_Sections(t *testing.T) {
	p := sampleProfile()

	got := Query(p).Search("rust")

	assert.Equal(t, []string{"Rust"}, got.Skills, "stored spelling is returned")
	assert.Equal(t, []string{"Rust Bootcamp"}, got.Education)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Ledger", got.Projects[0].Title)
	assert.Empty(t, got.Work)
}

func TestSearch_WorkUsesCompanyRoleAndDescription(t *testing.T) {
	p := sampleProfile()

	assert.Len(t, Query(p).Search("acme").Work, 1)
	assert.Len(t, Query(p).Search("backend engineer").Work, 1)
	assert.Len(t, Query(p).Search("globex frontend react").Work, 1)
	assert.Len(t, Query(p).Search("react").Work, 1)
}

func TestSearch_SkillSubstring(t *testing.T) {
	p := sampleProfile()

	got := Query(p).Search("G")

	assert.Equal(t, []string{"Go", "go", "go"}, got.Skills)
}

func TestSearch_ReactScenario(t *testing.T) {
	p := &profile.Profile{
		Skills:   []string{"go"},
		Projects: []profile.Project{apiProject, uiProject},
	}

	got := Query(p).Search("react")

	assert.Equal(t, []profile.Project{uiProject}, got.Projects)
	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Work)
	assert.Empty(t, got.Education)
}

func TestTopSkills(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		want   []SkillCount
	}{
		{
			name:   "counts case insensitively",
			skills: []string{"Go", "go", "Rust", "go"},
			want:   []SkillCount{{Skill: "go", Count: 3}, {Skill: "rust", Count: 1}},
		},
		{
			name:   "ties keep first seen order",
			skills: []string{"Zig", "Ada", "C", "ada", "zig", "c"},
			want:   []SkillCount{{Skill: "zig", Count: 2}, {Skill: "ada", Count: 2}, {Skill: "c", Count: 2}},
		},
		{
			name:   "higher count moves ahead of earlier skill",
			skills: []string{"sql", "k8s", "K8S"},
			want:   []SkillCount{{Skill: "k8s", Count: 2}, {Skill: "sql", Count: 1}},
		},
		{
			name:   "empty skills are dropped",
			skills: []string{"", "Go", ""},
			want:   []SkillCount{{Skill: "go", Count: 1}},
		},
		{
			name:   "no skills",
			skills: nil,
			want:   []SkillCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(&profile.Profile{Skills: tt.skills}).TopSkills()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopSkills_SortedByCountThenFirstSeen(t *testing.T) {
	skills := []string{"b", "a", "c", "a", "d", "B", "e", "c", "a", "E"}

	got := Query(&profile.Profile{Skills: skills}).TopSkills()

	firstSeen := map[string]int{}
	for i, s := range skills {
		key := Normalize(s)
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = i
		}
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		assert.GreaterOrEqual(t, prev.Count, cur.Count)
		if prev.Count == cur.Count {
			assert.Less(t, firstSeen[prev.Skill], firstSeen[cur.Skill])
		}
	}
}

func TestQuery_DoesNotMutateProfile(t *testing.T) {
	p := sampleProfile()
	before := sampleProfile()

	q := Query(p)
	q.ProjectsBySkill("go")
	q.Search("react")
	q.TopSkills()

	assert.Equal(t, before, p)
}

func TestQuery_NilProfile(t *testing.T) {
	q := Query(nil)

	assert.Empty(t, q.ProjectsBySkill(""))
	assert.Empty(t, q.Search("x").Projects)
	assert.Empty(t, q.TopSkills())
}
