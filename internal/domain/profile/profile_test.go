package profile

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() Profile {
	return Profile{
		Name:  "Ada",
		Email: "ada@example.com",
		Projects: []Project{
			{Title: "API", Description: "built in go"},
		},
		Work: []WorkEntry{
			{Company: "Acme", Role: "Engineer"},
		},
		Links: Links{GitHub: "https://github.com/ada"},
	}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Profile)
		wantField string
	}{
		{name: "valid", mutate: func(p *Profile) {}},
		{name: "empty links are allowed", mutate: func(p *Profile) { p.Links = Links{} }},
		{name: "missing name", mutate: func(p *Profile) { p.Name = "" }, wantField: "Name"},
		{name: "bad email", mutate: func(p *Profile) { p.Email = "not-an-email" }, wantField: "Email"},
		{name: "project without title", mutate: func(p *Profile) { p.Projects[0].Title = "" }, wantField: "Title"},
		{name: "work without company", mutate: func(p *Profile) { p.Work[0].Company = "" }, wantField: "Company"},
		{name: "bad portfolio url", mutate: func(p *Profile) { p.Links.Portfolio = "nope" }, wantField: "Portfolio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestProfile_Normalize(t *testing.T) {
	p := Profile{
		Name:     "  Ada ",
		Email:    " ada@example.com",
		Skills:   []string{" Go "},
		Projects: []Project{{Title: " API ", Description: " desc "}},
		Work:     []WorkEntry{{Company: " Acme ", Role: " Dev ", Start: " 2020 "}},
	}

	p.Normalize()

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, []string{" Go "}, p.Skills, "skills are stored as given")
	assert.Equal(t, "API", p.Projects[0].Title)
	assert.Equal(t, "desc", p.Projects[0].Description)
	assert.Equal(t, []string{}, p.Projects[0].Links)
	assert.Equal(t, "Acme", p.Work[0].Company)
	assert.Equal(t, "Dev", p.Work[0].Role)
	assert.Equal(t, " 2020 ", p.Work[0].Start)
	assert.NotNil(t, p.Education)
}

func TestProfile_Apply(t *testing.T) {
	p := validProfile()
	p.Skills = []string{"go"}

	name := "Grace"
	p.Apply(Update{Name: &name, Skills: []string{}})

	assert.Equal(t, "Grace", p.Name)
	assert.Equal(t, "ada@example.com", p.Email, "absent fields are untouched")
	assert.Empty(t, p.Skills, "present empty sequences replace the stored ones")
	assert.Len(t, p.Projects, 1)
}
