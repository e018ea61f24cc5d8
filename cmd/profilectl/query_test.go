package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlProfile = `name: Ada
email: ada@example.com
skills: [Go, go, Rust]
education: [BSc Mathematics]
projects:
  - title: Ledger
    description: Accounting engine in rust
  - title: Site
    description: personal homepage
work:
  - company: Acme
    role: Backend developer
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.Bytes()
}

func TestQueryProjects_YAML(t *testing.T) {
	path := writeFile(t, "profile.yaml", yamlProfile)

	var body struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(run(t, "query", "projects", "--file", path, "--skill", "homepage"), &body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "Site", body.Projects[0].Title)
}

func TestQuerySkills_JSON(t *testing.T) {
	path := writeFile(t, "profile.json", `{"name":"Ada","email":"ada@example.com","skills":["Go","go","Rust"]}`)

	out := run(t, "query", "skills", "-f", path)
	assert.JSONEq(t, `{"skills":[{"skill":"go","count":2},{"skill":"rust","count":1}]}`, string(out))
}

func TestQuerySearch(t *testing.T) {
	path := writeFile(t, "profile.yml", yamlProfile)

	var body struct {
		Matches struct {
			Skills   []string `json:"skills"`
			Projects []any    `json:"projects"`
			Work     []any    `json:"work"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(run(t, "query", "search", "RUST", "--file", path), &body))
	assert.Equal(t, []string{"Rust"}, body.Matches.Skills)
	assert.Len(t, body.Matches.Projects, 1)
	assert.Empty(t, body.Matches.Work)
}

func TestLoadProfile_Errors(t *testing.T) {
	_, err := loadProfile("")
	assert.Error(t, err)

	_, err = loadProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "cannot read profile")

	_, err = loadProfile(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "cannot parse profile")
}

func TestSeedOwner_RequiresEmail(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed-owner", "--email", "", "--password", "secret1"})
	assert.ErrorContains(t, cmd.Execute(), "owner email is required")
}
