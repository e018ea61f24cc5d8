package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/internal/domain/search"
)

func newQueryCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run profile queries against a local JSON or YAML profile",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "profile document (.json, .yaml or .yml)")
	_ = cmd.MarkPersistentFlagRequired("file")

	var skill string
	projects := &cobra.Command{
		Use:   "projects",
		Short: "List projects matching a skill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := loadQuery(file)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"projects": q.ProjectsBySkill(skill)})
		},
	}
	projects.Flags().StringVar(&skill, "skill", "", "skill to filter by; empty lists every project")

	searchCmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find profile entries containing text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuery(file)
			if err != nil {
				return err
			}
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"matches": q.Search(text)})
		},
	}

	skills := &cobra.Command{
		Use:   "skills",
		Short: "Rank skills by how often they are listed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := loadQuery(file)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"skills": q.TopSkills()})
		},
	}

	cmd.AddCommand(projects, searchCmd, skills)
	return cmd
}

func loadQuery(path string) (search.ProfileQuery, error) {
	p, err := loadProfile(path)
	if err != nil {
		return search.ProfileQuery{}, err
	}
	return search.Query(p), nil
}

// loadProfile decodes a profile document, picking the format from the file
// extension.
func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return nil, errors.New("--file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read profile: %w", err)
	}

	var p profile.Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse profile %s: %w", path, err)
	}
	p.Normalize()
	return &p, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
