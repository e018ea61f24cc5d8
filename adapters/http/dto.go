package http

import (
	"time"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/internal/domain/search"
	"github.com/khoahotran/profile-playground/internal/domain/user"
)

// Auth DTOs

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

// Profile DTOs

type ProjectDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
}

type WorkEntryDTO struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type LinksDTO struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

type ProfileDTO struct {
	OwnerID   string         `json:"owner_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Education []string       `json:"education"`
	Skills    []string       `json:"skills"`
	Projects  []ProjectDTO   `json:"projects"`
	Work      []WorkEntryDTO `json:"work"`
	Links     LinksDTO       `json:"links"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateProfileRequest is the full document. Field rules are enforced by the
// domain so the error details name the same paths for create and update.
type CreateProfileRequest struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Education []string       `json:"education"`
	Skills    []string       `json:"skills"`
	Projects  []ProjectDTO   `json:"projects"`
	Work      []WorkEntryDTO `json:"work"`
	Links     LinksDTO       `json:"links"`
}

// UpdateProfileRequest leaves a field nil when it is absent from the body.
// A present empty array replaces the stored list.
type UpdateProfileRequest struct {
	Name      *string        `json:"name"`
	Email     *string        `json:"email"`
	Education []string       `json:"education"`
	Skills    []string       `json:"skills"`
	Projects  []ProjectDTO   `json:"projects"`
	Work      []WorkEntryDTO `json:"work"`
	Links     *LinksDTO      `json:"links"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		OwnerID:   p.OwnerID.String(),
		Name:      p.Name,
		Email:     p.Email,
		Education: nonNil(p.Education),
		Skills:    nonNil(p.Skills),
		Projects:  toProjectDTOs(p.Projects),
		Work:      make([]WorkEntryDTO, len(p.Work)),
		Links:     LinksDTO(p.Links),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for i, w := range p.Work {
		dto.Work[i] = WorkEntryDTO(w)
	}
	return dto
}

func toProjectDTOs(projects []profile.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, pr := range projects {
		out[i] = ProjectDTO{Title: pr.Title, Description: pr.Description, Links: nonNil(pr.Links)}
	}
	return out
}

func (r *CreateProfileRequest) ToDomain() profile.Profile {
	return profile.Profile{
		Name:      r.Name,
		Email:     r.Email,
		Education: r.Education,
		Skills:    r.Skills,
		Projects:  toDomainProjects(r.Projects),
		Work:      toDomainWork(r.Work),
		Links:     profile.Links(r.Links),
	}
}

func (r *UpdateProfileRequest) ToDomain() profile.Update {
	u := profile.Update{
		Name:      r.Name,
		Email:     r.Email,
		Education: r.Education,
		Skills:    r.Skills,
		Projects:  toDomainProjects(r.Projects),
		Work:      toDomainWork(r.Work),
	}
	if r.Links != nil {
		links := profile.Links(*r.Links)
		u.Links = &links
	}
	return u
}

// toDomainProjects keeps nil as nil so an absent list stays absent.
func toDomainProjects(in []ProjectDTO) []profile.Project {
	if in == nil {
		return nil
	}
	out := make([]profile.Project, len(in))
	for i, p := range in {
		out[i] = profile.Project{Title: p.Title, Description: p.Description, Links: p.Links}
	}
	return out
}

func toDomainWork(in []WorkEntryDTO) []profile.WorkEntry {
	if in == nil {
		return nil
	}
	out := make([]profile.WorkEntry, len(in))
	for i, w := range in {
		out[i] = profile.WorkEntry(w)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Query DTOs

type ProjectsResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

type MatchesDTO struct {
	Skills    []string       `json:"skills"`
	Projects  []ProjectDTO   `json:"projects"`
	Work      []WorkEntryDTO `json:"work"`
	Education []string       `json:"education"`
}

type SearchResponse struct {
	Matches MatchesDTO `json:"matches"`
}

type SkillCountDTO struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type TopSkillsResponse struct {
	Skills []SkillCountDTO `json:"skills"`
}

func ToMatchesDTO(m search.Matches) MatchesDTO {
	dto := MatchesDTO{
		Skills:    nonNil(m.Skills),
		Projects:  toProjectDTOs(m.Projects),
		Work:      make([]WorkEntryDTO, len(m.Work)),
		Education: nonNil(m.Education),
	}
	for i, w := range m.Work {
		dto.Work[i] = WorkEntryDTO(w)
	}
	return dto
}

func ToTopSkillsResponse(skills []search.SkillCount) TopSkillsResponse {
	out := TopSkillsResponse{Skills: make([]SkillCountDTO, len(skills))}
	for i, s := range skills {
		out.Skills[i] = SkillCountDTO(s)
	}
	return out
}
