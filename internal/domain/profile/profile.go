package profile

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Project struct {
	Title       string   `json:"title" bson:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" bson:"description" yaml:"description"`
	Links       []string `json:"links" bson:"links" yaml:"links"`
}

type WorkEntry struct {
	Company     string `json:"company" bson:"company" yaml:"company" validate:"required"`
	Role        string `json:"role" bson:"role" yaml:"role"`
	Start       string `json:"start" bson:"start" yaml:"start"`
	End         string `json:"end" bson:"end" yaml:"end"`
	Description string `json:"description" bson:"description" yaml:"description"`
}

type Links struct {
	GitHub    string `json:"github" bson:"github" yaml:"github" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin" bson:"linkedin" yaml:"linkedin" validate:"omitempty,url"`
	Portfolio string `json:"portfolio" bson:"portfolio" yaml:"portfolio" validate:"omitempty,url"`
}

type Profile struct {
	OwnerID   uuid.UUID   `json:"owner_id" bson:"-" yaml:"-"`
	Name      string      `json:"name" bson:"name" yaml:"name" validate:"required"`
	Email     string      `json:"email" bson:"email" yaml:"email" validate:"required,email"`
	Education []string    `json:"education" bson:"education" yaml:"education"`
	Skills    []string    `json:"skills" bson:"skills" yaml:"skills"`
	Projects  []Project   `json:"projects" bson:"projects" yaml:"projects" validate:"dive"`
	Work      []WorkEntry `json:"work" bson:"work" yaml:"work" validate:"dive"`
	Links     Links       `json:"links" bson:"links" yaml:"links"`
	CreatedAt time.Time   `json:"created_at" bson:"-" yaml:"-"`
	UpdatedAt time.Time   `json:"updated_at" bson:"-" yaml:"-"`
}

// Update carries a partial profile. Nil fields are left untouched.
type Update struct {
	Name      *string
	Email     *string
	Education []string
	Skills    []string
	Projects  []Project
	Work      []WorkEntry
	Links     *Links
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the profile document. The returned error is a
// validator.ValidationErrors when a field rule fails.
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// Normalize trims the text fields the store treats as trimmed and replaces
// nil sequences with empty ones so every document has the same shape.
func (p *Profile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Education == nil {
		p.Education = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		p.Projects[i].Title = strings.TrimSpace(p.Projects[i].Title)
		p.Projects[i].Description = strings.TrimSpace(p.Projects[i].Description)
		if p.Projects[i].Links == nil {
			p.Projects[i].Links = []string{}
		}
	}
	if p.Work == nil {
		p.Work = []WorkEntry{}
	}
	for i := range p.Work {
		p.Work[i].Company = strings.TrimSpace(p.Work[i].Company)
		p.Work[i].Role = strings.TrimSpace(p.Work[i].Role)
		p.Work[i].Description = strings.TrimSpace(p.Work[i].Description)
	}
}

// Apply copies every field present in u onto p.
func (p *Profile) Apply(u Update) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Education != nil {
		p.Education = u.Education
	}
	if u.Skills != nil {
		p.Skills = u.Skills
	}
	if u.Projects != nil {
		p.Projects = u.Projects
	}
	if u.Work != nil {
		p.Work = u.Work
	}
	if u.Links != nil {
		p.Links = *u.Links
	}
}

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}
