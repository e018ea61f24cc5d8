// Package memory keeps users and profiles in process memory. It backs the
// "memory" db driver for local runs and the handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/apperror"
)

type UserRepo struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]user.User
	email map[string]uuid.UUID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:  make(map[uuid.UUID]user.User),
		email: make(map[string]uuid.UUID),
	}
}

var _ user.Repository = (*UserRepo)(nil)

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.email[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id.String())
	}
	return &u, nil
}

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.email[u.Email]; ok {
		return apperror.NewConflict("user", "email", u.Email)
	}
	r.byID[u.ID] = *u
	r.email[u.Email] = u.ID
	return nil
}

func (r *UserRepo) UpsertByEmail(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.email[u.Email]; ok {
		stored := r.byID[id]
		stored.Name = u.Name
		stored.PasswordHash = u.PasswordHash
		r.byID[id] = stored
		u.ID = id
		return nil
	}
	r.byID[u.ID] = *u
	r.email[u.Email] = u.ID
	return nil
}

// ProfileRepo stores deep copies so callers never share slices with the
// stored document.
type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]profile.Profile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[uuid.UUID]profile.Profile)}
}

var _ profile.Repository = (*ProfileRepo)(nil)

func (r *ProfileRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("profile", ownerID.String())
	}
	c := clone(p)
	return &c, nil
}

func (r *ProfileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.OwnerID]; ok {
		return apperror.NewConflict("profile", "owner", p.OwnerID.String())
	}
	r.profiles[p.OwnerID] = clone(*p)
	return nil
}

func (r *ProfileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.OwnerID]; !ok {
		return apperror.NewNotFound("profile", p.OwnerID.String())
	}
	r.profiles[p.OwnerID] = clone(*p)
	return nil
}

func (r *ProfileRepo) Delete(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[ownerID]; !ok {
		return apperror.NewNotFound("profile", ownerID.String())
	}
	delete(r.profiles, ownerID)
	return nil
}

func clone(p profile.Profile) profile.Profile {
	c := p
	c.Education = append([]string(nil), p.Education...)
	c.Skills = append([]string(nil), p.Skills...)
	c.Projects = make([]profile.Project, len(p.Projects))
	for i, project := range p.Projects {
		project.Links = append([]string(nil), project.Links...)
		c.Projects[i] = project
	}
	c.Work = append([]profile.WorkEntry(nil), p.Work...)
	c.Normalize()
	return c
}
