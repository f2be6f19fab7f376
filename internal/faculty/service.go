package faculty

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
)

// Service defines business logic for faculty profiles.
type Service interface {
	Get(ctx context.Context, email string) (*Profile, error)
	// Save validates and upserts the profile, reporting whether a new record
	// was created.
	Save(ctx context.Context, p *Profile) (*Profile, bool, error)
}

type service struct {
	repo Repository
}

// NewService creates a new faculty Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

func (s *service) Get(ctx context.Context, email string) (*Profile, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) Save(ctx context.Context, p *Profile) (*Profile, bool, error) {
	p.Name = strings.TrimSpace(p.Name)
	if len(p.Name) < 2 || len(p.Name) > 100 {
		return nil, false, ErrInvalidName
	}

	p.Department = strings.ToLower(strings.TrimSpace(p.Department))
	if _, ok := Departments[p.Department]; !ok {
		return nil, false, ErrInvalidDepartment
	}

	if !slices.Contains(Designations, p.Designation) {
		return nil, false, ErrInvalidDesignation
	}

	if p.Phone != nil && *p.Phone != "" && !phonePattern.MatchString(*p.Phone) {
		return nil, false, ErrInvalidPhone
	}

	created := false
	if _, err := s.repo.GetByEmail(ctx, p.Email); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		created = true
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, false, err
	}

	return p, created, nil
}
