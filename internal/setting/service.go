package setting

import (
	"context"
	"errors"
	"strings"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/setting/repo"
)

// Service encapsulates business logic for site settings and depends on a repo.
type Service struct {
	repo *repo.Repo
}

// NewService constructs a Service with the provided repository.
func NewService(r *repo.Repo) *Service {
	return &Service{repo: r}
}

var (
	ErrNotFound      = errors.New("setting not found")
	ErrValueRequired = errors.New("value is required")
)

// SeedDefaults inserts the default rows that are missing and returns how many were added.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	added := 0
	for _, d := range entity.Defaults {
		n, err := s.repo.InsertIfAbsent(ctx, d)
		if err != nil {
			return added, err
		}
		added += int(n)
	}
	return added, nil
}

// List returns every setting ordered by key.
func (s *Service) List(ctx context.Context) ([]entity.SiteSetting, error) {
	return s.repo.List(ctx)
}

// Map returns the public key to value view.
func (s *Service) Map(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(settings))
	for _, st := range settings {
		m[st.Key] = st.Value
	}
	return m, nil
}

// Update sets the value of an existing key. Unknown keys are not created.
func (s *Service) Update(ctx context.Context, key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrValueRequired
	}
	n, err := s.repo.UpdateValue(ctx, key, value)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
