package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storeaudit/internal/cache"
	"storeaudit/internal/model"
	"storeaudit/internal/repository"
)

// TemplateService handles template CRUD with a read-through cache
type TemplateService struct {
	templateRepo  repository.TemplateRepo
	templateCache cache.TemplateCache
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo repository.TemplateRepo, templateCache cache.TemplateCache) *TemplateService {
	return &TemplateService{
		templateRepo:  templateRepo,
		templateCache: templateCache,
	}
}

// Create validates and stores a new template
func (s *TemplateService) Create(ctx context.Context, tpl *model.Template) (string, error) {
	if err := ValidateTemplate(tpl); err != nil {
		return "", err
	}
	return s.templateRepo.Create(ctx, tpl)
}

// GetByID returns the template, serving from cache when possible
func (s *TemplateService) GetByID(ctx context.Context, id string) (*model.Template, error) {
	tpl, err := s.templateCache.Get(ctx, id)
	if err != nil {
		log.Printf("[TemplateService] cache read failed for %s: %v", id, err)
	}
	if tpl != nil {
		return tpl, nil
	}

	tpl, err = s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}

	if err := s.templateCache.Set(ctx, tpl); err != nil {
		log.Printf("[TemplateService] cache write failed for %s: %v", id, err)
	}
	return tpl, nil
}

// List returns all templates
func (s *TemplateService) List(ctx context.Context) ([]*model.Template, error) {
	return s.templateRepo.List(ctx)
}

// Update replaces a template and drops its cached copy
func (s *TemplateService) Update(ctx context.Context, tpl *model.Template) error {
	if err := ValidateTemplate(tpl); err != nil {
		return err
	}
	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	s.invalidate(ctx, tpl.ID)
	return nil
}

// Delete removes a template and drops its cached copy
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *TemplateService) invalidate(ctx context.Context, id string) {
	if err := s.templateCache.Invalidate(ctx, id); err != nil {
		log.Printf("[TemplateService] cache invalidate failed for %s: %v", id, err)
	}
}

// ValidateTemplate checks the structural rules scoring relies on: titled
// sections are unique and question ids are present and unique.
func ValidateTemplate(tpl *model.Template) error {
	if tpl == nil {
		return fmt.Errorf("%w: missing template", ErrInvalidTemplate)
	}

	titles := make(map[string]struct{}, len(tpl.Sections))
	ids := make(map[string]struct{})
	for _, sec := range tpl.Sections {
		if sec.Title != "" {
			if _, dup := titles[sec.Title]; dup {
				return fmt.Errorf("%w: duplicate section title %q", ErrInvalidTemplate, sec.Title)
			}
			titles[sec.Title] = struct{}{}
		}
		for _, q := range sec.Questions {
			if q.ID == "" {
				return fmt.Errorf("%w: question without id in section %q", ErrInvalidTemplate, sec.Title)
			}
			if _, dup := ids[q.ID]; dup {
				return fmt.Errorf("%w: duplicate question id %q", ErrInvalidTemplate, q.ID)
			}
			ids[q.ID] = struct{}{}
		}
	}
	return nil
}
