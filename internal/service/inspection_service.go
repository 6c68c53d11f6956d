package service

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"storeaudit/internal/cache"
	"storeaudit/internal/model"
	"storeaudit/internal/repository"
	"storeaudit/internal/scoring"
)

// TemplateProvider supplies fully populated templates by id
type TemplateProvider interface {
	GetByID(ctx context.Context, id string) (*model.Template, error)
}

// InspectionService scores, stores and announces store inspections
type InspectionService struct {
	templates      TemplateProvider
	inspectionRepo repository.InspectionRepo
	leaderboard    cache.LeaderboardCache
	notifier       Notifier
}

// NewInspectionService creates a new inspection service
func NewInspectionService(
	templates TemplateProvider,
	inspectionRepo repository.InspectionRepo,
	leaderboard cache.LeaderboardCache,
) *InspectionService {
	return &InspectionService{
		templates:      templates,
		inspectionRepo: inspectionRepo,
		leaderboard:    leaderboard,
	}
}

// SetNotifier sets the notifier for manager dashboard events
func (s *InspectionService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Preview scores answers against a template without persisting
func (s *InspectionService) Preview(ctx context.Context, req *model.PreviewRequest) (*scoring.Breakdown, error) {
	tpl, err := s.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	b := scoring.Explain(tpl, req.Answers)
	return &b, nil
}

// Create scores and stores an inspection, then updates the leaderboard and
// notifies managers. Only scoring and persistence can fail the call.
func (s *InspectionService) Create(ctx context.Context, inspectorID string, req *model.CreateInspectionRequest) (*model.Inspection, error) {
	tpl, err := s.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	res := scoring.Compute(tpl, req.Answers)

	insp := &model.Inspection{
		StoreID:       req.StoreID,
		InspectorID:   inspectorID,
		TemplateID:    req.TemplateID,
		Answers:       req.Answers,
		SectionScores: res.SectionScores,
		FinalScore:    res.FinalScore,
		SummaryText:   req.SummaryText,
		CreatedAt:     time.Now(),
	}
	if err := s.inspectionRepo.Create(ctx, insp); err != nil {
		return nil, fmt.Errorf("failed to save inspection: %w", err)
	}
	log.Printf("[InspectionService] inspection %s store=%s template=%s finalScore=%.1f",
		insp.ID, insp.StoreID, insp.TemplateID, insp.FinalScore)

	if err := s.leaderboard.UpdateScore(ctx, insp.TemplateID, insp.StoreID, insp.FinalScore); err != nil {
		log.Printf("[InspectionService] leaderboard update failed for store %s: %v", insp.StoreID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyStore(insp.StoreID, MsgInspectionCreated, map[string]interface{}{
			"inspectionId": insp.ID,
			"templateId":   insp.TemplateID,
			"finalScore":   insp.FinalScore,
			"message":      NotificationMessage(tpl.Name, insp.FinalScore),
		})
	}

	return insp, nil
}

// NotificationMessage is the human readable line managers receive
func NotificationMessage(templateName string, finalScore float64) string {
	if templateName == "" {
		return fmt.Sprintf("New inspection completed with a score of %.1f%%", finalScore)
	}
	return fmt.Sprintf("New %q inspection completed with a score of %.1f%%", templateName, finalScore)
}

// Get returns one inspection
func (s *InspectionService) Get(ctx context.Context, id string) (*model.Inspection, error) {
	insp, err := s.inspectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}
	if insp == nil {
		return nil, ErrInspectionNotFound
	}
	return insp, nil
}

// ListByStore returns the newest inspections for a store
func (s *InspectionService) ListByStore(ctx context.Context, storeID string, limit int64) ([]*model.Inspection, error) {
	return s.inspectionRepo.ListByStore(ctx, storeID, limit)
}

// Leaderboard returns the best scoring stores for a template
func (s *InspectionService) Leaderboard(ctx context.Context, templateID string, limit int) ([]model.LeaderboardEntry, error) {
	return s.leaderboard.GetTop(ctx, templateID, limit)
}

// Recompute scores every stored inspection of a template against the
// template's current version. Nothing is written back.
func (s *InspectionService) Recompute(ctx context.Context, templateID string) ([]model.RecomputedScore, error) {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	inspections, err := s.inspectionRepo.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}

	out := make([]model.RecomputedScore, len(inspections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, insp := range inspections {
		i, insp := i, insp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := scoring.Compute(tpl, insp.Answers)
			out[i] = model.RecomputedScore{
				InspectionID: insp.ID,
				StoreID:      insp.StoreID,
				StoredScore:  insp.FinalScore,
				CurrentScore: res.FinalScore,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
