package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storeaudit/internal/model"
)

// MockTemplateRepo is a mock type for the TemplateRepo interface
type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tpl *model.Template) (string, error) {
	args := m.Called(ctx, tpl)
	return args.String(0), args.Error(1)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, id string) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateRepo) List(ctx context.Context) ([]*model.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Template), args.Error(1)
}

func (m *MockTemplateRepo) Update(ctx context.Context, tpl *model.Template) error {
	return m.Called(ctx, tpl).Error(0)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockTemplateCache is a mock type for the TemplateCache interface
type MockTemplateCache struct {
	mock.Mock
}

func (m *MockTemplateCache) Get(ctx context.Context, id string) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateCache) Set(ctx context.Context, tpl *model.Template) error {
	return m.Called(ctx, tpl).Error(0)
}

func (m *MockTemplateCache) Invalidate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockInspectionRepo is a mock type for the InspectionRepo interface
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) Create(ctx context.Context, insp *model.Inspection) error {
	return m.Called(ctx, insp).Error(0)
}

func (m *MockInspectionRepo) GetByID(ctx context.Context, id string) (*model.Inspection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inspection), args.Error(1)
}

func (m *MockInspectionRepo) ListByStore(ctx context.Context, storeID string, limit int64) ([]*model.Inspection, error) {
	args := m.Called(ctx, storeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Inspection), args.Error(1)
}

func (m *MockInspectionRepo) ListByTemplate(ctx context.Context, templateID string) ([]*model.Inspection, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Inspection), args.Error(1)
}

// MockLeaderboard is a mock type for the LeaderboardCache interface
type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) UpdateScore(ctx context.Context, templateID, storeID string, score float64) error {
	return m.Called(ctx, templateID, storeID, score).Error(0)
}

func (m *MockLeaderboard) GetTop(ctx context.Context, templateID string, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, templateID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboard) GetRank(ctx context.Context, templateID, storeID string) (int64, error) {
	args := m.Called(ctx, templateID, storeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier records store notifications
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyStore(storeID string, msgType string, payload interface{}) {
	m.Called(storeID, msgType, payload)
}

func fptr(v float64) *float64 { return &v }

func sampleTemplate() *model.Template {
	return &model.Template{
		ID:   "tpl1",
		Name: "Weekly visit",
		Sections: []model.Section{{
			Title:  "Cleanliness",
			Weight: fptr(2),
			Questions: []model.Question{
				{ID: "q_floor", Type: model.QuestionTypeYesNo, Weight: fptr(1)},
				{
					ID:     "q_shelves",
					Type:   model.QuestionTypeMultipleChoice,
					Weight: fptr(3),
					Options: []model.Option{
						{Text: "Good", Weight: fptr(10)},
						{Text: "Bad", Weight: fptr(0)},
					},
				},
			},
		}},
	}
}
