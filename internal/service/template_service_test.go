package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storeaudit/internal/model"
	"storeaudit/internal/repository"
)

func TestTemplateService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		repo, c := new(MockTemplateRepo), new(MockTemplateCache)
		c.On("Get", ctx, "tpl1").Return(sampleTemplate(), nil).Once()

		tpl, err := NewTemplateService(repo, c).GetByID(ctx, "tpl1")
		require.NoError(t, err)
		assert.Equal(t, "Weekly visit", tpl.Name)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss reads through and fills the cache", func(t *testing.T) {
		repo, c := new(MockTemplateRepo), new(MockTemplateCache)
		tpl := sampleTemplate()
		c.On("Get", ctx, "tpl1").Return(nil, nil).Once()
		repo.On("GetByID", ctx, "tpl1").Return(tpl, nil).Once()
		c.On("Set", ctx, tpl).Return(nil).Once()

		got, err := NewTemplateService(repo, c).GetByID(ctx, "tpl1")
		require.NoError(t, err)
		assert.Same(t, tpl, got)
		repo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("cache errors fall back to the repository", func(t *testing.T) {
		repo, c := new(MockTemplateRepo), new(MockTemplateCache)
		tpl := sampleTemplate()
		c.On("Get", ctx, "tpl1").Return(nil, errors.New("redis down")).Once()
		repo.On("GetByID", ctx, "tpl1").Return(tpl, nil).Once()
		c.On("Set", ctx, tpl).Return(errors.New("redis down")).Once()

		got, err := NewTemplateService(repo, c).GetByID(ctx, "tpl1")
		require.NoError(t, err)
		assert.Same(t, tpl, got)
	})

	t.Run("missing template", func(t *testing.T) {
		repo, c := new(MockTemplateRepo), new(MockTemplateCache)
		c.On("Get", ctx, "nope").Return(nil, nil).Once()
		repo.On("GetByID", ctx, "nope").Return(nil, nil).Once()

		_, err := NewTemplateService(repo, c).GetByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestTemplateService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo, c := new(MockTemplateRepo), new(MockTemplateCache)
	tpl := sampleTemplate()
	repo.On("Update", ctx, tpl).Return(nil).Once()
	c.On("Invalidate", ctx, "tpl1").Return(nil).Once()

	require.NoError(t, NewTemplateService(repo, c).Update(ctx, tpl))
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestTemplateService_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo, c := new(MockTemplateRepo), new(MockTemplateCache)
	repo.On("Delete", ctx, "nope").Return(repository.ErrNotFound).Once()

	err := NewTemplateService(repo, c).Delete(ctx, "nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestTemplateService_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo, c := new(MockTemplateRepo), new(MockTemplateCache)

	tpl := sampleTemplate()
	tpl.Sections = append(tpl.Sections, model.Section{Title: "Cleanliness"})

	_, err := NewTemplateService(repo, c).Create(ctx, tpl)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate(sampleTemplate()))

	untitled := sampleTemplate()
	untitled.Sections = append(untitled.Sections,
		model.Section{Questions: []model.Question{{ID: "a", Type: model.QuestionTypeTextInput}}},
		model.Section{Questions: []model.Question{{ID: "b", Type: model.QuestionTypeTextInput}}},
	)
	assert.NoError(t, ValidateTemplate(untitled), "several untitled sections are allowed")

	dupQuestion := sampleTemplate()
	dupQuestion.Sections = append(dupQuestion.Sections, model.Section{
		Title:     "Other",
		Questions: []model.Question{{ID: "q_floor", Type: model.QuestionTypeYesNo}},
	})
	assert.ErrorIs(t, ValidateTemplate(dupQuestion), ErrInvalidTemplate)

	noID := sampleTemplate()
	noID.Sections[0].Questions[0].ID = ""
	assert.ErrorIs(t, ValidateTemplate(noID), ErrInvalidTemplate)

	assert.ErrorIs(t, ValidateTemplate(nil), ErrInvalidTemplate)
}
