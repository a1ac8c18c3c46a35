package intent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/repository"
	"github.com/rpggio/intentcat/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIntentService_CreateDefaultsAndNormalizes(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	intents := &mocks.IntentRepository{}
	categories := &mocks.CategoryRepository{}
	activities := &mocks.ActivityRepository{}

	categories.On("Get", ctx, tenantID, "cat-media").Return(&category.Category{ID: "cat-media"}, nil)
	intents.On("Create", ctx, tenantID, mock.MatchedBy(func(in *intent.Intent) bool {
		return in.Status == intent.StatusActive && in.Name == "播放音乐"
	})).Return(nil)
	activities.On("Log", ctx, tenantID, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeIntentCreated
	})).Return(nil)

	svc := intent.NewService(intents, categories, activities, nil)
	in, err := svc.Create(ctx, tenantID, intent.CreateRequest{
		CategoryID: "cat-media",
		Name:       " 播放音乐 ",
		Keywords:   []string{"Play", "play ", "", "音乐"},
		Kind:       intent.KindCore,
	})
	require.NoError(t, err)
	require.NotEmpty(t, in.ID)
	require.Equal(t, []string{"play", "音乐"}, in.Keywords)
	require.Zero(t, in.UsageCount)
	require.Nil(t, in.LastUsedAt)
	intents.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestIntentService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := intent.NewService(&mocks.IntentRepository{}, nil, nil, nil)

	_, err := svc.Create(ctx, "tenant1", intent.CreateRequest{Name: " ", Kind: intent.KindCore})
	require.ErrorIs(t, err, intent.ErrInvalidInput)

	_, err = svc.Create(ctx, "tenant1", intent.CreateRequest{Name: "x", Kind: "primary"})
	require.ErrorIs(t, err, intent.ErrInvalidKind)

	_, err = svc.Create(ctx, "tenant1", intent.CreateRequest{Name: "x", Kind: intent.KindNonCore, Status: "archived"})
	require.ErrorIs(t, err, intent.ErrInvalidStatus)
}

func TestIntentService_CreateUnknownCategory(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	categories := &mocks.CategoryRepository{}
	categories.On("Get", ctx, tenantID, "nope").Return((*category.Category)(nil), repository.ErrNotFound)

	svc := intent.NewService(&mocks.IntentRepository{}, categories, nil, nil)
	_, err := svc.Create(ctx, tenantID, intent.CreateRequest{CategoryID: "nope", Name: "x", Kind: intent.KindCore})
	require.ErrorIs(t, err, intent.ErrCategoryNotFound)
}

func TestIntentService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	existing := &intent.Intent{
		ID:          "i1",
		Name:        "天气",
		Description: "查询天气",
		Keywords:    []string{"天气"},
		Kind:        intent.KindCore,
		Status:      intent.StatusActive,
		UsageCount:  7,
	}
	intents := &mocks.IntentRepository{}
	intents.On("Get", ctx, tenantID, "i1").Return(existing, nil)
	intents.On("Update", ctx, tenantID, mock.Anything).Return(nil)

	svc := intent.NewService(intents, nil, nil, nil)
	name := "天气预报"
	updated, err := svc.Update(ctx, tenantID, intent.UpdateRequest{ID: "i1", Name: &name, Keywords: []string{"预报", "气温"}})
	require.NoError(t, err)
	require.Equal(t, "天气预报", updated.Name)
	require.Equal(t, "查询天气", updated.Description)
	require.Equal(t, []string{"预报", "气温"}, updated.Keywords)
	require.Equal(t, int64(7), updated.UsageCount)
}

func TestIntentService_UpdateRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	intents := &mocks.IntentRepository{}
	intents.On("Get", ctx, tenantID, "i1").Return(&intent.Intent{ID: "i1", Name: "天气"}, nil)

	svc := intent.NewService(intents, nil, nil, nil)
	blank := "  "
	_, err := svc.Update(ctx, tenantID, intent.UpdateRequest{ID: "i1", Name: &blank})
	require.ErrorIs(t, err, intent.ErrInvalidInput)
	intents.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntentService_SetStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	intents := &mocks.IntentRepository{}
	activities := &mocks.ActivityRepository{}
	intents.On("Get", ctx, tenantID, "i1").Return(&intent.Intent{ID: "i1", Name: "天气", Status: intent.StatusActive}, nil)
	intents.On("Update", ctx, tenantID, mock.MatchedBy(func(in *intent.Intent) bool {
		return in.Status == intent.StatusDraft
	})).Return(nil)
	activities.On("Log", ctx, tenantID, mock.Anything).Return(nil)

	svc := intent.NewService(intents, nil, activities, nil)
	updated, err := svc.SetStatus(ctx, tenantID, "i1", intent.StatusDraft)
	require.NoError(t, err)
	require.Equal(t, intent.StatusDraft, updated.Status)

	same, err := svc.SetStatus(ctx, tenantID, "i1", intent.StatusActive)
	require.NoError(t, err)
	require.Equal(t, intent.StatusActive, same.Status)
	intents.AssertNumberOfCalls(t, "Update", 1)

	_, err = svc.SetStatus(ctx, tenantID, "i1", "archived")
	require.ErrorIs(t, err, intent.ErrInvalidStatus)
}

func TestIntentService_GetAndDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	intents := &mocks.IntentRepository{}
	intents.On("Get", ctx, tenantID, "missing").Return((*intent.Intent)(nil), repository.ErrNotFound)
	intents.On("Delete", ctx, tenantID, "missing").Return(repository.ErrNotFound)

	svc := intent.NewService(intents, nil, nil, nil)
	_, err := svc.Get(ctx, tenantID, "missing")
	require.ErrorIs(t, err, intent.ErrIntentNotFound)

	err = svc.Delete(ctx, tenantID, "missing")
	require.ErrorIs(t, err, intent.ErrIntentNotFound)
}

func TestIntentService_ActivityFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	intents := &mocks.IntentRepository{}
	activities := &mocks.ActivityRepository{}
	intents.On("Delete", ctx, tenantID, "i1").Return(nil)
	activities.On("Log", ctx, tenantID, mock.Anything).Return(errors.New("disk full"))

	svc := intent.NewService(intents, nil, activities, nil)
	require.NoError(t, svc.Delete(ctx, tenantID, "i1"))
}

func TestIntentService_ListValidatesFilters(t *testing.T) {
	ctx := context.Background()
	svc := intent.NewService(&mocks.IntentRepository{}, nil, nil, nil)

	kind := intent.Kind("primary")
	_, err := svc.List(ctx, "tenant1", intent.ListIntentsOptions{Kind: &kind})
	require.ErrorIs(t, err, intent.ErrInvalidKind)

	status := intent.Status("archived")
	_, err = svc.List(ctx, "tenant1", intent.ListIntentsOptions{Status: &status})
	require.ErrorIs(t, err, intent.ErrInvalidStatus)
}

func TestIntentService_Search(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	refs := []intent.IntentRef{
		{ID: "i1", Name: "play music"},
		{ID: "i2", Name: "weather forecast"},
		{ID: "i3", Name: "pause music"},
	}
	intents := &mocks.IntentRepository{}
	intents.On("List", ctx, tenantID, intent.ListIntentsOptions{}).Return(refs, nil)

	svc := intent.NewService(intents, nil, nil, nil)
	results, err := svc.Search(ctx, tenantID, "music", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Contains(t, r.Intent.Name, "music")
	}

	limited, err := svc.Search(ctx, tenantID, "music", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	_, err = svc.Search(ctx, tenantID, "  ", 0)
	require.ErrorIs(t, err, intent.ErrInvalidInput)
}
