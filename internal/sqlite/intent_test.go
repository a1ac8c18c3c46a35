package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/repository"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func newIntent(id, name string, kind intent.Kind, status intent.Status, offset time.Duration) *intent.Intent {
	return &intent.Intent{
		ID:         id,
		Name:       name,
		Keywords:   []string{},
		Kind:       kind,
		Status:     status,
		CreatedAt:  baseTime.Add(offset),
		ModifiedAt: baseTime.Add(offset),
	}
}

func TestIntentRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()
	insertCategory(t, db, "c1", "tenant1")

	in := newIntent("i1", "播放音乐", intent.KindCore, intent.StatusActive, 0)
	in.CategoryID = "c1"
	in.Description = "play a song"
	in.Keywords = []string{"播放", "音乐", "听歌"}
	in.Response = ""
	require.NoError(t, repo.Create(ctx, "tenant1", in))

	got, err := repo.Get(ctx, "tenant1", "i1")
	require.NoError(t, err)
	require.Equal(t, "tenant1", got.TenantID)
	require.Equal(t, "c1", got.CategoryID)
	require.Equal(t, "播放音乐", got.Name)
	require.Equal(t, []string{"播放", "音乐", "听歌"}, got.Keywords)
	require.Equal(t, intent.KindCore, got.Kind)
	require.Equal(t, intent.StatusActive, got.Status)
	require.Nil(t, got.LastUsedAt)
	require.True(t, got.CreatedAt.Equal(baseTime))

	_, err = repo.Get(ctx, "tenant1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestIntentRepository_CreateErrors(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	in := newIntent("i1", "天气", intent.KindCore, intent.StatusActive, 0)
	in.CategoryID = "missing"
	require.ErrorIs(t, repo.Create(ctx, "tenant1", in), repository.ErrForeignKeyViolation)

	in.CategoryID = ""
	require.NoError(t, repo.Create(ctx, "tenant1", in))
	require.ErrorIs(t, repo.Create(ctx, "tenant1", in), repository.ErrConflict)
}

func TestIntentRepository_TenantIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("i1", "天气", intent.KindCore, intent.StatusActive, 0)))

	_, err := repo.Get(ctx, "tenant2", "i1")
	require.Equal(t, repository.ErrNotFound, err)

	active, err := repo.ListActive(ctx, "tenant2", intent.Kinds)
	require.NoError(t, err)
	require.Empty(t, active)

	require.Equal(t, repository.ErrNotFound, repo.Delete(ctx, "tenant2", "i1"))
}

func TestIntentRepository_UpdateKeepsUsage(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	in := newIntent("i1", "天气", intent.KindCore, intent.StatusActive, 0)
	require.NoError(t, repo.Create(ctx, "tenant1", in))
	require.NoError(t, repo.RecordUsage(ctx, "tenant1", "i1", intent.KindCore, baseTime.Add(time.Hour)))

	in.Name = "天气预报"
	in.Keywords = []string{"预报"}
	in.Status = intent.StatusDraft
	in.UsageCount = 0
	in.ModifiedAt = baseTime.Add(2 * time.Hour)
	require.NoError(t, repo.Update(ctx, "tenant1", in))

	got, err := repo.Get(ctx, "tenant1", "i1")
	require.NoError(t, err)
	require.Equal(t, "天气预报", got.Name)
	require.Equal(t, []string{"预报"}, got.Keywords)
	require.Equal(t, intent.StatusDraft, got.Status)
	require.Equal(t, int64(1), got.UsageCount)

	missing := newIntent("nope", "x", intent.KindCore, intent.StatusActive, 0)
	require.Equal(t, repository.ErrNotFound, repo.Update(ctx, "tenant1", missing))
}

func TestIntentRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("i1", "天气", intent.KindCore, intent.StatusActive, 0)))
	require.NoError(t, repo.Delete(ctx, "tenant1", "i1"))
	require.Equal(t, repository.ErrNotFound, repo.Delete(ctx, "tenant1", "i1"))
}

func TestIntentRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()
	insertCategory(t, db, "c1", "tenant1")

	a := newIntent("a", "播放音乐", intent.KindCore, intent.StatusActive, 0)
	a.CategoryID = "c1"
	require.NoError(t, repo.Create(ctx, "tenant1", a))
	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("b", "你好", intent.KindNonCore, intent.StatusActive, time.Minute)))
	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("c", "天气", intent.KindCore, intent.StatusDraft, 2*time.Minute)))

	all, err := repo.List(ctx, "tenant1", intent.ListIntentsOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "a", all[0].ID)
	require.Equal(t, "c1", all[0].CategoryID)

	kind := intent.KindCore
	core, err := repo.List(ctx, "tenant1", intent.ListIntentsOptions{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, core, 2)

	status := intent.StatusDraft
	drafts, err := repo.List(ctx, "tenant1", intent.ListIntentsOptions{Status: &status})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, "c", drafts[0].ID)

	inCategory, err := repo.List(ctx, "tenant1", intent.ListIntentsOptions{CategoryID: "c1"})
	require.NoError(t, err)
	require.Len(t, inCategory, 1)

	page, err := repo.List(ctx, "tenant1", intent.ListIntentsOptions{Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "b", page[0].ID)

	page, err = repo.List(ctx, "tenant1", intent.ListIntentsOptions{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "c", page[0].ID)
}

func TestIntentRepository_ListActive(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("z", "关灯", intent.KindCore, intent.StatusActive, 0)))
	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("y", "你好", intent.KindNonCore, intent.StatusActive, time.Minute)))
	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("x", "天气", intent.KindCore, intent.StatusInactive, 2*time.Minute)))
	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("w", "测试", intent.KindCore, intent.StatusTesting, 3*time.Minute)))
	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("a", "开灯", intent.KindCore, intent.StatusActive, 0)))

	active, err := repo.ListActive(ctx, "tenant1", intent.Kinds)
	require.NoError(t, err)
	require.Len(t, active, 3)
	require.Equal(t, "a", active[0].ID)
	require.Equal(t, "z", active[1].ID)
	require.Equal(t, "y", active[2].ID)

	core, err := repo.ListActive(ctx, "tenant1", []intent.Kind{intent.KindCore})
	require.NoError(t, err)
	require.Len(t, core, 2)

	none, err := repo.ListActive(ctx, "tenant1", nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestIntentRepository_RecordUsage(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("i1", "天气", intent.KindCore, intent.StatusActive, 0)))

	usedAt := baseTime.Add(time.Hour)
	require.NoError(t, repo.RecordUsage(ctx, "tenant1", "i1", intent.KindCore, usedAt))

	got, err := repo.Get(ctx, "tenant1", "i1")
	require.NoError(t, err)
	require.Equal(t, int64(1), got.UsageCount)
	require.NotNil(t, got.LastUsedAt)
	require.True(t, got.LastUsedAt.Equal(usedAt))

	require.Equal(t, repository.ErrNotFound, repo.RecordUsage(ctx, "tenant1", "i1", intent.KindNonCore, usedAt))
	require.Equal(t, repository.ErrNotFound, repo.RecordUsage(ctx, "tenant1", "missing", intent.KindCore, usedAt))
}

func TestIntentRepository_RecordUsageConcurrent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "tenant1", newIntent("i1", "天气", intent.KindCore, intent.StatusActive, 0)))

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.RecordUsage(ctx, "tenant1", "i1", intent.KindCore, baseTime.Add(time.Duration(i)*time.Second))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, "tenant1", "i1")
	require.NoError(t, err)
	require.Equal(t, int64(n), got.UsageCount, fmt.Sprintf("expected %d increments", n))
}
