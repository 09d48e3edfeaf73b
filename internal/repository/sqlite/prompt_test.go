package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/promptcheck/internal/domain"
	"github.com/isaacphi/promptcheck/internal/repository"
)

func newRepo(t *testing.T) repository.PromptRepository {
	t.Helper()
	repo, err := Initialize(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func version(name string, created time.Time) *domain.PromptVersion {
	return &domain.PromptVersion{
		Name:           name,
		Template:       "Hello {{.name}}",
		ToolChoiceJSON: `{"type":"zero_or_more"}`,
		CreatedAt:      created,
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	v := version("greeter", time.Now())
	require.NoError(t, repo.Create(ctx, v))
	require.NotEqual(t, uuid.Nil, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "greeter", got.Name)
	assert.Equal(t, `{"type":"zero_or_more"}`, got.ToolChoiceJSON)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, domain.IsNotFoundError(err))
}

func TestFindByPartialID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	a := version("a", time.Now())
	a.ID = uuid.MustParse("abc00000-0000-4000-8000-000000000001")
	b := version("b", time.Now())
	b.ID = uuid.MustParse("abd00000-0000-4000-8000-000000000002")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.FindByPartialID(ctx, "AB")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrAmbiguousID), "got %v", err)

	got, err = repo.FindByPartialID(ctx, "ABD")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = repo.FindByPartialID(ctx, strings.ToUpper(a.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.FindByPartialID(ctx, "fff")
	assert.True(t, domain.IsNotFoundError(err))
}

func TestFindByPartialIDRejectsPatterns(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.Create(ctx, version("only", time.Now())))

	for _, id := range []string{"%", "________", "a%", "ab_", "", "zz", "abc'"} {
		t.Run(id, func(t *testing.T) {
			got, err := repo.FindByPartialID(ctx, id)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, domain.ErrInvalidID), "got %v", err)
		})
	}
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"greeter", "summarizer", "greeter"} {
		require.NoError(t, repo.Create(ctx, version(name, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	greeters, err := repo.ListByName(ctx, "greeter")
	require.NoError(t, err)
	require.Len(t, greeters, 2)
	assert.True(t, greeters[0].CreatedAt.After(greeters[1].CreatedAt))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	v := version("greeter", time.Now())
	require.NoError(t, repo.Create(ctx, v))
	require.NoError(t, repo.Delete(ctx, v.ID))

	_, err := repo.GetByID(ctx, v.ID)
	assert.True(t, domain.IsNotFoundError(err))

	assert.True(t, domain.IsNotFoundError(repo.Delete(ctx, v.ID)))
}
