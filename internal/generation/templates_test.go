package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"slidegen/internal/store"
)

func TestTemplates_SaveLoadList(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := NewTemplates(mem)

	tpl := comparisonTemplate(t)
	require.NoError(t, repo.Save(ctx, "cmp", tpl))
	require.NoError(t, repo.Save(ctx, "alpha", tpl))
	require.NoError(t, mem.Put(ctx, store.TemplatesNamespace, "README", []byte("x")))

	got, err := repo.Load(ctx, "cmp")
	require.NoError(t, err)
	require.Equal(t, tpl.ID, got.ID)
	require.Len(t, got.Elements, len(tpl.Elements))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "cmp"}, ids)

	_, err = repo.Load(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTemplates_RejectsBadIDs(t *testing.T) {
	repo := NewTemplates(store.NewMemoryStore())
	for _, id := range []string{"", " ", "../etc", "a/b", `a\b`, ".hidden"} {
		_, err := repo.Load(context.Background(), id)
		require.ErrorIs(t, err, ErrBadTemplateID, id)
	}
}
