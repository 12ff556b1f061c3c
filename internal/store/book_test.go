package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xunop/e-library/internal/model"
	"github.com/Xunop/e-library/internal/store"
	"github.com/Xunop/e-library/internal/store/db"
)

func newTestStore(t *testing.T) (*store.Store, *db.DB) {
	t.Helper()

	d, err := db.NewDB(filepath.Join(t.TempDir(), "ebooks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.EnsureSchema(context.Background()))

	return store.NewStore(d.DB), d
}

func alice() *model.BookCreate {
	return &model.BookCreate{
		Title:       "Alice in Wonderland",
		Author:      "Lewis Carroll",
		Language:    "English",
		Description: "A girl falls down a rabbit hole",
		Link:        "http://example.com/alice.pdf",
	}
}

func TestAddAndSearchBook(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	book, err := s.AddBook(ctx, alice())
	require.NoError(t, err)
	require.NotZero(t, book.ID)

	want := []*model.Book{{
		ID:          book.ID,
		Title:       "Alice in Wonderland",
		Author:      "Lewis Carroll",
		Language:    "English",
		Description: "A girl falls down a rabbit hole",
		Link:        "http://example.com/alice.pdf",
	}}

	for _, term := range []string{"carroll", "CARROLL", "Wonder", "in wonder", "engl", "ISH", "Lewis C"} {
		t.Run(term, func(t *testing.T) {
			got, err := s.SearchBooks(ctx, &model.FindBook{Term: term})
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("SearchBooks(%q) mismatch (-want +got):\n%s", term, diff)
			}
		})
	}
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.AddBook(ctx, alice())
	require.NoError(t, err)

	got, err := s.SearchBooks(ctx, &model.FindBook{Term: "french"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// description is not searched
	got, err = s.SearchBooks(ctx, &model.FindBook{Term: "rabbit"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchEmptyTermReturnsEverything(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	ids := map[int64]bool{}
	for _, title := range []string{"Dracula", "Faust", "Don Quijote"} {
		create := alice()
		create.Title = title
		book, err := s.AddBook(ctx, create)
		require.NoError(t, err)
		ids[book.ID] = true
	}

	for _, find := range []*model.FindBook{nil, {}, {Term: ""}} {
		got, err := s.SearchBooks(ctx, find)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, b := range got {
			assert.True(t, ids[b.ID], "unexpected id %d", b.ID)
		}
	}
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	percent := alice()
	percent.Title = "100% Go"
	_, err := s.AddBook(ctx, percent)
	require.NoError(t, err)
	_, err = s.AddBook(ctx, alice())
	require.NoError(t, err)

	got, err := s.SearchBooks(ctx, &model.FindBook{Term: "%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Go", got[0].Title)

	got, err = s.SearchBooks(ctx, &model.FindBook{Term: "_"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.SearchBooks(ctx, &model.FindBook{Term: `\`})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	create := alice()
	create.Title = "Émile"
	create.Author = "Jean-Jacques Rousseau"
	create.Language = "Français"
	_, err := s.AddBook(ctx, create)
	require.NoError(t, err)

	for _, term := range []string{"émile", "ÉMILE", "FRANÇAIS"} {
		got, err := s.SearchBooks(ctx, &model.FindBook{Term: term})
		require.NoError(t, err)
		assert.Len(t, got, 1, "term %q", term)
	}
}

func TestAddBookAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	first, err := s.AddBook(ctx, alice())
	require.NoError(t, err)
	second, err := s.AddBook(ctx, alice())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)

	count, err := s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddBookAllowsEmptyDescription(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	create := alice()
	create.Description = ""
	create.Language = ""
	book, err := s.AddBook(ctx, create)
	require.NoError(t, err)
	assert.Empty(t, book.Description)
	assert.Empty(t, book.Language)
}

func TestStorageFailureIsDistinguishable(t *testing.T) {
	ctx := context.Background()
	s, d := newTestStore(t)
	require.NoError(t, d.Close())

	_, err := s.SearchBooks(ctx, &model.FindBook{Term: "x"})
	require.Error(t, err)
	assert.True(t, store.IsStorageError(err))

	_, err = s.AddBook(ctx, alice())
	require.Error(t, err)
	var se *store.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "add book", se.Op)

	assert.True(t, store.IsStorageError(s.Ping()))
}
