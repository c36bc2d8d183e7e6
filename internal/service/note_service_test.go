package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createNote(t *testing.T, env *testEnv, userId uuid.UUID, title, content string, folderId *uuid.UUID) *dto.NoteResponse {
	t.Helper()
	req := &dto.CreateNoteRequest{Title: title, Content: content}
	if folderId != nil {
		req.Folder = dto.IDOf(*folderId)
	}
	note, err := env.notes.Create(context.Background(), userId, req)
	require.NoError(t, err)
	// Keeps updated_at strictly increasing between notes.
	time.Sleep(5 * time.Millisecond)
	return note
}

func titles(notes []*dto.NoteResponse) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestNoteService_CreateAndShowRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")
	work := createFolder(t, env, alice, "Work")

	created := createNote(t, env, alice, "Standup", "# Agenda\n- yesterday", &work.Id)
	assert.Equal(t, events.NoteCreated, env.publisher.Last().Type)
	assert.Equal(t, created.Id, env.publisher.Last().EntityId)

	got, err := env.notes.Show(ctx, alice, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "# Agenda\n- yesterday", got.Content)
	assert.Equal(t, alice, got.User)
	require.NotNil(t, got.Folder)
	assert.Equal(t, work.Id, got.Folder.Id)
	assert.Equal(t, "Work", got.Folder.Name)
	assert.Equal(t, work.Color, got.Folder.Color)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestNoteService_CreateValidatesFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")
	bob := env.seedUser(t, "bob@example.com")
	bobs := createFolder(t, env, bob, "Private")

	t.Run("foreign folder", func(t *testing.T) {
		_, err := env.notes.Create(ctx, alice, &dto.CreateNoteRequest{
			Title: "x", Content: "y", Folder: dto.IDOf(bobs.Id),
		})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "Folder not found", err.Error())
	})

	t.Run("unknown folder", func(t *testing.T) {
		_, err := env.notes.Create(ctx, alice, &dto.CreateNoteRequest{
			Title: "x", Content: "y", Folder: dto.IDOf(uuid.New()),
		})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("malformed folder id", func(t *testing.T) {
		_, err := env.notes.Create(ctx, alice, &dto.CreateNoteRequest{
			Title: "x", Content: "y", Folder: dto.OptionalID{Set: true, Invalid: true},
		})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("explicit null means unfiled", func(t *testing.T) {
		note, err := env.notes.Create(ctx, alice, &dto.CreateNoteRequest{
			Title: "x", Content: "y", Folder: dto.OptionalID{Set: true},
		})
		require.NoError(t, err)
		assert.Nil(t, note.Folder)
	})
}

func TestNoteService_OwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")
	bob := env.seedUser(t, "bob@example.com")

	note := createNote(t, env, alice, "secret", "alice only", nil)

	_, err := env.notes.Show(ctx, bob, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = env.notes.Update(ctx, bob, &dto.UpdateNoteRequest{Id: note.Id, Title: strPtr("pwned")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = env.notes.Delete(ctx, bob, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	bobsNotes, err := env.notes.GetAll(ctx, bob, &dto.ListNotesQuery{})
	require.NoError(t, err)
	assert.Empty(t, bobsNotes)

	got, err := env.notes.Show(ctx, alice, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)
}

func TestNoteService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")
	work := createFolder(t, env, alice, "Work")
	home := createFolder(t, env, alice, "Home")

	note := createNote(t, env, alice, "Title", "Content", &work.Id)

	t.Run("absent fields are left alone", func(t *testing.T) {
		res, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id, Content: strPtr("New content")})
		require.NoError(t, err)
		assert.Equal(t, "Title", res.Title)
		assert.Equal(t, "New content", res.Content)
		require.NotNil(t, res.Folder)
		assert.Equal(t, work.Id, res.Folder.Id)
		assert.Equal(t, events.NoteUpdated, env.publisher.Last().Type)
	})

	t.Run("empty strings are rejected", func(t *testing.T) {
		_, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id, Title: strPtr("")})
		assert.ErrorIs(t, err, apperror.ErrValidation)

		_, err = env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id, Content: strPtr("")})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("move to another folder", func(t *testing.T) {
		res, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id, Folder: dto.IDOf(home.Id)})
		require.NoError(t, err)
		require.NotNil(t, res.Folder)
		assert.Equal(t, "Home", res.Folder.Name)
	})

	t.Run("null unfiles", func(t *testing.T) {
		res, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id, Folder: dto.OptionalID{Set: true}})
		require.NoError(t, err)
		assert.Nil(t, res.Folder)

		got, err := env.notes.Show(ctx, alice, note.Id)
		require.NoError(t, err)
		assert.Nil(t, got.Folder)
	})

	t.Run("move to an unknown folder is rejected", func(t *testing.T) {
		_, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id, Folder: dto.IDOf(uuid.New())})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("no changes returns the note as is", func(t *testing.T) {
		before := len(env.publisher.Types())
		res, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: note.Id})
		require.NoError(t, err)
		assert.Equal(t, note.Id, res.Id)
		assert.Len(t, env.publisher.Types(), before)
	})
}

func TestNoteService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")
	note := createNote(t, env, alice, "bye", "soon gone", nil)

	require.NoError(t, env.notes.Delete(ctx, alice, note.Id))
	assert.Equal(t, events.NoteDeleted, env.publisher.Last().Type)

	_, err := env.notes.Show(ctx, alice, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = env.notes.Delete(ctx, alice, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNoteService_GetAllFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")
	work := createFolder(t, env, alice, "Work")

	createNote(t, env, alice, "Meeting notes", "quarterly PLANNING", &work.Id)
	createNote(t, env, alice, "Groceries", "eggs and milk", nil)
	createNote(t, env, alice, "Planning trip", "flights", nil)
	createNote(t, env, alice, "100% done", "under_score", nil)

	t.Run("folder=none returns exactly the unfiled notes", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Folder: "none"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Groceries", "Planning trip", "100% done"}, titles(notes))
	})

	t.Run("folder id", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Folder: work.Id.String()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Meeting notes"}, titles(notes))
	})

	t.Run("bad folder filter", func(t *testing.T) {
		_, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Folder: "work"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("search is case-insensitive over title or content", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Search: "planning"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Meeting notes", "Planning trip"}, titles(notes))

		notes, err = env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Search: "MILK"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Groceries"}, titles(notes))
	})

	t.Run("search combined with folder=none", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Search: "planning", Folder: "none"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Planning trip"}, titles(notes))
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Search: "%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% done"}, titles(notes))

		notes, err = env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Search: "_"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% done"}, titles(notes))
	})

	t.Run("folder is resolved on every note", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{})
		require.NoError(t, err)
		for _, n := range notes {
			if n.Title == "Meeting notes" {
				require.NotNil(t, n.Folder)
				assert.Equal(t, "Work", n.Folder.Name)
			} else {
				assert.Nil(t, n.Folder)
			}
		}
	})
}

func TestNoteService_GetAllSorting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")

	first := createNote(t, env, alice, "Banana", "b", nil)
	createNote(t, env, alice, "apple", "a", nil)
	createNote(t, env, alice, "Cherry", "c", nil)

	t.Run("default is most recently updated first", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cherry", "apple", "Banana"}, titles(notes))
	})

	t.Run("update moves a note to the front", func(t *testing.T) {
		_, err := env.notes.Update(ctx, alice, &dto.UpdateNoteRequest{Id: first.Id, Content: strPtr("edited")})
		require.NoError(t, err)

		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{})
		require.NoError(t, err)
		assert.Equal(t, "Banana", notes[0].Title)
	})

	t.Run("createdAt ascending", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{SortBy: "createdAt", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Banana", "apple", "Cherry"}, titles(notes))
	})

	t.Run("content descending, order is case-insensitive", func(t *testing.T) {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{SortBy: "content", SortOrder: "DESC"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Banana", "Cherry", "apple"}, titles(notes))
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{SortBy: "user_id"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.True(t, strings.Contains(err.Error(), "user_id"))
	})
}

func TestNoteService_PublishFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice@example.com")
	env.publisher.err = errBoom

	note, err := env.notes.Create(context.Background(), alice, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, note.Id)
}

func TestNoteService_SearchFoldsNonASCII(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice@example.com")

	createNote(t, env, alice, "ÉTÉ PLAN", "vacances", nil)
	createNote(t, env, alice, "Winter", "Straße räumen", nil)

	tests := []struct {
		search string
		want   []string
	}{
		{search: "plan", want: []string{"ÉTÉ PLAN"}},
		{search: "ÉTÉ", want: []string{"ÉTÉ PLAN"}},
		{search: "été", want: []string{"ÉTÉ PLAN"}},
		{search: "Été p", want: []string{"ÉTÉ PLAN"}},
		{search: "STRASSE", want: []string{}},
		{search: "RÄUMEN", want: []string{"Winter"}},
	}

	for _, tt := range tests {
		notes, err := env.notes.GetAll(ctx, alice, &dto.ListNotesQuery{Search: tt.search})
		require.NoError(t, err)
		assert.Equal(t, tt.want, titles(notes), "search %q", tt.search)
	}
}
