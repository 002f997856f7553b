package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

func newService(config core.Config) (*core.Service, *memory.Store) {
	kv := memory.NewStore()
	return core.NewService(kv, codec.NewLegacy(), config), kv
}

// kvOnly hides the Watchable side of a store.
type kvOnly struct {
	core.KeyValueStore
}

func TestService_CreateAndPersist(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{})

	note, err := svc.Create(ctx, "Groceries", "milk eggs bread")
	require.NoError(t, err)
	assert.Equal(t, core.Entry{Title: "Groceries", Body: "milk eggs bread"}, note)
	svc.Wait()

	raw, ok, err := kv.Get(ctx, core.NotesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Groceries:milk eggs bread", raw)

	loaded, err := svc.LoadOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Entry{{Title: "Groceries", Body: "milk eggs bread"}}, loaded)
}

func TestService_CreateDerivesTitle(t *testing.T) {
	svc, _ := newService(core.Config{})

	note, err := svc.Create(context.Background(), "", "buy milk today")
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "buy", note.Title)
	assert.Equal(t, []core.Entry{{Title: "buy", Body: "buy milk today"}}, svc.Store().All())
}

func TestService_CreateRejectsBlankBody(t *testing.T) {
	svc, kv := newService(core.Config{})

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := svc.Create(context.Background(), "title", body)
		assert.ErrorIs(t, err, core.ErrEmptyBody)
	}
	svc.Wait()

	assert.Equal(t, 0, svc.Store().Len())
	_, ok, _ := kv.Get(context.Background(), core.NotesKey)
	assert.False(t, ok)
}

func TestService_ReadOnly(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{ReadOnly: true})

	_, err := svc.Create(ctx, "a", "b")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.ErrorIs(t, svc.SaveSync(ctx), core.ErrReadOnly)

	require.NoError(t, svc.Store().Put("a", "b"))
	svc.Save(ctx)
	svc.Wait()

	_, ok, _ := kv.Get(ctx, core.NotesKey)
	assert.False(t, ok)
}

func TestService_SaveErrors(t *testing.T) {
	ctx := context.Background()

	var (
		mu   sync.Mutex
		errs []error
	)
	svc, kv := newService(core.Config{
		SaveErrorHandler: func(err error) {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err)
		},
	})
	kv.SetReadOnly(true)

	_, err := svc.Create(ctx, "a", "b")
	require.NoError(t, err, "Create does not wait for the save")
	svc.Wait()

	mu.Lock()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], core.ErrReadOnly)
	mu.Unlock()

	assert.ErrorIs(t, svc.SaveSync(ctx), core.ErrReadOnly)
}

func TestService_SaveKeepsLatest(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{})

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		_, err := svc.Create(ctx, title, "x")
		require.NoError(t, err)
	}
	svc.Wait()

	raw, _, err := kv.Get(ctx, core.NotesKey)
	require.NoError(t, err)
	assert.Equal(t, "a:x;b:x;c:x;d:x;e:x", raw)
}

func TestService_CustomKey(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{Key: "scratch"})

	require.NoError(t, svc.Store().Put("a", "b"))
	require.NoError(t, svc.SaveSync(ctx))

	raw, ok, _ := kv.Get(ctx, "scratch")
	assert.True(t, ok)
	assert.Equal(t, "a:b", raw)
	_, ok, _ = kv.Get(ctx, core.NotesKey)
	assert.False(t, ok)
}

func TestService_LoadOnce(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{})

	entries, err := svc.LoadOnce(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, kv.Set(ctx, core.NotesKey, "a"))
	_, err = svc.LoadOnce(ctx)
	assert.ErrorIs(t, err, core.ErrMalformedPair)
}

func TestService_Load(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, kv := newService(core.Config{})
	require.NoError(t, kv.Set(ctx, core.NotesKey, "a:1"))

	stream, err := svc.Load(ctx)
	require.NoError(t, err)

	next := func() []core.Entry {
		t.Helper()
		select {
		case entries, ok := <-stream:
			require.True(t, ok, "stream closed")
			return entries
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for notes")
			return nil
		}
	}

	assert.Equal(t, []core.Entry{{Title: "a", Body: "1"}}, next())

	require.NoError(t, kv.Set(ctx, core.NotesKey, "a:1;b:2"))
	assert.Equal(t, []core.Entry{{Title: "a", Body: "1"}, {Title: "b", Body: "2"}}, next())

	// Undecodable values are skipped.
	require.NoError(t, kv.Set(ctx, core.NotesKey, "broken"))
	require.NoError(t, kv.Set(ctx, core.NotesKey, "c:3"))
	assert.Equal(t, []core.Entry{{Title: "c", Body: "3"}}, next())

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-stream:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestService_LoadRejectsCorruptValue(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{})
	require.NoError(t, kv.Set(ctx, core.NotesKey, "no separator"))

	_, err := svc.Load(ctx)
	assert.ErrorIs(t, err, core.ErrMalformedPair)
}

func TestService_LoadWithoutWatch(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	require.NoError(t, kv.Set(ctx, core.NotesKey, "a:1"))
	svc := core.NewService(kvOnly{kv}, codec.NewLegacy(), core.Config{})

	stream, err := svc.Load(ctx)
	require.NoError(t, err)

	var got [][]core.Entry
	for entries := range stream {
		got = append(got, entries)
	}
	assert.Equal(t, [][]core.Entry{{{Title: "a", Body: "1"}}}, got)
}

func TestService_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, kv := newService(core.Config{})
	require.NoError(t, kv.Set(ctx, core.NotesKey, "a:1"))

	require.NoError(t, svc.Start(ctx))
	assert.Equal(t, []core.Entry{{Title: "a", Body: "1"}}, svc.Store().All())

	// Another writer replaces the notes.
	require.NoError(t, kv.Set(ctx, core.NotesKey, "b:2"))
	assert.Eventually(t, func() bool {
		_, ok := svc.Store().Get("b")
		return ok && svc.Store().Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Our own saves do not bounce back over newer notes.
	_, err := svc.Create(ctx, "c", "3")
	require.NoError(t, err)
	svc.Wait()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []core.Entry{{Title: "b", Body: "2"}, {Title: "c", Body: "3"}}, svc.Store().All())
}

func TestService_StartFailsOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	svc, kv := newService(core.Config{})
	require.NoError(t, kv.Set(ctx, core.NotesKey, "x"))

	err := svc.Start(ctx)
	assert.True(t, errors.Is(err, core.ErrMalformedPair))
}

func TestService_Screens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(core.Config{})
	for _, n := range []core.Entry{
		{Title: "Groceries", Body: "milk eggs bread"},
		{Title: "meeting", Body: "call Ana"},
		{Title: "memo", Body: "Buy MILK"},
	} {
		_, err := svc.Create(ctx, n.Title, n.Body)
		require.NoError(t, err)
	}
	svc.Wait()

	t.Run("list is newest first", func(t *testing.T) {
		titles := []string{}
		for _, e := range svc.List() {
			titles = append(titles, e.Title)
		}
		assert.Equal(t, []string{"memo", "meeting", "Groceries"}, titles)
	})

	t.Run("search ignores case", func(t *testing.T) {
		found := svc.Search("milk")
		require.Len(t, found, 2)
		assert.Equal(t, "Groceries", found[0].Title)
		assert.Equal(t, "memo", found[1].Title)

		assert.Len(t, svc.Search("GROCERIES"), 1)
		assert.Len(t, svc.Search(""), 3)
		assert.Empty(t, svc.Search("nothing"))
	})

	t.Run("match titles", func(t *testing.T) {
		found, err := svc.Match("me*")
		require.NoError(t, err)
		assert.Len(t, found, 2)

		_, err = svc.Match("[")
		assert.Error(t, err)
	})

	t.Run("get", func(t *testing.T) {
		note, err := svc.Get("meeting")
		require.NoError(t, err)
		assert.Equal(t, "call Ana", note.Body)

		_, err = svc.Get("missing")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_State(t *testing.T) {
	svc, _ := newService(core.Config{ReadOnly: true})
	require.NoError(t, svc.Store().Put("a", "b"))

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, core.NotesKey, state.Key)
	assert.Equal(t, "legacy", state.Codec)
	assert.Equal(t, 1, state.Notes)
	assert.True(t, state.ReadOnly)
	assert.Equal(t, "memory", state.StoreType)
	assert.Equal(t, "service", svc.ComponentType())
}

// --- Properties ---

func plainText() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9 .,!?]{0,30}`)
}

// Notes saved under the legacy codec reload as the same set, as long as no
// separator is involved.
func testService_PersistRoundTrip_Properties(t *rapid.T) {
	ctx := context.Background()
	svc, _ := newService(core.Config{})

	n := rapid.IntRange(0, 10).Draw(t, "n")
	for i := 0; i < n; i++ {
		title := rapid.StringMatching(`[A-Za-z0-9]{1,10}`).Draw(t, "title")
		if err := svc.Store().Put(title, plainText().Draw(t, "body")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if err := svc.SaveSync(ctx); err != nil {
		t.Fatalf("SaveSync failed: %v", err)
	}

	loaded, err := svc.LoadOnce(ctx)
	if err != nil {
		t.Fatalf("LoadOnce failed: %v", err)
	}

	reloaded := core.NewStore()
	reloaded.ReplaceAll(loaded)
	want := svc.Store().All()
	got := reloaded.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("note %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestService_PersistRoundTrip_Properties(t *testing.T) {
	rapid.Check(t, testService_PersistRoundTrip_Properties)
}
