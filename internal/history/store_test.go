package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/css-prep/backend/internal/kv"
	"github.com/css-prep/backend/internal/models"
	"github.com/rs/zerolog"
)

func newTestStore() (*Store, *kv.Memory) {
	mem := kv.NewMemory()
	return NewStore(mem, zerolog.Nop()), mem
}

func result(n int) models.QuizResult {
	return models.QuizResult{
		Right:     []int{1},
		Wrong:     []int{},
		Empty:     []int{},
		Totals:    models.Totals{Right: 1},
		Timestamp: time.Date(2026, 1, 1, 0, 0, n, 0, time.UTC),
		Subject:   "Pakistan Affairs",
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s, _ := newTestStore()

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Load on empty store = %v, want empty non-nil slice", got)
	}
}

func TestStore_AppendNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	for i := 1; i <= 3; i++ {
		if err := s.Append(ctx, result(i)); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	got, _ := s.Load(ctx)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int{3, 2, 1} {
		if got[i].Timestamp.Second() != want {
			t.Errorf("entry %d = result %d, want %d", i, got[i].Timestamp.Second(), want)
		}
	}
}

func TestStore_CapsAtMaxEntries(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	for i := 1; i <= 21; i++ {
		if err := s.Append(ctx, result(i)); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		got, _ := s.Load(ctx)
		if len(got) > MaxEntries {
			t.Fatalf("after %d appends len = %d, exceeds %d", i, len(got), MaxEntries)
		}
		if got[0].Timestamp.Second() != i {
			t.Fatalf("after %d appends front = %d", i, got[0].Timestamp.Second())
		}
	}

	got, _ := s.Load(ctx)
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	if got[0].Timestamp.Second() != 21 {
		t.Errorf("front = %d, want 21", got[0].Timestamp.Second())
	}
	for _, r := range got {
		if r.Timestamp.Second() == 1 {
			t.Fatal("first appended result should have been evicted")
		}
	}
}

func TestStore_MalformedHistoryIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()

	for _, raw := range []string{"{not json", `{"right":[1]}`, `"text"`, `null`} {
		mem.Set(ctx, SessionsKey, []byte(raw))

		got, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("Load(%q) returned error: %v", raw, err)
		}
		if len(got) != 0 {
			t.Errorf("Load(%q) = %v, want empty", raw, got)
		}
	}
}

func TestStore_AppendOverMalformedHistory(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()
	mem.Set(ctx, SessionsKey, []byte("garbage"))

	if err := s.Append(ctx, result(5)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := s.Load(ctx)
	if len(got) != 1 || got[0].Timestamp.Second() != 5 {
		t.Fatalf("Load = %v, want single result 5", got)
	}
}

func TestStore_ClearThenLoad(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()
	s.Append(ctx, result(1))
	mem.Set(ctx, "theme", []byte("dark"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got, _ := s.Load(ctx)
	if len(got) != 0 {
		t.Fatalf("Load after Clear = %v, want empty", got)
	}
	if _, err := mem.Get(ctx, "theme"); err != nil {
		t.Fatalf("Clear removed unrelated key: %v", err)
	}
}

func TestStore_ResetAll(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()
	s.Append(ctx, result(1))
	mem.Set(ctx, "theme", []byte("dark"))

	for _, phrase := range []string{"", "reset", "Reset me", "reset me "} {
		if err := s.ResetAll(ctx, phrase); !errors.Is(err, ErrInvalidConfirmation) {
			t.Errorf("ResetAll(%q) err = %v, want ErrInvalidConfirmation", phrase, err)
		}
	}
	if mem.Len() != 2 {
		t.Fatalf("rejected reset changed the store: len = %d", mem.Len())
	}

	if err := s.ResetAll(ctx, "reset me"); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if mem.Len() != 0 {
		t.Fatalf("len after reset = %d, want 0", mem.Len())
	}
}

type failingKV struct{ kv.Memory }

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestStore_BackendErrorSurfaces(t *testing.T) {
	s := NewStore(&failingKV{}, zerolog.Nop())

	if _, err := s.Load(context.Background()); err == nil {
		t.Fatal("expected backend error from Load")
	}
	if err := s.Append(context.Background(), result(1)); err == nil {
		t.Fatal("expected backend error from Append")
	}
}
