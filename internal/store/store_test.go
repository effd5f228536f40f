package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "prepdesk.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	if _, ok, err := st.Get(KeyGoals); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.Set(KeyGoals, `[1]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(KeyGoals, `[2]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := st.Get(KeyGoals)
	if err != nil || !ok || v != `[2]` {
		t.Fatalf("unexpected value %q ok=%v err=%v", v, ok, err)
	}
	if _, ok, err := st.UpdatedAt(KeyGoals); err != nil || !ok {
		t.Fatalf("expected updated_at, got ok=%v err=%v", ok, err)
	}
	if err := Clear(st, KeyGoals); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := st.Get(KeyGoals); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestReadJSONCorruption(t *testing.T) {
	st := NewMemory()
	var out []int
	if err := ReadJSON(st, KeyAttempts, &out); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	_ = st.Set(KeyAttempts, "{not json")
	err := ReadJSON(st, KeyAttempts, &out)
	var corrupt *CorruptionError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptionError, got %v", err)
	}
	if corrupt.Key != KeyAttempts {
		t.Fatalf("unexpected key %q", corrupt.Key)
	}
}

func TestWriteJSONPropagatesFailure(t *testing.T) {
	st := NewMemory()
	st.FailWrites = errors.New("quota exceeded")
	if err := WriteJSON(st, KeyGoals, []int{1}); err == nil {
		t.Fatalf("expected write failure")
	}
	if len(st.Keys()) != 0 {
		t.Fatalf("expected nothing stored, got %v", st.Keys())
	}
}
