package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/reclab/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); !core.IsNotFound(err) {
		t.Errorf("missing key: got %v, want NOT_FOUND", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = %q/%v, want v/nil", got, err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsNotFound(err) {
		t.Errorf("deleted key: got %v, want NOT_FOUND", err)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.ZAdd(ctx, "rank", 1.0, "c")
	m.ZAdd(ctx, "rank", 3.0, "a")
	m.ZAdd(ctx, "rank", 2.0, "b")

	members, err := m.ZRange(ctx, "rank", 0, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(members, want) {
		t.Errorf("ZRange() = %v, want %v", members, want)
	}

	top, _ := m.ZRange(ctx, "rank", 0, 1)
	if want := []string{"a", "b"}; !reflect.DeepEqual(top, want) {
		t.Errorf("ZRange(0,1) = %v, want %v", top, want)
	}

	// 更新分数
	m.ZAdd(ctx, "rank", 9.0, "c")
	members, _ = m.ZRange(ctx, "rank", 0, 0)
	if len(members) != 1 || members[0] != "c" {
		t.Errorf("after update, top = %v, want [c]", members)
	}

	score, err := m.ZScore(ctx, "rank", "c")
	if err != nil || score != 9.0 {
		t.Errorf("ZScore(c) = %v/%v, want 9.0/nil", score, err)
	}
	if _, err := m.ZScore(ctx, "rank", "ghost"); !core.IsNotFound(err) {
		t.Errorf("missing member: got %v, want NOT_FOUND", err)
	}
}

func TestMemoryStore_ZSet_NegativeIndexes(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.ZAdd(ctx, "rank", 3.0, "a")
	m.ZAdd(ctx, "rank", 2.0, "b")
	m.ZAdd(ctx, "rank", 1.0, "c")

	cases := []struct {
		name  string
		start int64
		stop  int64
		want  []string
	}{
		{"drop last", 0, -2, []string{"a", "b"}},
		{"last two", -2, -1, []string{"b", "c"}},
		{"start before head", -10, 0, []string{"a"}},
		{"stop before head", 0, -10, nil},
		{"start past tail", 5, -1, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := m.ZRange(ctx, "rank", c.start, c.stop)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("ZRange(%d,%d) = %v, want %v", c.start, c.stop, got, c.want)
			}
		})
	}
}

func TestMemoryStore_ZSet_StableTies(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.ZAdd(ctx, "rank", 5.0, "first")
	m.ZAdd(ctx, "rank", 5.0, "second")

	members, _ := m.ZRange(ctx, "rank", 0, -1)
	if want := []string{"first", "second"}; !reflect.DeepEqual(members, want) {
		t.Errorf("tie order = %v, want %v", members, want)
	}
}

func TestMemoryStore_DeleteClearsZSet(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.ZAdd(ctx, "rank", 1.0, "a")
	m.Delete(ctx, "rank")

	members, err := m.ZRange(ctx, "rank", 0, -1)
	if err != nil || members != nil {
		t.Errorf("ZRange after delete = %v/%v, want nil/nil", members, err)
	}
}
