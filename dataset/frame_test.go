package dataset

import (
	"reflect"
	"testing"

	"github.com/rushteam/reclab/core"
)

func TestFrameAppend_ColumnUnion(t *testing.T) {
	f := NewFrame()
	f.Append(Row{"a": 1.0, "b": 2.0})
	f.Append(Row{"b": 3.0, "c": 4.0})

	if got, want := f.Columns(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}

	// 第二行没有 a 列，读取为缺失值
	if _, ok := f.Cell(1, "a"); ok {
		t.Errorf("Cell(1, a) should be missing")
	}
	if v, ok := f.Float(1, "c"); !ok || v != 4.0 {
		t.Errorf("Float(1, c) = %v/%v, want 4.0/true", v, ok)
	}
}

func TestFrameSelect(t *testing.T) {
	f := NewFrame()
	f.Append(Row{"user": "u1", "item": "i1", "rating": 5.0, "text": "great"})
	f.Append(Row{"user": "u2", "item": "i2", "rating": 2.0, "text": "meh"})

	slim, err := f.Select("user", "rating")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := slim.Columns(), []string{"user", "rating"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if slim.Len() != 2 {
		t.Errorf("Len() = %d, want 2", slim.Len())
	}
	if _, ok := slim.Cell(0, "text"); ok {
		t.Errorf("projected frame should not keep dropped column")
	}
	if v, _ := slim.String(1, "user"); v != "u2" {
		t.Errorf("row order not preserved: got %q", v)
	}
}

func TestFrameSelect_ColumnNotFound(t *testing.T) {
	f := NewFrame()
	f.Append(Row{"user": "u1"})

	_, err := f.Select("user", "missing")
	if !core.IsColumnNotFound(err) {
		t.Fatalf("expected COLUMN_NOT_FOUND, got %v", err)
	}
}

func TestFrameFilter(t *testing.T) {
	f := NewFrame()
	f.Append(Row{"rating": 5.0})
	f.Append(Row{"rating": 2.0})
	f.Append(Row{"rating": 4.0})

	kept, err := f.Filter(func(row Row) (bool, error) {
		v, _ := row["rating"].(float64)
		return v >= 4.0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kept.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", kept.Len())
	}
	// 顺序不变：5.0 在前，4.0 在后
	if v, _ := kept.Float(0, "rating"); v != 5.0 {
		t.Errorf("row 0 rating = %v, want 5.0", v)
	}
	if v, _ := kept.Float(1, "rating"); v != 4.0 {
		t.Errorf("row 1 rating = %v, want 4.0", v)
	}
}

func TestConcat(t *testing.T) {
	f1 := NewFrame()
	f1.Append(Row{"a": 1.0})
	f1.Append(Row{"a": 2.0})
	f2 := NewFrame()
	f2.Append(Row{"a": 3.0, "b": "x"})

	out, err := Concat([]*Frame{f1, f2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.Columns(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if out.Len() != 3 {
		t.Errorf("Len() = %d, want 3", out.Len())
	}
	if v, _ := out.Float(2, "a"); v != 3.0 {
		t.Errorf("chunk arrival order not preserved")
	}
}

func TestConcat_NilFrame(t *testing.T) {
	_, err := Concat([]*Frame{NewFrame(), nil})
	if !core.IsConcatFailed(err) {
		t.Fatalf("expected CONCAT_FAILED, got %v", err)
	}
}
