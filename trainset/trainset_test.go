package trainset

import (
	"reflect"
	"testing"

	"github.com/rushteam/reclab/core"
	"github.com/rushteam/reclab/dataset"
)

func TestTrainset_IDMapping(t *testing.T) {
	ts := New()
	ts.Add("u1", "m10", 5)
	ts.Add("u2", "m20", 3)
	ts.Add("u1", "m20", 4)

	if ts.UserCount() != 2 || ts.ItemCount() != 2 {
		t.Fatalf("UserCount/ItemCount = %d/%d, want 2/2", ts.UserCount(), ts.ItemCount())
	}

	// 内部 ID 按首次出现顺序分配
	uid, err := ts.ToInnerUserID("u1")
	if err != nil || uid != 0 {
		t.Errorf("ToInnerUserID(u1) = %d/%v, want 0/nil", uid, err)
	}
	raw, err := ts.ToRawItemID(1)
	if err != nil || raw != "m20" {
		t.Errorf("ToRawItemID(1) = %q/%v, want m20/nil", raw, err)
	}

	if _, err := ts.ToInnerItemID("missing"); !core.IsNotFound(err) {
		t.Errorf("unknown raw item: got %v, want NOT_FOUND", err)
	}
	if _, err := ts.ToRawUserID(99); !core.IsNotFound(err) {
		t.Errorf("unknown inner user: got %v, want NOT_FOUND", err)
	}
}

func TestTrainset_Enumeration(t *testing.T) {
	ts := New()
	ts.Add("u1", "m10", 5)
	ts.Add("u1", "m20", 4)
	ts.Add("u2", "m10", 2)

	all := ts.AllRatings()
	if len(all) != 3 {
		t.Fatalf("AllRatings() len = %d, want 3", len(all))
	}
	// 交互顺序与 Add 顺序一致
	if all[0].Rating != 5 || all[2].Rating != 2 {
		t.Errorf("ratings out of order: %+v", all)
	}

	if got, want := ts.AllItems(), []int{0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllItems() = %v, want %v", got, want)
	}

	ur := ts.UserRatings(0)
	if len(ur) != 2 {
		t.Fatalf("UserRatings(0) len = %d, want 2", len(ur))
	}
	if ur[0].ItemID != 0 || ur[1].ItemID != 1 {
		t.Errorf("user ratings out of order: %+v", ur)
	}
	if ts.UserRatings(5) != nil {
		t.Errorf("unknown user should have nil ratings")
	}
}

func TestFromFrame(t *testing.T) {
	f := dataset.NewFrame()
	f.Append(dataset.Row{"user_id": "u1", "movie_id": 10.0, "rating": 5.0})
	f.Append(dataset.Row{"user_id": "u2", "movie_id": 20.0, "rating": 3.5})

	ts, err := FromFrame(f, "user_id", "movie_id", "rating")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.UserCount() != 2 || ts.ItemCount() != 2 {
		t.Fatalf("UserCount/ItemCount = %d/%d, want 2/2", ts.UserCount(), ts.ItemCount())
	}

	// JSON 数字 ID 规范化为十进制字符串
	raw, err := ts.ToRawItemID(0)
	if err != nil || raw != "10" {
		t.Errorf("ToRawItemID(0) = %q/%v, want 10/nil", raw, err)
	}
	if ts.AllRatings()[1].Rating != 3.5 {
		t.Errorf("rating = %v, want 3.5", ts.AllRatings()[1].Rating)
	}
}

func TestFromFrame_Errors(t *testing.T) {
	f := dataset.NewFrame()
	f.Append(dataset.Row{"user_id": "u1", "rating": "bad"})

	if _, err := FromFrame(f, "user_id", "missing", "rating"); !core.IsColumnNotFound(err) {
		t.Errorf("missing column: got %v, want COLUMN_NOT_FOUND", err)
	}

	f2 := dataset.NewFrame()
	f2.Append(dataset.Row{"user_id": "u1", "item_id": "i1", "rating": "bad"})
	if _, err := FromFrame(f2, "user_id", "item_id", "rating"); !core.IsInvalidInput(err) {
		t.Errorf("bad rating: got %v, want INVALID_INPUT", err)
	}
}
