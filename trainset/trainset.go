// Package trainset 提供 core.Trainset 的内存实现：
// 历史交互容器 + 原始 ID 与内部稠密 ID 的双向翻译表。
package trainset

import (
	"github.com/rushteam/reclab/core"
	"github.com/rushteam/reclab/dataset"
	"github.com/rushteam/reclab/pkg/conv"
)

// Trainset 是内存中的历史交互容器。
// 内部 ID 按首次出现顺序分配（0 起），保证遍历顺序确定。
// 构建完成后只读，可被多个 goroutine 并发读取。
type Trainset struct {
	ratings []core.Interaction

	rawUsers []string       // 内部用户 ID -> 原始 ID
	rawItems []string       // 内部物品 ID -> 原始 ID
	userIdx  map[string]int // 原始用户 ID -> 内部 ID
	itemIdx  map[string]int // 原始物品 ID -> 内部 ID

	userRatings map[int][]core.Interaction
}

// New 创建空的 Trainset。
func New() *Trainset {
	return &Trainset{
		userIdx:     make(map[string]int),
		itemIdx:     make(map[string]int),
		userRatings: make(map[int][]core.Interaction),
	}
}

// Add 加入一条交互记录，必要时分配内部 ID。
func (t *Trainset) Add(rawUserID, rawItemID string, rating float64) {
	uid, ok := t.userIdx[rawUserID]
	if !ok {
		uid = len(t.rawUsers)
		t.userIdx[rawUserID] = uid
		t.rawUsers = append(t.rawUsers, rawUserID)
	}
	iid, ok := t.itemIdx[rawItemID]
	if !ok {
		iid = len(t.rawItems)
		t.itemIdx[rawItemID] = iid
		t.rawItems = append(t.rawItems, rawItemID)
	}

	r := core.Interaction{UserID: uid, ItemID: iid, Rating: rating}
	t.ratings = append(t.ratings, r)
	t.userRatings[uid] = append(t.userRatings[uid], r)
}

// AllRatings 返回全部交互记录，顺序与 Add 顺序一致。
func (t *Trainset) AllRatings() []core.Interaction {
	return t.ratings
}

// AllItems 返回全部内部物品 ID，顺序与首次出现顺序一致。
func (t *Trainset) AllItems() []int {
	out := make([]int, len(t.rawItems))
	for i := range t.rawItems {
		out[i] = i
	}
	return out
}

// UserRatings 返回内部用户 ID 的交互列表；未知用户返回 nil。
func (t *Trainset) UserRatings(innerUserID int) []core.Interaction {
	return t.userRatings[innerUserID]
}

// ToRawUserID 将内部用户 ID 翻译为原始 ID。
func (t *Trainset) ToRawUserID(innerUserID int) (string, error) {
	if innerUserID < 0 || innerUserID >= len(t.rawUsers) {
		return "", core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeNotFound,
			"trainset: unknown inner user id %d", innerUserID)
	}
	return t.rawUsers[innerUserID], nil
}

// ToRawItemID 将内部物品 ID 翻译为原始 ID。
func (t *Trainset) ToRawItemID(innerItemID int) (string, error) {
	if innerItemID < 0 || innerItemID >= len(t.rawItems) {
		return "", core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeNotFound,
			"trainset: unknown inner item id %d", innerItemID)
	}
	return t.rawItems[innerItemID], nil
}

// ToInnerUserID 将原始用户 ID 翻译为内部 ID。
func (t *Trainset) ToInnerUserID(rawUserID string) (int, error) {
	uid, ok := t.userIdx[rawUserID]
	if !ok {
		return 0, core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeNotFound,
			"trainset: unknown user %q", rawUserID)
	}
	return uid, nil
}

// ToInnerItemID 将原始物品 ID 翻译为内部 ID。
func (t *Trainset) ToInnerItemID(rawItemID string) (int, error) {
	iid, ok := t.itemIdx[rawItemID]
	if !ok {
		return 0, core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeNotFound,
			"trainset: unknown item %q", rawItemID)
	}
	return iid, nil
}

// UserCount 返回用户数。
func (t *Trainset) UserCount() int { return len(t.rawUsers) }

// ItemCount 返回物品数。
func (t *Trainset) ItemCount() int { return len(t.rawItems) }

// FromFrame 从分块读取得到的 Frame 构建 Trainset。
// userCol/itemCol/ratingCol 指定三列；列不存在返回 COLUMN_NOT_FOUND；
// 某行 ID 或评分无法转换时返回 INVALID_INPUT（带行号）。
// 行顺序决定内部 ID 的分配顺序。
func FromFrame(f *dataset.Frame, userCol, itemCol, ratingCol string) (*Trainset, error) {
	for _, c := range []string{userCol, itemCol, ratingCol} {
		if !f.HasColumn(c) {
			return nil, core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeColumnNotFound,
				"trainset: column %q not found in frame", c)
		}
	}

	t := New()
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		rawUser, ok := conv.ToRawID(row[userCol])
		if !ok {
			return nil, core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeInvalidInput,
				"trainset: row %d: bad user id %v", i, row[userCol])
		}
		rawItem, ok := conv.ToRawID(row[itemCol])
		if !ok {
			return nil, core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeInvalidInput,
				"trainset: row %d: bad item id %v", i, row[itemCol])
		}
		rating, ok := conv.ToFloat64(row[ratingCol])
		if !ok {
			return nil, core.NewDomainErrorf(core.ModuleTrainset, core.ErrorCodeInvalidInput,
				"trainset: row %d: bad rating %v", i, row[ratingCol])
		}
		t.Add(rawUser, rawItem, rating)
	}
	return t, nil
}

// 确保 Trainset 实现了 core.Trainset 接口
var _ core.Trainset = (*Trainset)(nil)
