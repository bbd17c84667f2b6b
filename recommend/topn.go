package recommend

import (
	"sort"

	"github.com/rushteam/reclab/core"
)

// TopN 基于外部评分模型生成个性化 Top-N 推荐。
// 模型是不透明的外部协作方（可能很贵）：对每个候选物品调用一次
// Predict，复杂度 O(物品数 × 预测成本)，不做缓存与批量。
type TopN struct {
	// Model 是评分预测模型，必填
	Model core.RatingModel

	// N 返回的物品数量；<= 0 时使用 DefaultTopN
	N int
}

// Recommend 返回 rawUserID 未交互过的、预测分最高的 N 个物品。
//
// 语义：
//   - 用户已评分过的物品一律排除（基于 UserRatings）
//   - 单个物品预测失败时跳过该物品，不中断整个列表
//   - 按预测分稳定降序，平分按物品首次出现顺序
func (t *TopN) Recommend(ts core.Trainset, rawUserID string) ([]core.ScoredItem, error) {
	if t.Model == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: nil model")
	}
	if ts == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: nil trainset")
	}

	innerUser, err := ts.ToInnerUserID(rawUserID)
	if err != nil {
		return nil, err
	}

	rated := make(map[int]struct{})
	for _, r := range ts.UserRatings(innerUser) {
		rated[r.ItemID] = struct{}{}
	}

	scored := make([]core.ScoredItem, 0, ts.ItemCount()-len(rated))
	for _, innerItem := range ts.AllItems() {
		if _, ok := rated[innerItem]; ok {
			continue
		}
		rawItem, err := ts.ToRawItemID(innerItem)
		if err != nil {
			return nil, err
		}
		pred, err := t.Model.Predict(rawUserID, rawItem)
		if err != nil {
			// 模型对个别物品失败不应拖垮整个列表
			continue
		}
		scored = append(scored, core.ScoredItem{ID: rawItem, Score: pred.Est})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	n := t.N
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n], nil
}
