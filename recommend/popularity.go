// Package recommend 提供两种推荐列表生成器：
//   - Popularity：全局热度回退推荐（冷启动/兜底）
//   - TopN：基于外部评分模型的个性化 Top-N 推荐
package recommend

import (
	"sort"

	"github.com/rushteam/reclab/core"
)

// DefaultTopN 是缺省的推荐列表长度。
const DefaultTopN = 10

// 热度加权：评分质量权重 2，交互量权重 1。
// 固定设计常数，倾向“评价好”的物品而不是单纯“量大”的物品。
const (
	avgRatingWeight = 2.0
	countWeight     = 1.0
)

// Popularity 是基于全局热度的回退推荐器。
// 每次调用全量重算（无增量更新、无持久化），适合离线作业。
type Popularity struct {
	// N 返回的物品数量；<= 0 时使用 DefaultTopN
	N int
}

type itemStat struct {
	innerID int
	count   int
	avg     float64
}

// Recommend 返回热度最高的 N 个原始物品 ID。
//
// 算法：
//  1. 单遍扫描全部交互，对每个物品增量维护评分均值：
//     avg = (avg*count + rating) / (count+1)
//  2. 热度分 = 2*avg + 1*count
//  3. 按热度分稳定降序，平分按首次出现顺序
//  4. 内部 ID 翻译回原始 ID
func (p *Popularity) Recommend(ts core.Trainset) ([]string, error) {
	ranked, err := p.Rank(ts)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, it.ID)
	}
	return out, nil
}

// Rank 与 Recommend 相同，但保留每个物品的热度分
// （用于发布到 KeyValueStore 的有序集合）。
func (p *Popularity) Rank(ts core.Trainset) ([]core.ScoredItem, error) {
	if ts == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: nil trainset")
	}

	stats := make(map[int]*itemStat)
	order := make([]*itemStat, 0)

	for _, r := range ts.AllRatings() {
		st, ok := stats[r.ItemID]
		if !ok {
			st = &itemStat{innerID: r.ItemID}
			stats[r.ItemID] = st
			order = append(order, st)
		}
		// 增量均值，避免二次扫描
		st.avg = (st.avg*float64(st.count) + r.Rating) / float64(st.count+1)
		st.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return score(order[i]) > score(order[j])
	})

	n := p.N
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(order) {
		n = len(order)
	}

	out := make([]core.ScoredItem, 0, n)
	for _, st := range order[:n] {
		rawID, err := ts.ToRawItemID(st.innerID)
		if err != nil {
			return nil, err
		}
		out = append(out, core.ScoredItem{ID: rawID, Score: score(st)})
	}
	return out, nil
}

func score(st *itemStat) float64 {
	return avgRatingWeight*st.avg + countWeight*float64(st.count)
}
