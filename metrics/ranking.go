// Package metrics 提供排序评测指标：precision@k / recall@k / F1@k /
// average precision / DCG@k。
//
// 约定：
//   - recommendations 是有序推荐列表（rank 0 为最高位），长度即 k
//   - groundTruth 是相关物品集合（无序，重复项按集合语义折叠）
//   - 所有分数四舍五入到 3 位小数，保证可复现的对比
//   - 空输入的除零由调用方守卫：违反时返回 DIVISION_BY_ZERO 错误而非静默 0
package metrics

import (
	"math"

	"github.com/rushteam/reclab/core"
)

// Metrics 错误定义（使用统一的 DomainError）
var (
	// ErrEmptyInput 表示输入为空导致除零，调用方应在调用前守卫
	ErrEmptyInput = core.NewDomainError(core.ModuleMetrics, core.ErrorCodeDivisionByZero,
		"metrics: empty input, division by zero")

	// ErrNoSignal 是 F1 的无信号哨兵：precision 与 recall 同时为 0。
	// 与通过调和平均计算得到的数值 0 区分开。
	ErrNoSignal = core.NewDomainError(core.ModuleMetrics, core.ErrorCodeNoSignal,
		"metrics: precision and recall are both zero")
)

// PrecisionAtK 计算 precision@k：|recs ∩ truth| / |recs|。
// recommendations 为空时返回 ErrEmptyInput。
func PrecisionAtK(recommendations, groundTruth []string) (float64, error) {
	if len(recommendations) == 0 {
		return 0, ErrEmptyInput
	}
	hits := intersectCount(recommendations, groundTruth)
	return round3(float64(hits) / float64(len(recommendations))), nil
}

// RecallAtK 计算 recall@k：|recs ∩ truth| / |truth|。
// groundTruth 为空时返回 ErrEmptyInput。
func RecallAtK(recommendations, groundTruth []string) (float64, error) {
	if len(groundTruth) == 0 {
		return 0, ErrEmptyInput
	}
	hits := intersectCount(recommendations, groundTruth)
	return round3(float64(hits) / float64(len(groundTruth))), nil
}

// F1AtK 计算 precision 与 recall 的调和平均。
// 两者同时为 0 时返回 (0, ErrNoSignal)，区别于计算得到的数值 0；
// 空输入守卫错误原样透传。
func F1AtK(recommendations, groundTruth []string) (float64, error) {
	precision, err := PrecisionAtK(recommendations, groundTruth)
	if err != nil {
		return 0, err
	}
	recall, err := RecallAtK(recommendations, groundTruth)
	if err != nil {
		return 0, err
	}
	if precision+recall == 0 {
		return 0, ErrNoSignal
	}
	return round3(2 * precision * recall / (precision + recall)), nil
}

// AveragePrecision 计算 AP@k（k 即推荐列表长度）。
// 对每个命中的 rank i（0 起），累加 (已命中数)/(i+1)；
// 最终除以列表中命中的相关物品数（不是 |truth|）。
// 列表中没有任何相关物品时返回 0.0。
func AveragePrecision(recommendations, groundTruth []string) (float64, error) {
	truth := toSet(groundTruth)

	relevant := 0
	precisionSum := 0.0
	for i, item := range recommendations {
		if _, ok := truth[item]; ok {
			relevant++
			precisionSum += float64(relevant) / float64(i+1)
		}
	}

	if relevant == 0 {
		return 0.0, nil
	}
	return round3(precisionSum / float64(relevant)), nil
}

// DCGAtK 计算二值相关性的 DCG@k：rel_i / log2(i+2)（i 为 0 起的 rank）。
// 不做理想 DCG 归一化（是 DCG 不是 NDCG），结果不保证落在 [0,1]。
func DCGAtK(recommendations, groundTruth []string) (float64, error) {
	truth := toSet(groundTruth)

	dcg := 0.0
	for i, item := range recommendations {
		if _, ok := truth[item]; ok {
			dcg += 1.0 / math.Log2(float64(i)+2.0)
		}
	}
	return round3(dcg), nil
}

// Report 是一次完整评测的结果。
// NoSignal 为 true 表示 F1 落在无信号哨兵上（此时 F1 为 0）。
type Report struct {
	Precision float64
	Recall    float64
	F1        float64
	AP        float64
	DCG       float64
	NoSignal  bool
}

// Evaluate 一次性计算全部五个指标。
// 空输入守卫错误（DIVISION_BY_ZERO）原样返回；F1 的无信号哨兵
// 不作为错误，落在 Report.NoSignal 上。
func Evaluate(recommendations, groundTruth []string) (*Report, error) {
	report := &Report{}
	var err error

	if report.Precision, err = PrecisionAtK(recommendations, groundTruth); err != nil {
		return nil, err
	}
	if report.Recall, err = RecallAtK(recommendations, groundTruth); err != nil {
		return nil, err
	}
	report.F1, err = F1AtK(recommendations, groundTruth)
	if err != nil {
		if !core.IsNoSignal(err) {
			return nil, err
		}
		report.NoSignal = true
	}
	if report.AP, err = AveragePrecision(recommendations, groundTruth); err != nil {
		return nil, err
	}
	if report.DCG, err = DCGAtK(recommendations, groundTruth); err != nil {
		return nil, err
	}
	return report, nil
}

// intersectCount 返回两个列表按集合语义的交集大小。
func intersectCount(a, b []string) int {
	bset := toSet(b)
	seen := make(map[string]struct{}, len(a))
	hits := 0
	for _, item := range a {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		if _, ok := bset[item]; ok {
			hits++
		}
	}
	return hits
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// round3 四舍五入到 3 位小数。
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
