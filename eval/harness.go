// Package eval 提供离线评测编排：对一批用户并发生成推荐列表，
// 与 ground-truth 对比计算指标，并聚合为均值摘要。
package eval

import (
	"context"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/reclab/core"
	"github.com/rushteam/reclab/metrics"
)

// Recommender 为单个用户生成有序推荐列表（原始物品 ID）。
type Recommender func(ts core.Trainset, rawUserID string) ([]string, error)

// Harness 是离线评测编排器：按用户并发 fan-out，失败用户跳过不中断。
type Harness struct {
	// Recommender 推荐列表生成函数，必填
	Recommender Recommender

	// Truth 每个用户的相关物品集合（原始 ID）
	Truth map[string][]string

	// MaxConcurrent 最大并发数（0 表示无限制）
	MaxConcurrent int
}

// Summary 是一轮评测的聚合结果，均值四舍五入到 3 位小数。
// F1 落在无信号哨兵上的用户按 0 计入均值。
type Summary struct {
	Users   int // 成功评测的用户数
	Skipped int // 因推荐失败或空输入守卫而跳过的用户数

	MeanPrecision float64
	MeanRecall    float64
	MeanF1        float64
	MAP           float64 // AveragePrecision 的均值
	MeanDCG       float64
}

// Run 对 Truth 中的每个用户执行一次推荐+评测。
// 单个用户的推荐错误或指标守卫错误只影响该用户（计入 Skipped）；
// 没有任何用户成功时返回 INVALID_INPUT。
func (h *Harness) Run(ctx context.Context, ts core.Trainset) (*Summary, error) {
	if h.Recommender == nil {
		return nil, core.NewDomainError(core.ModuleEval, core.ErrorCodeInvalidInput,
			"eval: nil recommender")
	}
	if len(h.Truth) == 0 {
		return nil, core.NewDomainError(core.ModuleEval, core.ErrorCodeInvalidInput,
			"eval: empty ground truth")
	}

	// 固定遍历顺序，方便诊断与复现
	users := make([]string, 0, len(h.Truth))
	for u := range h.Truth {
		users = append(users, u)
	}
	sort.Strings(users)

	var (
		mu      sync.Mutex
		summary Summary
		eg, _   = errgroup.WithContext(ctx)
	)

	// 限流：使用 semaphore 控制并发数；<= 0 统一视为无限制
	limit := h.MaxConcurrent
	if limit < 0 {
		limit = 0
	}
	sem := make(chan struct{}, limit)
	if limit == 0 {
		close(sem) // 无限制时直接关闭，避免阻塞
	}

	for _, user := range users {
		u := user
		truth := h.Truth[u]

		eg.Go(func() error {
			if limit > 0 {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			recs, err := h.Recommender(ts, u)
			if err != nil {
				mu.Lock()
				summary.Skipped++
				mu.Unlock()
				return nil
			}

			report, err := metrics.Evaluate(recs, truth)
			if err != nil {
				// 空输入守卫（DIVISION_BY_ZERO）只跳过该用户
				mu.Lock()
				summary.Skipped++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			summary.Users++
			summary.MeanPrecision += report.Precision
			summary.MeanRecall += report.Recall
			summary.MeanF1 += report.F1
			summary.MAP += report.AP
			summary.MeanDCG += report.DCG
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if summary.Users == 0 {
		return nil, core.NewDomainError(core.ModuleEval, core.ErrorCodeInvalidInput,
			"eval: no user could be evaluated")
	}

	n := float64(summary.Users)
	summary.MeanPrecision = round3(summary.MeanPrecision / n)
	summary.MeanRecall = round3(summary.MeanRecall / n)
	summary.MeanF1 = round3(summary.MeanF1 / n)
	summary.MAP = round3(summary.MAP / n)
	summary.MeanDCG = round3(summary.MeanDCG / n)
	return &summary, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
