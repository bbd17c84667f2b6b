package recommend

import (
	"context"

	"github.com/rushteam/reclab/core"
)

// PublishPopular 把热度榜单写入 KeyValueStore 的有序集合，
// 供在线侧按分数降序 ZRange 消费（热门召回的兜底数据）。
// 离线作业全量重算后整体覆盖：先删旧 key，再逐个 ZAdd。
func PublishPopular(ctx context.Context, kv core.KeyValueStore, key string, ts core.Trainset, n int) error {
	if kv == nil {
		return core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: nil store")
	}

	ranked, err := (&Popularity{N: n}).Rank(ts)
	if err != nil {
		return err
	}

	if err := kv.Delete(ctx, key); err != nil {
		return err
	}
	for _, it := range ranked {
		if err := kv.ZAdd(ctx, key, it.Score, it.ID); err != nil {
			return err
		}
	}
	return nil
}
