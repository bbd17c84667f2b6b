// Package reclab 是一个推荐系统离线实验工具包（Recommendation Lab）。
//
// 设计要点：
// - Dataset-first: NDJSON 分块读取（列投影 + CEL 行过滤），部分成功是一等结果
// - Metrics: precision/recall/F1@k、AP、DCG，除零守卫与无信号哨兵显式化
// - Recommend: 热度回退榜单与模型 Top-N，均可发布到 KeyValueStore 供在线消费
// - 协作方可替换: Trainset 与 RatingModel 均为窄接口，测试可用 stub 插拔
package reclab

import "github.com/rushteam/reclab/core"

// 轻量 facade：便于用户直接 import "reclab" 使用核心抽象。
type Trainset = core.Trainset
type RatingModel = core.RatingModel
type Prediction = core.Prediction
type Interaction = core.Interaction
type ScoredItem = core.ScoredItem
