package core

// Interaction 是一条用户-物品-评分交互记录，使用内部稠密 ID。
// 内部 ID 由 Trainset 按首次出现顺序分配，对外输出前需翻译回原始 ID。
type Interaction struct {
	UserID int     // 内部用户 ID
	ItemID int     // 内部物品 ID
	Rating float64 // 评分（业务自定义范围，例如 1-5）
}

// ScoredItem 是带预测分数的推荐结果，ID 为原始物品 ID。
type ScoredItem struct {
	ID    string  // 原始物品 ID
	Score float64 // 预测分数 / 热度分数
}

// Trainset 是历史交互容器的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（trainset）实现
//   - 遵循依赖倒置原则：推荐器只依赖能力接口，测试可用 stub 替换
//
// 能力：
//   - 枚举全部交互 / 全部物品
//   - 内部 ID 与原始 ID 双向翻译（用户、物品）
//   - 按内部用户 ID 返回该用户的交互列表
type Trainset interface {
	// AllRatings 返回全部交互记录（内部 ID），顺序与加入顺序一致
	AllRatings() []Interaction

	// AllItems 返回全部内部物品 ID，顺序与首次出现顺序一致
	AllItems() []int

	// UserRatings 返回内部用户 ID 对应的交互列表
	UserRatings(innerUserID int) []Interaction

	// ToRawUserID / ToRawItemID 将内部 ID 翻译为原始 ID
	ToRawUserID(innerUserID int) (string, error)
	ToRawItemID(innerItemID int) (string, error)

	// ToInnerUserID / ToInnerItemID 将原始 ID 翻译为内部 ID
	ToInnerUserID(rawUserID string) (int, error)
	ToInnerItemID(rawItemID string) (int, error)

	// UserCount / ItemCount 返回用户数 / 物品数
	UserCount() int
	ItemCount() int
}

// Prediction 是评分模型的单次预测结果。
type Prediction struct {
	Est float64 // 预测评分
}

// RatingModel 是评分预测模型的最小抽象：输入原始用户/物品 ID，输出预测评分。
// 具体实现可以是本地模型（MF/KNN）或远程推理服务，本仓库不实现训练。
type RatingModel interface {
	Name() string
	Predict(rawUserID, rawItemID string) (Prediction, error)
}
