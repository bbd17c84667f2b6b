package dataset

import (
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/reclab/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// row 是当前行：列名 -> 值
		cel.Variable("row", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Criteria 是行过滤器，使用 CEL (Common Expression Language) 实现。
// 表达式编译一次后可跨 chunk 复用，线程安全。
//
// 表达式语法（CEL 标准语法，变量 row 绑定当前行）：
//   - 数值：row.rating >= 4.0
//   - 字符串：row.category == "books"
//   - 逻辑：row.rating >= 4.0 && row.votes > 10.0
//   - 存在性：has(row.rating)
//
// 注意：JSON 解码后数字统一为 float64，比较时请使用浮点字面量。
type Criteria struct {
	expr string
	prg  cel.Program
}

// NewCriteria 编译一个 CEL 行过滤表达式。
// 编译失败返回 INVALID_INPUT。
func NewCriteria(expr string) (*Criteria, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeInternalError,
			"dataset: cel env: %v", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset: compile criteria %q: %v", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset: program criteria %q: %v", expr, err)
	}

	return &Criteria{expr: expr, prg: prg}, nil
}

// Apply 对一个 chunk 应用过滤，返回通过的行组成的新 Frame。
// 任一行求值失败（如访问不存在的 key）或结果不是布尔值，
// 整个 chunk 视为处理失败（由读取循环按 chunk 级错误处理）。
func (c *Criteria) Apply(chunk *Frame) (*Frame, error) {
	return chunk.Filter(func(row Row) (bool, error) {
		out, _, err := c.prg.Eval(map[string]any{"row": row})
		if err != nil {
			return false, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeInvalidInput,
				"dataset: eval criteria %q: %v", c.expr, err)
		}
		keep, ok := out.Value().(bool)
		if !ok {
			return false, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeInvalidInput,
				"dataset: criteria %q must return boolean, got %T", c.expr, out.Value())
		}
		return keep, nil
	})
}

// Expr 返回原始表达式（用于诊断）。
func (c *Criteria) Expr() string { return c.expr }
