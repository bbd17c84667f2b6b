package dataset

import (
	"sort"

	"github.com/rushteam/reclab/core"
	"github.com/rushteam/reclab/pkg/conv"
)

// Row 是一行记录：列名 -> 值。值由 JSON 解码得到（数字统一为 float64）。
type Row = map[string]any

// Frame 是一张有序的列式表：保存列名的确定顺序与行的到达顺序。
// 行内缺失的列读取时返回 (nil, false)，对应 pandas outer join 的缺失值。
//
// 注意：Frame 只是 chunk 读取与拼接的承载结构，不做任何索引/类型约束，
// 列顺序规则为首次出现顺序；同一行内新出现的列按字典序补齐（map 无序）。
type Frame struct {
	cols   []string
	colSet map[string]struct{}
	rows   []Row
}

// NewFrame 创建一个 Frame，可预先声明列顺序。
func NewFrame(cols ...string) *Frame {
	f := &Frame{
		cols:   make([]string, 0, len(cols)),
		colSet: make(map[string]struct{}, len(cols)),
	}
	for _, c := range cols {
		f.addColumn(c)
	}
	return f
}

func (f *Frame) addColumn(c string) {
	if _, ok := f.colSet[c]; ok {
		return
	}
	f.colSet[c] = struct{}{}
	f.cols = append(f.cols, c)
}

// Append 追加一行，并把未见过的列并入列集合。
func (f *Frame) Append(row Row) {
	fresh := make([]string, 0, len(row))
	for c := range row {
		if _, ok := f.colSet[c]; !ok {
			fresh = append(fresh, c)
		}
	}
	sort.Strings(fresh)
	for _, c := range fresh {
		f.addColumn(c)
	}
	f.rows = append(f.rows, row)
}

// Len 返回行数。
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.rows)
}

// Columns 返回列名（首次出现顺序），返回的是副本。
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	copy(out, f.cols)
	return out
}

// HasColumn 检查列是否存在。
func (f *Frame) HasColumn(col string) bool {
	_, ok := f.colSet[col]
	return ok
}

// Row 返回第 i 行（不拷贝，调用方不应修改）。
func (f *Frame) Row(i int) Row {
	return f.rows[i]
}

// Cell 返回第 i 行 col 列的值；行内缺失时返回 (nil, false)。
func (f *Frame) Cell(i int, col string) (any, bool) {
	v, ok := f.rows[i][col]
	return v, ok
}

// Float 返回第 i 行 col 列的 float64 值。
func (f *Frame) Float(i int, col string) (float64, bool) {
	v, ok := f.rows[i][col]
	if !ok {
		return 0, false
	}
	return conv.ToFloat64(v)
}

// Int 返回第 i 行 col 列的 int 值。
func (f *Frame) Int(i int, col string) (int, bool) {
	v, ok := f.rows[i][col]
	if !ok {
		return 0, false
	}
	return conv.ToInt(v)
}

// String 返回第 i 行 col 列的 string 值。
func (f *Frame) String(i int, col string) (string, bool) {
	v, ok := f.rows[i][col]
	if !ok {
		return "", false
	}
	return conv.ToString(v)
}

// Select 返回仅保留指定列的新 Frame，行顺序不变。
// 任一请求列在本 Frame 的列集合中不存在时返回 COLUMN_NOT_FOUND，
// 不做静默丢弃；行内缺失该列仍属正常（读取为缺失值）。
func (f *Frame) Select(cols ...string) (*Frame, error) {
	for _, c := range cols {
		if !f.HasColumn(c) {
			return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeColumnNotFound,
				"dataset: column %q not found", c)
		}
	}
	out := NewFrame(cols...)
	for _, row := range f.rows {
		slim := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := row[c]; ok {
				slim[c] = v
			}
		}
		out.rows = append(out.rows, slim)
	}
	return out, nil
}

// Filter 返回谓词通过的行组成的新 Frame，行顺序不变，列集合不变。
// 谓词返回 error 时立即中止并返回该错误。
func (f *Frame) Filter(pred func(Row) (bool, error)) (*Frame, error) {
	out := NewFrame(f.cols...)
	for _, row := range f.rows {
		keep, err := pred(row)
		if err != nil {
			return nil, err
		}
		if keep {
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}

// Concat 将多个 Frame 拼接为一个：
//   - 列集合取并集（outer join），顺序为跨 Frame 的首次出现顺序
//   - 行顺序保持 Frame 到达顺序，Frame 内保持源顺序
//
// 任一 Frame 为 nil 视为结构性失败，返回 CONCAT_FAILED。
func Concat(frames []*Frame) (*Frame, error) {
	out := NewFrame()
	for i, f := range frames {
		if f == nil {
			return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeConcatFailed,
				"dataset: concat failed: frame %d is nil", i)
		}
		for _, c := range f.cols {
			out.addColumn(c)
		}
		out.rows = append(out.rows, f.rows...)
	}
	return out, nil
}
