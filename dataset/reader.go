package dataset

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/rushteam/reclab/core"
)

// DefaultChunkSize 是单个 chunk 的默认行数。
const DefaultChunkSize = 500000

// CriteriaFunc 是 chunk 级行过滤函数：输入一个 chunk，输出过滤后的 chunk。
// 返回 error 时该 chunk 视为处理失败。
type CriteriaFunc func(*Frame) (*Frame, error)

// ChunkedReader 分块读取 line-delimited JSON（NDJSON）数据源，
// 支持列投影与行过滤，最终把所有存活 chunk 拼接为一个 Frame。
//
// 失败处理分三层（部分成功是一等结果，不是错误路径）：
//  1. 打开/解析初始化失败：返回 SOURCE_UNREADABLE，无任何结果
//  2. 单个 chunk 处理失败：中止读取循环，保留之前累积的 chunk，
//     失败原因记录在 ReadResult.ChunkErr（不作为函数错误返回）
//  3. 拼接失败：返回 CONCAT_FAILED，丢弃全部结果
//
// 零个 chunk 被累积属于正常终态（EmptySource）：Frame 为 nil，error 为 nil。
type ChunkedReader struct {
	cols       []string
	chunkSize  int
	maxChunks  int
	criteria   CriteriaFunc
	filterExpr string
}

// Option 配置 ChunkedReader。
type Option func(*ChunkedReader)

// WithColumns 设置列投影；缺省读取全部列。
// 任一列在某个 chunk 中不存在时，该 chunk 处理失败（COLUMN_NOT_FOUND）。
func WithColumns(cols ...string) Option {
	return func(r *ChunkedReader) { r.cols = cols }
}

// WithChunkSize 设置单个 chunk 的行数，缺省 DefaultChunkSize。
func WithChunkSize(n int) Option {
	return func(r *ChunkedReader) {
		if n > 0 {
			r.chunkSize = n
		}
	}
}

// WithMaxChunks 设置最多读取的 chunk 数；-1（缺省）表示读到源结束。
func WithMaxChunks(n int) Option {
	return func(r *ChunkedReader) { r.maxChunks = n }
}

// WithCriteria 设置 chunk 级行过滤函数。
func WithCriteria(fn CriteriaFunc) Option {
	return func(r *ChunkedReader) { r.criteria = fn }
}

// WithFilterExpr 设置 CEL 行过滤表达式（见 Criteria）。
// 与 WithCriteria 同时设置时，先应用 WithCriteria 再应用表达式。
func WithFilterExpr(expr string) Option {
	return func(r *ChunkedReader) { r.filterExpr = expr }
}

// NewChunkedReader 创建一个 ChunkedReader。
func NewChunkedReader(opts ...Option) *ChunkedReader {
	r := &ChunkedReader{
		chunkSize: DefaultChunkSize,
		maxChunks: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadResult 是一次分块读取的结果。
// Frame 为 nil 且 ChunkErr 为 nil 表示空源（非错误）；
// ChunkErr 非 nil 表示循环被某个 chunk 的处理错误中止，
// Frame 仍然包含之前成功累积的 chunk（可能为 nil）。
type ReadResult struct {
	Frame       *Frame // 拼接后的结果表，可能为 nil
	ChunksRead  int    // 成功处理的 chunk 数
	ChunkErr    error  // 中止循环的 chunk 错误，nil 表示正常结束
	FailedChunk int    // 失败 chunk 的序号（1 起），0 表示无
}

// Empty 报告是否为空源终态：没有任何 chunk 被累积，且没有发生错误。
func (r *ReadResult) Empty() bool {
	return r.ChunksRead == 0 && r.ChunkErr == nil
}

// Partial 报告结果是否因 chunk 错误而不完整。
func (r *ReadResult) Partial() bool {
	return r.ChunkErr != nil
}

// Read 打开 path 并分块读取。
// 打开失败返回 SOURCE_UNREADABLE；句柄在所有退出路径上释放。
func (r *ChunkedReader) Read(ctx context.Context, path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeSourceUnreadable,
			"dataset: open %s: %v", path, err)
	}
	defer f.Close()
	return r.ReadFrom(ctx, f)
}

// ReadFrom 从 src 分块读取。语义与 Read 一致，便于测试与非文件源。
func (r *ChunkedReader) ReadFrom(ctx context.Context, src io.Reader) (*ReadResult, error) {
	crit, err := r.buildCriteria()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(src))
	res := &ReadResult{}
	var chunks []*Frame
	firstRowSeen := false

	// nr 从 maxChunks 递减到 0；-1 表示不限（递减为负数，循环由 EOF 终止）
	for nr := r.maxChunks; nr != 0; nr-- {
		// chunk 之间检查取消；取消按 chunk 错误处理，保留已累积结果
		if err := ctx.Err(); err != nil {
			res.ChunkErr = err
			res.FailedChunk = res.ChunksRead + 1
			break
		}

		chunk, eof, derr := decodeChunk(dec, r.chunkSize)
		if derr != nil {
			if !firstRowSeen && chunk.Len() == 0 {
				// 第一行就无法解析：数据源不是合法的 NDJSON
				return nil, core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeSourceUnreadable,
					"dataset: not line-delimited json: %v", derr)
			}
			// 流中途损坏：当前 chunk 丢弃，保留之前的
			res.ChunkErr = core.NewDomainErrorf(core.ModuleDataset, core.ErrorCodeInvalidInput,
				"dataset: decode chunk %d: %v", res.ChunksRead+1, derr)
			res.FailedChunk = res.ChunksRead + 1
			break
		}
		if chunk.Len() == 0 {
			break // 源已耗尽
		}
		firstRowSeen = true

		processed, perr := r.process(chunk, crit)
		if perr != nil {
			res.ChunkErr = perr
			res.FailedChunk = res.ChunksRead + 1
			break
		}

		chunks = append(chunks, processed)
		res.ChunksRead++

		if eof {
			break
		}
	}

	if len(chunks) == 0 {
		return res, nil
	}

	frame, cerr := Concat(chunks)
	if cerr != nil {
		return nil, cerr
	}
	res.Frame = frame
	return res, nil
}

// buildCriteria 组合 Go 谓词与 CEL 表达式为一个 CriteriaFunc。
func (r *ChunkedReader) buildCriteria() (CriteriaFunc, error) {
	crit := r.criteria
	if r.filterExpr == "" {
		return crit, nil
	}
	compiled, err := NewCriteria(r.filterExpr)
	if err != nil {
		return nil, err
	}
	if crit == nil {
		return compiled.Apply, nil
	}
	first := crit
	return func(chunk *Frame) (*Frame, error) {
		out, err := first(chunk)
		if err != nil {
			return nil, err
		}
		return compiled.Apply(out)
	}, nil
}

// process 对单个 chunk 依次应用列投影与行过滤。
func (r *ChunkedReader) process(chunk *Frame, crit CriteriaFunc) (*Frame, error) {
	out := chunk
	if len(r.cols) > 0 {
		selected, err := out.Select(r.cols...)
		if err != nil {
			return nil, err
		}
		out = selected
	}
	if crit != nil {
		filtered, err := crit(out)
		if err != nil {
			return nil, err
		}
		out = filtered
	}
	return out, nil
}

// decodeChunk 从 dec 解码最多 size 行。
// 返回 (chunk, 是否到达源末尾, 解码错误)；io.EOF 不作为错误返回。
func decodeChunk(dec *json.Decoder, size int) (*Frame, bool, error) {
	chunk := NewFrame()
	for i := 0; i < size; i++ {
		var row Row
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return chunk, true, nil
			}
			return chunk, false, err
		}
		chunk.Append(row)
	}
	return chunk, false, nil
}
