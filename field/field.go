// Package field 实现块编辑器的多行文本字段核心：字段值的唯一入口、
// 行序列推导与布局测量（显示态与编辑态）。
package field

import (
	"strings"

	"github.com/ByLCY/blocktext/textwrap"
)

// Validator 在值提交时被调用，可返回修正后的值；返回错误表示拒绝本次提交。
type Validator func(value string) (string, error)

// Base 提供宿主基础字段的默认行为。字段通过显式持有 Base 并委派调用
// 来复用这些行为，而不是依赖隐式的继承分发。
type Base struct{}

// Coerce 是默认的值规整：统一换行符为 '\n'。
func (Base) Coerce(v string) string {
	v = strings.ReplaceAll(v, "\r\n", "\n")
	return strings.ReplaceAll(v, "\r", "\n")
}

// HandleKey 是默认按键处理：不消费任何按键。
func (Base) HandleKey(code int) bool { return false }

// Multiline 是多行文本字段实例。
// 不可变配置（cfg）在构造时一次固化；rows/size/editing 组成每轮
// 渲染重建的可变状态，其中行序列从不缓存、每次推导。
type Multiline struct {
	cfg       Config
	base      Base
	validator Validator

	value    string
	size     Size
	editing  bool
	invalid  bool
	disposed bool

	// onResize 由宿主注入：包围盒更新后触发边框重定位与重绘。
	onResize func(Size)
}

// NewMultiline 用初始值、校验器与选项记录构造字段。
// 初始值经默认规整后直接写入，不触发校验（与宿主字段的构造语义一致）。
func NewMultiline(initial string, validator Validator, opts Options) *Multiline {
	f := &Multiline{
		cfg:       opts.Config(),
		validator: validator,
	}
	f.value = f.base.Coerce(initial)
	return f
}

// Config 返回构造时固化的配置。
func (f *Multiline) Config() Config { return f.cfg }

// Value 返回当前字段值。
func (f *Multiline) Value() string { return f.value }

// SetValue 是字段值的唯一更新入口：先做默认规整，再经校验器。
// 校验失败时旧值保持不变、字段标记为无效并返回错误；宿主据此更新
// 覆盖层的无效样式与 ARIA 状态，覆盖层本身保持可编辑。
func (f *Multiline) SetValue(v string) error {
	v = f.base.Coerce(v)
	if f.validator != nil {
		coerced, err := f.validator(v)
		if err != nil {
			f.invalid = true
			return err
		}
		v = coerced
	}
	f.value = v
	f.invalid = false
	return nil
}

// Invalid 返回最近一次提交是否被校验器拒绝。
func (f *Multiline) Invalid() bool { return f.invalid }

// Rows 按当前值与预算推导行序列。每次调用重建，不做跨渲染缓存。
func (f *Multiline) Rows() []string {
	return textwrap.Wrap(f.value, f.cfg.Budget)
}

// DisplayRows 返回用于渲染的行序列：空内容时以占位字形替代，
// 避免字段渲染为零尺寸。
func (f *Multiline) DisplayRows() []string {
	rows := f.Rows()
	if len(rows) == 1 && rows[0] == "" {
		return []string{NBSP}
	}
	return rows
}

// DisplayText 返回显示文本：各行按 MaxDisplayLength 截断后以 '\n' 连接；
// RTL 上下文在每行末尾附加方向控制符。
func (f *Multiline) DisplayText(rtl bool) string {
	rows := f.DisplayRows()
	out := make([]string, len(rows))
	for i, row := range rows {
		row = TruncateRunes(row, f.cfg.MaxDisplayLength)
		if rtl {
			row += RTLMark
		}
		out[i] = row
	}
	return strings.Join(out, "\n")
}

// Size 返回最近一次测量写入的包围盒。
func (f *Multiline) Size() Size { return f.size }

// Resize 重新测量包围盒并写入字段的尺寸记录，随后触发宿主的
// 边框重定位/重绘回调。编辑态下测量额外覆盖未折行原值（见 ComputeSize）。
func (f *Multiline) Resize(m Metrics, meas Measurer) Size {
	size := ComputeSize(f.DisplayRows(), m, meas, f.editing, f.value, f.cfg)
	f.size = size
	if f.onResize != nil {
		f.onResize(size)
	}
	return size
}

// SetResizeHook 注入尺寸更新后的宿主回调（边框重定位、脏标记）。
func (f *Multiline) SetResizeHook(fn func(Size)) { f.onResize = fn }

// BeginEdit 标记编辑会话开始，之后的测量进入编辑态。
func (f *Multiline) BeginEdit() { f.editing = true }

// FinishEdit 标记编辑会话结束。
func (f *Multiline) FinishEdit() { f.editing = false }

// Editing 返回编辑会话是否激活。
func (f *Multiline) Editing() bool { return f.editing }

// Dispose 标记字段已销毁；销毁后的延迟回调必须自行探测并放弃操作。
func (f *Multiline) Dispose() { f.disposed = true }

// Disposed 返回字段是否已被宿主销毁。
func (f *Multiline) Disposed() bool { return f.disposed }
