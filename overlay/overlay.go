// Package overlay 维护编辑覆盖层与画布几何的同步：
// 会话开始时播种内容并套用缩放样式，每次按键后重新测量，
// 平台需要时把几何写回延迟一个调度拍。
package overlay

import "github.com/ByLCY/blocktext/field"

// 宿主按键码常量（见宿主事件原语约定）。
const (
	KeyEnter  = 13
	KeyEscape = 27
)

// Editor 是宿主提供的可编辑覆盖层元素（类 textarea）。
type Editor interface {
	SetText(s string)
	Text() string
	SetGeometry(size field.Size)
	ApplyStyle(st Style)
	// SetInvalid 同步无效样式与 ARIA 校验状态。
	SetInvalid(invalid bool)
	Focus()
	Dispose()
}

// Style 是由当前显示缩放推导出的覆盖层样式。
type Style struct {
	FontSize     float64
	LineHeight   float64
	Padding      float64
	BorderRadius float64
	FontWeight   string
	FontFamily   string
}

// Scheduler 提供一次性的延迟调度原语：回调在包围盒布局稳定后执行。
// 调度即发即弃、不可取消；回调自身负责探测销毁状态。
type Scheduler interface {
	Defer(fn func())
}

// Context 描述宿主视图环境。
type Context struct {
	// Scale 是当前视图缩放系数，用于推导覆盖层样式。
	Scale float64
	// RTL 标记从右到左的渲染上下文。
	RTL bool
	// DeferResize 标记需要把几何写回延迟一拍的平台
	// （已知的回流时序缺陷，由宿主的 UA 探测给出）。
	DeferResize bool
}

// Session 是一次编辑会话：覆盖层激活期间字段与覆盖层几何的协调者。
type Session struct {
	field   *field.Multiline
	editor  Editor
	sched   Scheduler
	metrics field.Metrics
	meas    field.Measurer
	ctx     Context

	disposed bool
}

// Start 启动编辑会话：播种当前字段值、套用缩放样式并立即执行一次
// 布局测量（RTL/回流平台上按规则延迟一拍）。
func Start(f *field.Multiline, ed Editor, sched Scheduler, m field.Metrics, meas field.Measurer, ctx Context) *Session {
	s := &Session{
		field:   f,
		editor:  ed,
		sched:   sched,
		metrics: m,
		meas:    meas,
		ctx:     ctx,
	}
	f.BeginEdit()
	ed.SetText(f.Value())
	ed.ApplyStyle(s.styleForScale())
	ed.Focus()
	s.resize()
	return s
}

// styleForScale 由显示缩放推导字号/行高/内边距/圆角。
func (s *Session) styleForScale() Style {
	scale := s.ctx.Scale
	if scale <= 0 {
		scale = 1
	}
	return Style{
		FontSize:     s.metrics.FontSize * scale,
		LineHeight:   s.metrics.LineHeight * scale,
		Padding:      s.metrics.BorderPaddingX * scale,
		BorderRadius: 4 * scale,
		FontWeight:   s.metrics.FontWeight,
		FontFamily:   s.metrics.FontFamily,
	}
}

// resize 重新测量字段包围盒并把覆盖层几何调整到一致。
// DeferResize 平台上几何写回延迟一个调度拍，回调先探测销毁状态。
func (s *Session) resize() {
	size := s.field.Resize(s.metrics, s.meas)
	apply := func() {
		if s.disposed || s.field.Disposed() {
			return
		}
		s.editor.SetGeometry(size)
	}
	if s.ctx.DeferResize && s.sched != nil {
		s.sched.Defer(apply)
		return
	}
	apply()
}

// Input 在每次按键输入后调用：覆盖层与包围盒随内容实时伸缩，
// 不做跨按键的尺寸缓存。
func (s *Session) Input(text string) {
	if s.disposed {
		return
	}
	s.editor.SetText(text)
	s.resize()
}

// HandleKey 处理编辑会话中的按键；返回是否消费。
// 回车在 closeOnEnter 时提交并结束会话，否则插入换行继续编辑；
// Escape 丢弃未提交内容并结束会话。其余按键委派给默认处理。
func (s *Session) HandleKey(code int) bool {
	if s.disposed {
		return false
	}
	switch code {
	case KeyEnter:
		if s.field.Config().CloseOnEnter {
			s.End()
			return true
		}
		s.Input(s.editor.Text() + "\n")
		return true
	case KeyEscape:
		s.editor.SetText(s.field.Value())
		s.Dispose()
		return true
	}
	return (field.Base{}).HandleKey(code)
}

// Commit 把覆盖层内容提交为字段值。校验失败时旧值保持不变，
// 覆盖层标记为无效但仍可编辑；成功则清除无效标记。
func (s *Session) Commit() error {
	err := s.field.SetValue(s.editor.Text())
	s.editor.SetInvalid(err != nil)
	if err != nil {
		return err
	}
	s.resize()
	return nil
}

// End 提交并结束会话。提交被校验器拒绝时会话保持激活，
// 用户可以继续修正输入。
func (s *Session) End() error {
	if err := s.Commit(); err != nil {
		return err
	}
	s.Dispose()
	return nil
}

// Dispose 结束会话并释放覆盖层。此后到达的延迟回调全部空转。
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.field.FinishEdit()
	s.editor.Dispose()
}

// Active 返回会话是否仍然有效。
func (s *Session) Active() bool { return !s.disposed }
