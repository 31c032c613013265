package field

import (
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/blocktext/textwrap"
)

// NBSP 是空内容时的占位字形，保证字段渲染后仍有可见尺寸。
const NBSP = " "

// RTLMark 是 RTL 上下文中附加在每行末尾的方向控制符。
const RTLMark = "‏"

// Size 是一次布局测量得到的包围盒，单位与宿主度量一致（mm）。
// 它只是渲染产物，每轮测量整体覆盖，不参与字段值的持久化。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Metrics 是宿主提供的字体与装饰常量。
type Metrics struct {
	LineHeight     float64 // 单行字形高度
	RowPadding     float64 // 相邻行间距
	BaselineOffset float64 // 行顶到基线的偏移
	BorderPaddingX float64 // 装饰边框水平内边距
	BorderPaddingY float64 // 装饰边框垂直内边距
	Bordered       bool    // 是否存在装饰边框盒
	FontSize       float64
	FontWeight     string
	FontFamily     string
}

// Measurer 是宿主文本测量原语。
// TextWidth 测量一条已挂接渲染树的文本行；
// FastTextWidth 用脱离渲染树、可复用的探针按显式字体参数测量。
type Measurer interface {
	TextWidth(s string) float64
	FastTextWidth(s string, size float64, weight, family string) float64
}

// ComputeSize 按显示行计算包围盒；editing 为真时额外按 raw（未折行原值）
// 以相同预算重新折行、按 MaxDisplayLength 截断后快速测量，取两者宽度最大值，
// 保证编辑态的包围盒不小于实时编辑器所需。
func ComputeSize(rows []string, m Metrics, meas Measurer, editing bool, raw string, cfg Config) Size {
	n := len(rows)
	height := float64(n) * m.LineHeight
	if n > 1 {
		height += float64(n-1) * m.RowPadding
	}

	width := 0.0
	for _, row := range rows {
		if w := attachedWidth(row, m, meas); w > width {
			width = w
		}
	}

	if editing {
		for _, row := range textwrap.Wrap(raw, cfg.Budget) {
			row = TruncateRunes(row, cfg.MaxDisplayLength)
			if w := fastWidth(row, m, meas); w > width {
				width = w
			}
		}
	}

	if m.Bordered {
		width += 2 * m.BorderPaddingX
		height += 2 * m.BorderPaddingY
	}
	return Size{Width: width, Height: height}
}

// TruncateRunes 按字符数截断，保证编辑态测量不被极端长行拖垮。
func TruncateRunes(s string, max int) string {
	if max < 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func attachedWidth(s string, m Metrics, meas Measurer) float64 {
	if meas == nil {
		return estimateWidth(s, m.FontSize)
	}
	return meas.TextWidth(s)
}

func fastWidth(s string, m Metrics, meas Measurer) float64 {
	if meas == nil {
		return estimateWidth(s, m.FontSize)
	}
	return meas.FastTextWidth(s, m.FontSize, m.FontWeight, m.FontFamily)
}

// estimateWidth 是无测量原语时的兜底估算，按显示单元宽度折算。
func estimateWidth(s string, fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 12
	}
	return fontSize * 0.55 * float64(runewidth.StringWidth(s)+1)
}
