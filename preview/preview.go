// Package preview 把块定义实例化为可渲染的预览布局：完成数据绑定、
// 通过字段注册表构造字段、逐字段测量包围盒并垂直堆叠。所有坐标与
// 尺寸以毫米为单位，原点在左上角。
package preview

import (
	"fmt"

	"github.com/ByLCY/blocktext/binding"
	"github.com/ByLCY/blocktext/dsl"
	"github.com/ByLCY/blocktext/field"
)

const (
	blockSpacing = 3.0
	blockPadding = 2.0
	fieldSpacing = 1.5
	pageMargin   = 5.0
)

// Layout 保存实例化后的全部块与整体画布尺寸。
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Blocks []Block `json:"blocks"`
}

// Block 是一个块实例：名字、包围盒与其中的字段。
type Block struct {
	Name   string     `json:"name"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Fields []FieldBox `json:"fields"`
}

// FieldBox 是一个字段实例的包围盒与显示行。
type FieldBox struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rows   []Row   `json:"rows"`
}

// Row 是显示态的一行文本及其基线位置。
type Row struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Baseline float64 `json:"baseline"`
}

// Build 根据块定义 AST 与宿主数据生成预览布局。
// data 为 JSON 风格的 map/切片结构，用于解析字段初始值中的 ${path} 占位符。
func Build(doc *dsl.Document, data any, m field.Metrics, meas field.Measurer) (*Layout, error) {
	if doc == nil {
		return nil, fmt.Errorf("preview: 文档为空")
	}
	if meas == nil {
		return nil, fmt.Errorf("preview: 缺少测量后端")
	}

	layout := &Layout{}
	cursorY := pageMargin
	maxWidth := 0.0

	for _, bd := range doc.Blocks {
		block, err := buildBlock(bd, data, m, meas)
		if err != nil {
			return nil, err
		}
		block.X = pageMargin
		block.Y = cursorY
		offsetFields(block)
		cursorY += block.Height + blockSpacing
		if block.Width > maxWidth {
			maxWidth = block.Width
		}
		layout.Blocks = append(layout.Blocks, *block)
	}

	if len(layout.Blocks) > 0 {
		cursorY -= blockSpacing
	}
	layout.Width = maxWidth + 2*pageMargin
	layout.Height = cursorY + pageMargin
	return layout, nil
}

// buildBlock 以块局部坐标构造字段盒，随后由调用方整体平移。
func buildBlock(bd *dsl.BlockDef, data any, m field.Metrics, meas field.Measurer) (*Block, error) {
	block := &Block{Name: bd.Name}
	cursorY := blockPadding
	maxWidth := 0.0

	for _, fd := range bd.Fields {
		opts, err := fd.Options()
		if err != nil {
			return nil, err
		}
		seed := binding.Interpolate(opts.InitialValue(), data)
		f, err := field.NewWithOptions(fd.Type, seed, nil, opts)
		if err != nil {
			return nil, fmt.Errorf("preview: 块 %s 字段 %s: %w", bd.Name, fd.Name, err)
		}

		size := f.Resize(m, meas)
		box := FieldBox{
			Name:   fd.Name,
			Type:   fd.Type,
			X:      blockPadding,
			Y:      cursorY,
			Width:  size.Width,
			Height: size.Height,
		}
		box.Rows = buildRows(f.DisplayRows(), m, meas)
		block.Fields = append(block.Fields, box)

		cursorY += size.Height + fieldSpacing
		if size.Width > maxWidth {
			maxWidth = size.Width
		}
	}

	if len(block.Fields) > 0 {
		cursorY -= fieldSpacing
	}
	block.Width = maxWidth + 2*blockPadding
	block.Height = cursorY + blockPadding
	return block, nil
}

// buildRows 以字段局部坐标排布显示行，行距与基线取自度量。
func buildRows(rows []string, m field.Metrics, meas field.Measurer) []Row {
	var padX, padY float64
	if m.Bordered {
		padX, padY = m.BorderPaddingX, m.BorderPaddingY
	}
	out := make([]Row, 0, len(rows))
	y := padY
	for i, content := range rows {
		if i > 0 {
			y += m.RowPadding
		}
		out = append(out, Row{
			Content:  content,
			X:        padX,
			Y:        y,
			Width:    meas.TextWidth(content),
			Baseline: y + m.BaselineOffset,
		})
		y += m.LineHeight
	}
	return out
}

// offsetFields 把块局部坐标平移为画布坐标。
func offsetFields(block *Block) {
	for i := range block.Fields {
		box := &block.Fields[i]
		box.X += block.X
		box.Y += block.Y
		for j := range box.Rows {
			box.Rows[j].X += box.X
			box.Rows[j].Y += box.Y
			box.Rows[j].Baseline += box.Y
		}
	}
}
