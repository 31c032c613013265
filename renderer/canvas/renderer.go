// Package canvasrenderer 用 github.com/tdewolff/canvas 把预览布局画成
// 单页 PDF：块背景为圆角矩形，带边框的字段画外框，行文本按基线绘制。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/blocktext/field"
	"github.com/ByLCY/blocktext/measure/canvasmeasure"
	"github.com/ByLCY/blocktext/preview"
	"github.com/ByLCY/blocktext/renderer"
)

const (
	blockBorderWidth = 0.2
	blockCornerR     = 1.0
)

// Renderer draws preview layouts via github.com/tdewolff/canvas.
type Renderer struct {
	meas    *canvasmeasure.Measurer
	metrics field.Metrics
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 共享测量后端的字体面，保证渲染与测量使用同一字体。
func NewRenderer(meas *canvasmeasure.Measurer, m field.Metrics) *Renderer {
	return &Renderer{meas: meas, metrics: m}
}

// Render renders the layout into a PDF byte slice.
func (r *Renderer) Render(layout *preview.Layout) ([]byte, error) {
	if layout == nil {
		return nil, fmt.Errorf("渲染布局为空")
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸非法: %vx%v", layout.Width, layout.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, layout.Width, layout.Height, nil)
	c := canvas.New(layout.Width, layout.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	for _, block := range layout.Blocks {
		if err := r.drawBlock(ctx, block); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBlock(ctx *canvas.Context, block preview.Block) error {
	ctx.SetFillColor(canvas.Hex("#f8f8f8"))
	ctx.SetStrokeColor(canvas.Hex("#c0c0c0"))
	ctx.SetStrokeWidth(blockBorderWidth)
	ctx.DrawPath(block.X, block.Y, canvas.RoundedRectangle(block.Width, block.Height, blockCornerR))

	for _, box := range block.Fields {
		if err := r.drawField(ctx, box); err != nil {
			return fmt.Errorf("绘制块 %s 字段 %s 失败: %w", block.Name, box.Name, err)
		}
	}
	return nil
}

func (r *Renderer) drawField(ctx *canvas.Context, box preview.FieldBox) error {
	if r.metrics.Bordered {
		ctx.SetFillColor(canvas.White)
		ctx.SetStrokeColor(canvas.Hex("#909090"))
		ctx.SetStrokeWidth(blockBorderWidth)
		ctx.DrawPath(box.X, box.Y, canvas.Rectangle(box.Width, box.Height))
	}

	face := r.meas.Face()
	ctx.SetFillColor(color.RGBA{0, 0, 0, 255})
	for _, row := range box.Rows {
		if row.Content == "" {
			continue
		}
		textLine := canvas.NewTextLine(face, row.Content, canvas.Left)
		ctx.DrawText(row.X, row.Baseline, textLine)
	}
	return nil
}
