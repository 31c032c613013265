// Package canvasmeasure 基于 github.com/tdewolff/canvas 的字体系统实现
// 字段测量接口。主字体面用于显示态逐行测量；编辑态的快速测量按
// (字号, 字重, 字族) 缓存派生字体面，避免每次按键重建字体。
package canvasmeasure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/blocktext/field"
	"github.com/ByLCY/blocktext/units"
)

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// FontSpec 描述主字体：字族名、来源（built-in:<name> 或相对 BaseDir 的路径）与样式词。
type FontSpec struct {
	Family string
	Src    string
	Style  string
}

// Options configures the measurer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // built-in fonts accessible via built-in:<name>
	Font    FontSpec
	SizeMM  float64 // 主字号，毫米
}

type familyEntry struct {
	name   string
	family *canvas.FontFamily
	style  canvas.FontStyle
}

type fastKey struct {
	size   float64
	weight string
	family string
}

// Measurer measures text via canvas font faces. All public widths and
// heights are in millimeters; pt conversion happens at the font boundary.
type Measurer struct {
	baseDir string
	blobs   map[string][]byte
	spec    FontSpec
	sizeMM  float64

	mu        sync.Mutex
	families  map[string]*familyEntry
	primary   *canvas.FontFace
	fastFaces map[fastKey]*canvas.FontFace
}

var _ field.Measurer = (*Measurer)(nil)

// New loads the primary font and prepares the face caches.
func New(opts Options) (*Measurer, error) {
	if opts.SizeMM <= 0 {
		return nil, fmt.Errorf("canvasmeasure: 字号必须为正: %v", opts.SizeMM)
	}
	m := &Measurer{
		baseDir:   opts.BaseDir,
		blobs:     map[string][]byte{},
		spec:      opts.Font,
		sizeMM:    opts.SizeMM,
		families:  map[string]*familyEntry{},
		fastFaces: map[fastKey]*canvas.FontFace{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			m.blobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // ignore error here; will be caught when actually used
			if len(data) > 0 {
				m.blobs[name] = data
			}
		}
	}

	entry, err := m.ensureFamily(opts.Font)
	if err != nil {
		return nil, err
	}
	m.primary = entry.family.Face(opts.SizeMM*units.MmToPt, canvas.Black, entry.style, canvas.FontNormal)
	return m, nil
}

// TextWidth 用主字体面测量一行文本的宽度（mm）。
func (m *Measurer) TextWidth(s string) float64 {
	return m.primary.TextWidth(s) * units.PtToMm
}

// FastTextWidth 用 (字号, 字重, 字族) 缓存的派生字体面测量，供编辑态
// 在每次按键时调用。未加载的字族回退到主字族。
func (m *Measurer) FastTextWidth(s string, size float64, weight, family string) float64 {
	face := m.fastFace(size, weight, family)
	return face.TextWidth(s) * units.PtToMm
}

// Metrics 从主字体面派生字段度量的字体相关部分；行距、内边距等
// 布局常量由调用方按配置补齐。
func (m *Measurer) Metrics() field.Metrics {
	fm := m.primary.Metrics()
	return field.Metrics{
		LineHeight:     fm.LineHeight * units.PtToMm,
		BaselineOffset: fm.Ascent * units.PtToMm,
		FontSize:       m.sizeMM,
		FontWeight:     m.spec.Style,
		FontFamily:     m.spec.Family,
	}
}

// Face returns the primary font face for rendering row text.
func (m *Measurer) Face() *canvas.FontFace { return m.primary }

func (m *Measurer) fastFace(size float64, weight, family string) *canvas.FontFace {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fastKey{size: size, weight: weight, family: family}
	if face, ok := m.fastFaces[key]; ok {
		return face
	}

	entry := m.lookupFamilyLocked(family)
	style := parseFontStyle(weight)
	if weight == "" {
		style = entry.style
	}
	face := entry.family.Face(size*units.MmToPt, canvas.Black, style, canvas.FontNormal)
	m.fastFaces[key] = face
	return face
}

// lookupFamilyLocked 按字族名查已加载字族，未命中回退主字族。调用方持锁。
func (m *Measurer) lookupFamilyLocked(name string) *familyEntry {
	if name != "" {
		for _, entry := range m.families {
			if entry.name == name {
				return entry
			}
		}
	}
	return m.families[familyCacheKey(m.spec)]
}

func (m *Measurer) ensureFamily(spec FontSpec) (*familyEntry, error) {
	key := familyCacheKey(spec)
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.families[key]; ok {
		return entry, nil
	}

	style := parseFontStyle(spec.Style)
	familyName := spec.Family
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	data, err := m.loadFontBytes(spec)
	if err != nil {
		return nil, err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("canvasmeasure: 加载字体 %s 失败: %w", spec.Family, err)
	}

	entry := &familyEntry{name: familyName, family: family, style: style}
	m.families[key] = entry
	return entry, nil
}

func (m *Measurer) loadFontBytes(spec FontSpec) ([]byte, error) {
	if spec.Src == "" {
		return nil, fmt.Errorf("canvasmeasure: 字体 %s 缺少 src", spec.Family)
	}
	src := spec.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := m.blobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("canvasmeasure: 找不到内置字体资源 built-in:%s", name)
	}
	path := src
	if m.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("canvasmeasure: 未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.baseDir, path)
	}
	return os.ReadFile(path)
}

func familyCacheKey(spec FontSpec) string {
	return fmt.Sprintf("%s|%s|%s", spec.Family, spec.Src, spec.Style)
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	default:
		result = canvas.FontRegular
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") || strings.Contains(style, "I") {
		result |= canvas.FontItalic
	}
	if strings.Contains(style, "B") && !strings.Contains(s, "bold") {
		result = canvas.FontBold | (result & canvas.FontItalic)
	}
	return result
}
