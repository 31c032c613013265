// Package config 读取预览工具的 TOML 配置：字体、字段度量常量与
// 预览参数。长度值以带单位的字符串书写（如 "12pt"、"1.5mm"）。
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ByLCY/blocktext/field"
	"github.com/ByLCY/blocktext/units"
)

// DefaultPath 是缺省的配置文件名。
const DefaultPath = "blocktext.toml"

// Config 对应配置文件的顶层结构。
type Config struct {
	Font    FontConfig    `toml:"font"`
	Metrics MetricsConfig `toml:"metrics"`
	Preview PreviewConfig `toml:"preview"`
}

// FontConfig 描述预览使用的字体。
type FontConfig struct {
	Family string `toml:"family"`
	Src    string `toml:"src"`
	Style  string `toml:"style"`
	Size   string `toml:"size"`
}

// MetricsConfig 描述字段测量的布局常量。
type MetricsConfig struct {
	RowPadding     string `toml:"row_padding"`
	Bordered       bool   `toml:"bordered"`
	BorderPaddingX string `toml:"border_padding_x"`
	BorderPaddingY string `toml:"border_padding_y"`
}

// PreviewConfig 描述预览输出参数。
type PreviewConfig struct {
	Scale float64 `toml:"scale"`
	RTL   bool    `toml:"rtl"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Font: FontConfig{
			Family: "Body",
			Style:  "Regular",
			Size:   "12pt",
		},
		Metrics: MetricsConfig{
			RowPadding:     "1mm",
			Bordered:       true,
			BorderPaddingX: "2mm",
			BorderPaddingY: "1mm",
		},
		Preview: PreviewConfig{
			Scale: 1,
		},
	}
}

// Load 从 path 读取配置；path 为空时使用 DefaultPath。
// 文件不存在时返回默认配置而非报错。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: 读取 %s 失败: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: 解析 %s 失败: %w", path, err)
	}
	return cfg, nil
}

// FontSizeMM 返回字号（mm），未配置或非法时回退默认字号。
func (c Config) FontSizeMM() float64 {
	l := units.Parse(c.Font.Size)
	if l.IsZero() {
		l = units.Parse(Default().Font.Size)
	}
	return l.ToMM()
}

// ApplyMetrics 把配置中的布局常量并入测量后端派生的字体度量。
func (c Config) ApplyMetrics(m field.Metrics) field.Metrics {
	m.RowPadding = units.Parse(c.Metrics.RowPadding).ToMM()
	m.Bordered = c.Metrics.Bordered
	m.BorderPaddingX = units.Parse(c.Metrics.BorderPaddingX).ToMM()
	m.BorderPaddingY = units.Parse(c.Metrics.BorderPaddingY).ToMM()
	return m
}

// Scale 返回预览缩放，非正数回退为 1。
func (c Config) Scale() float64 {
	if c.Preview.Scale <= 0 {
		return 1
	}
	return c.Preview.Scale
}
