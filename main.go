package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/blocktext/config"
	"github.com/ByLCY/blocktext/dsl"
	"github.com/ByLCY/blocktext/measure/canvasmeasure"
	"github.com/ByLCY/blocktext/preview"
	"github.com/ByLCY/blocktext/renderer"
	canvasrenderer "github.com/ByLCY/blocktext/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.block", "块定义文件路径")
	output := flag.String("out", "output/preview.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	configPath := flag.String("config", "", "TOML 配置文件路径（缺省 blocktext.toml）")
	dataJSON := flag.String("data", "", "绑定到块定义的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := run(*input, *output, *debug, inputData, cfg); err != nil {
		log.Fatalf("生成预览失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、绑定、测量与渲染。
func run(inputPath, outputPath, debugPath string, data any, cfg config.Config) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开块定义文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析块定义失败: %w", err)
	}

	meas, err := canvasmeasure.New(canvasmeasure.Options{
		BaseDir: filepath.Dir(inputPath),
		Font: canvasmeasure.FontSpec{
			Family: cfg.Font.Family,
			Src:    cfg.Font.Src,
			Style:  cfg.Font.Style,
		},
		SizeMM: cfg.FontSizeMM(),
	})
	if err != nil {
		return fmt.Errorf("初始化测量后端失败: %w", err)
	}
	metrics := cfg.ApplyMetrics(meas.Metrics())

	layout, err := preview.Build(doc, data, metrics, meas)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(layout, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	var r renderer.Renderer = canvasrenderer.NewRenderer(meas, metrics)
	pdfBytes, err := r.Render(layout)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	return nil
}

func writeDebug(layout *preview.Layout, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := preview.WriteDebugJSON(layout, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
