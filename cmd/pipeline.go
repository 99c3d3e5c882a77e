package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/spectraldani/genkouyoushi/config"
	"github.com/spectraldani/genkouyoushi/dsl"
	"github.com/spectraldani/genkouyoushi/layout"
	"github.com/spectraldani/genkouyoushi/renderer"
	canvasrenderer "github.com/spectraldani/genkouyoushi/renderer/canvas"
	"github.com/spectraldani/genkouyoushi/renderer/svg"
)

// sheetInput 描述一次构建的输入。
type sheetInput struct {
	path     string
	dataJSON string
	dataFile string
}

// loadData 解析绑定数据：--data 直接给出 JSON，--data-file 指向 JSON 文件。
func (in sheetInput) loadData() (any, error) {
	raw := []byte(in.dataJSON)
	if in.dataFile != "" {
		if in.dataJSON != "" {
			return nil, fmt.Errorf("--data 与 --data-file 不能同时使用")
		}
		b, err := os.ReadFile(in.dataFile)
		if err != nil {
			return nil, fmt.Errorf("读取数据文件 %s 失败: %w", in.dataFile, err)
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

// buildSheet 串联解析与布局。
func buildSheet(in sheetInput, cfg *config.Config, logger *zap.Logger) (*layout.Result, error) {
	if in.path == "" {
		return nil, fmt.Errorf("缺少稿纸文件，请使用 -i 指定")
	}
	data, err := in.loadData()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(in.path)
	if err != nil {
		return nil, fmt.Errorf("无法打开稿纸文件 %s: %w", in.path, err)
	}
	defer file.Close()

	sheet, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析稿纸文件失败: %w", err)
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, err
	}
	result, err := layout.Build(sheet, data, opts)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	plan := result.Plan
	if plan.TitleDropped {
		logger.Warn("页面宽度不足以放置标题列，已省略标题", zap.String("sheet", sheet.Name))
	}
	if plan.Empty() {
		logger.Warn("页面放不下任何格子", zap.String("sheet", sheet.Name))
	}
	logger.Info("布局完成",
		zap.String("sheet", sheet.Name),
		zap.Int("rows", plan.Rows),
		zap.Int("columns", plan.Columns),
		zap.Int("placements", len(plan.Placements)),
	)
	return result, nil
}

func buildOptions(cfg *config.Config) (layout.BuildOptions, error) {
	ink, err := layout.ParseColor(cfg.Render.Ink)
	if err != nil {
		return layout.BuildOptions{}, fmt.Errorf("配置 render.ink 无效: %w", err)
	}
	return layout.BuildOptions{Defaults: layout.Defaults{
		Ink:         ink,
		Brighten:    cfg.Render.Brighten,
		PagePadding: cfg.Render.PagePadding,
		CellSize:    cfg.Render.CellSize,
		CellStroke:  cfg.Render.CellStroke,
	}}, nil
}

// resolveFormat 依次取命令行参数、输出文件扩展名与配置中的格式。
func resolveFormat(flag, outputPath string, cfg *config.Config) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" && outputPath != "" && outputPath != "-" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")
	}
	if format == "" {
		format = cfg.Render.Format
	}
	switch format {
	case "svg", "pdf", "png":
		return format, nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %s", format)
	}
}

func newRenderer(format string, cfg *config.Config) (renderer.Renderer, error) {
	switch format {
	case "svg":
		return svg.New(), nil
	default:
		f, err := canvasrenderer.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
			Format:     f,
			Resolution: cfg.Render.Resolution,
			Background: cfg.Render.Background,
		}), nil
	}
}

// writeOutput 写入文件；路径为 "-" 时写到 stdout。
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
