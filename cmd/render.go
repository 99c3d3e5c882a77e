package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spectraldani/genkouyoushi/observability"
	"github.com/spectraldani/genkouyoushi/renderer"
)

func newRenderCmd() *cobra.Command {
	var (
		in       sheetInput
		output   string
		format   string
		planPath string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "将稿纸文件渲染为 SVG、PDF 或 PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			logger := observability.GetLogger().Named("render")

			f, err := resolveFormat(format, output, cfg)
			if err != nil {
				return err
			}
			r, err := newRenderer(f, cfg)
			if err != nil {
				return err
			}

			result, err := buildSheet(in, cfg, logger)
			if err != nil {
				return err
			}
			if planPath != "" {
				if err := writeDebug(result, planPath); err != nil {
					return err
				}
			}

			data, err := r.Render(renderer.Compose(result))
			if err != nil {
				return fmt.Errorf("渲染 %s 失败: %w", f, err)
			}
			if err := writeOutput(output, data, cmd.OutOrStdout()); err != nil {
				return err
			}
			logger.Info("已生成", zap.String("format", f), zap.String("output", output), zap.Int("bytes", len(data)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.path, "input", "i", "", "稿纸文件路径")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "输出路径，- 表示标准输出")
	cmd.Flags().StringVarP(&format, "format", "f", "", "输出格式 svg|pdf|png (默认按扩展名或配置)")
	cmd.Flags().StringVar(&in.dataJSON, "data", "", "绑定到稿纸的 JSON 数据")
	cmd.Flags().StringVar(&in.dataFile, "data-file", "", "绑定数据 JSON 文件")
	cmd.Flags().StringVar(&planPath, "plan", "", "布局方案 JSON 输出路径")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
