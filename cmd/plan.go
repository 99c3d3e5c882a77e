package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spectraldani/genkouyoushi/layout"
	"github.com/spectraldani/genkouyoushi/observability"
)

func newPlanCmd() *cobra.Command {
	var in sheetInput
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "输出布局方案 JSON，不渲染",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			result, err := buildSheet(in, cfg, observability.GetLogger().Named("plan"))
			if err != nil {
				return err
			}
			return layout.EncodeDebugJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&in.path, "input", "i", "", "稿纸文件路径")
	cmd.Flags().StringVar(&in.dataJSON, "data", "", "绑定到稿纸的 JSON 数据")
	cmd.Flags().StringVar(&in.dataFile, "data-file", "", "绑定数据 JSON 文件")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
