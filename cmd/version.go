package cmd

import "github.com/spf13/cobra"

// Version is the application version, set at build time:
// go build -ldflags "-X github.com/spectraldani/genkouyoushi/cmd.Version=1.0.0"
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本号",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(Version)
		},
	}
}
