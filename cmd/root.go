package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spectraldani/genkouyoushi/config"
	"github.com/spectraldani/genkouyoushi/observability"
)

type contextKey string

const configKey contextKey = "config"

var cfgFile string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "genkouyoushi",
		Short:         "生成原稿用纸（方格稿纸）的 SVG/PDF/PNG",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)
			if err := initializeConfig(v); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return fmt.Errorf("加载配置失败: %w", err)
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("配置已加载", zap.String("version", Version), zap.String("config", v.ConfigFileUsed()))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey, cfg))
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件 (默认 ./config.yaml)")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer observability.Sync()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		observability.GetLogger().Error("命令执行失败", zap.Error(err))
		fmt.Fprintln(os.Stderr, "错误:", err)
		observability.Sync()
		os.Exit(1)
	}
}

// initializeConfig reads in the config file and ENV variables if set.
func initializeConfig(v *viper.Viper) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GENKOUYOUSHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
	}
	return nil
}

// configFrom returns the configuration stored by the root command, or defaults.
func configFrom(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.NewDefaultConfig()
}
