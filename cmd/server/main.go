package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/folioshelf/internal/config"
	"github.com/folioshelf/internal/db"
	"github.com/folioshelf/internal/logging"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "folioshelf",
	Short:         "Folioshelf publishing API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $FOLIOSHELF_CONFIG)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap 读取配置、创建日志并初始化数据库，所有子命令共用。
func bootstrap() (config.AppConfig, *log.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.AppConfig{}, nil, err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err := db.Init(cfg.DatabasePath); err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger, nil
}
