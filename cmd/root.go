package cmd

import (
	"fmt"
	"os"
	"strings"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/logger"
	"expensetracker/router"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	port       string
)

var rootCmd = &cobra.Command{
	Use:   "expensetracker",
	Short: "个人记账 REST API 服务",
	Long: `个人记账服务：管理消费记录与类别，提供按月汇总和 CSV/Excel 导出。

不带子命令时启动 HTTP 服务。`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// Execute 命令入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "监听端口，如: 8080 或 :8080")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig 读取 .env、配置文件并初始化日志
func loadConfig() (*config.Config, error) {
	// .env 可选，其中的 EXPENSE_* 变量会被 viper 读取
	if err := godotenv.Load(); err != nil {
		logrus.Debug("未找到 .env 文件")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		cfg.Server.Port = normalizePort(port)
		logrus.WithField("port", cfg.Server.Port).Info("命令行指定端口")
	}

	config.PrintConfig(cfg)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	defer database.Close(db)

	r := router.SetupRouter(cfg, db)

	logrus.WithFields(logrus.Fields{
		"api":     fmt.Sprintf("http://localhost%s%s/", cfg.Server.Port, cfg.Server.BasePath),
		"swagger": fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port),
	}).Info("记账服务已启动")

	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}

// normalizePort 自动添加冒号前缀
func normalizePort(p string) string {
	if p == "" || strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}
