package cmd

import (
	"fmt"

	"expensetracker/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建或更新数据库表结构",
	Long:  `按当前配置连接数据库并执行表结构迁移，--seed 会在类别表为空时写入默认类别。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("数据库初始化失败: %w", err)
		}
		defer database.Close(db)

		if seed {
			if err := database.SeedCategories(db); err != nil {
				return err
			}
			logrus.Info("默认类别已写入")
		}
		logrus.Info("迁移完成")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "写入默认类别")
}
