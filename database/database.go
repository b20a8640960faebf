package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"expensetracker/config"
	"expensetracker/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open 按配置连接数据库并完成表结构迁移
// 返回的 *gorm.DB 由调用方显式传递给各个服务，包内不保存全局连接
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(logrus.StandardLogger(), cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.SeedCategories {
		if err := SeedCategories(db); err != nil {
			return nil, err
		}
	}

	logrus.WithField("driver", cfg.Driver).Info("数据库初始化成功")
	return db, nil
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		// 类别名称唯一性区分大小写
		db = db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin")
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Expense{}); err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}
	return nil
}

// SeedCategories 初始化默认消费类别（仅当表为空时）
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := models.DefaultCategories()
	if err := db.Create(&cats).Error; err != nil {
		return fmt.Errorf("初始化默认类别失败: %w", err)
	}
	logrus.WithField("count", len(cats)).Info("已写入默认类别")
	return nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		// 构建 MySQL DSN 连接字符串
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
		)
		return mysql.Open(dsn), nil
	case "sqlite", "":
		dsn, err := sqliteDSN(cfg.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// sqliteDSN 开启外键约束并设置忙等待，必要时创建数据库文件所在目录
func sqliteDSN(path string) (string, error) {
	if path == "" {
		path = "expenses.db"
	}
	if !strings.Contains(path, ":memory:") && !strings.Contains(path, "mode=memory") {
		clean := strings.Split(strings.TrimPrefix(path, "file:"), "?")[0]
		if dir := filepath.Dir(clean); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("创建数据库目录 %q 失败: %w", dir, err)
			}
		}
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1&_busy_timeout=5000", nil
}
