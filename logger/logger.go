package logger

import (
	"os"
	"strings"

	"expensetracker/config"

	"github.com/sirupsen/logrus"
)

// Setup 根据配置初始化全局 logrus 实例
func Setup(cfg config.LogConfig) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(newFormatter(cfg.Format))
	return nil
}

func newFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
}
