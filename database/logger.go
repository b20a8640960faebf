package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowThreshold = time.Second

// gormLogger 把 gorm 的 SQL 日志写入 logrus
type gormLogger struct {
	log   *logrus.Logger
	level logger.LogLevel
}

// NewLogger 创建 gorm 日志适配器，level 取值 silent/error/warn/info
func NewLogger(log *logrus.Logger, level string) logger.Interface {
	return &gormLogger{log: log, level: parseLevel(level)}
}

func parseLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.WithContext(ctx).Infof(msg, args...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.WithContext(ctx).Warnf(msg, args...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.WithContext(ctx).Errorf(msg, args...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.log.WithContext(ctx).WithFields(logrus.Fields{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
	})
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		entry.WithError(err).Error("SQL 执行失败")
	case elapsed > slowThreshold && l.level >= logger.Warn:
		entry.Warn("慢查询")
	case l.level >= logger.Info:
		entry.Info("SQL")
	}
}
