// Package logger 基于zap的结构化日志
//
// 配置项与config.LogConfig一一对应：
//   - level:  debug | info | warn | error
//   - format: console | json
//   - output: stdout | stderr | 文件路径
//   - enable_caller: 是否输出调用位置
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志选项
// 不直接依赖config包，避免pkg反向依赖internal
type Options struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 创建zap Logger
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
	}

	var zc zap.Config
	switch opts.Format {
	case "console":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json", "":
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("无效的日志格式: %s", opts.Format)
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !opts.EnableCaller

	output := opts.Output
	if output == "" {
		output = "stdout"
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志失败: %w", err)
	}
	return l, nil
}
