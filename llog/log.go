package llog

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var (
	log      = zap.NewNop().Sugar()
	logLevel = zap.NewAtomicLevel()
)

const (
	logTimeFormat = "2006-01-02 15:04:05.000"
)

// config 日志配置
type config struct {
	// 日志级别 (debug, info, warn, error)
	level string
	// 日志输出类型 (console, json)
	encoding string
	// 文件输出路径, 为空则不写文件
	filename string
	// 文件轮转参数
	maxSizeMB  int
	maxBackups int
	maxAgeDays int

	enableCaller bool
	serviceName  string

	timeEncoder zapcore.TimeEncoder
	// 控制台输出, 默认os.Stdout
	output io.Writer
}

func (c *config) init() {
	if c.level == "" {
		c.level = "info"
	}

	if c.encoding == "" {
		c.encoding = "json"
	}

	if c.maxSizeMB <= 0 {
		c.maxSizeMB = 10
	}
	if c.maxBackups <= 0 {
		c.maxBackups = 7
	}
	if c.maxAgeDays <= 0 {
		c.maxAgeDays = 30
	}

	if c.output == nil {
		c.output = os.Stdout
	}

	if c.timeEncoder == nil {
		c.timeEncoder = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			type appendTimeEncoder interface {
				AppendTimeLayout(time.Time, string)
			}

			if enc, ok := enc.(appendTimeEncoder); ok {
				enc.AppendTimeLayout(t, logTimeFormat)
				return
			}

			enc.AppendString(t.Format(logTimeFormat))
		}
	}
}

func SetLevel(level string) error {
	return logLevel.UnmarshalText([]byte(level))
}

type LoggerOption func(cfg *config)

func WithLevel(level string) LoggerOption {
	return func(cfg *config) {
		cfg.level = level
	}
}

func WithEncoding(encoding string) LoggerOption {
	return func(cfg *config) {
		cfg.encoding = encoding
	}
}

func WithFilename(filename string) LoggerOption {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) LoggerOption {
	return func(cfg *config) {
		cfg.maxSizeMB = maxSizeMB
		cfg.maxBackups = maxBackups
		cfg.maxAgeDays = maxAgeDays
	}
}

func WithEnableCaller(enableCaller bool) LoggerOption {
	return func(cfg *config) {
		cfg.enableCaller = enableCaller
	}
}

func WithServiceName(serviceName string) LoggerOption {
	return func(cfg *config) {
		cfg.serviceName = serviceName
	}
}

func WithTimeEncoder(enc zapcore.TimeEncoder) LoggerOption {
	return func(cfg *config) {
		cfg.timeEncoder = enc
	}
}

func WithOutput(w io.Writer) LoggerOption {
	return func(cfg *config) {
		cfg.output = w
	}
}

// InitLogger 初始化全局日志实例, 返回的函数用于刷新缓冲
func InitLogger(opts ...LoggerOption) (*zap.SugaredLogger, func(), error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.init()

	if err := logLevel.UnmarshalText([]byte(cfg.level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = cfg.timeEncoder
	encoderConfig.StacktraceKey = ""

	var cores []zapcore.Core
	if cfg.filename != "" {
		// 文件输出(带轮转)始终使用JSON
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.filename,
				MaxSize:    cfg.maxSizeMB,
				MaxBackups: cfg.maxBackups,
				MaxAge:     cfg.maxAgeDays,
				Compress:   true,
			}),
			logLevel,
		))
	}

	var encoder zapcore.Encoder
	switch cfg.encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, nil, fmt.Errorf("invalid log encoding %q", cfg.encoding)
	}
	cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(cfg.output), logLevel))

	zapLogger := zap.New(zapcore.NewTee(cores...))
	if cfg.enableCaller {
		zapLogger = zapLogger.WithOptions(zap.AddCaller())
	}
	if cfg.serviceName != "" {
		zapLogger = zapLogger.With(zap.String("service", cfg.serviceName))
	}

	log = zapLogger.Sugar()

	return log, func() {
		_ = log.Sync()
	}, nil
}

func GetLogger() *zap.SugaredLogger {
	return log
}
