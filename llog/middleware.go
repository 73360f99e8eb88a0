package llog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mangohow/dynstack/errors"
	"github.com/mangohow/dynstack/transport/http"
	"go.uber.org/zap"
)

type loggerKey struct{}

const (
	RequestIdKeyName = "X-Request-ID"
)

// WithLogger 将 logger 注入 context
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext 从 context 获取 logger, 不存在则返回全局 logger
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return log
}

// LoggerInjectMiddleware 注入带 RequestID 的 logger, 请求头中没有时生成一个
func LoggerInjectMiddleware(requestIdKey string) http.Middleware {
	if requestIdKey == "" {
		requestIdKey = RequestIdKeyName
	}

	return func(ctx context.Context, req any, handler http.Handler) (any, error) {
		c := http.FromContext(ctx)
		rid := c.Request().Header.Get(requestIdKey)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.SetHeader(requestIdKey, rid)

		return handler(WithLogger(ctx, FromContext(ctx).With("requestId", rid)), req)
	}
}

func RequestLoggingMiddleware() http.Middleware {
	return func(ctx context.Context, req any, handler http.Handler) (any, error) {
		var (
			logger  = FromContext(ctx)
			request = http.FromContext(ctx).Request()
			start   = time.Now()
		)

		resp, err := handler(ctx, req)

		clientIP := request.Header.Get("X-Real-IP")
		if clientIP == "" {
			clientIP = request.Header.Get("X-Forwarded-For")
		}
		if clientIP == "" {
			clientIP = request.RemoteAddr
		}

		fields := []any{
			"method", request.Method,
			"path", request.URL.Path,
			"query", request.URL.RawQuery,
			"ip", clientIP,
			"latency", time.Since(start),
		}

		if err == nil {
			logger.Infow("Request", fields...)
			return resp, nil
		}

		var e errors.Error
		if errors.As(err, &e) {
			fields = append(fields, "status", e.HttpStatus(), "errCode", e.Code(), "errMsg", e.Message())
		} else {
			fields = append(fields, "error", err.Error())
		}

		// 客户端错误不按服务端错误记录
		if e != nil && e.HttpStatus() < 500 {
			logger.Warnw("Request failed", fields...)
		} else {
			logger.Errorw("Server error", fields...)
		}

		return resp, err
	}
}
