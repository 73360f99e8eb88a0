package http

import (
	"context"
)

type Handler func(ctx context.Context, req any) (resp any, err error)

type Middleware func(ctx context.Context, req any, handler Handler) (any, error)

// MethodHandler 负责绑定请求参数, 并通过middleware调用srv的方法
type MethodHandler func(ctx context.Context, srv any, middleware Middleware) (any, error)

type ServiceDesc struct {
	ServiceName string
	// HandlerType 指向服务接口的指针, 用于注册时检查srv是否实现了该接口
	HandlerType any
	Methods     []MethodDesc
}

type MethodDesc struct {
	Method  string
	Path    string
	Handler MethodHandler
}

func chainMiddleware(middlewares []Middleware) Middleware {
	if len(middlewares) == 0 {
		return func(ctx context.Context, req any, handler Handler) (any, error) {
			return handler(ctx, req)
		}
	}

	return func(ctx context.Context, req any, handler Handler) (any, error) {
		return middlewares[0](ctx, req, nextHandler(middlewares, 0, handler))
	}
}

func nextHandler(middlewares []Middleware, cur int, handler Handler) Handler {
	if cur >= len(middlewares)-1 {
		return handler
	}

	return func(ctx context.Context, req any) (any, error) {
		return middlewares[cur+1](ctx, req, nextHandler(middlewares, cur+1, handler))
	}
}
