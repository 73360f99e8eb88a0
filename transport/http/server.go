package http

import (
	"context"
	"net"
	"net/http"
	"reflect"

	"github.com/mangohow/dynstack/errors"
	"github.com/mangohow/dynstack/serialize"
	"github.com/mangohow/dynstack/transport/binding"
	"github.com/sirupsen/logrus"
)

type Server struct {
	server *http.Server
	router *routeWrapper
	addr   string

	log            *logrus.Logger
	errorEncoder   EncodeErrorFunc
	queryBinding   binding.Binding
	formBinding    binding.Binding
	pathVarBinding binding.Binding
	bodyBinding    binding.Binding

	resultEncoder EncodeResultFunc

	middlewares []Middleware

	ctx context.Context
}

// EncodeErrorFunc 错误处理函数
type EncodeErrorFunc func(ctx *Context, err error)

// DefaultEncodeErrorFunc 默认错误处理函数, 未分类的错误按UNKNOWN返回
func DefaultEncodeErrorFunc(ctx *Context, err error) {
	e := errors.FromError(errors.UnknownCode, errors.DefaultStatus, errors.UnknownReason, errors.UnknownMessage, err)

	if err := ctx.JSON(int(e.HttpStatus()), serialize.Response{Error: e}); err != nil {
		ctx.s.log.Warnf("write error response: %v", err)
	}
}

// EncodeResultFunc 结果处理函数
type EncodeResultFunc func(ctx *Context, resp any)

// DefaultEncodeResultFunc 默认结果处理函数, 200 + JSON
func DefaultEncodeResultFunc(ctx *Context, resp any) {
	if err := ctx.JSON(http.StatusOK, serialize.Response{Data: resp}); err != nil {
		ctx.s.log.Warnf("write response: %v", err)
	}
}

type Option func(s *Server)

func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

func WithEncodeErrorFunc(fn EncodeErrorFunc) Option {
	return func(s *Server) {
		s.errorEncoder = fn
	}
}

func WithEncodeResultFunc(fn EncodeResultFunc) Option {
	return func(s *Server) {
		s.resultEncoder = fn
	}
}

func WithQueryBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.queryBinding = bind
	}
}

func WithFormBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.formBinding = bind
	}
}

func WithPathVarBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.pathVarBinding = bind
	}
}

func WithBodyBinding(bind binding.Binding) Option {
	return func(s *Server) {
		s.bodyBinding = bind
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

func WithContext(ctx context.Context) Option {
	return func(s *Server) {
		s.ctx = ctx
	}
}

func WithMiddleware(middleware ...Middleware) Option {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, middleware...)
	}
}

func New(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}

	if s.queryBinding == nil {
		s.queryBinding = binding.QueryBinding{Tag: "json"}
	}

	if s.formBinding == nil {
		s.formBinding = binding.FormBinding{Tag: "json"}
	}

	if s.pathVarBinding == nil {
		s.pathVarBinding = binding.PathVarBinding{Tag: "json"}
	}

	if s.bodyBinding == nil {
		s.bodyBinding = binding.JsonBinding{}
	}

	if s.errorEncoder == nil {
		s.errorEncoder = DefaultEncodeErrorFunc
	}

	if s.resultEncoder == nil {
		s.resultEncoder = DefaultEncodeResultFunc
	}

	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	if s.ctx == nil {
		s.ctx = context.Background()
	}

	if s.addr == "" {
		s.addr = ":8000"
	}

	s.router = newRouterWrapper(s.errorEncoder, s)
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}

	return s
}

func (s *Server) HttpServer() *http.Server {
	return s.server
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// RegisterService 注册服务, srv必须实现sd.HandlerType
func (s *Server) RegisterService(sd *ServiceDesc, srv any) {
	if srv != nil {
		ht := reflect.TypeOf(sd.HandlerType).Elem()
		st := reflect.TypeOf(srv)
		if !st.Implements(ht) {
			s.log.Fatalf("handler type %v not implement %v", st, ht)
		}
	}

	s.register(sd, srv)
}

func (s *Server) register(sd *ServiceDesc, srv any) {
	for _, d := range sd.Methods {
		handler := d.Handler
		s.log.Debugf("register %s %s %s", sd.ServiceName, d.Method, d.Path)
		s.handle(d.Method, d.Path, func(ctx context.Context, _ any) (any, error) {
			return handler(ctx, srv, chainMiddleware(s.middlewares))
		})
	}
}

func (s *Server) handle(method, relativePath string, handler Handler) {
	s.router.HandleFunc(method, relativePath, s.handlerConvert(handler))
}

func (s *Server) handlerConvert(handler Handler) HandlerFunc {
	return func(c *Context) error {
		ctx := context.WithValue(c.req.Context(), ctxKey{}, c)
		resp, err := handler(ctx, nil)
		if err != nil {
			return err
		}

		s.resultEncoder(c, resp)

		return nil
	}
}

// GET 注册不经过middleware的简单路由, 例如健康检查
func (s *Server) GET(path string, handler HandlerFunc) {
	s.router.GET(path, handler)
}

func (s *Server) Middleware(middleware ...Middleware) {
	s.middlewares = append(s.middlewares, middleware...)
}

func (s *Server) Start() error {
	s.log.Info("server listen at ", s.addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("server stopping")
	return s.server.Shutdown(ctx)
}
