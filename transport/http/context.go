package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/mangohow/dynstack/transport/binding"
)

type ctxKey struct{}

var (
	pool = sync.Pool{
		New: func() any {
			return &Context{}
		},
	}
)

type Context struct {
	w   http.ResponseWriter
	req *http.Request
	s   *Server
}

func newContext(w http.ResponseWriter, r *http.Request, s *Server) *Context {
	c := pool.Get().(*Context)
	c.w = w
	c.req = r
	c.s = s

	return c
}

func putContext(c *Context) {
	c.req = nil
	c.w = nil
	c.s = nil
	pool.Put(c)
}

func (c *Context) Request() *http.Request {
	return c.req
}

func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

func (c *Context) SetHeader(key string, value string) {
	c.w.Header().Set(key, value)
}

func (c *Context) GetContentType() string {
	return c.req.Header.Get("Content-Type")
}

// BindQuery 绑定路径中的查询参数 /api/xxx?key1=aaa&key2=bbb
func (c *Context) BindQuery(obj any) error {
	return c.s.queryBinding.Bind(c.req, obj)
}

// BindForm 根据Content-Type绑定请求体, 支持JSON和表单, 没有Content-Type时按JSON处理
// 没有body时不做处理
func (c *Context) BindForm(obj any) error {
	if c.req.Body == nil || c.req.Body == http.NoBody || c.req.ContentLength == 0 {
		return nil
	}

	mediaType := binding.MediaType(c.GetContentType())
	switch mediaType {
	case "", binding.MIMEJSON:
		return c.s.bodyBinding.Bind(c.req, obj)
	case binding.MIMEForm:
		return c.s.formBinding.Bind(c.req, obj)
	}

	b := binding.GetBinding(mediaType)
	if b == nil {
		return fmt.Errorf("unsupported Content-Type: %s", mediaType)
	}

	return b.Bind(c.req, obj)
}

// BindJSON 绑定body中的JSON参数, body为空时不做处理
func (c *Context) BindJSON(obj any) error {
	if c.req.Body == nil || c.req.Body == http.NoBody || c.req.ContentLength == 0 {
		return nil
	}
	return c.s.bodyBinding.Bind(c.req, obj)
}

// BindPathVar 绑定路径参数 /api/stacks/{id}
func (c *Context) BindPathVar(obj any) error {
	return c.s.pathVarBinding.Bind(c.req, obj)
}

func (c *Context) String(status int, content string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(status)
	_, err := c.w.Write([]byte(content))

	return err
}

func (c *Context) JSON(status int, obj any) error {
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(status)
	return json.NewEncoder(c.w).Encode(obj)
}

func (c *Context) WriteStatus(status int) {
	c.w.WriteHeader(status)
}

func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(ctxKey{}).(*Context)
	return c
}
