package binding

import (
	"mime"
	"net/http"
	"strings"
	"sync"
)

const (
	MIMEJSON = "application/json"
	MIMEForm = "application/x-www-form-urlencoded"
)

type Binding interface {
	Name() string
	Bind(r *http.Request, obj any) error
}

var (
	bindingMu sync.RWMutex
	// 请求体绑定, key为media type
	bodyBindings = map[string]Binding{
		MIMEJSON: JsonBinding{},
		MIMEForm: FormBinding{},
	}
)

// RegisterBinding 为mediaType注册请求体绑定, 已存在则覆盖
func RegisterBinding(mediaType string, b Binding) {
	if b == nil {
		panic("binding is nil")
	}

	bindingMu.Lock()
	defer bindingMu.Unlock()
	bodyBindings[MediaType(mediaType)] = b
}

// GetBinding 根据Content-Type查找请求体绑定, 不存在返回nil
func GetBinding(contentType string) Binding {
	bindingMu.RLock()
	defer bindingMu.RUnlock()
	return bodyBindings[MediaType(contentType)]
}

// MediaType 去掉Content-Type中的参数部分, 例如 "application/json; charset=utf-8" -> "application/json"
func MediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
	}

	return strings.ToLower(strings.TrimSpace(mediaType))
}
