package binding

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// PathVarBinding 绑定路由中的路径参数, 例如 /api/v1/stacks/{id}
type PathVarBinding struct {
	Tag string
}

func (p PathVarBinding) Bind(r *http.Request, obj any) error {
	vars := mux.Vars(r)
	values := make(url.Values, len(vars))
	for k, v := range vars {
		values.Set(k, v)
	}

	return bindValues(values, p.Tag, obj)
}

func (p PathVarBinding) Name() string {
	return "pathvar"
}
