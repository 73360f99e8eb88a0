package binding

import (
	"fmt"
	"net/http"
)

// FormBinding 绑定 x-www-form-urlencoded 表单
type FormBinding struct {
	Tag string
}

func (f FormBinding) Bind(r *http.Request, obj any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("bind form error: %w", err)
	}

	return bindValues(r.PostForm, f.Tag, obj)
}

func (f FormBinding) Name() string {
	return "form"
}
