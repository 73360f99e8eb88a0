package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type JsonBinding struct{}

func (j JsonBinding) Bind(r *http.Request, obj any) error {
	if r == nil || r.Body == nil {
		return errors.New("bind json error: invalid request body")
	}
	if obj == nil {
		return errors.New("bind json error: obj is nil")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		// 长度未知的空body
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("bind json error: %w", err)
	}

	return nil
}

func (j JsonBinding) Name() string {
	return "json"
}
