package serialize

import "github.com/mangohow/dynstack/errors"

// Response 统一的响应结构, Data和Error只有一个有值
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error errors.Error `json:"error,omitempty"`
}
