// Package protoclone 为元素为protobuf消息的栈提供深拷贝
package protoclone

import (
	"github.com/mangohow/dynstack/tools/collection"
	"google.golang.org/protobuf/proto"
)

// Cloner 使用proto.Clone拷贝消息, nil消息保持nil
func Cloner[M proto.Message]() func(M) M {
	return func(m M) M {
		if isNil(m) {
			return m
		}

		return proto.Clone(m).(M)
	}
}

func NewDynamicStack[M proto.Message](opts ...collection.DynamicStackOption[M]) *collection.DynamicStack[M] {
	opts = append([]collection.DynamicStackOption[M]{collection.WithCloner(Cloner[M]())}, opts...)
	return collection.NewDynamicStack[M](opts...)
}

func NewSizedDynamicStack[M proto.Message](capacity int, opts ...collection.DynamicStackOption[M]) (*collection.DynamicStack[M], error) {
	opts = append([]collection.DynamicStackOption[M]{collection.WithCloner(Cloner[M]())}, opts...)
	return collection.NewSizedDynamicStack[M](capacity, opts...)
}

func isNil(m proto.Message) bool {
	if m == nil {
		return true
	}

	return !m.ProtoReflect().IsValid()
}
