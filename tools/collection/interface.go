package collection

// Stack 后进先出容器
type Stack[T any] interface {
	Push(T) error
	Pop() error
	// Top 返回栈顶元素的指针, 在下一次修改操作前有效
	Top() (*T, error)
	Size() int
	Capacity() int
	IsEmpty() bool
}

var _ Stack[int] = (*DynamicStack[int])(nil)
