package collection

import (
	"github.com/mangohow/dynstack/errors"
)

const (
	defaultCapacity = 1
)

// DynamicStack 基于连续缓冲区的栈, 容量不足时按两倍扩容
// 非线程安全, 并发访问需要调用方加锁
//
// buf为nil表示栈已经被move走(drained), 此时除Size/Capacity/IsEmpty之外的操作都返回ErrInvalidState
type DynamicStack[T any] struct {
	buf    []T
	size   int
	cloner func(T) T
}

type DynamicStackOption[T any] func(s *DynamicStack[T])

// WithCloner 设置拷贝元素时使用的函数, 默认按值拷贝
func WithCloner[T any](cloner func(T) T) DynamicStackOption[T] {
	return func(s *DynamicStack[T]) {
		s.cloner = cloner
	}
}

func NewDynamicStack[T any](opts ...DynamicStackOption[T]) *DynamicStack[T] {
	s := &DynamicStack[T]{
		buf: make([]T, defaultCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func NewSizedDynamicStack[T any](capacity int, opts ...DynamicStackOption[T]) (*DynamicStack[T], error) {
	if capacity < 0 {
		return nil, errors.Wrap(errors.ErrInvalidState, "negative capacity %d", capacity)
	}

	s := &DynamicStack[T]{
		buf: make([]T, capacity),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// CloneDynamicStack 拷贝构造, 复制src的全部capacity个槽位
func CloneDynamicStack[T any](src *DynamicStack[T]) (*DynamicStack[T], error) {
	if !src.Valid() {
		return nil, errors.ErrInvalidState
	}

	return &DynamicStack[T]{
		buf:    src.copyBuffer(),
		size:   src.size,
		cloner: src.cloner,
	}, nil
}

// TakeDynamicStack 移动构造, src之后处于drained状态
func TakeDynamicStack[T any](src *DynamicStack[T]) (*DynamicStack[T], error) {
	if !src.Valid() {
		return nil, errors.ErrInvalidState
	}

	s := &DynamicStack[T]{
		buf:    src.buf,
		size:   src.size,
		cloner: src.cloner,
	}
	src.drain()

	return s, nil
}

// CopyFrom 拷贝赋值
func (s *DynamicStack[T]) CopyFrom(src *DynamicStack[T]) error {
	if !s.Valid() || !src.Valid() {
		return errors.ErrInvalidState
	}
	if s == src {
		return nil
	}

	s.buf = src.copyBuffer()
	s.size = src.size
	s.cloner = src.cloner

	if s.buf == nil || len(s.buf) != len(src.buf) || s.size > len(s.buf) {
		return errors.ErrFailedCopyAssign
	}

	return nil
}

// MoveFrom 移动赋值, src之后处于drained状态
func (s *DynamicStack[T]) MoveFrom(src *DynamicStack[T]) error {
	if !s.Valid() || !src.Valid() {
		return errors.ErrInvalidState
	}
	if s == src {
		return nil
	}

	s.buf = src.buf
	s.size = src.size
	s.cloner = src.cloner
	src.drain()

	if s.buf == nil || src.buf != nil {
		return errors.ErrFailedMoveAssign
	}

	return nil
}

func (s *DynamicStack[T]) Push(e T) error {
	if !s.Valid() {
		return errors.ErrInvalidState
	}

	s.reserve(s.size + 1)
	s.buf[s.size] = e
	s.size++

	return nil
}

// PushFrom 将*p压栈后把*p置为零值, 相当于转移所有权
func (s *DynamicStack[T]) PushFrom(p *T) error {
	if p == nil {
		return errors.Wrap(errors.ErrInvalidState, "nil element pointer")
	}
	if err := s.Push(*p); err != nil {
		return err
	}

	*p = *new(T)
	return nil
}

func (s *DynamicStack[T]) Pop() error {
	if !s.Valid() {
		return errors.ErrInvalidState
	}
	if s.size == 0 {
		return errors.ErrEmptyStack
	}

	s.size--
	// 置为0值, 释放元素持有的引用
	s.buf[s.size] = *new(T)

	return nil
}

func (s *DynamicStack[T]) Top() (*T, error) {
	if !s.Valid() {
		return nil, errors.ErrInvalidState
	}
	if s.size == 0 {
		return nil, errors.ErrEmptyStack
	}

	return &s.buf[s.size-1], nil
}

func (s *DynamicStack[T]) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

func (s *DynamicStack[T]) Capacity() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

func (s *DynamicStack[T]) IsEmpty() bool {
	return s.Size() == 0
}

// Valid 是否持有缓冲区
func (s *DynamicStack[T]) Valid() bool {
	return s != nil && s.buf != nil
}

// Values 返回栈中元素的副本, 栈底在前
func (s *DynamicStack[T]) Values() []T {
	if !s.Valid() {
		return nil
	}

	values := make([]T, s.size)
	copy(values, s.buf[:s.size])

	return values
}

// Release 释放缓冲区, 之后栈处于drained状态
func (s *DynamicStack[T]) Release() {
	if s == nil {
		return
	}
	s.drain()
}

// reserve 保证容量至少为n, 新缓冲区填充完成后才替换旧缓冲区
func (s *DynamicStack[T]) reserve(n int) {
	if n <= len(s.buf) {
		return
	}

	newCap := len(s.buf)
	if newCap == 0 {
		newCap = defaultCapacity
	}
	for newCap < n {
		newCap *= 2
	}

	buf := make([]T, newCap)
	copy(buf, s.buf[:s.size])
	s.buf = buf
}

func (s *DynamicStack[T]) copyBuffer() []T {
	buf := make([]T, len(s.buf))
	if s.cloner == nil {
		copy(buf, s.buf)
		return buf
	}

	for i := range s.buf {
		buf[i] = s.cloner(s.buf[i])
	}

	return buf
}

func (s *DynamicStack[T]) drain() {
	s.buf = nil
	s.size = 0
}
