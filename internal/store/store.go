// Package store 管理一组命名的字符串栈
//
// DynamicStack 不是线程安全的, Store 为每个栈持有一把锁, 所有访问都在锁内完成
package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mangohow/dynstack/errors"
	"github.com/mangohow/dynstack/llog"
	"github.com/mangohow/dynstack/tools/collection"
)

// Info 栈的快照
type Info struct {
	ID       string   `json:"id"`
	Size     int      `json:"size"`
	Capacity int      `json:"capacity"`
	Empty    bool     `json:"empty"`
	Values   []string `json:"values"`
}

type entry struct {
	mu    sync.Mutex
	stack *collection.DynamicStack[string]
}

func (e *entry) info(id string) Info {
	return Info{
		ID:       id,
		Size:     e.stack.Size(),
		Capacity: e.stack.Capacity(),
		Empty:    e.stack.IsEmpty(),
		Values:   e.stack.Values(),
	}
}

type Store struct {
	mu              sync.RWMutex
	stacks          map[string]*entry
	defaultCapacity int
	newID           func() string
}

type Option func(s *Store)

// WithDefaultCapacity 创建时未指定容量使用的容量
func WithDefaultCapacity(capacity int) Option {
	return func(s *Store) {
		s.defaultCapacity = capacity
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		stacks: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.defaultCapacity <= 0 {
		s.defaultCapacity = 1
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	return s
}

// CreateDefault 使用默认容量创建一个栈
func (s *Store) CreateDefault() (Info, error) {
	return s.Create(s.defaultCapacity)
}

// Create 创建一个容量为capacity的栈, 容量为0的栈在第一次Push时扩容到1
func (s *Store) Create(capacity int) (Info, error) {
	st, err := collection.NewSizedDynamicStack[string](capacity)
	if err != nil {
		return Info{}, err
	}

	return s.add(&entry{stack: st}), nil
}

func (s *Store) Get(id string) (Info, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Info{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.info(id), nil
}

func (s *Store) List() []Info {
	s.mu.RLock()
	ids := make([]string, 0, len(s.stacks))
	entries := make([]*entry, 0, len(s.stacks))
	for id, e := range s.stacks {
		ids = append(ids, id)
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	infos := make([]Info, 0, len(ids))
	for i, e := range entries {
		e.mu.Lock()
		if e.stack.Valid() {
			infos = append(infos, e.info(ids[i]))
		}
		e.mu.Unlock()
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	return infos
}

func (s *Store) Push(id, value string) (Info, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Info{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.stack.Push(value); err != nil {
		return Info{}, err
	}
	llog.GetLogger().Debugw("push", "stack", id, "size", e.stack.Size(), "capacity", e.stack.Capacity())

	return e.info(id), nil
}

// Pop 弹出栈顶元素并返回其值
func (s *Store) Pop(id string) (string, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	top, err := e.stack.Top()
	if err != nil {
		return "", err
	}
	value := *top

	if err := e.stack.Pop(); err != nil {
		return "", err
	}
	llog.GetLogger().Debugw("pop", "stack", id, "size", e.stack.Size())

	return value, nil
}

func (s *Store) Top(id string) (string, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	top, err := e.stack.Top()
	if err != nil {
		return "", err
	}

	return *top, nil
}

// Clone 拷贝一个栈, 新栈使用新的id
func (s *Store) Clone(id string) (Info, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Info{}, err
	}

	e.mu.Lock()
	cp, err := collection.CloneDynamicStack(e.stack)
	e.mu.Unlock()
	if err != nil {
		return Info{}, err
	}

	info := s.add(&entry{stack: cp})
	llog.GetLogger().Debugw("clone", "stack", id, "to", info.ID)

	return info, nil
}

// Move 将src移动赋值给dst, src之后被移除
func (s *Store) Move(src, dst string) (Info, error) {
	if src == dst {
		return s.Get(dst)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.stacks[src]
	if !ok {
		return Info{}, notFound(src)
	}
	to, ok := s.stacks[dst]
	if !ok {
		return Info{}, notFound(dst)
	}

	// 按id顺序加锁, 避免相向的Move死锁
	first, second := from, to
	if dst < src {
		first, second = to, from
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := to.stack.MoveFrom(from.stack); err != nil {
		return Info{}, err
	}
	delete(s.stacks, src)
	llog.GetLogger().Debugw("move", "stack", src, "to", dst, "size", to.stack.Size())

	return to.info(dst), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.stacks[id]
	if ok {
		delete(s.stacks, id)
	}
	s.mu.Unlock()

	if !ok {
		return notFound(id)
	}

	e.mu.Lock()
	e.stack.Release()
	e.mu.Unlock()
	llog.GetLogger().Debugw("delete", "stack", id)

	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stacks)
}

func (s *Store) add(e *entry) Info {
	s.mu.Lock()
	id := s.newID()
	info := e.info(id)
	s.stacks[id] = e
	s.mu.Unlock()

	llog.GetLogger().Debugw("create", "stack", id, "capacity", info.Capacity)

	return info
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.stacks[id]
	if !ok {
		return nil, notFound(id)
	}

	return e, nil
}

func notFound(id string) error {
	return errors.Wrap(errors.ErrNotFound, "stack %s not found", id)
}
