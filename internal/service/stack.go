package service

import (
	"context"

	"github.com/mangohow/dynstack/internal/store"
	"github.com/mangohow/dynstack/llog"
)

// StackService 将HTTP请求转发给store
type StackService struct {
	store *store.Store
}

func NewStackService(s *store.Store) *StackService {
	return &StackService{store: s}
}

func (s *StackService) Create(ctx context.Context, req *CreateRequest) (*store.Info, error) {
	var (
		info store.Info
		err  error
	)
	if req.Capacity == nil {
		info, err = s.store.CreateDefault()
	} else {
		info, err = s.store.Create(*req.Capacity)
	}
	if err != nil {
		return nil, err
	}
	llog.FromContext(ctx).Infow("stack created", "stack", info.ID, "capacity", info.Capacity)

	return &info, nil
}

func (s *StackService) List(_ context.Context, _ *Empty) (*ListReply, error) {
	return &ListReply{Stacks: s.store.List()}, nil
}

func (s *StackService) Get(_ context.Context, req *StackRequest) (*store.Info, error) {
	info, err := s.store.Get(req.ID)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (s *StackService) Delete(ctx context.Context, req *StackRequest) (*Empty, error) {
	if err := s.store.Delete(req.ID); err != nil {
		return nil, err
	}
	llog.FromContext(ctx).Infow("stack deleted", "stack", req.ID)

	return &Empty{}, nil
}

func (s *StackService) Push(_ context.Context, req *PushRequest) (*store.Info, error) {
	info, err := s.store.Push(req.ID, req.Value)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (s *StackService) Pop(_ context.Context, req *StackRequest) (*ValueReply, error) {
	v, err := s.store.Pop(req.ID)
	if err != nil {
		return nil, err
	}

	return &ValueReply{ID: req.ID, Value: v}, nil
}

func (s *StackService) Top(_ context.Context, req *StackRequest) (*ValueReply, error) {
	v, err := s.store.Top(req.ID)
	if err != nil {
		return nil, err
	}

	return &ValueReply{ID: req.ID, Value: v}, nil
}

func (s *StackService) Clone(ctx context.Context, req *StackRequest) (*store.Info, error) {
	info, err := s.store.Clone(req.ID)
	if err != nil {
		return nil, err
	}
	llog.FromContext(ctx).Infow("stack cloned", "stack", req.ID, "clone", info.ID)

	return &info, nil
}

func (s *StackService) Move(ctx context.Context, req *MoveRequest) (*store.Info, error) {
	info, err := s.store.Move(req.ID, req.To)
	if err != nil {
		return nil, err
	}
	llog.FromContext(ctx).Infow("stack moved", "stack", req.ID, "to", req.To)

	return &info, nil
}
