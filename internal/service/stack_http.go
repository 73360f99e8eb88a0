package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mangohow/dynstack/errors"
	"github.com/mangohow/dynstack/internal/store"
	transport "github.com/mangohow/dynstack/transport/http"
)

type StackServiceHTTPServer interface {
	Create(context.Context, *CreateRequest) (*store.Info, error)
	List(context.Context, *Empty) (*ListReply, error)
	Get(context.Context, *StackRequest) (*store.Info, error)
	Delete(context.Context, *StackRequest) (*Empty, error)
	Push(context.Context, *PushRequest) (*store.Info, error)
	Pop(context.Context, *StackRequest) (*ValueReply, error)
	Top(context.Context, *StackRequest) (*ValueReply, error)
	Clone(context.Context, *StackRequest) (*store.Info, error)
	Move(context.Context, *MoveRequest) (*store.Info, error)
}

func RegisterStackServiceHTTPServer(s *transport.Server, srv StackServiceHTTPServer) {
	s.RegisterService(&StackServiceDesc, srv)
}

var StackServiceDesc = transport.ServiceDesc{
	ServiceName: "stack.v1.StackService",
	HandlerType: (*StackServiceHTTPServer)(nil),
	Methods: []transport.MethodDesc{
		{Method: http.MethodPost, Path: "/api/v1/stacks", Handler: _StackService_Create_HTTP_Handler},
		{Method: http.MethodGet, Path: "/api/v1/stacks", Handler: _StackService_List_HTTP_Handler},
		{Method: http.MethodGet, Path: "/api/v1/stacks/{id}", Handler: _StackService_Get_HTTP_Handler},
		{Method: http.MethodDelete, Path: "/api/v1/stacks/{id}", Handler: _StackService_Delete_HTTP_Handler},
		{Method: http.MethodPost, Path: "/api/v1/stacks/{id}/push", Handler: _StackService_Push_HTTP_Handler},
		{Method: http.MethodPost, Path: "/api/v1/stacks/{id}/pop", Handler: _StackService_Pop_HTTP_Handler},
		{Method: http.MethodGet, Path: "/api/v1/stacks/{id}/top", Handler: _StackService_Top_HTTP_Handler},
		{Method: http.MethodPost, Path: "/api/v1/stacks/{id}/clone", Handler: _StackService_Clone_HTTP_Handler},
		{Method: http.MethodPost, Path: "/api/v1/stacks/{id}/move", Handler: _StackService_Move_HTTP_Handler},
	},
}

func badRequest(err error) error {
	return errors.Wrap(errors.ErrBadRequest, "%v", err)
}

func bindPath(ctx context.Context, in any) error {
	if err := transport.FromContext(ctx).BindPathVar(in); err != nil {
		return badRequest(err)
	}
	return nil
}

func _StackService_Create_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in CreateRequest
	if err := transport.FromContext(ctx).BindForm(&in); err != nil {
		return nil, badRequest(err)
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Create(ctx, req.(*CreateRequest))
	})
}

func _StackService_List_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	return m(ctx, &Empty{}, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).List(ctx, req.(*Empty))
	})
}

func _StackService_Get_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in StackRequest
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Get(ctx, req.(*StackRequest))
	})
}

func _StackService_Delete_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in StackRequest
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Delete(ctx, req.(*StackRequest))
	})
}

func _StackService_Push_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in PushRequest
	if err := transport.FromContext(ctx).BindForm(&in); err != nil {
		return nil, badRequest(err)
	}
	// 路径参数优先于body
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Push(ctx, req.(*PushRequest))
	})
}

func _StackService_Pop_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in StackRequest
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Pop(ctx, req.(*StackRequest))
	})
}

func _StackService_Top_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in StackRequest
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Top(ctx, req.(*StackRequest))
	})
}

func _StackService_Clone_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in StackRequest
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Clone(ctx, req.(*StackRequest))
	})
}

func _StackService_Move_HTTP_Handler(ctx context.Context, srv any, m transport.Middleware) (any, error) {
	var in MoveRequest
	if err := transport.FromContext(ctx).BindQuery(&in); err != nil {
		return nil, badRequest(err)
	}
	if err := bindPath(ctx, &in); err != nil {
		return nil, err
	}
	if in.To == "" {
		return nil, badRequest(fmt.Errorf("missing move destination"))
	}

	return m(ctx, &in, func(ctx context.Context, req any) (any, error) {
		return srv.(StackServiceHTTPServer).Move(ctx, req.(*MoveRequest))
	})
}
