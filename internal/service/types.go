package service

import "github.com/mangohow/dynstack/internal/store"

// CreateRequest Capacity为nil时使用默认容量
type CreateRequest struct {
	Capacity *int `json:"capacity"`
}

type StackRequest struct {
	ID string `json:"id"`
}

type PushRequest struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type MoveRequest struct {
	ID string `json:"id"`
	To string `json:"to"`
}

type ValueReply struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type ListReply struct {
	Stacks []store.Info `json:"stacks"`
}

type Empty struct{}
