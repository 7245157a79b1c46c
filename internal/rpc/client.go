package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/matchup-backend/internal/matchup"
	"github.com/xtding233/matchup-backend/internal/trainer"
)

// Client calls a remote matchup.v1.Matchup service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Calculate sends req and decodes the Result.
func (c *Client) Calculate(ctx context.Context, req matchup.Request, opts ...grpc.CallOption) (matchup.Result, error) {
	var res matchup.Result
	err := c.invoke(ctx, calculateMethod, req, &res, opts...)
	return res, err
}

// ListTrainerSets returns every set in gen matching trainerName.
func (c *Client) ListTrainerSets(ctx context.Context, gen int, trainerName string, opts ...grpc.CallOption) ([]trainer.Match, error) {
	var out TrainerSets
	if err := c.invoke(ctx, listTrainerSetsMethod, TrainerQuery{Generation: gen, Trainer: trainerName}, &out, opts...); err != nil {
		return nil, err
	}
	if out.Sets == nil {
		out.Sets = []trainer.Match{}
	}
	return out.Sets, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	req, err := toStruct(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, resp, opts...); err != nil {
		return err
	}
	return fromStruct(resp, out)
}
