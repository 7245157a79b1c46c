package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/matchup-backend/internal/combatant"
	"github.com/xtding233/matchup-backend/internal/constants"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/matchup"
	"github.com/xtding233/matchup-backend/internal/trainer"
)

const (
	serviceName           = "matchup.v1.Matchup"
	calculateMethod       = "/" + serviceName + "/Calculate"
	listTrainerSetsMethod = "/" + serviceName + "/ListTrainerSets"
)

// MatchupServer is the server API for the matchup.v1.Matchup service.
// Messages are google.protobuf.Struct documents shaped like the HTTP API's
// JSON bodies.
type MatchupServer interface {
	Calculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTrainerSets(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes matchup.v1.Matchup for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*MatchupServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Calculate", Handler: calculateHandler},
		{MethodName: "ListTrainerSets", Handler: listTrainerSetsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "matchup/v1/matchup.proto",
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv MatchupServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func calculateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchupServer).Calculate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: calculateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchupServer).Calculate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listTrainerSetsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MatchupServer).ListTrainerSets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listTrainerSetsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MatchupServer).ListTrainerSets(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server implements MatchupServer on top of a matchup.Service.
type Server struct {
	svc *matchup.Service
}

func NewServer(svc *matchup.Service) *Server {
	return &Server{svc: svc}
}

// TrainerQuery is the ListTrainerSets request.
type TrainerQuery struct {
	Generation int    `json:"generation"`
	Trainer    string `json:"trainer"`
}

// TrainerSets is the ListTrainerSets response.
type TrainerSets struct {
	Sets []trainer.Match `json:"sets"`
}

func (s *Server) Calculate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req matchup.Request
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, constants.ErrInvalidRequest)
	}
	res, err := s.svc.Calculate(req)
	if err != nil {
		return nil, status.Error(codeFor(err), err.Error())
	}
	return toStruct(res)
}

func (s *Server) ListTrainerSets(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var q TrainerQuery
	if err := fromStruct(in, &q); err != nil {
		return nil, status.Error(codes.InvalidArgument, constants.ErrInvalidRequest)
	}
	matches, err := s.svc.TrainerSets(q.Generation, q.Trainer)
	if err != nil {
		return nil, status.Error(codeFor(err), err.Error())
	}
	return toStruct(TrainerSets{Sets: matches})
}

// codeFor maps service errors to gRPC codes, mirroring the HTTP mapping.
func codeFor(err error) codes.Code {
	var (
		speciesErr   *trainer.SpeciesNotFoundError
		setErr       *trainer.TrainerSetNotFoundError
		combatantErr *matchup.CombatantError
	)
	switch {
	case errors.Is(err, combatant.ErrMissingPokemonName):
		return codes.InvalidArgument
	case errors.Is(err, dataset.ErrDatasetNotFound),
		errors.As(err, &speciesErr),
		errors.As(err, &setErr):
		return codes.NotFound
	case errors.As(err, &combatantErr):
		return codes.FailedPrecondition
	}
	return codes.Internal
}

// fromStruct decodes a Struct into v through its JSON form.
func fromStruct(in *structpb.Struct, v interface{}) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// toStruct encodes v as a Struct through its JSON form.
func toStruct(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// LoggingInterceptor logs every unary call with its outcome.
func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	fields := logging.Fields{
		constants.LogFieldMethod:  info.FullMethod,
		constants.LogFieldStatus:  status.Code(err).String(),
		constants.LogFieldLatency: time.Since(start).String(),
	}
	if err != nil {
		logging.Warn("rpc failed", err, fields)
	} else {
		logging.Debug("rpc", fields)
	}
	return resp, err
}
