package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/rpg-tables/internal/pkg/jsoncodec"
)

// TableServiceName is the fully qualified gRPC service name
const TableServiceName = "rpgtables.api.v1alpha1.TableService"

// TableServiceServer is the server API for TableService
type TableServiceServer interface {
	RollDice(context.Context, *RollDiceRequest) (*RollDiceResponse, error)
	GetRollSession(context.Context, *GetRollSessionRequest) (*GetRollSessionResponse, error)
	ClearRollSession(context.Context, *ClearRollSessionRequest) (*ClearRollSessionResponse, error)
	ResolveTable(context.Context, *ResolveTableRequest) (*ResolveTableResponse, error)
	RollOnTable(context.Context, *RollOnTableRequest) (*RollOnTableResponse, error)
	SaveTable(context.Context, *SaveTableRequest) (*SaveTableResponse, error)
	GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error)
	ListTables(context.Context, *ListTablesRequest) (*ListTablesResponse, error)
	DeleteTable(context.Context, *DeleteTableRequest) (*DeleteTableResponse, error)
}

// TableServiceDesc describes TableService for grpc.Server. Messages are
// plain structs declared in messages.go, so callers must use the json
// content-subtype and reflection lists the methods without schemas.
var TableServiceDesc = grpc.ServiceDesc{
	ServiceName: TableServiceName,
	HandlerType: (*TableServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RollDice", Handler: unaryHandler("RollDice", TableServiceServer.RollDice)},
		{MethodName: "GetRollSession", Handler: unaryHandler("GetRollSession", TableServiceServer.GetRollSession)},
		{MethodName: "ClearRollSession", Handler: unaryHandler("ClearRollSession", TableServiceServer.ClearRollSession)},
		{MethodName: "ResolveTable", Handler: unaryHandler("ResolveTable", TableServiceServer.ResolveTable)},
		{MethodName: "RollOnTable", Handler: unaryHandler("RollOnTable", TableServiceServer.RollOnTable)},
		{MethodName: "SaveTable", Handler: unaryHandler("SaveTable", TableServiceServer.SaveTable)},
		{MethodName: "GetTable", Handler: unaryHandler("GetTable", TableServiceServer.GetTable)},
		{MethodName: "ListTables", Handler: unaryHandler("ListTables", TableServiceServer.ListTables)},
		{MethodName: "DeleteTable", Handler: unaryHandler("DeleteTable", TableServiceServer.DeleteTable)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/handlers/api/v1alpha1/messages.go",
}

// RegisterTableServiceServer registers srv on s
func RegisterTableServiceServer(s grpc.ServiceRegistrar, srv TableServiceServer) {
	s.RegisterService(&TableServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + TableServiceName + "/" + method
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// it through the server's interceptor chain the way generated code does
func unaryHandler[Req, Resp any](
	method string,
	call func(TableServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TableServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TableServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TableServiceClient is the client API for TableService
type TableServiceClient interface {
	RollDice(ctx context.Context, in *RollDiceRequest, opts ...grpc.CallOption) (*RollDiceResponse, error)
	GetRollSession(ctx context.Context, in *GetRollSessionRequest, opts ...grpc.CallOption) (*GetRollSessionResponse, error)
	ClearRollSession(ctx context.Context, in *ClearRollSessionRequest, opts ...grpc.CallOption) (*ClearRollSessionResponse, error)
	ResolveTable(ctx context.Context, in *ResolveTableRequest, opts ...grpc.CallOption) (*ResolveTableResponse, error)
	RollOnTable(ctx context.Context, in *RollOnTableRequest, opts ...grpc.CallOption) (*RollOnTableResponse, error)
	SaveTable(ctx context.Context, in *SaveTableRequest, opts ...grpc.CallOption) (*SaveTableResponse, error)
	GetTable(ctx context.Context, in *GetTableRequest, opts ...grpc.CallOption) (*GetTableResponse, error)
	ListTables(ctx context.Context, in *ListTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error)
	DeleteTable(ctx context.Context, in *DeleteTableRequest, opts ...grpc.CallOption) (*DeleteTableResponse, error)
}

type tableServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTableServiceClient returns a client that sends every call with the
// json content-subtype
func NewTableServiceClient(cc grpc.ClientConnInterface) TableServiceClient {
	return &tableServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tableServiceClient) RollDice(ctx context.Context, in *RollDiceRequest, opts ...grpc.CallOption) (*RollDiceResponse, error) {
	return invoke[RollDiceResponse](ctx, c.cc, "RollDice", in, opts)
}

func (c *tableServiceClient) GetRollSession(ctx context.Context, in *GetRollSessionRequest, opts ...grpc.CallOption) (*GetRollSessionResponse, error) {
	return invoke[GetRollSessionResponse](ctx, c.cc, "GetRollSession", in, opts)
}

func (c *tableServiceClient) ClearRollSession(ctx context.Context, in *ClearRollSessionRequest, opts ...grpc.CallOption) (*ClearRollSessionResponse, error) {
	return invoke[ClearRollSessionResponse](ctx, c.cc, "ClearRollSession", in, opts)
}

func (c *tableServiceClient) ResolveTable(ctx context.Context, in *ResolveTableRequest, opts ...grpc.CallOption) (*ResolveTableResponse, error) {
	return invoke[ResolveTableResponse](ctx, c.cc, "ResolveTable", in, opts)
}

func (c *tableServiceClient) RollOnTable(ctx context.Context, in *RollOnTableRequest, opts ...grpc.CallOption) (*RollOnTableResponse, error) {
	return invoke[RollOnTableResponse](ctx, c.cc, "RollOnTable", in, opts)
}

func (c *tableServiceClient) SaveTable(ctx context.Context, in *SaveTableRequest, opts ...grpc.CallOption) (*SaveTableResponse, error) {
	return invoke[SaveTableResponse](ctx, c.cc, "SaveTable", in, opts)
}

func (c *tableServiceClient) GetTable(ctx context.Context, in *GetTableRequest, opts ...grpc.CallOption) (*GetTableResponse, error) {
	return invoke[GetTableResponse](ctx, c.cc, "GetTable", in, opts)
}

func (c *tableServiceClient) ListTables(ctx context.Context, in *ListTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error) {
	return invoke[ListTablesResponse](ctx, c.cc, "ListTables", in, opts)
}

func (c *tableServiceClient) DeleteTable(ctx context.Context, in *DeleteTableRequest, opts ...grpc.CallOption) (*DeleteTableResponse, error) {
	return invoke[DeleteTableResponse](ctx, c.cc, "DeleteTable", in, opts)
}
