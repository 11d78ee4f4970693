// Package txnpb holds the wire types exchanged between data tablets and
// the transaction status tablet. Kept in sync with
// proto/proto/txnpb.proto; messages marshal through the proto struct
// tags.
package txnpb

import (
	context "context"
	fmt "fmt"

	proto "github.com/golang/protobuf/proto"
	grpc "google.golang.org/grpc"
)

type TransactionStatus int32

const (
	TransactionStatus_PENDING   TransactionStatus = 0
	TransactionStatus_COMMITTED TransactionStatus = 1
	TransactionStatus_ABORTED   TransactionStatus = 2
	// Reported by an involved tablet back to the status tablet once the
	// transaction's intents have been applied on that tablet.
	TransactionStatus_APPLIED_IN_ONE_OF_INVOLVED_TABLETS TransactionStatus = 3
	// Sent by the status tablet to involved tablets to request apply.
	TransactionStatus_APPLYING TransactionStatus = 4
)

var TransactionStatus_name = map[int32]string{
	0: "PENDING",
	1: "COMMITTED",
	2: "ABORTED",
	3: "APPLIED_IN_ONE_OF_INVOLVED_TABLETS",
	4: "APPLYING",
}

var TransactionStatus_value = map[string]int32{
	"PENDING":                            0,
	"COMMITTED":                          1,
	"ABORTED":                            2,
	"APPLIED_IN_ONE_OF_INVOLVED_TABLETS": 3,
	"APPLYING":                           4,
}

func (x TransactionStatus) String() string {
	if name, ok := TransactionStatus_name[int32(x)]; ok {
		return name
	}
	return fmt.Sprintf("TransactionStatus(%d)", int32(x))
}

type IsolationLevel int32

const (
	IsolationLevel_SNAPSHOT_ISOLATION     IsolationLevel = 0
	IsolationLevel_SERIALIZABLE_ISOLATION IsolationLevel = 1
)

var IsolationLevel_name = map[int32]string{
	0: "SNAPSHOT_ISOLATION",
	1: "SERIALIZABLE_ISOLATION",
}

var IsolationLevel_value = map[string]int32{
	"SNAPSHOT_ISOLATION":     0,
	"SERIALIZABLE_ISOLATION": 1,
}

func (x IsolationLevel) String() string {
	if name, ok := IsolationLevel_name[int32(x)]; ok {
		return name
	}
	return fmt.Sprintf("IsolationLevel(%d)", int32(x))
}

// TransactionMeta is both the wire form of transaction metadata and the
// value stored under the per-transaction metadata key.
type TransactionMeta struct {
	TransactionId   []byte         `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
	Isolation       IsolationLevel `protobuf:"varint,2,opt,name=isolation,proto3,enum=txnpb.IsolationLevel" json:"isolation,omitempty"`
	StatusTablet    string         `protobuf:"bytes,3,opt,name=status_tablet,json=statusTablet,proto3" json:"status_tablet,omitempty"`
	Priority        uint64         `protobuf:"varint,4,opt,name=priority,proto3" json:"priority,omitempty"`
	StartHybridTime uint64         `protobuf:"varint,5,opt,name=start_hybrid_time,json=startHybridTime,proto3" json:"start_hybrid_time,omitempty"`
}

func (m *TransactionMeta) Reset()         { *m = TransactionMeta{} }
func (m *TransactionMeta) String() string { return proto.CompactTextString(m) }
func (*TransactionMeta) ProtoMessage()    {}

func (m *TransactionMeta) GetTransactionId() []byte {
	if m != nil {
		return m.TransactionId
	}
	return nil
}

func (m *TransactionMeta) GetIsolation() IsolationLevel {
	if m != nil {
		return m.Isolation
	}
	return IsolationLevel_SNAPSHOT_ISOLATION
}

func (m *TransactionMeta) GetStatusTablet() string {
	if m != nil {
		return m.StatusTablet
	}
	return ""
}

func (m *TransactionMeta) GetPriority() uint64 {
	if m != nil {
		return m.Priority
	}
	return 0
}

func (m *TransactionMeta) GetStartHybridTime() uint64 {
	if m != nil {
		return m.StartHybridTime
	}
	return 0
}

type GetTransactionStatusRequest struct {
	TabletId      string `protobuf:"bytes,1,opt,name=tablet_id,json=tabletId,proto3" json:"tablet_id,omitempty"`
	TransactionId []byte `protobuf:"bytes,2,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
}

func (m *GetTransactionStatusRequest) Reset()         { *m = GetTransactionStatusRequest{} }
func (m *GetTransactionStatusRequest) String() string { return proto.CompactTextString(m) }
func (*GetTransactionStatusRequest) ProtoMessage()    {}

func (m *GetTransactionStatusRequest) GetTabletId() string {
	if m != nil {
		return m.TabletId
	}
	return ""
}

func (m *GetTransactionStatusRequest) GetTransactionId() []byte {
	if m != nil {
		return m.TransactionId
	}
	return nil
}

type GetTransactionStatusResponse struct {
	Status TransactionStatus `protobuf:"varint,1,opt,name=status,proto3,enum=txnpb.TransactionStatus" json:"status,omitempty"`
	// Hybrid time at which the reported status was known to hold. Zero
	// (unset) is only legal for ABORTED, which holds at every time.
	StatusHybridTime uint64 `protobuf:"varint,2,opt,name=status_hybrid_time,json=statusHybridTime,proto3" json:"status_hybrid_time,omitempty"`
}

func (m *GetTransactionStatusResponse) Reset()         { *m = GetTransactionStatusResponse{} }
func (m *GetTransactionStatusResponse) String() string { return proto.CompactTextString(m) }
func (*GetTransactionStatusResponse) ProtoMessage()    {}

func (m *GetTransactionStatusResponse) GetStatus() TransactionStatus {
	if m != nil {
		return m.Status
	}
	return TransactionStatus_PENDING
}

func (m *GetTransactionStatusResponse) GetStatusHybridTime() uint64 {
	if m != nil {
		return m.StatusHybridTime
	}
	return 0
}

type AbortTransactionRequest struct {
	TabletId      string `protobuf:"bytes,1,opt,name=tablet_id,json=tabletId,proto3" json:"tablet_id,omitempty"`
	TransactionId []byte `protobuf:"bytes,2,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
}

func (m *AbortTransactionRequest) Reset()         { *m = AbortTransactionRequest{} }
func (m *AbortTransactionRequest) String() string { return proto.CompactTextString(m) }
func (*AbortTransactionRequest) ProtoMessage()    {}

func (m *AbortTransactionRequest) GetTabletId() string {
	if m != nil {
		return m.TabletId
	}
	return ""
}

func (m *AbortTransactionRequest) GetTransactionId() []byte {
	if m != nil {
		return m.TransactionId
	}
	return nil
}

type AbortTransactionResponse struct {
	Status           TransactionStatus `protobuf:"varint,1,opt,name=status,proto3,enum=txnpb.TransactionStatus" json:"status,omitempty"`
	StatusHybridTime uint64            `protobuf:"varint,2,opt,name=status_hybrid_time,json=statusHybridTime,proto3" json:"status_hybrid_time,omitempty"`
}

func (m *AbortTransactionResponse) Reset()         { *m = AbortTransactionResponse{} }
func (m *AbortTransactionResponse) String() string { return proto.CompactTextString(m) }
func (*AbortTransactionResponse) ProtoMessage()    {}

func (m *AbortTransactionResponse) GetStatus() TransactionStatus {
	if m != nil {
		return m.Status
	}
	return TransactionStatus_PENDING
}

func (m *AbortTransactionResponse) GetStatusHybridTime() uint64 {
	if m != nil {
		return m.StatusHybridTime
	}
	return 0
}

type TransactionState struct {
	TransactionId []byte            `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
	Status        TransactionStatus `protobuf:"varint,2,opt,name=status,proto3,enum=txnpb.TransactionStatus" json:"status,omitempty"`
	Tablets       []string          `protobuf:"bytes,3,rep,name=tablets,proto3" json:"tablets,omitempty"`
}

func (m *TransactionState) Reset()         { *m = TransactionState{} }
func (m *TransactionState) String() string { return proto.CompactTextString(m) }
func (*TransactionState) ProtoMessage()    {}

func (m *TransactionState) GetTransactionId() []byte {
	if m != nil {
		return m.TransactionId
	}
	return nil
}

func (m *TransactionState) GetStatus() TransactionStatus {
	if m != nil {
		return m.Status
	}
	return TransactionStatus_PENDING
}

func (m *TransactionState) GetTablets() []string {
	if m != nil {
		return m.Tablets
	}
	return nil
}

type UpdateTransactionRequest struct {
	TabletId string            `protobuf:"bytes,1,opt,name=tablet_id,json=tabletId,proto3" json:"tablet_id,omitempty"`
	State    *TransactionState `protobuf:"bytes,2,opt,name=state,proto3" json:"state,omitempty"`
}

func (m *UpdateTransactionRequest) Reset()         { *m = UpdateTransactionRequest{} }
func (m *UpdateTransactionRequest) String() string { return proto.CompactTextString(m) }
func (*UpdateTransactionRequest) ProtoMessage()    {}

func (m *UpdateTransactionRequest) GetTabletId() string {
	if m != nil {
		return m.TabletId
	}
	return ""
}

func (m *UpdateTransactionRequest) GetState() *TransactionState {
	if m != nil {
		return m.State
	}
	return nil
}

type UpdateTransactionResponse struct {
}

func (m *UpdateTransactionResponse) Reset()         { *m = UpdateTransactionResponse{} }
func (m *UpdateTransactionResponse) String() string { return proto.CompactTextString(m) }
func (*UpdateTransactionResponse) ProtoMessage()    {}

type ApplyTransactionRequest struct {
	TabletId         string `protobuf:"bytes,1,opt,name=tablet_id,json=tabletId,proto3" json:"tablet_id,omitempty"`
	TransactionId    []byte `protobuf:"bytes,2,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
	StatusTablet     string `protobuf:"bytes,3,opt,name=status_tablet,json=statusTablet,proto3" json:"status_tablet,omitempty"`
	CommitHybridTime uint64 `protobuf:"varint,4,opt,name=commit_hybrid_time,json=commitHybridTime,proto3" json:"commit_hybrid_time,omitempty"`
}

func (m *ApplyTransactionRequest) Reset()         { *m = ApplyTransactionRequest{} }
func (m *ApplyTransactionRequest) String() string { return proto.CompactTextString(m) }
func (*ApplyTransactionRequest) ProtoMessage()    {}

func (m *ApplyTransactionRequest) GetTabletId() string {
	if m != nil {
		return m.TabletId
	}
	return ""
}

func (m *ApplyTransactionRequest) GetTransactionId() []byte {
	if m != nil {
		return m.TransactionId
	}
	return nil
}

func (m *ApplyTransactionRequest) GetStatusTablet() string {
	if m != nil {
		return m.StatusTablet
	}
	return ""
}

func (m *ApplyTransactionRequest) GetCommitHybridTime() uint64 {
	if m != nil {
		return m.CommitHybridTime
	}
	return 0
}

type ApplyTransactionResponse struct {
}

func (m *ApplyTransactionResponse) Reset()         { *m = ApplyTransactionResponse{} }
func (m *ApplyTransactionResponse) String() string { return proto.CompactTextString(m) }
func (*ApplyTransactionResponse) ProtoMessage()    {}

type CheckTxnStatusRequest struct {
	TransactionId []byte `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
	HybridTime    uint64 `protobuf:"varint,2,opt,name=hybrid_time,json=hybridTime,proto3" json:"hybrid_time,omitempty"`
}

func (m *CheckTxnStatusRequest) Reset()         { *m = CheckTxnStatusRequest{} }
func (m *CheckTxnStatusRequest) String() string { return proto.CompactTextString(m) }
func (*CheckTxnStatusRequest) ProtoMessage()    {}

func (m *CheckTxnStatusRequest) GetTransactionId() []byte {
	if m != nil {
		return m.TransactionId
	}
	return nil
}

func (m *CheckTxnStatusRequest) GetHybridTime() uint64 {
	if m != nil {
		return m.HybridTime
	}
	return 0
}

type CheckTxnStatusResponse struct {
	Status           TransactionStatus `protobuf:"varint,1,opt,name=status,proto3,enum=txnpb.TransactionStatus" json:"status,omitempty"`
	StatusHybridTime uint64            `protobuf:"varint,2,opt,name=status_hybrid_time,json=statusHybridTime,proto3" json:"status_hybrid_time,omitempty"`
}

func (m *CheckTxnStatusResponse) Reset()         { *m = CheckTxnStatusResponse{} }
func (m *CheckTxnStatusResponse) String() string { return proto.CompactTextString(m) }
func (*CheckTxnStatusResponse) ProtoMessage()    {}

func (m *CheckTxnStatusResponse) GetStatus() TransactionStatus {
	if m != nil {
		return m.Status
	}
	return TransactionStatus_PENDING
}

func (m *CheckTxnStatusResponse) GetStatusHybridTime() uint64 {
	if m != nil {
		return m.StatusHybridTime
	}
	return 0
}

func init() {
	proto.RegisterEnum("txnpb.TransactionStatus", TransactionStatus_name, TransactionStatus_value)
	proto.RegisterEnum("txnpb.IsolationLevel", IsolationLevel_name, IsolationLevel_value)
	proto.RegisterType((*TransactionMeta)(nil), "txnpb.TransactionMeta")
	proto.RegisterType((*GetTransactionStatusRequest)(nil), "txnpb.GetTransactionStatusRequest")
	proto.RegisterType((*GetTransactionStatusResponse)(nil), "txnpb.GetTransactionStatusResponse")
	proto.RegisterType((*AbortTransactionRequest)(nil), "txnpb.AbortTransactionRequest")
	proto.RegisterType((*AbortTransactionResponse)(nil), "txnpb.AbortTransactionResponse")
	proto.RegisterType((*TransactionState)(nil), "txnpb.TransactionState")
	proto.RegisterType((*UpdateTransactionRequest)(nil), "txnpb.UpdateTransactionRequest")
	proto.RegisterType((*UpdateTransactionResponse)(nil), "txnpb.UpdateTransactionResponse")
	proto.RegisterType((*ApplyTransactionRequest)(nil), "txnpb.ApplyTransactionRequest")
	proto.RegisterType((*ApplyTransactionResponse)(nil), "txnpb.ApplyTransactionResponse")
	proto.RegisterType((*CheckTxnStatusRequest)(nil), "txnpb.CheckTxnStatusRequest")
	proto.RegisterType((*CheckTxnStatusResponse)(nil), "txnpb.CheckTxnStatusResponse")
}

// StatusTabletClient is the client API for the StatusTablet service.
type StatusTabletClient interface {
	GetTransactionStatus(ctx context.Context, in *GetTransactionStatusRequest, opts ...grpc.CallOption) (*GetTransactionStatusResponse, error)
	AbortTransaction(ctx context.Context, in *AbortTransactionRequest, opts ...grpc.CallOption) (*AbortTransactionResponse, error)
	UpdateTransaction(ctx context.Context, in *UpdateTransactionRequest, opts ...grpc.CallOption) (*UpdateTransactionResponse, error)
}

type statusTabletClient struct {
	cc *grpc.ClientConn
}

func NewStatusTabletClient(cc *grpc.ClientConn) StatusTabletClient {
	return &statusTabletClient{cc}
}

func (c *statusTabletClient) GetTransactionStatus(ctx context.Context, in *GetTransactionStatusRequest, opts ...grpc.CallOption) (*GetTransactionStatusResponse, error) {
	out := new(GetTransactionStatusResponse)
	err := c.cc.Invoke(ctx, "/txnpb.StatusTablet/GetTransactionStatus", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *statusTabletClient) AbortTransaction(ctx context.Context, in *AbortTransactionRequest, opts ...grpc.CallOption) (*AbortTransactionResponse, error) {
	out := new(AbortTransactionResponse)
	err := c.cc.Invoke(ctx, "/txnpb.StatusTablet/AbortTransaction", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *statusTabletClient) UpdateTransaction(ctx context.Context, in *UpdateTransactionRequest, opts ...grpc.CallOption) (*UpdateTransactionResponse, error) {
	out := new(UpdateTransactionResponse)
	err := c.cc.Invoke(ctx, "/txnpb.StatusTablet/UpdateTransaction", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StatusTabletServer is the server API for the StatusTablet service.
type StatusTabletServer interface {
	GetTransactionStatus(context.Context, *GetTransactionStatusRequest) (*GetTransactionStatusResponse, error)
	AbortTransaction(context.Context, *AbortTransactionRequest) (*AbortTransactionResponse, error)
	UpdateTransaction(context.Context, *UpdateTransactionRequest) (*UpdateTransactionResponse, error)
}

func RegisterStatusTabletServer(s *grpc.Server, srv StatusTabletServer) {
	s.RegisterService(&_StatusTablet_serviceDesc, srv)
}

func _StatusTablet_GetTransactionStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetTransactionStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StatusTabletServer).GetTransactionStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/txnpb.StatusTablet/GetTransactionStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StatusTabletServer).GetTransactionStatus(ctx, req.(*GetTransactionStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StatusTablet_AbortTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AbortTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StatusTabletServer).AbortTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/txnpb.StatusTablet/AbortTransaction",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StatusTabletServer).AbortTransaction(ctx, req.(*AbortTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StatusTablet_UpdateTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StatusTabletServer).UpdateTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/txnpb.StatusTablet/UpdateTransaction",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StatusTabletServer).UpdateTransaction(ctx, req.(*UpdateTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _StatusTablet_serviceDesc = grpc.ServiceDesc{
	ServiceName: "txnpb.StatusTablet",
	HandlerType: (*StatusTabletServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetTransactionStatus",
			Handler:    _StatusTablet_GetTransactionStatus_Handler,
		},
		{
			MethodName: "AbortTransaction",
			Handler:    _StatusTablet_AbortTransaction_Handler,
		},
		{
			MethodName: "UpdateTransaction",
			Handler:    _StatusTablet_UpdateTransaction_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "txnpb.proto",
}

// TabletClient is the client API for the Tablet service.
type TabletClient interface {
	ApplyTransaction(ctx context.Context, in *ApplyTransactionRequest, opts ...grpc.CallOption) (*ApplyTransactionResponse, error)
	CheckTxnStatus(ctx context.Context, in *CheckTxnStatusRequest, opts ...grpc.CallOption) (*CheckTxnStatusResponse, error)
}

type tabletClient struct {
	cc *grpc.ClientConn
}

func NewTabletClient(cc *grpc.ClientConn) TabletClient {
	return &tabletClient{cc}
}

func (c *tabletClient) ApplyTransaction(ctx context.Context, in *ApplyTransactionRequest, opts ...grpc.CallOption) (*ApplyTransactionResponse, error) {
	out := new(ApplyTransactionResponse)
	err := c.cc.Invoke(ctx, "/txnpb.Tablet/ApplyTransaction", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tabletClient) CheckTxnStatus(ctx context.Context, in *CheckTxnStatusRequest, opts ...grpc.CallOption) (*CheckTxnStatusResponse, error) {
	out := new(CheckTxnStatusResponse)
	err := c.cc.Invoke(ctx, "/txnpb.Tablet/CheckTxnStatus", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TabletServer is the server API for the Tablet service.
type TabletServer interface {
	ApplyTransaction(context.Context, *ApplyTransactionRequest) (*ApplyTransactionResponse, error)
	CheckTxnStatus(context.Context, *CheckTxnStatusRequest) (*CheckTxnStatusResponse, error)
}

func RegisterTabletServer(s *grpc.Server, srv TabletServer) {
	s.RegisterService(&_Tablet_serviceDesc, srv)
}

func _Tablet_ApplyTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TabletServer).ApplyTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/txnpb.Tablet/ApplyTransaction",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TabletServer).ApplyTransaction(ctx, req.(*ApplyTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Tablet_CheckTxnStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckTxnStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TabletServer).CheckTxnStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/txnpb.Tablet/CheckTxnStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TabletServer).CheckTxnStatus(ctx, req.(*CheckTxnStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _Tablet_serviceDesc = grpc.ServiceDesc{
	ServiceName: "txnpb.Tablet",
	HandlerType: (*TabletServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ApplyTransaction",
			Handler:    _Tablet_ApplyTransaction_Handler,
		},
		{
			MethodName: "CheckTxnStatus",
			Handler:    _Tablet_CheckTxnStatus_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "txnpb.proto",
}
