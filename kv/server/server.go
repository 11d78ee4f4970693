package server

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tabkv-incubator/tabkv/kv/transaction/participant"
	"github.com/tabkv-incubator/tabkv/kv/util/engine_util"
	"github.com/tabkv-incubator/tabkv/kv/util/hlc"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

var _ txnpb.TabletServer = new(Server)

// Server exposes the tablet's transaction surface over grpc: the status
// tablet drives applies through it and remote readers check transaction
// status through it.
type Server struct {
	engines     *engine_util.Engines
	participant *participant.Participant
	applier     participant.Applier
}

func NewServer(engines *engine_util.Engines, part *participant.Participant, applier participant.Applier) *Server {
	return &Server{
		engines:     engines,
		participant: part,
		applier:     applier,
	}
}

func (svr *Server) Participant() *participant.Participant {
	return svr.participant
}

// ApplyTransaction is sent by the status tablet once the transaction is
// committed. It is retried until the tablet confirms the apply, so a
// duplicate request for an already-applied or never-seen transaction
// succeeds.
func (svr *Server) ApplyTransaction(ctx context.Context, req *txnpb.ApplyTransactionRequest) (*txnpb.ApplyTransactionResponse, error) {
	id, err := participant.TransactionIDFromBytes(req.TransactionId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	data := &participant.TransactionApplyData{
		Mode:          participant.ProcessLeader,
		TransactionID: id,
		StatusTablet:  req.StatusTablet,
		CommitTime:    hlc.HybridTime(req.CommitHybridTime),
		Applier:       svr.applier,
	}
	if err := svr.participant.ProcessApply(data); err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return &txnpb.ApplyTransactionResponse{}, nil
}

// CheckTxnStatus reports the transaction's status as of the requested
// hybrid time, consulting the status tablet when the cached status
// cannot answer.
func (svr *Server) CheckTxnStatus(ctx context.Context, req *txnpb.CheckTxnStatusRequest) (*txnpb.CheckTxnStatusResponse, error) {
	id, err := participant.TransactionIDFromBytes(req.TransactionId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	type answer struct {
		result participant.TransactionStatusResult
		err    error
	}
	ch := make(chan answer, 1)
	svr.participant.RequestStatusAt(id, hlc.HybridTime(req.HybridTime), func(result participant.TransactionStatusResult, err error) {
		ch <- answer{result: result, err: err}
	})
	select {
	case a := <-ch:
		if a.err != nil {
			switch {
			case participant.IsNotFound(a.err):
				return nil, status.Errorf(codes.NotFound, "%v", a.err)
			case participant.IsTryAgain(a.err):
				return nil, status.Errorf(codes.Unavailable, "%v", a.err)
			}
			return nil, status.Errorf(codes.Internal, "%v", a.err)
		}
		return &txnpb.CheckTxnStatusResponse{
			Status:           a.result.Status,
			StatusHybridTime: uint64(a.result.StatusTime),
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop shuts the participant down and closes the engines.
func (svr *Server) Stop() error {
	svr.participant.Shutdown()
	return svr.engines.Close()
}
