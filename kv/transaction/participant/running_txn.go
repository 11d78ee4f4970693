package participant

import (
	"context"
	"sync"
	"time"

	"github.com/ngaut/log"

	"github.com/tabkv-incubator/tabkv/kv/util/hlc"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// TransactionStatusResult is delivered to status and abort callbacks:
// the transaction's status and the hybrid time at which that status was
// known to hold.
type TransactionStatusResult struct {
	Status     txnpb.TransactionStatus
	StatusTime hlc.HybridTime
}

// TransactionStatusCallback receives the outcome of a status or abort
// request. Exactly one of result and err is meaningful. Callbacks are
// never invoked under the participant lock.
type TransactionStatusCallback func(result TransactionStatusResult, err error)

type statusWaiter struct {
	callback TransactionStatusCallback
	time     hlc.HybridTime
}

// RunningTransaction is the in-memory record of one transaction
// touching this tablet. It is owned by the participant's table and
// guarded by the participant lock; the waiter queues coalesce
// concurrent status and abort requests into at most one outbound RPC
// per kind.
type RunningTransaction struct {
	metadata   TransactionMetadata
	rpcs       *Rpcs
	rpcTimeout time.Duration

	localCommitTime hlc.HybridTime

	lastKnownStatus     txnpb.TransactionStatus
	lastKnownStatusTime hlc.HybridTime
	statusWaiters       []statusWaiter
	abortWaiters        []TransactionStatusCallback
	getStatusHandle     Handle
	abortHandle         Handle
}

func newRunningTransaction(metadata TransactionMetadata, rpcs *Rpcs, rpcTimeout time.Duration) *RunningTransaction {
	return &RunningTransaction{
		metadata:            metadata,
		rpcs:                rpcs,
		rpcTimeout:          rpcTimeout,
		localCommitTime:     hlc.Invalid,
		lastKnownStatusTime: hlc.Min,
	}
}

// statusAt extrapolates a known status observation to the requested
// time. Aborts are terminal, so an abort holds at every time. A commit
// at knownTime means the transaction was still pending before it. A
// pending observation only extends backwards; asking about a later time
// needs a fresh observation, reported by ok == false.
func statusAt(requestTime, knownTime hlc.HybridTime, known txnpb.TransactionStatus) (status txnpb.TransactionStatus, ok bool) {
	switch known {
	case txnpb.TransactionStatus_ABORTED:
		return txnpb.TransactionStatus_ABORTED, true
	case txnpb.TransactionStatus_COMMITTED:
		if knownTime > requestTime {
			return txnpb.TransactionStatus_PENDING, true
		}
		return txnpb.TransactionStatus_COMMITTED, true
	case txnpb.TransactionStatus_PENDING:
		if knownTime >= requestTime {
			return txnpb.TransactionStatus_PENDING, true
		}
		return 0, false
	default:
		log.Fatalf("invalid transaction status from coordinator: %v", known)
		return 0, false
	}
}

// requestStatusAt answers from the cached status when it can, otherwise
// queues the callback behind the in-flight GetTransactionStatus RPC,
// issuing one if none is outstanding. The caller must hold mu; it is
// released before any callback or wire activity.
func (rt *RunningTransaction) requestStatusAt(client txnpb.StatusTabletClient, time hlc.HybridTime, callback TransactionStatusCallback, mu *sync.Mutex) {
	if rt.lastKnownStatusTime > hlc.Min {
		if status, ok := statusAt(time, rt.lastKnownStatusTime, rt.lastKnownStatus); ok {
			statusTime := rt.lastKnownStatusTime
			mu.Unlock()
			callback(TransactionStatusResult{Status: status, StatusTime: statusTime}, nil)
			return
		}
	}
	wasEmpty := len(rt.statusWaiters) == 0
	rt.statusWaiters = append(rt.statusWaiters, statusWaiter{callback: callback, time: time})
	if !wasEmpty {
		// The outstanding RPC's completion will satisfy this waiter.
		mu.Unlock()
		return
	}
	handle := rt.rpcs.Prepare()
	rt.getStatusHandle = handle
	req := &txnpb.GetTransactionStatusRequest{
		TabletId:      rt.metadata.StatusTablet,
		TransactionId: rt.metadata.ID.Bytes(),
	}
	mu.Unlock()
	rt.rpcs.RegisterAndStart(handle, rt.rpcTimeout, func(ctx context.Context) {
		resp, err := client.GetTransactionStatus(ctx, req)
		rt.statusReceived(handle, resp, err, mu)
	})
}

// statusReceived runs on the RPC completion goroutine.
func (rt *RunningTransaction) statusReceived(handle Handle, resp *txnpb.GetTransactionStatusResponse, err error, mu *sync.Mutex) {
	mu.Lock()
	rt.rpcs.Unregister(handle)
	rt.getStatusHandle = InvalidHandle
	waiters := rt.statusWaiters
	rt.statusWaiters = nil
	var statusTime hlc.HybridTime
	var status txnpb.TransactionStatus
	if err == nil {
		// The coordinator omits the hybrid time only for ABORTED, which
		// is terminal and holds at any time.
		responseTime := hlc.HybridTime(resp.StatusHybridTime)
		if !responseTime.Valid() {
			responseTime = hlc.Max
		}
		// An older observation never overwrites a newer one.
		if rt.lastKnownStatusTime <= responseTime {
			rt.lastKnownStatusTime = responseTime
			rt.lastKnownStatus = resp.Status
		}
		statusTime = rt.lastKnownStatusTime
		status = rt.lastKnownStatus
	}
	mu.Unlock()

	if err != nil {
		for _, waiter := range waiters {
			waiter.callback(TransactionStatusResult{}, err)
		}
		return
	}
	for _, waiter := range waiters {
		if waiterStatus, ok := statusAt(waiter.time, statusTime, status); ok {
			waiter.callback(TransactionStatusResult{Status: waiterStatus, StatusTime: statusTime}, nil)
		} else {
			waiter.callback(TransactionStatusResult{}, ErrTryAgain{
				RequestTime: waiter.time,
				KnownStatus: status,
				KnownTime:   statusTime,
			})
		}
	}
}

// abort queues the callback behind the in-flight AbortTransaction RPC,
// issuing one if none is outstanding. The caller must hold mu; it is
// released before any wire activity.
func (rt *RunningTransaction) abort(client txnpb.StatusTabletClient, callback TransactionStatusCallback, mu *sync.Mutex) {
	wasEmpty := len(rt.abortWaiters) == 0
	rt.abortWaiters = append(rt.abortWaiters, callback)
	if !wasEmpty {
		mu.Unlock()
		return
	}
	handle := rt.rpcs.Prepare()
	rt.abortHandle = handle
	req := &txnpb.AbortTransactionRequest{
		TabletId:      rt.metadata.StatusTablet,
		TransactionId: rt.metadata.ID.Bytes(),
	}
	mu.Unlock()
	rt.rpcs.RegisterAndStart(handle, rt.rpcTimeout, func(ctx context.Context) {
		resp, err := client.AbortTransaction(ctx, req)
		rt.abortReceived(handle, resp, err, mu)
	})
}

func (rt *RunningTransaction) abortReceived(handle Handle, resp *txnpb.AbortTransactionResponse, err error, mu *sync.Mutex) {
	mu.Lock()
	rt.rpcs.Unregister(handle)
	rt.abortHandle = InvalidHandle
	waiters := rt.abortWaiters
	rt.abortWaiters = nil
	mu.Unlock()

	var result TransactionStatusResult
	if err == nil {
		result = TransactionStatusResult{
			Status: resp.Status,
			// Absent on the wire means the coordinator reported no time.
			StatusTime: hlc.HybridTime(resp.StatusHybridTime),
		}
	}
	for _, waiter := range waiters {
		waiter(result, err)
	}
}
