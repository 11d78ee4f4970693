package participant

import (
	"context"
	"io/ioutil"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coocood/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/tabkv-incubator/tabkv/kv/util/engine_util"
	"github.com/tabkv-incubator/tabkv/kv/util/hlc"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// fakeStatusTablet implements txnpb.StatusTabletClient in-process. Each
// RPC kind counts its calls; gate, when set, blocks status and abort
// calls until it is closed or the call's context expires.
type fakeStatusTablet struct {
	mu         sync.Mutex
	status     txnpb.TransactionStatus
	statusTime hlc.HybridTime
	gate       chan struct{}

	statusCalls int32
	abortCalls  int32
	updateCalls int32
	updated     chan struct{}
}

func newFakeStatusTablet() *fakeStatusTablet {
	return &fakeStatusTablet{updated: make(chan struct{}, 16)}
}

func (f *fakeStatusTablet) setStatus(status txnpb.TransactionStatus, statusTime hlc.HybridTime) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.statusTime = statusTime
}

func (f *fakeStatusTablet) wait(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeStatusTablet) GetTransactionStatus(ctx context.Context, req *txnpb.GetTransactionStatusRequest, opts ...grpc.CallOption) (*txnpb.GetTransactionStatusResponse, error) {
	atomic.AddInt32(&f.statusCalls, 1)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &txnpb.GetTransactionStatusResponse{
		Status:           f.status,
		StatusHybridTime: uint64(f.statusTime),
	}, nil
}

func (f *fakeStatusTablet) AbortTransaction(ctx context.Context, req *txnpb.AbortTransactionRequest, opts ...grpc.CallOption) (*txnpb.AbortTransactionResponse, error) {
	atomic.AddInt32(&f.abortCalls, 1)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &txnpb.AbortTransactionResponse{
		Status:           txnpb.TransactionStatus_ABORTED,
		StatusHybridTime: uint64(f.statusTime),
	}, nil
}

func (f *fakeStatusTablet) UpdateTransaction(ctx context.Context, req *txnpb.UpdateTransactionRequest, opts ...grpc.CallOption) (*txnpb.UpdateTransactionResponse, error) {
	atomic.AddInt32(&f.updateCalls, 1)
	f.updated <- struct{}{}
	return &txnpb.UpdateTransactionResponse{}, nil
}

type fakeContext struct {
	tabletID string
	client   *fakeStatusTablet
}

func (c *fakeContext) TabletID() string {
	return c.tabletID
}

func (c *fakeContext) StatusTabletClient(statusTablet string) (txnpb.StatusTabletClient, error) {
	return c.client, nil
}

type fakeApplier struct {
	applied int32
}

func (a *fakeApplier) ApplyIntents(data *TransactionApplyData) error {
	atomic.AddInt32(&a.applied, 1)
	return nil
}

type testParticipant struct {
	*Participant
	statusTablet *fakeStatusTablet
	db           *badger.DB
}

func newTestParticipant(t *testing.T) *testParticipant {
	dir, err := ioutil.TempDir("", "participant")
	require.Nil(t, err)
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	db, err := badger.Open(opts)
	require.Nil(t, err)

	statusTablet := newFakeStatusTablet()
	part := NewParticipant(&fakeContext{tabletID: "tablet-1", client: statusTablet}, db, 5*time.Second)
	return &testParticipant{Participant: part, statusTablet: statusTablet, db: db}
}

func (p *testParticipant) close() {
	p.Shutdown()
	p.db.Close()
}

func (p *testParticipant) addTransaction(t *testing.T, statusTablet string, startTime hlc.HybridTime) TransactionID {
	id := NewTransactionID()
	meta := &txnpb.TransactionMeta{
		TransactionId:   id.Bytes(),
		Isolation:       txnpb.IsolationLevel_SNAPSHOT_ISOLATION,
		StatusTablet:    statusTablet,
		Priority:        1,
		StartHybridTime: uint64(startTime),
	}
	wb := new(engine_util.WriteBatch)
	p.Add(meta, wb)
	require.Equal(t, 1, wb.Len())
	wb.MustWriteToDB(p.db)
	return id
}

func requestStatusAt(p *Participant, id TransactionID, time hlc.HybridTime) (TransactionStatusResult, error) {
	type answer struct {
		result TransactionStatusResult
		err    error
	}
	ch := make(chan answer, 1)
	p.RequestStatusAt(id, time, func(result TransactionStatusResult, err error) {
		ch <- answer{result: result, err: err}
	})
	a := <-ch
	return a.result, a.err
}

func TestQueryCommittedInPast(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-1", 5)
	p.statusTablet.setStatus(txnpb.TransactionStatus_COMMITTED, 20)

	// Before the commit time the transaction still reads as pending.
	result, err := requestStatusAt(p.Participant, id, 10)
	require.Nil(t, err)
	assert.Equal(t, txnpb.TransactionStatus_PENDING, result.Status)
	assert.Equal(t, hlc.HybridTime(20), result.StatusTime)

	result, err = requestStatusAt(p.Participant, id, 25)
	require.Nil(t, err)
	assert.Equal(t, txnpb.TransactionStatus_COMMITTED, result.Status)
	assert.Equal(t, hlc.HybridTime(20), result.StatusTime)

	// The second query was answered from cache.
	assert.Equal(t, int32(1), atomic.LoadInt32(&p.statusTablet.statusCalls))
}

func TestCoalescedStatusQuery(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-1", 5)
	p.statusTablet.setStatus(txnpb.TransactionStatus_PENDING, 15)
	gate := make(chan struct{})
	p.statusTablet.gate = gate

	const queries = 100
	var pending sync.WaitGroup
	var delivered sync.WaitGroup
	pending.Add(queries)
	delivered.Add(queries)
	for i := 0; i < queries; i++ {
		go func() {
			p.RequestStatusAt(id, 10, func(result TransactionStatusResult, err error) {
				defer delivered.Done()
				assert.Nil(t, err)
				assert.Equal(t, txnpb.TransactionStatus_PENDING, result.Status)
				assert.Equal(t, hlc.HybridTime(15), result.StatusTime)
			})
			pending.Done()
		}()
	}
	pending.Wait()
	close(gate)
	delivered.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&p.statusTablet.statusCalls))
}

func TestAbortFanOut(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-1", 5)
	p.statusTablet.setStatus(txnpb.TransactionStatus_ABORTED, 30)
	gate := make(chan struct{})
	p.statusTablet.gate = gate

	const aborts = 5
	var pending sync.WaitGroup
	var delivered sync.WaitGroup
	pending.Add(aborts)
	delivered.Add(aborts)
	for i := 0; i < aborts; i++ {
		go func() {
			p.Abort(id, func(result TransactionStatusResult, err error) {
				defer delivered.Done()
				assert.Nil(t, err)
				assert.Equal(t, txnpb.TransactionStatus_ABORTED, result.Status)
			})
			pending.Done()
		}()
	}
	pending.Wait()
	close(gate)
	delivered.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&p.statusTablet.abortCalls))
}

func TestStatusTimeMonotonic(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-1", 5)
	p.statusTablet.setStatus(txnpb.TransactionStatus_PENDING, 20)

	result, err := requestStatusAt(p.Participant, id, 15)
	require.Nil(t, err)
	assert.Equal(t, txnpb.TransactionStatus_PENDING, result.Status)
	assert.Equal(t, hlc.HybridTime(20), result.StatusTime)

	// A stale response must not roll the cached status time back.
	p.statusTablet.setStatus(txnpb.TransactionStatus_PENDING, 10)
	_, err = requestStatusAt(p.Participant, id, 25)
	require.NotNil(t, err)
	require.True(t, IsTryAgain(err))
	assert.Equal(t, hlc.HybridTime(20), err.(ErrTryAgain).KnownTime)
}

func TestApplyLeader(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-1", 5)
	applier := new(fakeApplier)
	err := p.ProcessApply(&TransactionApplyData{
		Mode:          ProcessLeader,
		TransactionID: id,
		StatusTablet:  "status-1",
		CommitTime:    30,
		Applier:       applier,
	})
	require.Nil(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&applier.applied))
	assert.Equal(t, hlc.HybridTime(30), p.LocalCommitTime(id))

	select {
	case <-p.statusTablet.updated:
	case <-time.After(5 * time.Second):
		t.Fatal("no applied notification reached the status tablet")
	}
}

func TestApplyNonLeader(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-1", 5)
	applier := new(fakeApplier)
	err := p.ProcessApply(&TransactionApplyData{
		Mode:          ProcessNonLeader,
		TransactionID: id,
		StatusTablet:  "status-1",
		CommitTime:    30,
		Applier:       applier,
	})
	require.Nil(t, err)
	assert.Equal(t, hlc.HybridTime(30), p.LocalCommitTime(id))

	select {
	case <-p.statusTablet.updated:
		t.Fatal("non-leader apply must not notify the status tablet")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&p.statusTablet.updateCalls))
}

func TestApplyUnknownTransaction(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	applier := new(fakeApplier)
	err := p.ProcessApply(&TransactionApplyData{
		Mode:          ProcessLeader,
		TransactionID: NewTransactionID(),
		StatusTablet:  "status-1",
		CommitTime:    30,
		Applier:       applier,
	})
	require.Nil(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&applier.applied))
	assert.Equal(t, int32(0), atomic.LoadInt32(&p.statusTablet.updateCalls))
}

func TestLazyLoad(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := p.addTransaction(t, "status-7", 5)
	want, ok := p.Metadata(id)
	require.True(t, ok)

	// Bootstrap a fresh participant over the same engine: only the
	// persisted record is left.
	restarted := NewParticipant(&fakeContext{tabletID: "tablet-1", client: p.statusTablet}, p.db, 5*time.Second)
	defer restarted.Shutdown()
	got, ok := restarted.Metadata(id)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// A second call is served from memory: deleting the stored record
	// must not make the metadata disappear.
	wb := new(engine_util.WriteBatch)
	wb.Delete(EncodeTransactionKey(id))
	wb.MustWriteToDB(p.db)
	got, ok = restarted.Metadata(id)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestUnknownTransaction(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	_, err := requestStatusAt(p.Participant, NewTransactionID(), 10)
	require.NotNil(t, err)
	assert.True(t, IsNotFound(err))

	assert.Equal(t, hlc.Invalid, p.LocalCommitTime(NewTransactionID()))
	_, ok := p.Metadata(NewTransactionID())
	assert.False(t, ok)
}

func TestAddIdempotent(t *testing.T) {
	p := newTestParticipant(t)
	defer p.close()

	id := NewTransactionID()
	meta := &txnpb.TransactionMeta{
		TransactionId:   id.Bytes(),
		Isolation:       txnpb.IsolationLevel_SNAPSHOT_ISOLATION,
		StatusTablet:    "status-1",
		Priority:        1,
		StartHybridTime: 5,
	}
	wb := new(engine_util.WriteBatch)
	p.Add(meta, wb)
	assert.Equal(t, 1, wb.Len())

	// Re-adding with identical metadata stages nothing new.
	p.Add(meta, wb)
	assert.Equal(t, 1, wb.Len())
}

func TestShutdownFailsPendingWaiters(t *testing.T) {
	p := newTestParticipant(t)

	id := p.addTransaction(t, "status-1", 5)
	p.statusTablet.gate = make(chan struct{})

	var calls int32
	errCh := make(chan error, 1)
	p.RequestStatusAt(id, 10, func(result TransactionStatusResult, err error) {
		atomic.AddInt32(&calls, 1)
		errCh <- err
	})
	p.Shutdown()

	// The waiter was failed before Shutdown returned and never fires
	// again.
	select {
	case err := <-errCh:
		require.NotNil(t, err)
	default:
		t.Fatal("waiter callback did not fire during shutdown")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	p.db.Close()
}
