package participant

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/coocood/badger"
	"github.com/golang/protobuf/proto"
	"github.com/ngaut/log"

	"github.com/tabkv-incubator/tabkv/kv/util/engine_util"
	"github.com/tabkv-incubator/tabkv/kv/util/hlc"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// Context provides the participant with its surroundings: the identity
// of the enclosing tablet and clients for status tablets. Passed in
// explicitly so the participant never reaches through ambient state.
type Context interface {
	TabletID() string
	// StatusTabletClient returns a client for the given status tablet.
	// The underlying connection may still be establishing; RPCs issued
	// on it respect their own deadlines.
	StatusTabletClient(statusTablet string) (txnpb.StatusTabletClient, error)
}

// ProcessingMode says which role this replica played for an apply.
type ProcessingMode int

const (
	ProcessNonLeader ProcessingMode = iota
	ProcessLeader
)

// TransactionApplyData carries one apply request through the applier
// and the participant.
type TransactionApplyData struct {
	Mode          ProcessingMode
	TransactionID TransactionID
	StatusTablet  string
	CommitTime    hlc.HybridTime
	Applier       Applier
}

// Applier materialises a committed transaction's intents into the
// storage engine. Invoked under no lock.
type Applier interface {
	ApplyIntents(data *TransactionApplyData) error
}

// Participant tracks the transactions whose intents touch this tablet.
// It answers status queries on behalf of local readers, forwards abort
// and applied signals to the transaction's status tablet, and persists
// per-transaction metadata so a restart can resume participation.
//
// One mutex guards the table and the mutable fields of every entry in
// it. Critical sections are short and the lock is always released
// before blocking work or callback dispatch.
type Participant struct {
	context    Context
	db         *badger.DB
	rpcTimeout time.Duration

	mu           sync.Mutex
	rpcs         *Rpcs
	transactions map[TransactionID]*RunningTransaction
}

func NewParticipant(context Context, db *badger.DB, rpcTimeout time.Duration) *Participant {
	return &Participant{
		context:      context,
		db:           db,
		rpcTimeout:   rpcTimeout,
		rpcs:         NewRpcs(),
		transactions: make(map[TransactionID]*RunningTransaction),
	}
}

// Add registers a new running transaction and stages its metadata
// record into wb. The caller flushes wb as part of the intent write, so
// the record is persisted atomically with the intent. Re-adding a
// transaction with identical metadata is tolerated; re-adding with
// conflicting metadata is a contract violation.
func (p *Participant) Add(meta *txnpb.TransactionMeta, wb *engine_util.WriteBatch) {
	metadata, err := MetadataFromProto(meta)
	if err != nil {
		log.Errorf("invalid transaction metadata: %v", err)
		return
	}
	store := false
	p.mu.Lock()
	rt := p.transactions[metadata.ID]
	if rt == nil {
		p.transactions[metadata.ID] = newRunningTransaction(metadata, p.rpcs, p.rpcTimeout)
		store = true
	} else if rt.metadata != metadata {
		p.mu.Unlock()
		log.Fatalf("transaction %s re-added with conflicting metadata: %s vs %s",
			metadata.ID, rt.metadata, metadata)
		return
	}
	p.mu.Unlock()
	if store {
		if err := wb.SetMeta(EncodeTransactionKey(metadata.ID), meta); err != nil {
			log.Fatalf("failed to stage metadata of transaction %s: %v", metadata.ID, err)
		}
	}
}

// Metadata returns a copy of the transaction's metadata, loading it
// from the persistent store if it is not in memory.
func (p *Participant) Metadata(id TransactionID) (TransactionMetadata, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rt := p.findOrLoad(id)
	if rt == nil {
		return TransactionMetadata{}, false
	}
	return rt.metadata, true
}

// LocalCommitTime returns the hybrid time at which this tablet applied
// the transaction, or hlc.Invalid if it has not or the transaction is
// unknown.
func (p *Participant) LocalCommitTime(id TransactionID) hlc.HybridTime {
	p.mu.Lock()
	defer p.mu.Unlock()
	rt := p.transactions[id]
	if rt == nil {
		return hlc.Invalid
	}
	return rt.localCommitTime
}

// RequestStatusAt reports the transaction's status as of the given
// hybrid time through callback. Concurrent requests for the same
// transaction share one outbound RPC.
func (p *Participant) RequestStatusAt(id TransactionID, time hlc.HybridTime, callback TransactionStatusCallback) {
	p.mu.Lock()
	rt := p.transactions[id]
	if rt == nil {
		p.mu.Unlock()
		callback(TransactionStatusResult{}, ErrNotFound{ID: id})
		return
	}
	client, err := p.context.StatusTabletClient(rt.metadata.StatusTablet)
	if err != nil {
		p.mu.Unlock()
		callback(TransactionStatusResult{}, err)
		return
	}
	rt.requestStatusAt(client, time, callback, &p.mu)
}

// Abort asks the status tablet to abort the transaction and reports the
// outcome through callback. Concurrent aborts of the same transaction
// share one outbound RPC.
func (p *Participant) Abort(id TransactionID, callback TransactionStatusCallback) {
	p.mu.Lock()
	rt := p.transactions[id]
	if rt == nil {
		p.mu.Unlock()
		callback(TransactionStatusResult{}, ErrNotFound{ID: id})
		return
	}
	client, err := p.context.StatusTabletClient(rt.metadata.StatusTablet)
	if err != nil {
		p.mu.Unlock()
		callback(TransactionStatusResult{}, err)
		return
	}
	rt.abort(client, callback, &p.mu)
}

// ProcessApply materialises the transaction's intents and records the
// local commit time. On the leader replica it additionally notifies the
// status tablet, best effort, that this tablet has applied; the
// coordinator re-requests the apply if that message is lost.
func (p *Participant) ProcessApply(data *TransactionApplyData) error {
	if err := data.Applier.ApplyIntents(data); err != nil {
		// The write must succeed before the participant records the
		// commit.
		log.Fatalf("failed to apply intents of transaction %s: %v", data.TransactionID, err)
	}

	p.mu.Lock()
	rt := p.transactions[data.TransactionID]
	if rt == nil {
		p.mu.Unlock()
		// Normal, caused by 2 scenarios:
		// 1) The write batch failed, but the originator doesn't know that.
		// 2) A previous applied-notification never reached the status
		//    tablet and the apply is being retried.
		log.Warnf("apply of unknown transaction: %s", data.TransactionID)
		return nil
	}
	rt.localCommitTime = data.CommitTime
	if data.Mode != ProcessLeader {
		p.mu.Unlock()
		return nil
	}
	client, err := p.context.StatusTabletClient(data.StatusTablet)
	if err != nil {
		p.mu.Unlock()
		log.Warnf("failed to send applied for transaction %s: %v", data.TransactionID, err)
		return nil
	}
	req := &txnpb.UpdateTransactionRequest{
		TabletId: data.StatusTablet,
		State: &txnpb.TransactionState{
			TransactionId: data.TransactionID.Bytes(),
			Status:        txnpb.TransactionStatus_APPLIED_IN_ONE_OF_INVOLVED_TABLETS,
			Tablets:       []string{p.context.TabletID()},
		},
	}
	handle := p.rpcs.Prepare()
	p.mu.Unlock()
	p.rpcs.RegisterAndStart(handle, p.rpcTimeout, func(ctx context.Context) {
		_, err := client.UpdateTransaction(ctx, req)
		p.rpcs.Unregister(handle)
		if err != nil {
			log.Warnf("failed to send applied for transaction %s: %v", data.TransactionID, err)
		}
	})
	return nil
}

// Shutdown aborts all outstanding RPCs and waits for the completion
// callbacks of those already started, so none of them fires after it
// returns.
func (p *Participant) Shutdown() {
	var handles []Handle
	p.mu.Lock()
	for _, rt := range p.transactions {
		handles = append(handles, rt.getStatusHandle, rt.abortHandle)
	}
	p.mu.Unlock()
	p.rpcs.Abort(handles...)
	p.rpcs.Shutdown()
}

// findOrLoad looks the transaction up in memory and falls back to the
// persistent metadata record. Called with the participant lock held.
func (p *Participant) findOrLoad(id TransactionID) *RunningTransaction {
	if rt := p.transactions[id]; rt != nil {
		return rt
	}
	key := EncodeTransactionKey(id)
	var value []byte
	err := p.db.View(func(txn *badger.Txn) error {
		it := engine_util.NewMetaIterator(txn)
		defer it.Close()
		it.Seek(key)
		if !it.Valid() || !bytes.Equal(it.Item().Key(), key) {
			return badger.ErrKeyNotFound
		}
		val, err := it.Item().Value()
		if err != nil {
			return err
		}
		value = append([]byte(nil), val...)
		return nil
	})
	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		log.Errorf("failed to load metadata of transaction %s: %v", id, err)
		return nil
	}
	meta := new(txnpb.TransactionMeta)
	if err := proto.Unmarshal(value, meta); err != nil {
		log.Fatalf("unable to parse stored metadata of transaction %s: %v", id, err)
		return nil
	}
	metadata, err := MetadataFromProto(meta)
	if err != nil {
		log.Fatalf("loaded bad metadata of transaction %s: %v", id, err)
		return nil
	}
	rt := newRunningTransaction(metadata, p.rpcs, p.rpcTimeout)
	p.transactions[id] = rt
	return rt
}
