package participant

import (
	"fmt"

	"github.com/pingcap/errors"

	"github.com/tabkv-incubator/tabkv/kv/util/hlc"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// TransactionMetadata describes one transaction as seen by a
// participant. It is immutable once constructed; two values are equal
// iff all fields match.
type TransactionMetadata struct {
	ID           TransactionID
	Isolation    txnpb.IsolationLevel
	StatusTablet string
	Priority     uint64
	StartTime    hlc.HybridTime
}

// MetadataFromProto decodes the wire form of transaction metadata. It
// fails on a malformed id or an unknown isolation level.
func MetadataFromProto(pb *txnpb.TransactionMeta) (TransactionMetadata, error) {
	id, err := TransactionIDFromBytes(pb.TransactionId)
	if err != nil {
		return TransactionMetadata{}, errors.Trace(err)
	}
	if _, ok := txnpb.IsolationLevel_name[int32(pb.Isolation)]; !ok {
		return TransactionMetadata{}, errors.Errorf("unknown isolation level %d", pb.Isolation)
	}
	return TransactionMetadata{
		ID:           id,
		Isolation:    pb.Isolation,
		StatusTablet: pb.StatusTablet,
		Priority:     pb.Priority,
		StartTime:    hlc.HybridTime(pb.StartHybridTime),
	}, nil
}

func (m TransactionMetadata) ToProto() *txnpb.TransactionMeta {
	return &txnpb.TransactionMeta{
		TransactionId:   m.ID.Bytes(),
		Isolation:       m.Isolation,
		StatusTablet:    m.StatusTablet,
		Priority:        m.Priority,
		StartHybridTime: uint64(m.StartTime),
	}
}

func (m TransactionMetadata) String() string {
	return fmt.Sprintf("{ transaction_id: %s isolation: %s status_tablet: %s priority: %d start_time: %s }",
		m.ID, m.Isolation, m.StatusTablet, m.Priority, m.StartTime)
}
