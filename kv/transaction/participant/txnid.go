package participant

import (
	"github.com/google/uuid"
	"github.com/pingcap/errors"
)

// TransactionID identifies a transaction. IDs compare and hash by byte
// equality and serialise as their raw 16 bytes.
type TransactionID [16]byte

func NewTransactionID() TransactionID {
	return TransactionID(uuid.New())
}

// TransactionIDFromBytes decodes the wire form of a transaction id.
func TransactionIDFromBytes(data []byte) (TransactionID, error) {
	var id TransactionID
	if len(data) != len(id) {
		return id, errors.Errorf("invalid transaction id length %d", len(data))
	}
	copy(id[:], data)
	return id, nil
}

func (id TransactionID) Bytes() []byte {
	return id[:]
}

func (id TransactionID) String() string {
	return uuid.UUID(id).String()
}
