package participant

import (
	"fmt"

	"github.com/tabkv-incubator/tabkv/kv/util/hlc"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// ErrNotFound is returned when a transaction id is not in the
// participant's in-memory table. Status and abort requests do not fall
// back to the persistent store.
type ErrNotFound struct {
	ID TransactionID
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("unknown transaction: %s", e.ID)
}

// ErrTryAgain is retryable: a cached status exists but cannot answer
// the queried time. The caller is expected to retry later.
type ErrTryAgain struct {
	RequestTime hlc.HybridTime
	KnownStatus txnpb.TransactionStatus
	KnownTime   hlc.HybridTime
}

func (e ErrTryAgain) Error() string {
	return fmt.Sprintf("cannot determine transaction status at %s, last known: %s at %s",
		e.RequestTime, e.KnownStatus, e.KnownTime)
}

// IsTryAgain reports whether err tells the caller to retry the status
// query later.
func IsTryAgain(err error) bool {
	_, ok := err.(ErrTryAgain)
	return ok
}

// IsNotFound reports whether err marks a transaction unknown to this
// participant.
func IsNotFound(err error) bool {
	_, ok := err.(ErrNotFound)
	return ok
}
