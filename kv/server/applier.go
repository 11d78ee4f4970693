package server

import (
	"github.com/coocood/badger"
	"github.com/ngaut/log"
	"github.com/pingcap/errors"

	"github.com/tabkv-incubator/tabkv/kv/transaction/participant"
	"github.com/tabkv-incubator/tabkv/kv/util/engine_util"
)

// IntentApplier materialises a committed transaction's intents: every
// provisional write staged under the transaction's intent prefix is
// rewritten as a regular record and the intent is removed, in one
// atomic engine update.
type IntentApplier struct {
	engines *engine_util.Engines
}

func NewIntentApplier(engines *engine_util.Engines) *IntentApplier {
	return &IntentApplier{engines: engines}
}

func (a *IntentApplier) ApplyIntents(data *participant.TransactionApplyData) error {
	prefix := participant.EncodeIntentKeyPrefix(data.TransactionID)
	wb := new(engine_util.WriteBatch)
	err := a.engines.Kv.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			userKey := item.KeyCopy(nil)[len(prefix):]
			value, err := item.ValueCopy(nil)
			if err != nil {
				return errors.WithStack(err)
			}
			wb.Set(userKey, value)
			wb.Delete(item.KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if wb.Len() == 0 {
		// Retried applies land here once the intents are gone.
		log.Debugf("no intents to apply for transaction %s", data.TransactionID)
		return nil
	}
	return a.engines.WriteKV(wb)
}
