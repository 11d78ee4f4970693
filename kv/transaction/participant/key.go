package participant

// The participant's records live in the intent keyspace of the tablet's
// engine. Every key starts with the intent prefix byte followed by a
// type byte.
const (
	intentPrefix = byte('i')

	// transactionIDType marks a per-transaction metadata record. The
	// remainder of the key is the raw 16-byte transaction id.
	transactionIDType = byte('T')

	// intentDataType marks a provisional write. The remainder of the key
	// is the raw 16-byte transaction id followed by the user key.
	intentDataType = byte('I')
)

// EncodeTransactionKey builds the key the transaction's metadata record
// is stored under. The id is fixed width, so a prefix match on the
// encoded key means exact equality.
func EncodeTransactionKey(id TransactionID) []byte {
	key := make([]byte, 0, 2+len(id))
	key = append(key, intentPrefix, transactionIDType)
	return append(key, id[:]...)
}

// EncodeIntentKeyPrefix builds the prefix all of the transaction's
// provisional writes share. Appending a user key to it gives that
// write's intent key.
func EncodeIntentKeyPrefix(id TransactionID) []byte {
	key := make([]byte, 0, 2+len(id))
	key = append(key, intentPrefix, intentDataType)
	return append(key, id[:]...)
}
