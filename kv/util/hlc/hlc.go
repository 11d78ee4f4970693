package hlc

import "fmt"

// HybridTime is a hybrid logical-physical timestamp. It orders like a
// monotonic clock and carries a causal counter in its low bits, so plain
// integer comparison gives the event order.
type HybridTime uint64

const (
	// Invalid marks an unset hybrid time. It is never compared against
	// real times, only checked for presence.
	Invalid HybridTime = 0
	// Min sorts before every real hybrid time.
	Min HybridTime = 1
	// Max sorts after every real hybrid time.
	Max HybridTime = ^HybridTime(0)
)

func (t HybridTime) Valid() bool {
	return t != Invalid
}

func (t HybridTime) String() string {
	switch t {
	case Invalid:
		return "<invalid>"
	case Min:
		return "<min>"
	case Max:
		return "<max>"
	}
	return fmt.Sprintf("{ hybrid_time: %d }", uint64(t))
}
