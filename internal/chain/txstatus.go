package chain

import "strings"

// TxStatus is a transaction status reported by the Hiro API.
type TxStatus string

// Known transaction statuses.
const (
	StatusUnknown              TxStatus = ""
	StatusPending              TxStatus = "pending"
	StatusSuccess              TxStatus = "success"
	StatusAbortByResponse      TxStatus = "abort_by_response"
	StatusAbortByPostCondition TxStatus = "abort_by_post_condition"
	StatusDroppedReplaceByFee  TxStatus = "dropped_replace_by_fee"
	StatusDroppedReplaceFork   TxStatus = "dropped_replace_across_fork"
	StatusDroppedTooExpensive  TxStatus = "dropped_too_expensive"
	StatusDroppedStaleGarbage  TxStatus = "dropped_stale_garbage_collect"
	StatusNotFound             TxStatus = "not_found"
)

// Status prefixes shared by the failure families.
const (
	abortPrefix   = "abort_"
	droppedPrefix = "dropped_"
)

// String returns the raw status string.
func (s TxStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further state change is expected: the
// transaction succeeded or entered one of the abort/dropped families.
// not_found and pending are non-terminal.
func (s TxStatus) IsTerminal() bool {
	return s == StatusSuccess || s.IsFailed()
}

// IsFailed reports whether the status belongs to the abort_ or dropped_
// failure families.
func (s TxStatus) IsFailed() bool {
	return strings.HasPrefix(string(s), abortPrefix) ||
		strings.HasPrefix(string(s), droppedPrefix)
}

// IsConfirmed reports whether the transaction was mined successfully.
func (s TxStatus) IsConfirmed() bool {
	return s == StatusSuccess
}

// IsPending reports whether the transaction is waiting in the mempool.
func (s TxStatus) IsPending() bool {
	return s == StatusPending
}
