// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package access

import (
	"github.com/give-a-mocha/DB2025/types"
)

type TransactionState int32

const (
	GROWING TransactionState = iota
	COMMITTED
	ABORTED
)

// Transaction tracks the id, snapshot timestamp and state of one
// running transaction.
type Transaction struct {
	txnID   types.TxnID
	startTs types.Timestamp
	state   TransactionState
}

func NewTransaction(txnID types.TxnID, startTs types.Timestamp) *Transaction {
	return &Transaction{txnID, startTs, GROWING}
}

func (t *Transaction) GetTransactionID() types.TxnID {
	return t.txnID
}

// GetStartTS returns the snapshot timestamp reads of this transaction
// are served at.
func (t *Transaction) GetStartTS() types.Timestamp {
	return t.startTs
}

func (t *Transaction) GetState() TransactionState {
	return t.state
}

func (t *Transaction) SetState(state TransactionState) {
	t.state = state
}
