package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ActionType journal action
type ActionType string

const (
	ActionDeposit        ActionType = "deposit"
	ActionRedeem         ActionType = "redeem"
	ActionBorrow         ActionType = "borrow"
	ActionRepay          ActionType = "repay"
	ActionBorrowFixed    ActionType = "borrow_fixed"
	ActionRepayFixed     ActionType = "repay_fixed"
	ActionLiquidate      ActionType = "liquidate"
	ActionLiquidateFixed ActionType = "liquidate_fixed"
	ActionTransfer       ActionType = "transfer"
	ActionAddReserves    ActionType = "add_reserves"
	ActionReduceReserves ActionType = "reduce_reserves"
	ActionEnterMarket    ActionType = "enter_market"
	ActionExitMarket     ActionType = "exit_market"
	ActionSupportMarket  ActionType = "support_market"
	ActionUpdateMarket   ActionType = "update_market"
	ActionUpdatePolicy   ActionType = "update_policy"
)

const (
	// TransactionKeySymbol symbol
	TransactionKeySymbol = "symbol"
	// TransactionKeyAmount amount
	TransactionKeyAmount = "amount"
	// TransactionKeyShares shares
	TransactionKeyShares = "shares"
	// TransactionKeyExchangeRate exchange rate
	TransactionKeyExchangeRate = "exchange_rate"
	// TransactionKeyInterest interest
	TransactionKeyInterest = "interest"
	// TransactionKeyPenalty early repay penalty
	TransactionKeyPenalty = "penalty"
	// TransactionKeySlot fixed borrow slot
	TransactionKeySlot = "slot"
	// TransactionKeyBorrower borrower
	TransactionKeyBorrower = "borrower"
	// TransactionKeyCollateral collateral market
	TransactionKeyCollateral = "collateral"
	// TransactionKeyProtocolShares protocol seize shares
	TransactionKeyProtocolShares = "protocol_shares"
	// TransactionKeyTo transfer receiver
	TransactionKeyTo = "to"
	// TransactionKeyField updated field
	TransactionKeyField = "field"
	// TransactionKeyValue updated value
	TransactionKeyValue = "value"
)

type ExtraDataFormatter interface {
	Format() []byte
}

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) TransactionExtraData {
	t[key] = value
	return t
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction journal entry of a committed operation
type Transaction struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	Action    ActionType      `sql:"size:24" json:"action,omitempty"`
	UserID    string          `sql:"size:36;index:idx_transactions_user_id" json:"user_id,omitempty"`
	Symbol    string          `sql:"size:20" json:"symbol,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount,omitempty"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra ExtraDataFormatter) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// TransactionQuery journal query
type TransactionQuery struct {
	UserID string
	Symbol string
	// entries with id greater than Offset
	Offset int64
	Limit  int
}

// ITransactionStore journal store interface
type ITransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	List(ctx context.Context, query TransactionQuery) ([]*Transaction, error)
}
