package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100002

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrMarketNotSupported market not listed or not supported
	ErrMarketNotSupported ErrorCode = 100102
	// ErrMarketClosed market closed for new supply and borrows
	ErrMarketClosed ErrorCode = 100103
	// ErrMarketExists market already listed
	ErrMarketExists ErrorCode = 100104
	// ErrInsufficientLiquidity account liquidity can not cover the action
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrInsufficientCash market cash can not cover the payout
	ErrInsufficientCash ErrorCode = 100106
	// ErrInsufficientBalance share balance too low
	ErrInsufficientBalance ErrorCode = 100107
	// ErrPriceError missing oracle price
	ErrPriceError ErrorCode = 100108
	// ErrNonzeroBorrowBalance borrow balance blocks exiting market
	ErrNonzeroBorrowBalance ErrorCode = 100109

	// ErrInsufficientShortfall account is not in shortfall
	ErrInsufficientShortfall ErrorCode = 100200
	// ErrTooMuchRepay repay exceeds close factor
	ErrTooMuchRepay ErrorCode = 100201
	// ErrCannotLiquidate fixed borrow still inside term or rest period
	ErrCannotLiquidate ErrorCode = 100202
	// ErrSeizeTooMuch seize exceeds borrower collateral
	ErrSeizeTooMuch ErrorCode = 100203
	// ErrLiquidateSelf liquidator is the borrower
	ErrLiquidateSelf ErrorCode = 100204
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:               "unknown",
	ErrOperationForbidden:    "operation forbidden",
	ErrInvalidArgument:       "invalid argument",
	ErrMarketNotFound:        "market not found",
	ErrInvalidAmount:         "invalid amount",
	ErrMarketNotSupported:    "market not supported",
	ErrMarketClosed:          "market closed",
	ErrMarketExists:          "market exists",
	ErrInsufficientLiquidity: "insufficient liquidity",
	ErrInsufficientCash:      "insufficient cash",
	ErrInsufficientBalance:   "insufficient balance",
	ErrPriceError:            "price error",
	ErrNonzeroBorrowBalance:  "nonzero borrow balance",
	ErrInsufficientShortfall: "insufficient shortfall",
	ErrTooMuchRepay:          "too much repay",
	ErrCannotLiquidate:       "cannot liquidate",
	ErrSeizeTooMuch:          "seize too much",
	ErrLiquidateSelf:         "liquidator is borrower",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}
