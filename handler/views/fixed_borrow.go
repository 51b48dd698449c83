package views

import (
	"time"

	"moneymarket/core"
)

// FixedBorrow fixed borrow with its maturity
type FixedBorrow struct {
	*core.FixedBorrow
	Status     string    `json:"status"`
	MaturityAt time.Time `json:"maturity_at"`
}

func FixedBorrowView(fb *core.FixedBorrow) *FixedBorrow {
	return &FixedBorrow{
		FixedBorrow: fb,
		Status:      fb.Status.String(),
		MaturityAt:  fb.MaturityAt(),
	}
}

func FixedBorrowViews(list []*core.FixedBorrow) []*FixedBorrow {
	views := make([]*FixedBorrow, 0, len(list))
	for _, fb := range list {
		views = append(views, FixedBorrowView(fb))
	}

	return views
}
