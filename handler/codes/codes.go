package codes

import (
	"errors"

	"moneymarket/core"

	"github.com/spf13/cast"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
	// HintKey internal error message
	HintKey = "hint"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// From converts service errors to twirp errors, core error codes keep their number
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		return twirp.NewError(twirpCode(code), code.Error()).WithMeta(CustomCodeKey, code.String())
	}

	return twirp.InternalError("internal error").WithMeta(HintKey, err.Error())
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrOperationForbidden:
		return twirp.PermissionDenied
	case core.ErrInvalidArgument, core.ErrInvalidAmount:
		return twirp.InvalidArgument
	case core.ErrMarketNotFound, core.ErrMarketNotSupported:
		return twirp.NotFound
	case core.ErrMarketExists:
		return twirp.AlreadyExists
	case core.ErrPriceError:
		return twirp.Unavailable
	case core.ErrUnknown:
		return twirp.Unknown
	default:
		return twirp.FailedPrecondition
	}
}

// Get get error code
func Get(twerr twirp.Error) int {
	if code := cast.ToInt(twerr.Meta(CustomCodeKey)); code > 0 {
		return code
	}

	switch twerr.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	}
}
