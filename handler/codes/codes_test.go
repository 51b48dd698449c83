package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"moneymarket/core"

	"github.com/bmizerany/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	for _, c := range []struct {
		err    error
		code   twirp.ErrorCode
		custom int
	}{
		{core.ErrInsufficientLiquidity, twirp.FailedPrecondition, 100105},
		{fmt.Errorf("borrow: %w", core.ErrOperationForbidden), twirp.PermissionDenied, 100001},
		{core.ErrMarketNotFound, twirp.NotFound, 100100},
		{core.ErrInvalidAmount, twirp.InvalidArgument, 100101},
		{twirp.InvalidArgumentError("symbol", "required"), twirp.InvalidArgument, InvalidArguments},
		{errors.New("db gone"), twirp.Internal, http.StatusInternalServerError},
	} {
		twerr := From(c.err)
		assert.Equal(t, c.code, twerr.Code())
		assert.Equal(t, c.custom, Get(twerr))
	}

	assert.Equal(t, "db gone", From(errors.New("db gone")).Meta(HintKey))
}
