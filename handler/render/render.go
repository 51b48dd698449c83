package render

import (
	"encoding/json"
	"net/http"

	"moneymarket/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write error as twirp error, status follows the twirp code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	resp := errorResponse{
		Code: codes.Get(twerr),
		Msg:  twerr.Msg(),
	}

	if ResponseErrorMessageAsHint {
		resp.Hint = twerr.Meta(codes.HintKey)
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}
