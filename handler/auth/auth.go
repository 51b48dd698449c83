package auth

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/twitchtv/twirp"
)

// HandleAuthentication handle authentication, invalid tokens continue as guest
func HandleAuthentication(session core.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			accessToken := getBearerToken(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := session.Login(ctx, accessToken)
			if err != nil {
				log.WithError(err).Debugln("parse access token error:", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx = logger.WithContext(ctx, log.WithField("user", user.UserID))
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithUser(user)))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired rejects guests
func LoginRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if _, ok := request.NewContext(r.Context()).GetUser(); !ok {
				render.Error(w, twirp.NewError(twirp.Unauthenticated, "login required"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimPrefix(s, "Bearer ")
}
