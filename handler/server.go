package handler

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/auth"
	"moneymarket/handler/render"
	"moneymarket/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	session  core.Session
	services rest.Services
}

// New new server function
func New(
	session core.Session,
	services rest.Services,
) Server {
	return Server{
		session:  session,
		services: services,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.Use(auth.HandleAuthentication(s.session))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.services))
	return r
}
