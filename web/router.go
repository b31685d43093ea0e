package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kehernandez7/squares/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/weeks", weeksHandler(ctrl, render))
	r.Get("/upcoming", upcomingHandler(ctrl, render))

	r.Route("/games", func(r chi.Router) {
		r.Post("/", createGameHandler(ctrl, render))

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", getGameHandler(ctrl, render))
			r.Post("/", claimCellsHandler(ctrl, render))
			r.Get("/meta", metaHandler(ctrl, render))
			r.Post("/verify-password", verifyPasswordHandler(ctrl, render))
			r.Get("/numbers", getNumbersHandler(ctrl, render))
			r.Post("/numbers", generateNumbersHandler(ctrl, render))
		})
	})

	return r
}
