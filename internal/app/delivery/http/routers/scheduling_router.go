package routers

import (
	"facultyload-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSchedulingRoutes(r chi.Router, controller *controllers.SchedulingController) {
	r.Route("/dialogs", func(r chi.Router) {
		r.Post("/", controller.OpenDialog)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", controller.Snapshot)
			r.Patch("/", controller.UpdateDraft)
			r.Delete("/", controller.Cancel)
			r.Post("/validate", controller.Validate)
			r.Post("/preference", controller.ApplyPreference)
			r.Post("/assign", controller.Assign)
			r.Post("/clear", controller.ClearAll)
		})
	})
}

func attachOptionRoutes(r chi.Router, controller *controllers.OptionsController) {
	r.Route("/options", func(r chi.Router) {
		r.Get("/days", controller.Days)
		r.Get("/times", controller.Times)
		r.Get("/faculty", controller.Faculty)
		r.Get("/rooms", controller.Rooms)
		r.Get("/suggestions", controller.Suggestions)
	})
}
