package app

import (
	"net/http"
)

func (app *application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthcheckResponse{
		Status: "UP",
		SystemInfo: SystemInfo{
			Version:     version,
			Environment: app.config.env,
		},
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
