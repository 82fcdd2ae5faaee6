package handlers

import (
	"net/http"
	"time"

	"github.com/pudu/heartgate/internal/httpserver/deps"
)

type healthzResponse struct {
	OK        bool   `json:"ok"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			OK:        true,
			Version:   d.Version,
			Commit:    d.Commit,
			BuildDate: d.BuildDate,
			GoVersion: d.GoVersion,
			Uptime:    time.Since(d.StartTime).Round(time.Second).String(),
		})
	}
}
