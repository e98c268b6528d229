package api

import (
	"encoding/json"
	"net/http"

	"anthrostat/adapters/dataset"
	"anthrostat/domain/core"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewDebugServer builds the secondary operational server: health check,
// dataset summary and pprof, kept off the public port.
func NewDebugServer(addr string, data *dataset.Dataset) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/datasetz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]interface{}{
			"source":       data.Source(),
			"measurements": len(data.Measurements()),
			"male_n":       data.SampleSize(core.SexMale),
			"female_n":     data.SampleSize(core.SexFemale),
		})
	})

	r.Mount("/debug", middleware.Profiler())

	return &http.Server{Addr: addr, Handler: r}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
