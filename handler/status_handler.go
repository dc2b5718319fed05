package handlers

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/lemslab/benchpipe/model"
	"github.com/lemslab/benchpipe/router"
	"github.com/lemslab/benchpipe/service"
	"github.com/lemslab/benchpipe/watcher"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	Run     model.RunInfo
	Watcher *watcher.Watcher
	Ingest  *service.IngestService
}

type statusResponse struct {
	Run      model.RunInfo        `json:"run"`
	UptimeS  float64              `json:"uptime_s"`
	Inserted int64                `json:"inserted"`
	Files    []watcher.FileStatus `json:"files"`
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(statusResponse{
		Run:      h.Run,
		UptimeS:  time.Since(h.Run.Started).Seconds(),
		Inserted: h.Ingest.Inserted(),
		Files:    h.Watcher.Snapshot(),
	})
}

// Flush commits everything currently buffered and reports the batch size.
func (h *Handler) Flush(w http.ResponseWriter, r *http.Request) error {
	n, err := h.Ingest.Flush().Get()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(map[string]int32{"flushed": n})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) error {
	response := `{"checks": [], "message": "Service is healthy", "name": "benchpipe", "status": "pass"}`
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(response + "\n"))
	return nil
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// RegisterRoutes wires the status API into the route registry.
func (h *Handler) RegisterRoutes() {
	router.RegisterRoute(&router.Route{
		Path:    "/status",
		Methods: []string{"GET"},
		Handler: h.Status,
	})
	router.RegisterRoute(&router.Route{
		Path:    "/flush",
		Methods: []string{"POST"},
		Handler: h.Flush,
	})
	router.RegisterRoute(&router.Route{
		Path:    "/health",
		Methods: []string{"GET"},
		Handler: h.Health,
	})
	router.RegisterRoute(&router.Route{
		Path:    "/ping",
		Methods: []string{"GET"},
		Handler: h.Ping,
	})
}
