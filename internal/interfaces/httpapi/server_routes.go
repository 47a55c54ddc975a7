package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerImportRoutes(mux *http.ServeMux, handler *Handler, limit func(http.Handler) http.Handler) {
	mux.Handle("POST /v1/import/csv", limit(http.HandlerFunc(handler.ImportCSV)))
	mux.HandleFunc("GET /v1/import/entities", handler.ListEntities)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, limit func(http.Handler) http.Handler) {
	mux.Handle("POST /v1/admin/import/run", limit(http.HandlerFunc(handler.RunImport)))
	mux.HandleFunc("GET /v1/admin/import/plan", handler.PlanImport)
	mux.Handle("POST /v1/admin/teams/sync", limit(http.HandlerFunc(handler.SyncTeams)))
}
