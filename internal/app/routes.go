package app

import (
	"github.com/gorilla/mux"
	"github.com/spenttime/spenttime/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Spent time form + report
	r.HandleFunc("/api/spenttime/form", deps.SpentTimeHandler.GetForm).Methods("GET")
	r.HandleFunc("/api/spenttime/report", deps.SpentTimeHandler.GetReport).Methods("GET")

	// Time entries
	r.HandleFunc("/api/spenttime/entry", deps.SpentTimeHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/spenttime/entry/{entryId}", deps.SpentTimeHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/spenttime/entry/{entryId}", deps.SpentTimeHandler.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/api/spenttime/entry/{entryId}/notify", deps.SpentTimeHandler.NotifyEntry).Methods("POST")

	// Issue selector
	r.HandleFunc("/api/spenttime/project/{projectId}/issues", deps.SpentTimeHandler.GetProjectIssues).Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
}
