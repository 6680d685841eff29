package http

import (
	"net/http"

	"intern-portal/http/handlers"
	"intern-portal/http/middleware"
)

// Handlers groups everything SetupRoutes wires into the mux
type Handlers struct {
	Auth    *handlers.AuthHandler
	Interns *handlers.InternHandler
	Links   *handlers.LinkHandler
	DLQ     *handlers.DLQHandler
}

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes(h Handlers) {
	// Public routes
	http.HandleFunc("/api/login", middleware.EnableCORS(h.Auth.Login))
	http.HandleFunc("/api/intern", middleware.EnableCORS(h.Interns.Signup))

	// Admin intern management
	http.HandleFunc("/api/interns", middleware.EnableCORS(middleware.RequireAuth(h.Interns.List)))
	http.HandleFunc("/api/interns/export", middleware.EnableCORS(middleware.RequireAuth(h.Interns.Export)))
	http.HandleFunc("/api/interns/offer", middleware.EnableCORS(middleware.RequireAuth(h.Interns.SendOffer)))
	http.HandleFunc("/api/interns/certificate/", middleware.EnableCORS(middleware.RequireAuth(h.Interns.SendCertificate)))

	// Community link: public read, admin create
	http.HandleFunc("/api/whatsapp-link", middleware.EnableCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			middleware.RequireAuth(h.Links.CreateWhatsAppLink)(w, r)
			return
		}
		h.Links.GetWhatsAppLink(w, r)
	}))

	// Role task links
	http.HandleFunc("/api/task-link", middleware.EnableCORS(middleware.RequireAuth(h.Links.CreateTaskLink)))

	// DLQ management
	http.HandleFunc("/api/dlq/messages", middleware.EnableCORS(middleware.RequireAuth(h.DLQ.List)))
	http.HandleFunc("/api/dlq/messages/retry/", middleware.EnableCORS(middleware.RequireAuth(h.DLQ.Retry)))
}
