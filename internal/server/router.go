package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taskvault/taskvault/internal/handlers"
	"github.com/taskvault/taskvault/internal/middleware"
)

// NewRouter wires all routes and the middleware chain. Todo routes and the
// logout endpoints sit behind the bearer guard.
func NewRouter(auth *handlers.AuthHandler, todos *handlers.TodoHandler, guard *middleware.AuthMiddleware, cors middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	// Authentication endpoints
	mux.HandleFunc("POST /auth/register", auth.Register)
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/refresh", auth.Refresh)
	mux.HandleFunc("POST /auth/logout", guard.RequireAuth(auth.Logout))
	mux.HandleFunc("POST /auth/logout-all", guard.RequireAuth(auth.LogoutAll))

	// Todo endpoints, owner-scoped
	mux.HandleFunc("POST /todos", guard.RequireAuth(todos.Create))
	mux.HandleFunc("GET /todos", guard.RequireAuth(todos.List))
	mux.HandleFunc("GET /todos/{id}", guard.RequireAuth(todos.Get))
	mux.HandleFunc("PUT /todos/{id}", guard.RequireAuth(todos.Update))
	mux.HandleFunc("DELETE /todos/{id}", guard.RequireAuth(todos.Delete))

	// Operational endpoints
	mux.HandleFunc("GET /healthz", auth.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.Recover(handler)
	handler = middleware.Metrics(handler)
	handler = middleware.RequestLogger(handler)
	handler = middleware.CORS(cors)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
