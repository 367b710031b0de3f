package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"courseforge/internal/service"
	"courseforge/internal/transport/rest/handler"
	"courseforge/internal/transport/rest/middleware"
	"courseforge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	CourseService *service.CourseService
	EditorService *service.EditorService
	MediaService  *service.MediaService
	WSHub         *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	courseHandler := handler.NewCourseHandler(c.CourseService)
	editorHandler := handler.NewEditorHandler(c.EditorService)
	mediaHandler := handler.NewMediaHandler(c.MediaService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes (view mode)
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/courses/latest", courseHandler.GetLatest).Methods("GET", "OPTIONS")
	v1.HandleFunc("/courses/{courseId}", courseHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/courses/{courseId}/quiz/{blockId}/submit", courseHandler.SubmitQuiz).Methods("POST", "OPTIONS")
	v1.HandleFunc("/media/{mediaId}/{filename}", mediaHandler.Serve).Methods("GET")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/courses/{courseId}", wsHandler.ViewerWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require authoring access)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/courses", courseHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/courses/{courseId}", courseHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/media", mediaHandler.Upload).Methods("POST", "OPTIONS")

	adminRoutes.HandleFunc("/editor/sessions", editorHandler.OpenSession).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}", editorHandler.GetSession).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}", editorHandler.CloseSession).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/header", editorHandler.UpdateHeader).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/chapters", editorHandler.AddChapter).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/nodes", editorHandler.UpdateNode).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/nodes/{nodeId}", editorHandler.DeleteNode).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/nodes/{nodeId}/children", editorHandler.AddSubChapter).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/nodes/{nodeId}/blocks", editorHandler.AddBlock).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks", editorHandler.UpdateBlock).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}", editorHandler.DeleteBlock).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}/format", editorHandler.FormatBlock).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}/quiz/question", editorHandler.QuizSetQuestion).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}/quiz/options", editorHandler.QuizSetOption).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}/quiz/options", editorHandler.QuizAddOption).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}/quiz/options", editorHandler.QuizRemoveOption).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/blocks/{blockId}/quiz/correct", editorHandler.QuizSetCorrect).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/undo", editorHandler.Undo).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/redo", editorHandler.Redo).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/save", editorHandler.Save).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/editor/sessions/{sessionId}/load", editorHandler.Load).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
