package gateway

import "net/http"

// registerHTTPRoutes sets up all HTTP routes on the server mux. Every agent
// identity is served by the one generic /gpt/{agent} handler; the roster in
// the agent package is the dispatch table.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	// Bypassed routes (see bypassRoutes in gate.go)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /docs", s.handleDocs)
	mux.HandleFunc("GET /auth/callback", s.handleAuthCallback)

	// Gated integration routes
	mux.HandleFunc("POST /social/publish-ocoya", s.handleSocialPublish)
	mux.HandleFunc("POST /systeme/contact", s.handleSystemeContact)
	mux.HandleFunc("POST /gmail/send", s.handleGmailSend)
	mux.HandleFunc("GET /youtube/search", s.handleYouTubeSearch)
	mux.HandleFunc("POST /videoai/generate", s.handleVideoGenerate)
	mux.HandleFunc("POST /cron/daily-bff-report", s.handleCronReport)

	// Gated agent dispatch
	mux.HandleFunc("POST /gpt/{agent}", s.handleAgent)

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}
