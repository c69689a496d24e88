package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bffaitrainer/bff-middleware/internal/agent"
	"github.com/bffaitrainer/bff-middleware/internal/integration"
	"github.com/bffaitrainer/bff-middleware/internal/version"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeClientError writes a 400 with a specific message.
func writeClientError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// writeResult maps an adapter result onto the HTTP response. Skips and
// successes are 200 with the result body. Provider failures propagate the
// provider's status and raw body unmodified; failures with no provider
// response are a 502.
func writeResult(w http.ResponseWriter, res integration.Result) {
	switch {
	case res.Status != integration.StatusError:
		writeJSON(w, http.StatusOK, res)
	case res.ProviderStatus != 0:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.ProviderStatus)
		w.Write(res.ProviderBody)
	default:
		writeJSON(w, http.StatusBadGateway, res)
	}
}

// writePayloadResult is writeResult for routes that return the provider's
// response directly rather than the result envelope (search, video).
// Credential-absent skips on these routes are client errors.
func writePayloadResult(w http.ResponseWriter, res integration.Result) {
	switch res.Status {
	case integration.StatusOK:
		writeJSON(w, http.StatusOK, res.Payload)
	case integration.StatusSkipped:
		writeClientError(w, res.Reason)
	default:
		if res.ProviderStatus != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(res.ProviderStatus)
			w.Write(res.ProviderBody)
			return
		}
		writeJSON(w, http.StatusBadGateway, res)
	}
}

// handleHealth returns the gateway health status. Always admitted.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

// handleDocs returns a fixed JSON index of the API surface. Always admitted.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"version": version.Version,
		"routes": []string{
			"GET /health",
			"GET /docs",
			"GET /auth/callback",
			"POST /social/publish-ocoya",
			"POST /systeme/contact",
			"POST /gmail/send",
			"GET /youtube/search",
			"POST /videoai/generate",
			"POST /cron/daily-bff-report",
			"POST /gpt/{agent}",
		},
	})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

// handleAuthCallback exchanges an authorization code for the provider's
// token payload. The gateway keeps nothing; the caller owns the credential.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeClientError(w, "missing code parameter")
		return
	}

	res := s.oauth.Exchange(r.Context(), code)
	if res.Status == integration.StatusOK {
		// Raw token payload, exactly as the provider returned it.
		writeJSON(w, http.StatusOK, res.Payload)
		return
	}
	writeResult(w, res)
}

type publishPostRequest struct {
	Channel     string            `json:"channel"`
	Text        string            `json:"text"`
	MediaURL    string            `json:"media_url,omitempty"`
	ScheduleISO string            `json:"schedule_iso,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	UTM         map[string]string `json:"utm,omitempty"`
}

func (s *Server) handleSocialPublish(w http.ResponseWriter, r *http.Request) {
	var req publishPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, "invalid request body: "+err.Error())
		return
	}
	if req.Channel == "" || req.Text == "" {
		writeClientError(w, "channel and text are required")
		return
	}

	post := map[string]any{
		"channel": req.Channel,
		"text":    req.Text,
	}
	if req.MediaURL != "" {
		post["media_url"] = req.MediaURL
	}
	if req.ScheduleISO != "" {
		post["schedule_iso"] = req.ScheduleISO
	}
	if len(req.Tags) > 0 {
		post["tags"] = req.Tags
	}
	if len(req.UTM) > 0 {
		post["utm"] = req.UTM
	}

	writeResult(w, s.ocoya.SchedulePost(r.Context(), post))
}

type contactRequest struct {
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name,omitempty"`
	LastName   string   `json:"last_name,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CampaignID string   `json:"campaign_id,omitempty"`
}

func (s *Server) handleSystemeContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, "invalid request body: "+err.Error())
		return
	}
	if req.Email == "" {
		writeClientError(w, "email is required")
		return
	}

	writeResult(w, s.systeme.UpsertContact(r.Context(), integration.Contact{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Tags:       req.Tags,
		CampaignID: req.CampaignID,
	}))
}

func (s *Server) handleGmailSend(w http.ResponseWriter, r *http.Request) {
	var msg integration.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeClientError(w, "invalid request body: "+err.Error())
		return
	}
	if msg.To == "" || msg.Subject == "" {
		writeClientError(w, "to and subject are required")
		return
	}

	writeResult(w, s.gmail.Send(r.Context(), msg))
}

func (s *Server) handleYouTubeSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeClientError(w, "missing q parameter")
		return
	}
	writePayloadResult(w, s.youtube.Search(r.Context(), q))
}

func (s *Server) handleVideoGenerate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeClientError(w, "invalid request body: "+err.Error())
		return
	}
	writePayloadResult(w, s.videoai.Generate(r.Context(), payload))
}

// handleCronReport composes the daily report and emails it to the configured
// recipient. The email result is awaited and logged but not surfaced; the
// report itself is the response.
func (s *Server) handleCronReport(w http.ResponseWriter, r *http.Request) {
	report := map[string]any{
		"headline": "Daily BFF Report",
		"sections": []map[string]any{
			{"title": "Top of Funnel", "metric": "Leads", "value": 42},
			{"title": "Revenue Forecast", "value": "$7,500 next 7 days", "notes": "Based on 5% conv."},
			{"title": "Content Plan", "value": "12 posts scheduled (Ocoya)"},
			{"title": "Stock Windows", "value": "7:45am, 11:55am, 3:35pm local"},
		},
	}

	body, _ := json.MarshalIndent(report, "", "  ")
	res := s.gmail.Send(r.Context(), integration.Message{
		To:      s.cfg.Report.To,
		Subject: "Daily BFF Report",
		HTML:    "<h2>Daily BFF Report</h2><pre>" + string(body) + "</pre>",
	})
	s.log.Debug().
		Str("to", s.cfg.Report.To).
		Str("status", string(res.Status)).
		Msg("report email")

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"report": report,
	})
}

// handleAgent is the one generic dispatch handler behind every /gpt/{agent}
// route. Unknown agents are a 404; an adapter failure from the agent's side
// effect surfaces to the caller instead of being discarded.
func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("agent")

	task, err := agent.DecodeTask(r.Body)
	if err != nil {
		if errors.Is(err, agent.ErrMissingIntent) {
			writeClientError(w, "intent is required")
			return
		}
		writeClientError(w, "invalid request body: "+err.Error())
		return
	}

	resp, effect, err := s.dispatcher.Dispatch(r.Context(), slug, task)
	if err != nil {
		if errors.Is(err, agent.ErrUnknownAgent) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown agent: " + slug})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if effect != nil && effect.Status == integration.StatusError {
		writeResult(w, *effect)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
