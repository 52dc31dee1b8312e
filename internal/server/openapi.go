package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi31.Spec {
	r := openapi31.NewReflector()
	r.Spec.Info.Title = "CityChase API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the CityChase pursuit game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/session
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	createSession.SetSummary("Create session")
	createSession.SetDescription("Creates a new game session with a freshly generated route. Returns a session token.")
	createSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(createSession)

	// GET /api/session/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/session/state")
	getState.SetSummary("Get session state")
	getState.SetDescription("Returns the current state snapshot for the session. Requires Bearer token.")
	getState.AddRespStructure(Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// POST /api/session/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/session/start")
	postStart.SetSummary("Start investigation")
	postStart.SetDescription("Moves the session from the intro to the investigation phase. Requires Bearer token.")
	postStart.AddRespStructure(StartResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postStart)

	// POST /api/session/clues
	postClues, _ := r.NewOperationContext(http.MethodPost, "/api/session/clues")
	postClues.SetSummary("Request clues")
	postClues.SetDescription("Asks the local informant for clues about the next destination. Requires Bearer token.")
	postClues.AddRespStructure(CluesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postClues.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postClues.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postClues)

	// POST /api/session/travel
	postTravel, _ := r.NewOperationContext(http.MethodPost, "/api/session/travel")
	postTravel.SetSummary("Open travel options")
	postTravel.SetDescription("Moves to the travel phase and lists candidate destinations. Requires Bearer token.")
	postTravel.AddRespStructure(TravelResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postTravel.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postTravel.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postTravel)

	// POST /api/session/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/session/guess")
	postGuess.SetSummary("Travel to a city")
	postGuess.SetDescription("Commits to a destination. Wrong picks cost an attempt. Requires Bearer token.")
	postGuess.AddReqStructure(GuessRequest{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postGuess)

	// POST /api/session/continue
	postContinue, _ := r.NewOperationContext(http.MethodPost, "/api/session/continue")
	postContinue.SetSummary("Advance final encounter")
	postContinue.SetDescription("Plays the next line of the final confrontation. Requires Bearer token.")
	postContinue.AddRespStructure(ContinueResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postContinue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postContinue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postContinue)

	// POST /api/session/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/session/reset")
	postReset.SetSummary("Reset session")
	postReset.SetDescription("Discards all progress and starts a fresh game under the same token. Requires Bearer token.")
	postReset.AddRespStructure(Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postReset)

	// GET /api/session/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/session/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream for game updates. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/catalog
	getCatalog, _ := r.NewOperationContext(http.MethodGet, "/api/admin/catalog")
	getCatalog.SetSummary("Inspect catalog")
	getCatalog.SetDescription("Returns the loaded city catalog with clue pool sizes. Requires admin_session cookie.")
	getCatalog.AddRespStructure(AdminCatalogResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getCatalog.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getCatalog)

	// GET /api/admin/sessions
	getSessions, _ := r.NewOperationContext(http.MethodGet, "/api/admin/sessions")
	getSessions.SetSummary("List sessions")
	getSessions.SetDescription("Returns all persisted sessions with sizes and timestamps. Requires admin_session cookie.")
	getSessions.AddRespStructure(AdminSessionsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSessions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getSessions)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
