package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/export"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/extract"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/fetch"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/input"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/session"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// sessionCookie carries the opaque session ID between requests
const sessionCookie = "reviewer_session"

// retryBackoff is the pause before the single retry of a retryable provider
// failure. Variable so tests can shorten it.
var retryBackoff = 2 * time.Second

// analyzeRequest is the POST /api/v1/analyses body
type analyzeRequest struct {
	ResumeText      string                `json:"resume_text"`
	JobDescription  string                `json:"job_description,omitempty"`
	JobURL          string                `json:"job_url,omitempty"`
	JobRole         string                `json:"job_role,omitempty"`
	Industry        string                `json:"industry,omitempty"`
	ExperienceLevel string                `json:"experience_level,omitempty"`
	Options         types.AnalysisOptions `json:"options"`
}

// sessionStore resolves the request's session, creating one and setting the
// cookie when the client has none.
func (s *Server) sessionStore(w http.ResponseWriter, r *http.Request) (string, *session.Store) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if store, ok := s.sessions.Get(cookie.Value); ok {
			return cookie.Value, store
		}
	}

	id, store := s.sessions.Open()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, store
}

// handleCreateAnalysis runs the full pipeline: normalize, call the provider,
// aggregate, and store the result in the session. The request body is either a
// JSON analyzeRequest or a multipart form carrying a resume document upload.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	sessionID, store := s.sessionStore(w, r)

	var body analyzeRequest
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "multipart/form-data" {
		parsed, err := multipartAnalysisRequest(r)
		if err != nil {
			status := HTTPStatus(err)
			if status == http.StatusInternalServerError {
				// Malformed form data is the client's fault
				status = http.StatusBadRequest
			}
			s.errorResponse(w, status, err.Error())
			return
		}
		body = *parsed
	} else if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// One analysis in flight per session
	if _, busy := s.inFlight.LoadOrStore(sessionID, struct{}{}); busy {
		s.errorResponse(w, http.StatusConflict, "an analysis is already in progress for this session")
		return
	}
	defer s.inFlight.Delete(sessionID)

	jobDescription := body.JobDescription
	if jobDescription == "" && body.JobURL != "" {
		text, err := fetch.JobDescription(r.Context(), body.JobURL, s.fetchOpts)
		if err != nil {
			s.logger.Warn("job posting fetch failed", "error", err)
			s.errorResponse(w, HTTPStatus(err), "could not fetch job posting from URL")
			return
		}
		jobDescription = text
	}

	req, err := input.Normalize(body.ResumeText, input.Metadata{
		JobDescription:  jobDescription,
		JobRole:         body.JobRole,
		Industry:        body.Industry,
		ExperienceLevel: body.ExperienceLevel,
		Options:         body.Options,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.sem.Acquire(r.Context(), 1); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "server is at analysis capacity")
		return
	}
	defer s.sem.Release(1)

	raw, err := s.analyzeWithRetry(r, req)
	if err != nil {
		s.logger.Error("provider call failed", "provider", s.client.Name(), "error", err)
		s.errorResponse(w, HTTPStatus(err), "the analysis provider is unavailable, please try again later")
		return
	}

	result, err := s.aggregator.Aggregate(raw)
	if err != nil {
		s.logger.Error("aggregation failed", "provider", raw.Provider, "error", err)
		s.errorResponse(w, HTTPStatus(err), "the provider returned an unusable response, please try again later")
		return
	}

	store.SetCurrent(result)
	s.jsonResponse(w, http.StatusCreated, result)
}

// multipartAnalysisRequest builds an analyzeRequest from a form upload. The
// resume arrives as a file part named "resume" in PDF, DOCX, or plain-text
// form; the remaining fields arrive as ordinary form values, with options as
// a JSON-encoded field.
func multipartAnalysisRequest(r *http.Request) (*analyzeRequest, error) {
	if err := r.ParseMultipartForm(extract.MaxFileSize); err != nil {
		return nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, fmt.Errorf("missing resume file part")
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, extract.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read resume upload: %w", err)
	}

	// The file extension is a better type signal than the part's Content-Type,
	// which browsers often leave as application/octet-stream.
	mimeType := extract.MIMEForFilename(header.Filename)
	if mimeType == "" {
		mimeType = header.Header.Get("Content-Type")
	}
	text, err := extract.Text(mimeType, data)
	if err != nil {
		return nil, err
	}

	body := &analyzeRequest{
		ResumeText:      text,
		JobDescription:  r.FormValue("job_description"),
		JobURL:          r.FormValue("job_url"),
		JobRole:         r.FormValue("job_role"),
		Industry:        r.FormValue("industry"),
		ExperienceLevel: r.FormValue("experience_level"),
	}
	if opts := r.FormValue("options"); opts != "" {
		if err := json.Unmarshal([]byte(opts), &body.Options); err != nil {
			return nil, fmt.Errorf("invalid options field: %w", err)
		}
	}
	return body, nil
}

// analyzeWithRetry calls the provider, retrying once with backoff on timeout
// or rate-limit failures. The adapter itself never retries.
func (s *Server) analyzeWithRetry(r *http.Request, req *types.AnalysisRequest) (*provider.Response, error) {
	raw, err := s.client.Analyze(r.Context(), req)
	if err == nil || !provider.Retryable(err) {
		return raw, err
	}

	s.logger.Warn("provider call failed, retrying once", "provider", s.client.Name(), "error", err)
	select {
	case <-r.Context().Done():
		return nil, err
	case <-time.After(retryBackoff):
	}

	return s.client.Analyze(r.Context(), req)
}

// handleCurrentAnalysis returns the session's most recent result
func (s *Server) handleCurrentAnalysis(w http.ResponseWriter, r *http.Request) {
	_, store := s.sessionStore(w, r)

	result, ok := store.Current()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "no analysis result for this session")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleClearAnalysis drops the session's result
func (s *Server) handleClearAnalysis(w http.ResponseWriter, r *http.Request) {
	_, store := s.sessionStore(w, r)
	store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// handleExport renders the session's result as a download artifact
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, store := s.sessionStore(w, r)

	result, ok := store.Current()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "no analysis result for this session")
		return
	}

	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	artifact, err := export.Render(result, format)
	if err != nil {
		s.logger.Error("export failed", "format", format, "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	w.Header().Set("Content-Type", artifact.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.Error("failed to write export body", "error", err)
	}
}

// handleEndSession ends the session and drops its state
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.End(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
