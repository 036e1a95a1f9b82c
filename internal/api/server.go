package api

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"

	"inkflow/internal/analysis"
	"inkflow/internal/config"
	"inkflow/internal/models"
	"inkflow/internal/search"
	"inkflow/internal/storage"
	"inkflow/internal/tools"
	"inkflow/internal/util"
	"inkflow/internal/workflows"
)

type Server struct {
	cfg         config.Config
	db          *storage.DB
	sampleRepo  *storage.SampleRepo
	profileRepo *storage.ProfileRepo
	auditRepo   *storage.ToolAuditRepo
	searcher    *search.Searcher
	toolset     *tools.Toolset
	temporal    tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		panic(err)
	}
	analyzer, err := analysis.NewAnalyzer(cfg.AnalysisCacheSize)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	sampleRepo := storage.NewSampleRepo(db)
	profileRepo := storage.NewProfileRepo(db)
	auditRepo := storage.NewToolAuditRepo(db)
	searcher := search.NewSearcher(db.Pool)
	return &Server{
		cfg:         cfg,
		db:          db,
		sampleRepo:  sampleRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		searcher:    searcher,
		toolset:     tools.New(analyzer, sampleRepo, profileRepo, searcher, auditRepo, cfg.ExampleTopK),
		temporal:    tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/tools/analyze", s.handleToolAnalyze)
	mux.HandleFunc("/tools/profile", s.handleToolProfile)
	mux.HandleFunc("/tools/save-profile", s.handleToolSaveProfile)
	mux.HandleFunc("/tools/writing-prompt", s.handleToolWritingPrompt)
	mux.HandleFunc("/profiles", s.handleProfiles)
	mux.HandleFunc("/profiles/", s.handleProfilesScoped)
	mux.HandleFunc("/samples/", s.handleSampleGet)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleToolAnalyze(w http.ResponseWriter, r *http.Request) {
	var req tools.AnalyzeSampleRequest
	if !decodeToolRequest(w, r, &req) {
		return
	}
	resp, err := s.toolset.AnalyzeSample(r.Context(), req)
	if err != nil {
		writeToolErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToolProfile(w http.ResponseWriter, r *http.Request) {
	var req tools.GetProfileRequest
	if !decodeToolRequest(w, r, &req) {
		return
	}
	resp, err := s.toolset.GetProfile(r.Context(), req)
	if err != nil {
		writeToolErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToolSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req tools.SaveProfileRequest
	if !decodeToolRequest(w, r, &req) {
		return
	}
	resp, err := s.toolset.SaveProfile(r.Context(), req)
	if err != nil {
		writeToolErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToolWritingPrompt(w http.ResponseWriter, r *http.Request) {
	var req tools.WritingPromptRequest
	if !decodeToolRequest(w, r, &req) {
		return
	}
	resp, err := s.toolset.WritingPrompt(r.Context(), req)
	if err != nil {
		writeToolErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profiles, err := s.profileRepo.ListProfiles(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
	case http.MethodPost:
		var req struct {
			Name        string   `json:"name"`
			Description string   `json:"description"`
			Genres      []string `json:"genres"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("name is required"))
			return
		}

		profileID := uuid.NewString()
		profile := models.StyleProfile{ProfileID: profileID, Name: req.Name, Description: req.Description, Genres: req.Genres}
		if err := s.profileRepo.UpsertProfile(r.Context(), profile); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}

		if err := util.EnsureDir(filepath.Join(s.cfg.DataInRoot, profileID)); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := util.EnsureDir(filepath.Join(s.cfg.DataOutRoot, profileID)); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"profile_id": profileID, "name": req.Name})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleProfilesScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/profiles/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	profileID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			profile, err := s.profileRepo.GetProfile(r.Context(), profileID)
			if err != nil {
				writeToolErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
		case http.MethodDelete:
			if err := s.profileRepo.DeleteProfile(r.Context(), profileID); err != nil {
				writeToolErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"deleted": profileID})
		default:
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		}
		return
	}

	if len(parts) == 2 && parts[1] == "samples" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		samples, err := s.sampleRepo.ListSamplesByProfile(r.Context(), profileID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
		return
	}

	if len(parts) == 2 && parts[1] == "upload" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleUpload(w, r, profileID)
		return
	}

	if len(parts) == 2 && parts[1] == "ingest" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		wfID := workflows.BatchWorkflowIDPrefix + profileID
		we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
			ID:                                       wfID,
			TaskQueue:                                s.cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
			WorkflowExecutionErrorWhenAlreadyStarted: true,
		}, workflows.BatchIngestWorkflow, workflows.BatchIngestInput{
			ProfileID:             profileID,
			InputDir:              filepath.Join(s.cfg.DataInRoot, profileID),
			MaxConcurrentChildren: s.cfg.IngestMaxChildren,
		})
		if err != nil {
			writeErr(w, http.StatusConflict, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
		return
	}

	if len(parts) == 2 && parts[1] == "progress" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		var prog workflows.BatchIngestProgress
		resp, err := s.temporal.QueryWorkflow(r.Context(), workflows.BatchWorkflowIDPrefix+profileID, "", workflows.QueryGetBatchProgress)
		if err != nil {
			// Fallback to DB-derived progress when no active workflow query is available.
			samples, sErr := s.sampleRepo.ListSamplesByProfile(r.Context(), profileID)
			if sErr != nil {
				writeErr(w, http.StatusInternalServerError, sErr)
				return
			}
			per := make(map[string]string, len(samples))
			done := 0
			failed := 0
			for _, smp := range samples {
				per[smp.Filename] = smp.Status
				if smp.Status == "analyzed" {
					done++
				}
				if smp.Status == "failed" {
					failed++
				}
			}
			writeJSON(w, http.StatusOK, workflows.BatchIngestProgress{
				ProfileID: profileID,
				Total:     len(samples),
				Done:      done,
				Failed:    failed,
				PerSample: per,
			})
			return
		}
		if err := resp.Get(&prog); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, prog)
		return
	}

	if len(parts) == 2 && parts[1] == "rebuild" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
			ID:                    "rebuild-" + profileID,
			TaskQueue:             s.cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		}, workflows.ProfileRebuildWorkflow, workflows.ProfileRebuildInput{ProfileID: profileID})
		if err != nil {
			writeErr(w, http.StatusConflict, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
		return
	}

	if len(parts) == 2 && parts[1] == "guidance" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		profile, err := s.profileRepo.GetProfile(r.Context(), profileID)
		if err != nil {
			writeToolErr(w, err)
			return
		}
		if profile.Parameters == nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("profile has no aggregated parameters"))
			return
		}
		guidance := analysis.FormatGuidance(*profile.Parameters, profile.ComparableAuthors, profile.UserNotes)
		writeJSON(w, http.StatusOK, map[string]any{"profile_id": profileID, "guidance": guidance})
		return
	}

	writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
}

func (s *Server) handleSampleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sampleID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/samples/"), "/")
	if sampleID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	sample, err := s.sampleRepo.GetSample(r.Context(), sampleID)
	if err != nil {
		writeToolErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sample": sample})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, profileID string) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}
	dstDir := filepath.Join(s.cfg.DataInRoot, profileID)
	if err := util.EnsureDir(dstDir); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	uploaded := make([]map[string]string, 0)
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			if ext != ".txt" && ext != ".pdf" {
				writeErr(w, http.StatusBadRequest, fmt.Errorf("unsupported file type %s", ext))
				return
			}
			sampleID, path, err := saveUploadedFile(dstDir, fh)
			if err != nil {
				writeErr(w, http.StatusInternalServerError, err)
				return
			}
			uploaded = append(uploaded, map[string]string{
				"sample_id": sampleID,
				"filename":  filepath.Base(path),
			})
		}
	}
	writeJSON(w, http.StatusCreated, map[string]any{"uploaded": uploaded})
}

func saveUploadedFile(dstDir string, fh *multipart.FileHeader) (sampleID, path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), src); err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}

	sampleID = fmt.Sprintf("%x", h.Sum(nil))
	finalPath := util.SafeJoin(dstDir, fh.Filename)
	if err := tmp.Close(); err != nil {
		return "", "", err
	}
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("atomic move upload: %w", err)
	}
	return sampleID, finalPath, nil
}

func decodeToolRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return false
	}
	return true
}

// writeToolErr maps tool-layer error kinds onto HTTP statuses.
func writeToolErr(w http.ResponseWriter, err error) {
	var ve *tools.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, err)
	case errors.Is(err, analysis.ErrNoAnalyses):
		writeErr(w, http.StatusBadRequest, err)
	case errors.Is(err, storage.ErrNotFound):
		writeErr(w, http.StatusNotFound, err)
	default:
		writeErr(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "IF-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "IF-DB-5001",
				Message: "Database schema is not initialized. Run migrations and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "IF-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "IF-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "IF-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "IF-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "IF-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "IF-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "no text to analyze"):
			msg = "No text was provided to analyze."
		case strings.Contains(raw, "name is required"):
			msg = "Profile name is required."
		case strings.Contains(raw, "at least one analyzed sample"):
			msg = "At least one analyzed sample is required."
		case strings.Contains(raw, "no sample analyses to aggregate"):
			msg = "The profile has no analyzed samples to aggregate."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "no files provided"):
			msg = "No sample files were provided."
		case strings.Contains(raw, "unsupported file type"):
			msg = "Only .txt and .pdf samples are supported."
		case strings.Contains(raw, "not found"):
			msg = err.Error()
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
