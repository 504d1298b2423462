package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"hanoibak/internal/domain/contract"
	"hanoibak/internal/domain/entity"
	"hanoibak/internal/domain/service"
	"hanoibak/internal/logging"

	"github.com/rs/zerolog"
)

type BackupHandler struct {
	backupService contract.BackupService
	apiToken      string
	logger        zerolog.Logger
}

func New(backupService contract.BackupService, apiToken string) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		apiToken:      apiToken,
		logger:        logging.GetLogger("handlers"),
	}
}

func (h *BackupHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/status", h.HandleStatus)
	mux.HandleFunc("/run", h.HandleRun)
}

func (h *BackupHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

type statusResponse struct {
	Slots      []*entity.Slot `json:"slots"`
	RecentRuns []*entity.Run  `json:"recent_runs"`
}

func (h *BackupHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	slots, err := h.backupService.SlotStatus()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load slot status")
		h.respondError(w, http.StatusInternalServerError, "failed to load slot status")
		return
	}

	runs, err := h.backupService.History(0)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load run history")
		h.respondError(w, http.StatusInternalServerError, "failed to load run history")
		return
	}

	h.respondJSON(w, http.StatusOK, statusResponse{
		Slots:      slots,
		RecentRuns: runs,
	})
}

type runResponse struct {
	Run   *entity.Run `json:"run"`
	Error string      `json:"error,omitempty"`
}

func (h *BackupHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if !h.authorized(r) {
		h.respondError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	// day 0 means the current day
	day := 0
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, "day must be a positive day of year")
			return
		}
		day = parsed
	}

	dry := r.URL.Query().Get("dry")
	dryRun := dry == "1" || dry == "true"

	run, err := h.backupService.Run(r.Context(), day, dryRun)
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error().Err(err).Int("day", day).Msg("backup run failed")
		if run != nil {
			h.respondJSON(w, http.StatusInternalServerError, runResponse{Run: run, Error: err.Error()})
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, runResponse{Run: run})
}

func (h *BackupHandler) authorized(r *http.Request) bool {
	if h.apiToken == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+h.apiToken
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *BackupHandler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *BackupHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}
