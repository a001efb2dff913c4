package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/riftvault/pkg/ingest"
	"github.com/ssargent/riftvault/pkg/players"
	"github.com/ssargent/riftvault/pkg/rofl"
	"github.com/ssargent/riftvault/pkg/stats"
	"github.com/ssargent/riftvault/pkg/storage"
)

// multipart overhead allowed on top of the replay size limit
const formOverhead = 1 << 20

// Server holds the API server state
type Server struct {
	store    MatchStore
	ingester *ingest.Ingester
	players  *players.Directory
	config   ServerConfig
	metrics  *Metrics
	logger   logrus.FieldLogger
}

// NewServer creates a new API server
func NewServer(store MatchStore, config ServerConfig, metrics *Metrics, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = ingest.DefaultMaxBytes
	}

	ing := ingest.New(store, logger, config.MaxUploadBytes)
	if metrics != nil {
		ing.Metrics = metrics
	}

	return &Server{
		store:    store,
		ingester: ing,
		players:  config.Players,
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}
}

// track records a store operation when metrics are enabled
func (s *Server) track(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(operation, err == nil, time.Since(start))
	}
}

// sendStoreError maps store and ingest errors to HTTP responses
func (s *Server) sendStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, "Match not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrDuplicate):
		sendError(w, "Match already uploaded", http.StatusConflict)
	case errors.Is(err, ingest.ErrTooLarge):
		sendError(w, fmt.Sprintf("Replay exceeds %d bytes", s.config.MaxUploadBytes), http.StatusRequestEntityTooLarge)
	case errors.Is(err, ingest.ErrEmptyUpload):
		sendError(w, "Replay file is empty", http.StatusBadRequest)
	case rofl.Kind(err) != rofl.KindUnknown:
		sendError(w, fmt.Sprintf("Invalid replay (%s): %v", rofl.Kind(err), err), http.StatusUnprocessableEntity)
	default:
		s.logger.WithError(err).Error("request failed")
		sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleUpload godoc
//
//	@Summary		Upload a replay
//	@Description	Decode and store a .rofl replay file
//	@Tags			matches
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"Replay file"
//	@Param			match-date	formData	string	false	"Match date (YYYY-MM-DD or RFC 3339)"
//	@Success		201	{object}	MatchSummary
//	@Failure		400	{object}	map[string]string
//	@Failure		409	{object}	map[string]string
//	@Failure		413	{object}	map[string]string
//	@Failure		422	{object}	map[string]string
//	@Router			/matches [post]
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+formOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.sendStoreError(w, ingest.ErrTooLarge)
			return
		}
		sendError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, "Missing replay file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	date, err := ingest.ParseMatchDate(r.FormValue("match-date"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	match, err := s.ingester.IngestReader(r.Context(), header.Filename, file, date)
	s.track("put", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}

	sendStatus(w, summarize(match), http.StatusCreated)
}

// handleDecode godoc
//
//	@Summary		Decode a replay
//	@Description	Decode a replay sent as the raw request body without storing it
//	@Tags			replays
//	@Accept			octet-stream
//	@Produce		json
//	@Param			filename	query		string	false	"File name recorded in the result"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		413	{object}	map[string]string
//	@Failure		422	{object}	map[string]string
//	@Router			/decode [post]
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.config.MaxUploadBytes+1))
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > s.config.MaxUploadBytes {
		s.sendStoreError(w, ingest.ErrTooLarge)
		return
	}

	filename := r.URL.Query().Get("filename")
	replay, err := rofl.Decode(body, filename)
	if s.metrics != nil {
		if err != nil {
			s.metrics.ObserveDecode(rofl.VersionUnknown.String(), rofl.Kind(err))
		} else {
			s.metrics.ObserveDecode(replay.Version.String(), "ok")
		}
	}
	if err != nil {
		s.sendStoreError(w, err)
		return
	}

	sendSuccess(w, replay)
}

// handleListMatches godoc
//
//	@Summary		List matches
//	@Description	List stored matches, newest game first
//	@Tags			matches
//	@Produce		json
//	@Success		200	{array}		MatchSummary
//	@Router			/matches [get]
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	matches, err := s.store.List()
	s.track("list", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, summarize(m))
	}
	sendSuccess(w, summaries)
}

// handleGetMatch godoc
//
//	@Summary		Get a match
//	@Description	Get a stored match with its decoded replay
//	@Tags			matches
//	@Produce		json
//	@Param			hash	path		string	true	"File hash"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]string
//	@Router			/matches/{hash} [get]
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	start := time.Now()
	match, err := s.store.Get(hash)
	s.track("get", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	sendSuccess(w, match)
}

// handleUpdateMatch godoc
//
//	@Summary		Edit a match
//	@Description	Set the MVP, match date or draft of a stored match
//	@Tags			matches
//	@Accept			json
//	@Produce		json
//	@Param			hash	path		string				true	"File hash"
//	@Param			request	body		UpdateMatchRequest	true	"Fields to change"
//	@Success		200	{object}	MatchSummary
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/matches/{hash} [put]
func (s *Server) handleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	var req UpdateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	update := storage.MatchUpdate{MVPPlayer: req.MVPPlayer}
	if req.MatchDate != nil {
		date, err := ingest.ParseMatchDate(*req.MatchDate)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		update.MatchDate = date
		update.ClearMatchDate = date == nil
	}
	if len(req.DraftData) > 0 {
		if !jsoniter.Valid(req.DraftData) {
			sendError(w, "draft_data must be valid JSON", http.StatusBadRequest)
			return
		}
		update.Draft = req.DraftData
	}

	start := time.Now()
	match, err := s.store.Update(hash, update)
	s.track("update", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	sendSuccess(w, summarize(match))
}

// handleDeleteMatch godoc
//
//	@Summary		Delete a match
//	@Description	Delete a stored match and its replay file
//	@Tags			matches
//	@Produce		json
//	@Param			hash	path		string	true	"File hash"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/matches/{hash} [delete]
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	start := time.Now()
	err := s.store.Delete(hash)
	s.track("delete", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}

	s.logger.WithField("hash", hash).Info("match deleted")
	sendSuccess(w, map[string]string{"status": "deleted"})
}

// handleDownload godoc
//
//	@Summary		Download a replay
//	@Description	Download the original replay file of a stored match
//	@Tags			matches
//	@Produce		octet-stream
//	@Param			hash	path		string	true	"File hash"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	map[string]string
//	@Router			/matches/{hash}/download [get]
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	start := time.Now()
	match, err := s.store.Get(hash)
	if err == nil {
		var raw []byte
		raw, err = s.store.File(hash)
		if err == nil {
			s.track("download", start, nil)
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", match.FileName))
			w.Header().Set("Content-Length", fmt.Sprint(len(raw)))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(raw)
			return
		}
	}
	s.track("download", start, err)
	s.sendStoreError(w, err)
}

// handleLeaderboard godoc
//
//	@Summary		Leaderboard
//	@Description	Rank every player by wins across all stored matches
//	@Tags			stats
//	@Produce		json
//	@Success		200	{array}		stats.LeaderboardPlayer
//	@Router			/leaderboard [get]
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	matches, err := s.store.List()
	s.track("list", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	sendSuccess(w, stats.Leaderboard(matches, s.players))
}

// handlePlayer godoc
//
//	@Summary		Player profile
//	@Description	Totals, champions, positions, synergies and match history for one player
//	@Tags			stats
//	@Produce		json
//	@Param			puuid	path		string	true	"Player PUUID"
//	@Success		200	{object}	stats.Profile
//	@Failure		404	{object}	map[string]string
//	@Router			/players/{puuid} [get]
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")

	start := time.Now()
	matches, err := s.store.List()
	s.track("list", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}

	profile, err := stats.PlayerProfile(matches, puuid, s.players)
	if errors.Is(err, stats.ErrPlayerNotFound) {
		sendError(w, "Player not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	sendSuccess(w, profile)
}

// handleStats godoc
//
//	@Summary		Store statistics
//	@Description	Number of matches and bytes stored
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	storage.Stats
//	@Router			/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	st, err := s.store.Stats()
	s.track("stats", start, err)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	sendSuccess(w, st)
}

// startMetricsUpdater periodically updates store metrics until ctx is done
func (s *Server) startMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if st, err := s.store.Stats(); err == nil {
			s.metrics.UpdateStoreStats(st.Matches, st.StoredBytes)
		} else {
			s.logger.WithError(err).Warn("store stats unavailable")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
