package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pictriage/pictriage/internal/export"
	"github.com/pictriage/pictriage/internal/hierarchy"
	"github.com/pictriage/pictriage/internal/ingest"
	"github.com/pictriage/pictriage/internal/models"
	"go.uber.org/zap"
)

type uploadResponse struct {
	Status    string            `json:"status"`
	DatasetID string            `json:"dataset_id"`
	Data      *models.Hierarchy `json:"data"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "no file part")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		s.respondError(w, http.StatusBadRequest, "no selected file")
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	s.logger.Debug("upload request", zap.String("filename", header.Filename), zap.Int("bytes", len(content)))
	table, err := ingest.Parse(content, ext)
	if err != nil {
		s.respondIngestError(w, err)
		return
	}
	rows, err := ingest.Normalize(table)
	if err != nil {
		s.respondIngestError(w, err)
		return
	}
	h := hierarchy.Build(rows)

	datasetID := uuid.NewString()
	s.logger.Info("sheet ingested",
		zap.String("dataset_id", datasetID),
		zap.String("filename", header.Filename),
		zap.Int("rows", len(rows)),
		zap.Int("users", h.Len()),
	)
	s.respondJSON(w, http.StatusOK, uploadResponse{Status: "success", DatasetID: datasetID, Data: h})
}

// respondIngestError maps the ingest error taxonomy onto HTTP statuses:
// client-correctable input problems are 400s, anything else a 500.
func (s *Server) respondIngestError(w http.ResponseWriter, err error) {
	var parseErr *ingest.ParseError
	var missingErr *ingest.MissingColumnError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.As(err, &parseErr),
		errors.As(err, &missingErr):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("ingest failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	records := hierarchy.Flatten(&req.Data, req.ReviewedOnly)
	out, err := export.Serialize(records, req.Format)
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("export request",
		zap.String("format", req.Format),
		zap.Bool("reviewed_only", req.ReviewedOnly),
		zap.Int("records", len(records)),
	)

	w.Header().Set("Content-Type", export.ContentType(req.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(req.Format)))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
