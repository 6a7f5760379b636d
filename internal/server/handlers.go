package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"docrag/internal/models"
	"docrag/internal/ragerr"
)

// maxUploadBytes bounds the multipart form held in memory before spilling to
// temp files.
const maxUploadBytes = 64 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	meta, err := s.ingestor.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", header.Filename).Msg("Ingestion failed")
		s.respondError(w, statusForKind(ragerr.KindOf(err)), err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, models.UploadResponse{
		Message:    fmt.Sprintf("Document '%s' uploaded and processed successfully!", meta.Filename),
		MetadataID: meta.ID,
		NumChunks:  meta.NumChunks,
	})
}

func (s *Server) handleDocumentsMetadata(w http.ResponseWriter, r *http.Request) {
	records, err := s.metadata.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Listing metadata failed")
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []models.DocumentMetadata{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.respondError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	response, err := s.answerer.Answer(r.Context(), req.Query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", req.Query).Msg("Query failed")
		s.respondError(w, statusForKind(ragerr.KindOf(err)), err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusForKind(kind ragerr.Kind) int {
	switch kind {
	case ragerr.KindValidation, ragerr.KindEmptyContent:
		return http.StatusBadRequest
	case ragerr.KindConflict:
		return http.StatusConflict
	case ragerr.KindGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}
