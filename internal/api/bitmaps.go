package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openepaper/epaper-mock/internal/state"
)

// maxBitmapMemory is the in-memory buffer size for multipart bitmap uploads.
// Larger parts spill to temporary files.
const maxBitmapMemory = 1 << 20

// handleListBitmaps returns summaries of all stored bitmaps. Raw blobs are
// never embedded in listings; clients fetch them by filename.
func (s *Server) handleListBitmaps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"bitmaps": s.store.BitmapSummaries(),
	})
}

// handleGetBitmap returns the raw bitmap payload as an octet stream.
func (s *Server) handleGetBitmap(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	bmp, err := s.store.Bitmap(filename)
	if err != nil {
		if errors.Is(err, state.ErrBitmapNotFound) {
			writeNotFound(w, "bitmap not found")
			return
		}
		writeInternalError(w, "failed to get bitmap")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(bmp.Data)
}

// handleUploadBitmap stores a bitmap from a multipart form.
//
// Form fields:
//   - bitmap: required file part; its filename keys the stored bitmap
//   - metadata: optional JSON part; unparseable or absent metadata falls
//     back to the default {width: 64, height: 64}
//
// Uploading an existing filename replaces blob and metadata together.
func (s *Server) handleUploadBitmap(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBitmapMemory); err != nil {
		writeBadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("bitmap")
	if err != nil {
		writeBadRequest(w, "no bitmap file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeInternalError(w, "failed to read bitmap upload")
		return
	}

	meta := s.parseBitmapMetadata(r)

	s.store.UpsertBitmap(header.Filename, data, meta)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// parseBitmapMetadata extracts bitmap metadata from the upload form. The
// metadata may arrive as a file part or a plain form value; any parse
// failure falls back to the default dimensions.
func (s *Server) parseBitmapMetadata(r *http.Request) state.BitmapMetadata {
	var raw []byte

	if mf, _, err := r.FormFile("metadata"); err == nil {
		defer mf.Close()
		raw, _ = io.ReadAll(mf) //nolint:errcheck // read failure falls through to default
	} else if v := r.FormValue("metadata"); v != "" {
		raw = []byte(v)
	}

	if len(raw) == 0 {
		return state.DefaultBitmapMetadata()
	}

	var meta state.BitmapMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		s.logger.Warn("invalid bitmap metadata, using defaults", "error", err)
		return state.DefaultBitmapMetadata()
	}
	return meta
}

// handleDeleteBitmap removes a bitmap by filename. Deleting an absent
// bitmap is a no-op.
func (s *Server) handleDeleteBitmap(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	s.store.DeleteBitmap(filename)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
