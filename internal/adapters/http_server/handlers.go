package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
)

type Handlers struct {
	Cmd    *app.HotelService
	Q      *app.QueryService
	Images domain.ImageStore

	ImagesDir      string // served under ImagesPrefix
	ImagesPrefix   string
	MaxUploadBytes int64
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.ImagesPrefix == "" {
		h.ImagesPrefix = "/images"
	}
	if h.MaxUploadBytes <= 0 {
		h.MaxUploadBytes = 32 << 20
	}

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/hotel", h.createHotel)
	s.mux.Get("/hotel", h.listHotels)
	s.mux.Get("/hotel/{hotelId}", h.getHotel)
	s.mux.Put("/hotel/{hotelId}", h.updateHotel)
	s.mux.Post(h.ImagesPrefix, h.uploadImages)
	s.mux.Get(h.ImagesPrefix+"/*", h.serveImage())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps the error taxonomy onto status codes. action prefixes
// server-side failures, e.g. "Error creating hotel".
func writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Hotel not found"})
	case errors.Is(err, errBodyTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	default:
		log.Error().Err(err).Str("action", action).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": action + ": " + publicReason(err)})
	}
}

// publicReason hides paths and driver messages from clients.
func publicReason(err error) string {
	if errors.Is(err, domain.ErrCorrupt) {
		return domain.ErrCorrupt.Error()
	}
	if errors.Is(err, domain.ErrStorage) {
		return domain.ErrStorage.Error()
	}
	return "internal error"
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode response"})
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	payload, files, cleanup, err := readPayload(w, r, h.MaxUploadBytes)
	defer cleanup()
	if err != nil {
		writeError(w, err, "Error creating hotel")
		return
	}

	paths, err := h.saveUploads(r.Context(), files)
	if err != nil {
		writeError(w, err, "Error creating hotel")
		return
	}
	hotel, err := h.Cmd.Create(r.Context(), payload, paths)
	if err != nil {
		h.discardUploads(r.Context(), paths)
		writeError(w, err, "Error creating hotel")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Hotel created successfully",
		"hotel":   hotel,
	})
}

func (h *Handlers) uploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := parseMultipart(r); err != nil {
		writeError(w, err, "Error uploading images")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	id := strings.TrimSpace(r.FormValue("hotel_id"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Hotel ID is required"})
		return
	}
	ok, err := h.Cmd.Exists(r.Context(), id)
	if err != nil {
		writeError(w, err, "Error uploading images")
		return
	}
	if !ok {
		writeError(w, domain.ErrNotFound, "Error uploading images")
		return
	}
	files := uploadedFiles(r.MultipartForm)
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No images uploaded"})
		return
	}

	paths, err := h.saveUploads(r.Context(), files)
	if err != nil {
		writeError(w, err, "Error uploading images")
		return
	}
	if _, err := h.Cmd.AttachImages(r.Context(), id, paths); err != nil {
		h.discardUploads(r.Context(), paths)
		writeError(w, err, "Error uploading images")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Images uploaded successfully",
		"images":  paths,
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		writeError(w, err, "Error retrieving hotel")
		return
	}
	writeCacheable(w, r, hotel)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeError(w, err, "Error listing hotels")
		return
	}
	writeCacheable(w, r, hotels)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	payload, _, cleanup, err := readPayload(w, r, h.MaxUploadBytes)
	defer cleanup()
	if err != nil {
		writeError(w, err, "Error updating hotel")
		return
	}
	hotel, err := h.Cmd.Update(r.Context(), chi.URLParam(r, "hotelId"), payload)
	if err != nil {
		writeError(w, err, "Error updating hotel")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Hotel updated successfully",
		"hotel":   hotel,
	})
}

// serveImage serves stored uploads as static files; directories are never listed.
func (h *Handlers) serveImage() http.HandlerFunc {
	fs := http.StripPrefix(h.ImagesPrefix, http.FileServer(http.Dir(h.ImagesDir)))
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "*")
		if name == "" || strings.HasSuffix(name, "/") || strings.Contains(name, "/") {
			routeNotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	}
}

// saveUploads stores every file or none of them.
func (h *Handlers) saveUploads(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := h.saveUpload(ctx, fh)
		if err != nil {
			h.discardUploads(ctx, paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (h *Handlers) saveUpload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.Images.Save(ctx, fh.Filename, f)
}

func (h *Handlers) discardUploads(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := h.Images.Remove(ctx, p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("failed to remove orphaned upload")
		}
	}
}
