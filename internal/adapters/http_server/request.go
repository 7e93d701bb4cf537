package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
)

// multipart parts above this size spill to temp files
const maxFormMemory = 8 << 20

var errBodyTooLarge = errors.New("request body too large")

// readPayload decodes a JSON, urlencoded or multipart body into a RawPayload.
// Files are only returned for multipart bodies; the caller must call cleanup.
func readPayload(w http.ResponseWriter, r *http.Request, maxBytes int64) (app.RawPayload, []*multipart.FileHeader, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := parseMultipart(r); err != nil {
			return nil, nil, noop, err
		}
		cleanup := func() { _ = r.MultipartForm.RemoveAll() }
		return app.PayloadFromForm(flattenKeys(r.MultipartForm.Value)), uploadedFiles(r.MultipartForm), cleanup, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, nil, noop, bodyError(err, "invalid form body")
		}
		return app.PayloadFromForm(flattenKeys(r.PostForm)), nil, noop, nil

	default:
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var body map[string]any
		if err := dec.Decode(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return app.RawPayload{}, nil, noop, nil
			}
			return nil, nil, noop, bodyError(err, "malformed JSON body")
		}
		return app.PayloadFromJSON(body), nil, noop, nil
	}
}

func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return bodyError(err, "invalid multipart body")
	}
	return nil
}

func bodyError(err error, msg string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return domain.Invalid("body", "%s: %v", msg, err)
}

// flattenKeys folds "amenities[]" style keys onto "amenities".
func flattenKeys(in url.Values) url.Values {
	out := make(url.Values, len(in))
	for k, vs := range in {
		name := strings.TrimSuffix(k, "[]")
		out[name] = append(out[name], vs...)
	}
	return out
}

func uploadedFiles(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := append([]*multipart.FileHeader{}, form.File["images"]...)
	return append(files, form.File["images[]"]...)
}
