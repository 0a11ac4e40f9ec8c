// Package upload parses single-file multipart uploads into memory.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
)

var (
	ErrNotMultipart   = errors.New("request must be multipart/form-data")
	ErrMissingFile    = errors.New("file part is required")
	ErrUnexpectedFile = errors.New("unexpected file field")
	ErrInvalidForm    = errors.New("invalid multipart form")
	ErrTooLarge       = errors.New("upload exceeds maximum size")
)

// File is an uploaded file buffered in memory.
type File struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Reader returns a reader over the file contents.
func (f *File) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

type fileKey struct{}
type fieldsKey struct{}

// Single accepts exactly one file in the multipart field named field. The
// whole request body is capped at maxBytes. Plain form values are kept and
// available through FormValue.
func Single(field string, maxBytes int64, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "upload", "field", field)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			file, values, err := parse(w, r, field, maxBytes)
			if err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, ErrTooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				handlers.RespondError(w, logger, status, err)
				return
			}

			ctx := context.WithValue(r.Context(), fileKey{}, file)
			ctx = context.WithValue(ctx, fieldsKey{}, values)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FileFrom returns the file stored by Single.
func FileFrom(r *http.Request) (*File, bool) {
	f, ok := r.Context().Value(fileKey{}).(*File)
	return f, ok
}

// FormValue returns a non-file form value parsed alongside the file.
func FormValue(r *http.Request, name string) string {
	values, _ := r.Context().Value(fieldsKey{}).(map[string]string)
	return values[name]
}

func parse(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*File, map[string]string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return nil, nil, ErrNotMultipart
	}

	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, nil, ErrInvalidForm
	}

	var file *File
	values := make(map[string]string)

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, classify(err)
		}

		if part.FileName() == "" {
			data, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				return nil, nil, classify(err)
			}
			values[part.FormName()] = string(data)
			continue
		}

		if part.FormName() != field || file != nil {
			part.Close()
			return nil, nil, fmt.Errorf("%w: %s", ErrUnexpectedFile, part.FormName())
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, nil, classify(err)
		}

		contentType := part.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		file = &File{
			Field:       field,
			Name:        part.FileName(),
			ContentType: contentType,
			Size:        int64(len(data)),
			Data:        data,
		}
	}

	if file == nil {
		return nil, nil, ErrMissingFile
	}
	return file, values, nil
}

func classify(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}
