// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package upload

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
)

// Parser is the body/file-parsing middleware.
//
// # Contract
//
// At most one file is accepted, under the fixed "image" field of a multipart
// form. An accepted file is written to dir under its generated name and
// attached to the request context. Everything else (no multipart body, no
// image field, a disallowed media type, even a disk-write failure) results
// in the request proceeding without an attached file. The only observable
// difference is a warning in the log.
//
// Mounted before session resolution so that downstream stages (CSRF included)
// can read parsed form values.
func Parser(dir string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			// Only multipart POST-family requests carry uploads.
			if !isMultipart(request) {
				next.ServeHTTP(writer, request)
				return
			}

			// 1. Parse the form. A malformed body is treated like an absent
			// file; the handler decides what a missing form means.
			if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
				logger.WarnContext(request.Context(), "multipart_parse_failed",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Pull the single accepted field.
			file, header, err := request.FormFile(constants.UploadFieldName)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}
			defer func() { _ = file.Close() }()

			// 3. Validate the sniffed media type; silently drop anything else.
			mimeType, err := DetectMIME(file)
			if err != nil || !AllowedMIME(mimeType) {
				logger.InfoContext(request.Context(), "upload_rejected",
					slog.String("filename", header.Filename),
					slog.String("mime_type", mimeType),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Persist to disk under the timestamped name.
			storedName := StoredName(header.Filename, time.Now())
			accepted, err := save(file, dir, storedName)
			if err != nil {
				logger.WarnContext(request.Context(), "upload_write_failed",
					slog.String("filename", header.Filename),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			accepted.OriginalName = header.Filename
			accepted.MIMEType = mimeType

			// 5. Attach the typed descriptor for the route handler.
			ctx := WithContext(request.Context(), accepted)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// isMultipart reports whether the request can carry a file upload.
func isMultipart(request *http.Request) bool {
	switch request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	return strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data")
}

// save copies the upload into dir under storedName.
func save(file io.Reader, dir, storedName string) (*UploadedFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, storedName)
	destination, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = destination.Close() }()

	if _, err := io.Copy(destination, file); err != nil {
		return nil, err
	}

	return &UploadedFile{StoredName: storedName, Path: path}, nil
}
