// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package upload handles product image uploads from multipart forms.

It separates the concern into two pure functions (media-type validation and
stored-name generation) plus a middleware that applies them and writes
accepted files to the local images directory.

# Degrade, Don't Fail

A file with a disallowed media type is silently excluded from the request:
downstream handlers must treat a missing file as "no image provided", never
as a failure. This exact behavior is load-bearing for the admin product forms.
*/
package upload

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ngocmai/camellia/internal/platform/ctxkey"
)

// # Types

// UploadedFile describes an accepted image written to disk.
type UploadedFile struct {
	// OriginalName is the client-supplied filename.
	OriginalName string
	// MIMEType is the sniffed media type (not the client-declared one).
	MIMEType string
	// StoredName is the generated on-disk filename.
	StoredName string
	// Path is the full relative path under the upload directory.
	Path string
}

// allowedMIMETypes is the accept-list for product images.
//
// "image/jpg" is not a registered media type, but clients send it anyway;
// it is kept for compatibility with the accepted contract.
var allowedMIMETypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
}

// # Pure Validation & Naming

// AllowedMIME reports whether the sniffed media type is an accepted image type.
func AllowedMIME(mimeType string) bool {
	// Strip any parameters ("image/png; charset=...") before matching.
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	_, ok := allowedMIMETypes[mimeType]
	return ok
}

// StoredName builds the on-disk filename for an upload.
//
// The name is the RFC 3339 UTC timestamp with colons replaced by hyphens
// (filesystem-safe on every platform), joined to the original filename.
// Two uploads of the same file within the same second collide by design:
// last write wins, and the scheme makes no uniqueness guarantee.
func StoredName(originalName string, now time.Time) string {
	timestamp := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
	return timestamp + "-" + sanitizeBaseName(originalName)
}

// DetectMIME sniffs the media type from the file's leading bytes.
//
// Sniffing (rather than trusting the client's Content-Type part header)
// closes the trivial bypass of renaming a .gif to .png.
func DetectMIME(file multipart.File) (string, error) {
	// http.DetectContentType considers at most the first 512 bytes.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}

	// Rewind so the subsequent copy starts at the beginning.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(head[:n]), nil
}

// sanitizeBaseName strips any path components a hostile client may have
// embedded in the filename.
func sanitizeBaseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		name = "upload"
	}
	return name
}

// # Context Plumbing

// WithContext returns a new context with the accepted file attached.
func WithContext(ctx context.Context, file *UploadedFile) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUploadedFile, file)
}

// FromContext retrieves the accepted file from the context.
// Returns nil when no acceptable file was part of the request.
func FromContext(ctx context.Context) *UploadedFile {
	file, ok := ctx.Value(ctxkey.KeyUploadedFile).(*UploadedFile)
	if !ok {
		return nil
	}
	return file
}
