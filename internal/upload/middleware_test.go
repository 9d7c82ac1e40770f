// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocmai/camellia/internal/upload"
)

// pngBytes is a minimal payload carrying the PNG magic number.
var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-image-data")

// gifBytes carries the GIF magic number, which is not on the accept-list.
var gifBytes = []byte("GIF89afake-image-data")

// multipartRequest builds a POST with a single file under the "image" field.
func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/admin/add-product", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

/*
TestParser_AcceptsPNG verifies an accepted image is written to disk and
attached to the request context.
*/
func TestParser_AcceptsPNG(t *testing.T) {
	dir := t.TempDir()

	var attached *upload.UploadedFile
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attached = upload.FromContext(request.Context())
	})

	recorder := httptest.NewRecorder()
	upload.Parser(dir)(next).ServeHTTP(recorder, multipartRequest(t, "teapot.png", pngBytes))

	// 1. The descriptor must be attached with the sniffed type.
	require.NotNil(t, attached)
	assert.Equal(t, "teapot.png", attached.OriginalName)
	assert.Equal(t, "image/png", attached.MIMEType)

	// 2. The file must exist on disk with the full original content.
	written, err := os.ReadFile(filepath.Join(dir, attached.StoredName))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)
}

/*
TestParser_SilentlyDropsDisallowedType verifies the degrade-don't-fail
contract: a GIF upload vanishes and the request still reaches the handler.
*/
func TestParser_SilentlyDropsDisallowedType(t *testing.T) {
	dir := t.TempDir()

	handlerCalled := false
	var attached *upload.UploadedFile
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerCalled = true
		attached = upload.FromContext(request.Context())
	})

	recorder := httptest.NewRecorder()
	upload.Parser(dir)(next).ServeHTTP(recorder, multipartRequest(t, "animation.gif", gifBytes))

	// 1. The handler runs as if no file was sent.
	assert.True(t, handlerCalled)
	assert.Nil(t, attached)

	// 2. Nothing is written to disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

/*
TestParser_SniffsContentNotFilename verifies the file extension cannot
smuggle a disallowed type past the check.
*/
func TestParser_SniffsContentNotFilename(t *testing.T) {
	dir := t.TempDir()

	var attached *upload.UploadedFile
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		attached = upload.FromContext(request.Context())
	})

	// GIF content wearing a .png name.
	recorder := httptest.NewRecorder()
	upload.Parser(dir)(next).ServeHTTP(recorder, multipartRequest(t, "disguised.png", gifBytes))

	assert.Nil(t, attached)
}

/*
TestParser_IgnoresNonMultipart verifies ordinary form posts pass through
untouched.
*/
func TestParser_IgnoresNonMultipart(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerCalled = true
		assert.Nil(t, upload.FromContext(request.Context()))
	})

	request := httptest.NewRequest(http.MethodPost, "/login", nil)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	upload.Parser(t.TempDir())(next).ServeHTTP(httptest.NewRecorder(), request)
	assert.True(t, handlerCalled)
}
