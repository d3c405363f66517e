package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testJPEG renders a small gradient so the encoder has real pixel data.
func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func uploadImage(t *testing.T, app *fiber.App, token string, payload []byte) (int, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "clip.jpg")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/images/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	if resp.StatusCode < http.StatusMultipleChoices {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestUploadImage(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "uploader")
	token := authToken(t, s, user)
	payload := testJPEG(t)

	status, out := uploadImage(t, app, token, payload)
	require.Equal(t, http.StatusCreated, status)

	hash, _ := out["hash"].(string)
	require.Len(t, hash, 64)
	assert.EqualValues(t, 320, out["width"])
	assert.EqualValues(t, 200, out["height"])
	variants, ok := out["variants"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, variants, "256.webp")
	assert.Contains(t, variants, "256.jpeg")

	// Identical bytes dedupe to the same record.
	status, again := uploadImage(t, app, token, payload)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, hash, again["hash"])

	var fetched map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/images/"+hash, token, nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, hash, fetched["hash"])
}

func TestUploadImageRejectsGarbage(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "bad_uploader")
	token := authToken(t, s, user)

	status, _ := uploadImage(t, app, token, []byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServeImageVariant(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "variant_user")
	token := authToken(t, s, user)

	status, out := uploadImage(t, app, token, testJPEG(t))
	require.Equal(t, http.StatusCreated, status)
	hash := out["hash"].(string)

	req := httptest.NewRequest(http.MethodGet, "/media/i/"+hash+"/256.webp", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")

	req = httptest.NewRequest(http.MethodGet, "/media/i/"+hash+"/999.webp", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	// No exact 999px rendition: the next larger one is served instead.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
