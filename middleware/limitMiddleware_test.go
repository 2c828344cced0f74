package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLimit = 10 << 20

func limitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodySizeLimit(testLimit))
	router.POST("/upload", func(c *gin.Context) {
		file, header, err := c.Request.FormFile("proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()
		c.JSON(http.StatusOK, gin.H{"size": header.Size})
	})
	return router
}

func multipartProof(t *testing.T, payloadSize int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("proof", "screenshot.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), payloadSize))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestBodySizeLimitRejectsOversizedUpload(t *testing.T) {
	router := limitedRouter()

	body, contentType := multipartProof(t, 12<<20)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "body_too_large")
}

func TestBodySizeLimitRejectsOversizedChunkedUpload(t *testing.T) {
	router := limitedRouter()

	body, contentType := multipartProof(t, 12<<20)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	// no declared length: the MaxBytesReader backstop has to catch it
	req.ContentLength = -1

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code, "oversized chunked body must not be accepted")
}

func TestBodySizeLimitPassesSmallUpload(t *testing.T) {
	router := limitedRouter()

	body, contentType := multipartProof(t, 4<<10)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"size":4096`)
}
