package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowedProofImage(t *testing.T) {
	assert.True(t, AllowedProofImage("screenshot.png"))
	assert.True(t, AllowedProofImage("IMG_0042.JPG"))
	assert.True(t, AllowedProofImage("proof.webp"))
	assert.False(t, AllowedProofImage("notes.txt"))
	assert.False(t, AllowedProofImage("payload.png.exe"))
	assert.False(t, AllowedProofImage("noextension"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "screenshot.png", SanitizeFilename("screenshot.png"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "proof.png", SanitizeFilename("C:\\Users\\x\\proof.png"))
	assert.Equal(t, "my_proof_1.png", SanitizeFilename("my proof;1.png"))
	assert.Equal(t, "proof", SanitizeFilename(""))
	assert.Equal(t, "proof", SanitizeFilename("..."))
	assert.NotContains(t, SanitizeFilename("a/b/../c.png"), "/")
}

func TestBuildProofFilename(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 30, 15, 0, time.UTC)

	name := BuildProofFilename(7, 3, at, "capture.PNG")
	assert.True(t, strings.HasPrefix(name, "7_3_20250301_093015_"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotContains(t, name, "/")

	// same inputs still yield distinct stored names
	other := BuildProofFilename(7, 3, at, "capture.PNG")
	assert.NotEqual(t, name, other)
}
