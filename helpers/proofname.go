package helpers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Extensions accepted for proof screenshots.
var allowedProofExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AllowedProofImage reports whether the uploaded filename carries an
// accepted image extension.
func AllowedProofImage(filename string) bool {
	return allowedProofExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips directory components and any character outside
// a conservative charset, so nothing the uploader controls can escape the
// uploads directory or break a URL.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	sanitized := strings.Trim(b.String(), ".")
	if sanitized == "" {
		return "proof"
	}
	return sanitized
}

// BuildProofFilename produces the stored name for a proof image:
// {userID}_{songID}_{timestamp}_{uuid}{ext}. The uuid suffix makes the
// name collision-free even for two submissions in the same second.
func BuildProofFilename(userID, songID int64, uploadedAt time.Time, originalName string) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(originalName)))
	return fmt.Sprintf("%d_%d_%s_%s%s",
		userID, songID,
		uploadedAt.Format("20060102_150405"),
		uuid.NewString(),
		ext,
	)
}
