package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// URLPrefix is the static route prefix image paths are served under.
const URLPrefix = "/uploads"

// Filename builds a timestamp-prefixed name for an uploaded file.
// Uniqueness is best-effort: two uploads in the same millisecond with
// the same original name collide.
func Filename(original string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(original))
}

// Save writes an uploaded image into dir and returns the web path the
// record should store. The file is written before the product record is
// persisted; a failed persist afterwards leaves the file orphaned.
func Save(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := Filename(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return URLPrefix + "/" + name, nil
}
