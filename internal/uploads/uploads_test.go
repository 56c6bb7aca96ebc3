package uploads_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"artisan-market/internal/uploads"
)

func TestFilename_TimestampPrefixed(t *testing.T) {
	name := uploads.Filename("vase.jpg")
	assert.Regexp(t, regexp.MustCompile(`^\d+-vase\.jpg$`), name)
}

func TestFilename_StripsDirectories(t *testing.T) {
	name := uploads.Filename("../../etc/passwd")
	assert.Regexp(t, regexp.MustCompile(`^\d+-passwd$`), name)
	assert.NotContains(t, name, "/")
}
