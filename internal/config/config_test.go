package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"artisan-market/internal/config"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://example:27017")
	t.Setenv("MONGO_DB", "marketplace_test")
	t.Setenv("PORT", "9000")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")

	cfg := config.LoadConfig()

	assert.Equal(t, "mongodb://example:27017", cfg.MongoURI)
	assert.Equal(t, "marketplace_test", cfg.MongoDB)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "MONGO_DB", "PORT", "UPLOAD_DIR"} {
		t.Setenv(key, "") // register restore, then clear
		os.Unsetenv(key)
	}

	cfg := config.LoadConfig()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "marketplace", cfg.MongoDB)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./uploads", cfg.UploadDir)
}
