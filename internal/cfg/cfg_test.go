package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("EVENTS_BROKER", "")
	t.Setenv("BUCKET_NAME", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_PASSWORD_SALT", "")
	t.Setenv("ADMIN_PASSWORD", "")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, BackendFile, c.Storage.Backend)
	assert.Equal(t, 5, c.Storage.MaxRetries)
	assert.Nil(t, c.Db)
	assert.Nil(t, c.Kafka)
	assert.False(t, c.Minio.Enabled())
	assert.False(t, c.SMTP.Enabled())
	assert.False(t, c.Telegram.Enabled())
	assert.Equal(t, "admin", c.Admin.Username)
	assert.Equal(t, "admin123", c.Admin.Password)
	assert.Equal(t, 24*time.Hour, c.Admin.SessionTTL)
	assert.Equal(t, "8080", c.Http.Port)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")

	_, err := Load(logger.Nop{})
	require.ErrorIs(t, err, e.ErrUnknownBackend)
}

func TestLoad_PostgresRequiresCredentials(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.Nop{})
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"HTTP_READ_TIMEOUT":   "soon",
		"STORAGE_MAX_RETRIES": "many",
		"TELEGRAM_CHAT_ID":    "chat",
		"MINIO_USE_SSL":       "maybe",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("STORAGE_BACKEND", "")
			t.Setenv(key, value)

			_, err := Load(logger.Nop{})
			require.Error(t, err)
		})
	}
}

func TestLoad_MinioPublicURL(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("BUCKET_NAME", "products")
	t.Setenv("MINIO_ENDPOINT", "cdn.local:9000")
	t.Setenv("MINIO_PUBLIC_URL", "")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)
	assert.True(t, c.Minio.Enabled())
	assert.Equal(t, "http://cdn.local:9000/products", c.Minio.PublicURL)
}

func TestLoad_HashWithoutSalt(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "abcd")
	t.Setenv("ADMIN_PASSWORD_SALT", "")

	_, err := Load(logger.Nop{})
	require.Error(t, err)
}

func TestLoad_ProductionRequiresAdminPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_PASSWORD_SALT", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load(logger.Nop{})
	require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)

	t.Setenv("ADMIN_PASSWORD", "s3cret")
	c, err := Load(logger.Nop{})
	require.NoError(t, err)
	assert.False(t, c.App.IsDev())
	assert.Equal(t, "s3cret", c.Admin.Password)
}
