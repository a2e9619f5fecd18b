package initializers

import (
	"testing"

	"github.com/Kariqs/nebula-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{"", "mysql"},
		{"mysql", "mysql"},
		{"postgres", "postgres"},
		{"sqlite", "sqlite"},
	}

	for _, tt := range tests {
		dialector, err := Dialector(tt.driver, "")
		require.NoError(t, err)
		assert.Equal(t, tt.name, dialector.Name())
	}

	_, err := Dialector("oracle", "")
	assert.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	require.NoError(t, ensureAdmin(db, "admin@example.com", "s3cret-pass"))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret-pass")))

	// A second start leaves the account alone.
	require.NoError(t, ensureAdmin(db, "admin@example.com", "other-pass"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.First(&admin, admin.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret-pass")))
}

func TestUploadPaths(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("UPLOAD_PUBLIC_PATH", "")
	t.Setenv("UPLOAD_BACKEND", "")
	assert.Equal(t, "public/uploads", UploadDir())
	assert.Equal(t, "/uploads", UploadPublicPath())
	assert.True(t, LocalUploads())

	t.Setenv("UPLOAD_BACKEND", "s3")
	assert.False(t, LocalUploads())
}
