package service_test

import (
	"ModelFlow/config"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB loads config and opens a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("ADMIN_EMAILS", "admin@example.com")
	config.InitConfig()
	return repo.InitSqliteTest()
}

func createApprovedModel(t *testing.T, db *gorm.DB, name, author string, price int64) *model.Model {
	t.Helper()
	m := &model.Model{
		Name:        name,
		AuthorEmail: author,
		Description: "test model",
		Tags:        "NLP",
		Price:       price,
		Status:      model.ModelStatusApproved,
		StorageType: model.StorageTypeDrive,
		URL:         "https://drive.example.com/" + name,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func createPendingModel(t *testing.T, db *gorm.DB, name, author string) *model.Model {
	t.Helper()
	m := &model.Model{
		Name:        name,
		AuthorEmail: author,
		Description: "test model",
		Tags:        "CV",
		Status:      model.ModelStatusPending,
		StorageType: model.StorageTypeDrive,
		URL:         "https://drive.example.com/" + name,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
