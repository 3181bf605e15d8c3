package service_test

import (
	"ModelFlow/internal/service"
	"ModelFlow/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadFreeDriveModel(t *testing.T) {
	db := setupTestDB(t)
	m := createApprovedModel(t, db, "free-model", "author@example.com", 0)

	resp, err := service.DownloadModel(context.Background(), m.ID, "anyone@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, m.URL, resp.DownloadURL)
	assert.Positive(t, resp.ExpiresIn)
}

func TestDownloadPendingModelHiddenFromOthers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createPendingModel(t, db, "waiting", "author@example.com")

	_, err := service.DownloadModel(ctx, m.ID, "stranger@example.com", false)
	require.ErrorIs(t, err, utils.ErrNotFound)

	// The author can still fetch their own pending model
	_, err = service.DownloadModel(ctx, m.ID, "author@example.com", false)
	require.NoError(t, err)
}

func TestDownloadPaidModelRequiresPurchase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "paid-model", "author@example.com", 1999)

	_, err := service.DownloadModel(ctx, m.ID, "buyer@example.com", false)
	require.ErrorIs(t, err, utils.ErrForbidden)

	_, err = service.PurchaseModel(m.ID, "buyer@example.com")
	require.NoError(t, err)

	resp, err := service.DownloadModel(ctx, m.ID, "buyer@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, m.URL, resp.DownloadURL)

	// The author downloads without purchasing
	_, err = service.DownloadModel(ctx, m.ID, "author@example.com", false)
	require.NoError(t, err)
}

func TestDownloadArchivedModelLimited(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "old-model", "author@example.com", 0)

	_, err := service.ArchiveModel(ctx, m.ID, "author@example.com")
	require.NoError(t, err)

	// Strangers cannot reach archived models
	_, err = service.DownloadModel(ctx, m.ID, "stranger@example.com", false)
	require.ErrorIs(t, err, utils.ErrForbidden)

	// Owner and admin still can
	_, err = service.DownloadModel(ctx, m.ID, "author@example.com", false)
	require.NoError(t, err)
	_, err = service.DownloadModel(ctx, m.ID, "admin@example.com", true)
	require.NoError(t, err)
}

func TestDownloadMissingModel(t *testing.T) {
	setupTestDB(t)
	_, err := service.DownloadModel(context.Background(), 404, "anyone@example.com", false)
	require.ErrorIs(t, err, utils.ErrNotFound)
}
