package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newEventPhotoService(t *testing.T, repos *repositories.Repositories, storage *fakeFileStorage) PhotoService[models.EventPhoto, *models.EventPhoto] {
	t.Helper()
	svc := NewPhotoService[models.EventPhoto](
		repos.EventPhotos, repos.PhotoAudit, repos.UnitOfWork, storage, newTestAuthz(repos), testLogger(),
		func(ownerID, actorID uuid.UUID, now time.Time) *models.EventPhoto {
			photo := &models.EventPhoto{EventID: ownerID}
			photo.StampCreate(actorID, now)
			return photo
		},
		"event_id", "events",
	)
	svc.(*photoServiceImpl[models.EventPhoto, *models.EventPhoto]).now = fixedNow
	return svc
}

func uploadHeader() *multipart.FileHeader {
	// The fake storage never opens the file, so a bare header is enough.
	return &multipart.FileHeader{Filename: "before-after.jpg", Size: 2048}
}

func addEventPhoto(t *testing.T, svc PhotoService[models.EventPhoto, *models.EventPhoto], ownerID, actorID uuid.UUID) *models.EventPhoto {
	t.Helper()
	photo, err := svc.AddPhoto(context.Background(), ownerID, actorID, uploadHeader(), "pile at the north entrance")
	require.NoError(t, err)
	return photo
}

func TestAddPhotoStartsPending(t *testing.T) {
	repos := newTestRepos(t)
	storage := &fakeFileStorage{}
	svc := newEventPhotoService(t, repos, storage)
	uploader := createUser(t, repos, "uploader", false)

	photo := addEventPhoto(t, svc, uuid.New(), uploader.ID)
	assert.Equal(t, models.ModerationPending, photo.ModerationStatus)
	assert.False(t, photo.InReview)
	assert.NotEmpty(t, photo.ImageURL)
	assert.Equal(t, 1, storage.saved)
}

func TestFlagMarksInReviewWithoutDeciding(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventPhotoService(t, repos, &fakeFileStorage{})
	ctx := context.Background()
	uploader := createUser(t, repos, "uploader", false)
	flagger := createUser(t, repos, "flagger", false)

	photo := addEventPhoto(t, svc, uuid.New(), uploader.ID)
	require.NoError(t, svc.Flag(ctx, photo.ID, flagger.ID, "not a cleanup photo"))

	stored, err := svc.GetPhoto(ctx, photo.ID)
	require.NoError(t, err)
	assert.True(t, stored.InReview)
	assert.Equal(t, models.ModerationPending, stored.ModerationStatus)

	log, err := svc.GetModerationLog(ctx, photo.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, models.ModerationActionFlagged, log[0].Action)
	assert.Equal(t, "not a cleanup photo", log[0].Reason)
}

func TestModerationDecisionIsFinal(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventPhotoService(t, repos, &fakeFileStorage{})
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	uploader := createUser(t, repos, "uploader", false)

	photo := addEventPhoto(t, svc, uuid.New(), uploader.ID)

	// Moderation is admin-gated.
	assert.ErrorIs(t, svc.Approve(ctx, photo.ID, uploader.ID, ""), apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Approve(ctx, photo.ID, admin.ID, "looks fine"))

	stored, err := svc.GetPhoto(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationApproved, stored.ModerationStatus)
	assert.False(t, stored.InReview)

	assert.ErrorIs(t, svc.Reject(ctx, photo.ID, admin.ID, ""), apperrors.ErrPhotoAlreadyModerated)
	assert.ErrorIs(t, svc.Approve(ctx, photo.ID, admin.ID, ""), apperrors.ErrPhotoAlreadyModerated)
}

func TestFlagClearsOnDecision(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventPhotoService(t, repos, &fakeFileStorage{})
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	uploader := createUser(t, repos, "uploader", false)

	photo := addEventPhoto(t, svc, uuid.New(), uploader.ID)
	require.NoError(t, svc.Flag(ctx, photo.ID, uploader.ID, "possible duplicate"))

	flagged, err := svc.GetFlaggedQueue(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, flagged, 1)

	require.NoError(t, svc.Reject(ctx, photo.ID, admin.ID, "duplicate"))

	flagged, err = svc.GetFlaggedQueue(ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, flagged)
}

func TestHardDeleteRemovesRowThenBlob(t *testing.T) {
	repos := newTestRepos(t)
	storage := &fakeFileStorage{}
	svc := newEventPhotoService(t, repos, storage)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	uploader := createUser(t, repos, "uploader", false)

	photo := addEventPhoto(t, svc, uuid.New(), uploader.ID)
	require.NoError(t, svc.HardDelete(ctx, photo.ID, admin.ID, "takedown request"))

	_, err := svc.GetPhoto(ctx, photo.ID)
	assert.ErrorIs(t, err, apperrors.ErrPhotoNotFound)
	assert.Equal(t, []string{photo.ImageURL}, storage.deleted)

	// The audit trail outlives the photo row.
	log, err := svc.GetModerationLog(ctx, photo.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, models.ModerationActionDeleted, log[0].Action)
}

func TestPendingQueueListsUndecidedPhotos(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventPhotoService(t, repos, &fakeFileStorage{})
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	uploader := createUser(t, repos, "uploader", false)

	first := addEventPhoto(t, svc, uuid.New(), uploader.ID)
	addEventPhoto(t, svc, uuid.New(), uploader.ID)
	require.NoError(t, svc.Approve(ctx, first.ID, admin.ID, ""))

	pending, err := svc.GetPendingQueue(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = svc.GetPendingQueue(ctx, uploader.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAddPhotoCleansUpBlobWhenInsertFails(t *testing.T) {
	repos := newTestRepos(t)
	storage := &fakeFileStorage{}
	svc := newEventPhotoService(t, repos, storage)
	ctx := context.Background()
	uploader := createUser(t, repos, "uploader", false)

	photo := addEventPhoto(t, svc, uuid.New(), uploader.ID)

	// Force a duplicate primary key to make the row insert fail.
	dup, err := svc.GetPhoto(ctx, photo.ID)
	require.NoError(t, err)
	svcImpl := svc.(*photoServiceImpl[models.EventPhoto, *models.EventPhoto])
	original := svcImpl.newPhoto
	svcImpl.newPhoto = func(ownerID, actorID uuid.UUID, now time.Time) *models.EventPhoto {
		clone := *dup
		return &clone
	}
	defer func() { svcImpl.newPhoto = original }()

	_, err = svc.AddPhoto(ctx, uuid.New(), uploader.ID, uploadHeader(), "")
	require.Error(t, err)
	require.Len(t, storage.deleted, 1)
}
