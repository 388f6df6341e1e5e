package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sportsbridge/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoFile(name string) MediaFile {
	return MediaFile{
		Kind:        models.MediaPhoto,
		Filename:    name,
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("jpeg-bytes"),
	}
}

func videoFile(name string) MediaFile {
	return MediaFile{
		Kind:        models.MediaVideo,
		Filename:    name,
		ContentType: "video/mp4",
		Reader:      strings.NewReader("mp4-bytes"),
	}
}

func TestMediaUploadBatch(t *testing.T) {
	repo := newFakeMediaRepo()
	uploader := newFakeUploader()
	svc := NewMediaService(repo, uploader, testLogger(t))

	gallery, err := svc.Upload(context.Background(), 1, []MediaFile{
		photoFile("a.jpg"), photoFile("b.jpg"), videoFile("run.mp4"),
	})
	require.NoError(t, err)

	assert.Len(t, gallery.Photos, 2)
	assert.Len(t, gallery.Videos, 1)
	assert.Len(t, uploader.objects, 3)

	for _, asset := range append(gallery.Photos, gallery.Videos...) {
		assert.Equal(t, 1, asset.AthleteID)
		assert.NotEmpty(t, asset.URL)
	}
}

func TestMediaUploadEmptyBatch(t *testing.T) {
	svc := NewMediaService(newFakeMediaRepo(), newFakeUploader(), testLogger(t))

	_, err := svc.Upload(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrEmptyMediaBatch)
}

func TestMediaUploadInvalidKind(t *testing.T) {
	svc := NewMediaService(newFakeMediaRepo(), newFakeUploader(), testLogger(t))

	_, err := svc.Upload(context.Background(), 1, []MediaFile{
		{Kind: models.MediaKind("gif"), Filename: "x.gif", ContentType: "image/gif", Reader: strings.NewReader("x")},
	})
	assert.ErrorIs(t, err, ErrInvalidMediaKind)
}

func TestMediaUploadFailureLeavesGalleryUnchanged(t *testing.T) {
	repo := newFakeMediaRepo()
	uploader := newFakeUploader()
	svc := NewMediaService(repo, uploader, testLogger(t))

	_, err := svc.Upload(context.Background(), 1, []MediaFile{photoFile("a.jpg")})
	require.NoError(t, err)

	// Second batch fails after one object made it to storage.
	uploader.failFrom = uploader.uploads + 1
	_, err = svc.Upload(context.Background(), 1, []MediaFile{photoFile("b.jpg"), photoFile("c.jpg")})
	require.Error(t, err)

	gallery, err := svc.Gallery(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, gallery.Photos, 1, "failed batch must not add anything")

	// The partially uploaded object was cleaned up best-effort.
	assert.Len(t, uploader.objects, 1)
}

func TestMediaUploadPersistFailureCleansObjects(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.failNextCreate = errors.New("tx aborted")
	uploader := newFakeUploader()
	svc := NewMediaService(repo, uploader, testLogger(t))

	_, err := svc.Upload(context.Background(), 1, []MediaFile{photoFile("a.jpg"), videoFile("b.mp4")})
	require.Error(t, err)

	assert.Empty(t, repo.assets)
	assert.Empty(t, uploader.objects)
}

func TestMediaRemove(t *testing.T) {
	repo := newFakeMediaRepo()
	uploader := newFakeUploader()
	svc := NewMediaService(repo, uploader, testLogger(t))

	gallery, err := svc.Upload(context.Background(), 1, []MediaFile{photoFile("a.jpg"), videoFile("b.mp4")})
	require.NoError(t, err)
	require.Len(t, gallery.Photos, 1)

	got, err := svc.Remove(context.Background(), 1, gallery.Photos[0].ID, models.MediaPhoto)
	require.NoError(t, err)

	assert.Empty(t, got.Photos)
	assert.Len(t, got.Videos, 1)
}

func TestMediaRemoveUnknown(t *testing.T) {
	svc := NewMediaService(newFakeMediaRepo(), newFakeUploader(), testLogger(t))

	_, err := svc.Remove(context.Background(), 1, 99, models.MediaPhoto)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestMediaRemoveKindMismatch(t *testing.T) {
	repo := newFakeMediaRepo()
	svc := NewMediaService(repo, newFakeUploader(), testLogger(t))

	gallery, err := svc.Upload(context.Background(), 1, []MediaFile{photoFile("a.jpg")})
	require.NoError(t, err)

	// Deleting a photo id under the video kind must not match.
	_, err = svc.Remove(context.Background(), 1, gallery.Photos[0].ID, models.MediaVideo)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}
