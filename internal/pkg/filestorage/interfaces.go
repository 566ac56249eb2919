package filestorage

import "mime/multipart"

// FileStorage abstracts the blob store behind photo uploads. The production
// deployment fronts a cloud bucket; tests and local development use the
// filesystem implementation.
type FileStorage interface {
	// SaveFile stores an uploaded file under subPath and returns the public URL.
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)
	// DeleteFile removes a previously stored file identified by its URL.
	DeleteFile(fileURL string) error
}
