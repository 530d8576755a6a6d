package filestorage

// FileStorageInterface is the contract for the blob store that keeps rendered
// artifacts (QR images). Exists is part of the caching contract: a stored
// path is only trusted while the artifact is still present.
type FileStorageInterface interface {
	SaveBytes(data []byte, originalFileName string, prefix string) (filePath string, err error)
	Exists(filePath string) bool
	Delete(filePath string) error
}
