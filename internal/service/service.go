// Package service implements the business operations on top of the
// repository contracts.
package service

// UploadConfig constrains multipart uploads.
type UploadConfig struct {
	// AllowExts accepted file extensions, empty means all
	AllowExts []string
	// AllowMimes accepted mime type prefixes, empty means all
	AllowMimes []string
	// MaxSizeMB per-file size cap in megabytes
	MaxSizeMB int
	// MaxFiles cap on files per request
	MaxFiles int
}

// MaxSizeBytes returns the per-file cap in bytes, 0 meaning no cap.
func (c UploadConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}
