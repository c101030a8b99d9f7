package album

// DownloadResult describes one saved file.
type DownloadResult struct {
	// Path is where the file was written (or would be written in dry-run mode).
	Path string
	// Bytes is the number of bytes written, 0 in dry-run mode.
	Bytes int64
}
