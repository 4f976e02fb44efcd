package models

// DownloadProgress is one progress sample of a streamed download. Emitted
// only when the response declared a total size; Ratio is
// BytesReceived/TotalBytes and reaches 1.0 on the final sample.
type DownloadProgress struct {
	Name          string
	BytesReceived int64
	TotalBytes    int64
	Ratio         float64
}
