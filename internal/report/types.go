package report

// Backend routes used by the synchronizer.
const (
	PathReports  = "/api/reports"
	PathGenerate = "/api/generate-report"
	PathDownload = "/api/reports/%s/download"
)

// Fallback messages, completed with the HTTP status text.
const (
	MsgLoadFailed     = "Network error while loading reports"
	MsgCreateFailed   = "Server error while creating report"
	MsgDownloadFailed = "Download failed"
)

const ContentTypePDF = "application/pdf"

type DownloadInput struct {
	ID string
	// DisplayName is the repository URL or name the file is named after.
	DisplayName string
}

type DownloadOutput struct {
	FileName string
	Path     string
	Size     int64
	// MirrorLocation is set when the artifact was also copied to object storage.
	MirrorLocation string
}
