package agenda

// UploadResponse describes a stored attachment.
type UploadResponse struct {
	ObjectKey string `json:"objectKey"`
	FileName  string `json:"fileName"`
	FileType  string `json:"fileType"`
	Size      int64  `json:"size"`
}
