package dto

import "github.com/handiism/modfetch/internal/model"

// FileResponse is the envelope returned by GET /mods/{modId}/files/{fileId}.
type FileResponse struct {
	Data *JSONFile `json:"data"`
}

// JSONFile represents an uploaded file version.
type JSONFile struct {
	ID          int    `json:"id"`
	ModID       int    `json:"modId"`
	DisplayName string `json:"displayName"`
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl"` // null when distribution is restricted
	FileLength  int64  `json:"fileLength"`
}

// ToFileInfo converts JSONFile to a model.FileInfo.
func (f *JSONFile) ToFileInfo() model.FileInfo {
	return model.FileInfo{
		FileName:    f.FileName,
		DownloadURL: f.DownloadURL,
		FileLength:  f.FileLength,
	}
}
