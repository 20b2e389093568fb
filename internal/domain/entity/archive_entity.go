package entity

import (
	"path/filepath"
	"strings"
	"time"
)

type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeDOCX  FileType = "docx"
	FileTypeJPG   FileType = "jpg"
	FileTypeJPEG  FileType = "jpeg"
	FileTypePNG   FileType = "png"
	FileTypeGIF   FileType = "gif"
	FileTypeOther FileType = "other"
)

// FileTypeFromName derives the stored file type from a file extension.
func FileTypeFromName(name string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ft := FileType(ext); ft {
	case FileTypePDF, FileTypeDOCX, FileTypeJPG, FileTypeJPEG, FileTypePNG, FileTypeGIF:
		return ft
	}
	return FileTypeOther
}

func (t FileType) Valid() bool {
	switch t {
	case FileTypePDF, FileTypeDOCX, FileTypeJPG, FileTypeJPEG, FileTypePNG, FileTypeGIF, FileTypeOther:
		return true
	}
	return false
}

type Archive struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	FileType    FileType  `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	CategoryID  *int64    `json:"category_id"`
	UploadedBy  int64     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Uploader is the public projection of the account that uploaded an archive.
// The account may be inactive.
type Uploader struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ArchiveWithDetails joins an archive with its category and uploader.
type ArchiveWithDetails struct {
	Archive
	Category *Category `json:"category"`
	Uploader Uploader  `json:"uploader"`
}

type ArchivePatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	CategoryID     *int64
	CategoryIDSet  bool
}

// SearchFilter narrows archive searches. Zero values mean "no filter".
type SearchFilter struct {
	Query      string
	CategoryID *int64
	FileType   FileType
	Limit      int
	Offset     int
}
