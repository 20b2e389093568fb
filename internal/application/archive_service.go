package application

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

// ArchiveService manages archive metadata. Index and Uploader are optional.
type ArchiveService struct {
	Archives   repo.ArchiveRepository
	Accounts   repo.AccountRepository
	Categories repo.CategoryRepository
	Index      ArchiveIndex
	Uploader   FileUploader
	StatsCache StatsInvalidator
	Logger     logrus.FieldLogger
}

func NewArchiveService(archives repo.ArchiveRepository, accounts repo.AccountRepository, categories repo.CategoryRepository, index ArchiveIndex, uploader FileUploader, logger logrus.FieldLogger) *ArchiveService {
	return &ArchiveService{
		Archives:   archives,
		Accounts:   accounts,
		Categories: categories,
		Index:      index,
		Uploader:   uploader,
		Logger:     logger,
	}
}

type CreateArchiveInput struct {
	Title       string
	Description *string
	FileName    string
	FilePath    string
	FileType    entity.FileType
	FileSize    int64
	CategoryID  *int64
}

type UploadArchiveInput struct {
	Title       string
	Description *string
	CategoryID  *int64
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Create records archive metadata uploaded by uploaderID.
func (s *ArchiveService) Create(ctx context.Context, uploaderID int64, in CreateArchiveInput) (*entity.ArchiveWithDetails, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if in.FileSize <= 0 {
		return nil, invalid("file_size must be positive")
	}
	if in.FileType == "" {
		in.FileType = entity.FileTypeFromName(in.FileName)
	}
	if !in.FileType.Valid() {
		return nil, invalid("unsupported file_type")
	}

	ok, err := s.Accounts.ExistsByID(ctx, uploaderID)
	if err != nil {
		return nil, internal("check uploader", err)
	}
	if !ok {
		return nil, notFound("uploader")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	a := &entity.Archive{
		Title:       in.Title,
		Description: in.Description,
		FileName:    in.FileName,
		FilePath:    in.FilePath,
		FileType:    in.FileType,
		FileSize:    in.FileSize,
		CategoryID:  in.CategoryID,
		UploadedBy:  uploaderID,
	}
	if err := s.Archives.Create(ctx, a); err != nil {
		return nil, internal("create archive", err)
	}
	helpers.LogInfo(s.Logger, "archive created", logrus.Fields{"archive_id": a.ID, "user_id": uploaderID})
	invalidateStats(ctx, s.StatsCache)

	d, err := s.Archives.GetWithDetails(ctx, a.ID)
	if err != nil {
		return nil, storeErr("load archive", "archive", err)
	}
	s.index(ctx, d)
	return d, nil
}

// Upload stores the file body in object storage and records its metadata.
func (s *ArchiveService) Upload(ctx context.Context, uploaderID int64, in UploadArchiveInput) (*entity.ArchiveWithDetails, error) {
	if s.Uploader == nil {
		return nil, ErrUnavailable
	}
	if in.Size <= 0 {
		return nil, invalid("file must not be empty")
	}
	name := path.Base(strings.ReplaceAll(in.FileName, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return nil, invalid("file name is required")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	objectPath := path.Join("archives", uuid.NewString(), name)
	url, err := s.Uploader.Upload(ctx, objectPath, in.ContentType, in.Body)
	if err != nil {
		helpers.LogError(s.Logger, "upload archive failed", err, logrus.Fields{"object": objectPath})
		return nil, internal("upload file", err)
	}

	title := in.Title
	if strings.TrimSpace(title) == "" {
		title = name
	}
	d, err := s.Create(ctx, uploaderID, CreateArchiveInput{
		Title:       title,
		Description: in.Description,
		FileName:    name,
		FilePath:    url,
		FileType:    entity.FileTypeFromName(name),
		FileSize:    in.Size,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		s.removeObject(ctx, objectPath)
		return nil, err
	}
	return d, nil
}

// removeObject deletes an uploaded file whose metadata could not be recorded.
func (s *ArchiveService) removeObject(ctx context.Context, objectPath string) {
	if err := s.Uploader.Delete(context.WithoutCancel(ctx), objectPath); err != nil {
		helpers.LogError(s.Logger, "orphaned archive object", err, logrus.Fields{"object": objectPath})
	}
}

func (s *ArchiveService) Get(ctx context.Context, id int64) (*entity.ArchiveWithDetails, error) {
	d, err := s.Archives.GetWithDetails(ctx, id)
	if err != nil {
		return nil, storeErr("get archive", "archive", err)
	}
	return d, nil
}

func (s *ArchiveService) List(ctx context.Context) ([]entity.ArchiveWithDetails, error) {
	out, err := s.Archives.ListWithDetails(ctx)
	if err != nil {
		return nil, internal("list archives", err)
	}
	return out, nil
}

// Search queries the full-text index when available and falls back to Postgres.
func (s *ArchiveService) Search(ctx context.Context, f entity.SearchFilter) ([]entity.ArchiveWithDetails, error) {
	if f.FileType != "" && !f.FileType.Valid() {
		return nil, invalid("unsupported file_type")
	}
	if s.Index != nil && strings.TrimSpace(f.Query) != "" {
		ids, err := s.Index.Search(ctx, f)
		if err == nil {
			return s.loadOrdered(ctx, ids)
		}
		s.Logger.WithError(err).Warn("archive index search failed, using database")
	}
	out, err := s.Archives.Search(ctx, f)
	if err != nil {
		return nil, internal("search archives", err)
	}
	return out, nil
}

func (s *ArchiveService) loadOrdered(ctx context.Context, ids []int64) ([]entity.ArchiveWithDetails, error) {
	rows, err := s.Archives.GetManyWithDetails(ctx, ids)
	if err != nil {
		return nil, internal("load archives", err)
	}
	byID := make(map[int64]entity.ArchiveWithDetails, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	out := make([]entity.ArchiveWithDetails, 0, len(ids))
	for _, id := range ids {
		// the index may lag behind deletes
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Update changes title, description or category. Only the uploader or an admin may edit.
func (s *ArchiveService) Update(ctx context.Context, actor *entity.Account, id int64, patch entity.ArchivePatch) (*entity.ArchiveWithDetails, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, invalid("title must not be empty")
	}
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	if patch.CategoryIDSet {
		if err := s.checkCategory(ctx, patch.CategoryID); err != nil {
			return nil, err
		}
	}
	if _, err := s.Archives.Update(ctx, id, patch); err != nil {
		return nil, storeErr("update archive", "archive", err)
	}
	d, err := s.Archives.GetWithDetails(ctx, id)
	if err != nil {
		return nil, storeErr("load archive", "archive", err)
	}
	s.index(ctx, d)
	return d, nil
}

// Delete removes the archive and its access logs. Only the uploader or an admin may delete.
func (s *ArchiveService) Delete(ctx context.Context, actor *entity.Account, id int64) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Archives.Delete(ctx, id); err != nil {
		return storeErr("delete archive", "archive", err)
	}
	helpers.LogInfo(s.Logger, "archive deleted", logrus.Fields{"archive_id": id, "user_id": actor.ID})
	invalidateStats(ctx, s.StatsCache)
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("archive_id", id).Warn("archive index delete failed")
		}
	}
	return nil
}

func (s *ArchiveService) authorize(ctx context.Context, actor *entity.Account, id int64) error {
	a, err := s.Archives.GetByID(ctx, id)
	if err != nil {
		return storeErr("get archive", "archive", err)
	}
	if actor == nil || (!actor.IsAdmin() && actor.ID != a.UploadedBy) {
		return ErrForbidden
	}
	return nil
}

func (s *ArchiveService) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.Categories.ExistsByID(ctx, *id)
	if err != nil {
		return internal("check category", err)
	}
	if !ok {
		return notFound("category")
	}
	return nil
}

func (s *ArchiveService) index(ctx context.Context, d *entity.ArchiveWithDetails) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, d); err != nil {
		s.Logger.WithError(err).WithField("archive_id", d.ID).Warn("archive index failed")
	}
}

