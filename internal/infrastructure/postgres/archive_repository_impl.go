package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

const archiveColumns = `id, title, description, file_name, file_path, file_type, file_size, category_id, uploaded_by, created_at, updated_at`

// The uploader join is inner: uploaded_by always references an account,
// which is never erased even when inactive.
const archiveDetailsSelect = `
	SELECT a.id, a.title, a.description, a.file_name, a.file_path, a.file_type, a.file_size,
	       a.category_id, a.uploaded_by, a.created_at, a.updated_at,
	       c.id, c.name, c.description, c.created_at, c.updated_at,
	       u.id, u.first_name, u.last_name
	FROM archives a
	LEFT JOIN categories c ON c.id = a.category_id
	JOIN users u ON u.id = a.uploaded_by`

type ArchiveRepository struct {
	db TxBeginner
}

func NewArchiveRepository(db TxBeginner) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func scanArchive(row pgx.Row) (*entity.Archive, error) {
	a := &entity.Archive{}
	var ft string
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.FileName, &a.FilePath, &ft, &a.FileSize,
		&a.CategoryID, &a.UploadedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.FileType = entity.FileType(ft)
	return a, nil
}

func scanArchiveDetails(row pgx.Row) (entity.ArchiveWithDetails, error) {
	var (
		d            entity.ArchiveWithDetails
		ft           string
		catID        *int64
		catName      *string
		catDesc      *string
		catCreatedAt *time.Time
		catUpdatedAt *time.Time
	)
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.FileName, &d.FilePath, &ft, &d.FileSize,
		&d.CategoryID, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt,
		&catID, &catName, &catDesc, &catCreatedAt, &catUpdatedAt,
		&d.Uploader.ID, &d.Uploader.FirstName, &d.Uploader.LastName)
	if err != nil {
		return d, err
	}
	d.FileType = entity.FileType(ft)
	if catID != nil {
		d.Category = &entity.Category{ID: *catID, Description: catDesc}
		if catName != nil {
			d.Category.Name = *catName
		}
		if catCreatedAt != nil {
			d.Category.CreatedAt = *catCreatedAt
		}
		if catUpdatedAt != nil {
			d.Category.UpdatedAt = *catUpdatedAt
		}
	}
	return d, nil
}

func collectDetails(rows pgx.Rows) ([]entity.ArchiveWithDetails, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ArchiveWithDetails, error) {
		return scanArchiveDetails(row)
	})
}

func (r *ArchiveRepository) Create(ctx context.Context, a *entity.Archive) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO archives (title, description, file_name, file_path, file_type, file_size, category_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Description, a.FileName, a.FilePath, string(a.FileType), a.FileSize, a.CategoryID, a.UploadedBy)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("insert archive: %w", mapErr(err))
	}
	return nil
}

func (r *ArchiveRepository) GetByID(ctx context.Context, id int64) (*entity.Archive, error) {
	a, err := scanArchive(r.db.QueryRow(ctx, `SELECT `+archiveColumns+` FROM archives WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *ArchiveRepository) GetWithDetails(ctx context.Context, id int64) (*entity.ArchiveWithDetails, error) {
	d, err := scanArchiveDetails(r.db.QueryRow(ctx, archiveDetailsSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

// GetManyWithDetails loads the given archives; missing ids are skipped and order is unspecified.
func (r *ArchiveRepository) GetManyWithDetails(ctx context.Context, ids []int64) ([]entity.ArchiveWithDetails, error) {
	if len(ids) == 0 {
		return []entity.ArchiveWithDetails{}, nil
	}
	rows, err := r.db.Query(ctx, archiveDetailsSelect+` WHERE a.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get archives: %w", err)
	}
	out, err := collectDetails(rows)
	if err != nil {
		return nil, fmt.Errorf("scan archives: %w", err)
	}
	return out, nil
}

func (r *ArchiveRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM archives WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("archive exists: %w", err)
	}
	return ok, nil
}

func (r *ArchiveRepository) ListWithDetails(ctx context.Context) ([]entity.ArchiveWithDetails, error) {
	rows, err := r.db.Query(ctx, archiveDetailsSelect+` ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	out, err := collectDetails(rows)
	if err != nil {
		return nil, fmt.Errorf("scan archives: %w", err)
	}
	return out, nil
}

// Search matches the query case-insensitively against title, description and file name.
func (r *ArchiveRepository) Search(ctx context.Context, f entity.SearchFilter) ([]entity.ArchiveWithDetails, error) {
	b := &setBuilder{}
	var conds []string
	if q := strings.TrimSpace(f.Query); q != "" {
		p := b.next(containsPattern(q))
		conds = append(conds, "(a.title ILIKE "+p+" OR a.description ILIKE "+p+" OR a.file_name ILIKE "+p+")")
	}
	if f.CategoryID != nil {
		conds = append(conds, "a.category_id = "+b.next(*f.CategoryID))
	}
	if f.FileType != "" {
		conds = append(conds, "a.file_type = "+b.next(string(f.FileType)))
	}

	q := archiveDetailsSelect
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY a.created_at DESC, a.id DESC LIMIT ` + b.next(clampLimit(f.Limit)) + ` OFFSET ` + b.next(clampOffset(f.Offset))

	rows, err := r.db.Query(ctx, q, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search archives: %w", err)
	}
	out, err := collectDetails(rows)
	if err != nil {
		return nil, fmt.Errorf("scan archives: %w", err)
	}
	return out, nil
}

func (r *ArchiveRepository) Update(ctx context.Context, id int64, patch entity.ArchivePatch) (*entity.Archive, error) {
	b := &setBuilder{}
	if patch.Title != nil {
		b.add("title", *patch.Title)
	}
	if patch.DescriptionSet {
		b.add("description", patch.Description)
	}
	if patch.CategoryIDSet {
		b.add("category_id", patch.CategoryID)
	}
	b.raw("updated_at = NOW()")
	where := b.next(id)

	q := `UPDATE archives SET ` + strings.Join(b.sets, ", ") + ` WHERE id = ` + where + ` RETURNING ` + archiveColumns
	a, err := scanArchive(r.db.QueryRow(ctx, q, b.args...))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *ArchiveRepository) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, func(tx DBTX) error {
		if _, err := tx.Exec(ctx, `DELETE FROM access_logs WHERE archive_id = $1`, id); err != nil {
			return fmt.Errorf("delete archive logs: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM archives WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete archive: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

var _ repository.ArchiveRepository = (*ArchiveRepository)(nil)
