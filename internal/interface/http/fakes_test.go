package handlers

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

// store is a tiny in-memory backing for every repository the handlers touch.
type store struct {
	mu         sync.Mutex
	nextID     int64
	accounts   map[int64]*entity.Account
	categories map[int64]*entity.Category
	archives   map[int64]*entity.Archive
	logs       []entity.AccessLog
	now        time.Time
}

func newStore(now time.Time) *store {
	return &store{
		accounts:   map[int64]*entity.Account{},
		categories: map[int64]*entity.Category{},
		archives:   map[int64]*entity.Archive{},
		now:        now,
	}
}

func (s *store) id() int64 { s.nextID++; return s.nextID }

type memAccounts struct{ s *store }

func (m memAccounts) Create(_ context.Context, a *entity.Account) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, x := range m.s.accounts {
		if x.Email == a.Email {
			return repo.ErrDuplicate
		}
	}
	a.ID = m.s.id()
	a.CreatedAt, a.UpdatedAt = m.s.now, m.s.now
	cp := *a
	m.s.accounts[a.ID] = &cp
	return nil
}

func (m memAccounts) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m memAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, a := range m.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m memAccounts) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, err := m.GetByID(ctx, id)
	return err == nil, nil
}

func (m memAccounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m memAccounts) List(context.Context) ([]entity.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]entity.Account, 0, len(m.s.accounts))
	for _, a := range m.s.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memAccounts) Count(context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.accounts)), nil
}

func (m memAccounts) CountActiveAdmins(_ context.Context, excluding int64) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for id, a := range m.s.accounts {
		if id != excluding && a.Role == entity.RoleAdmin && a.IsActive {
			n++
		}
	}
	return n, nil
}

func (m memAccounts) UpdatePartial(_ context.Context, id int64, p entity.AccountPatch, now time.Time) (*entity.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	a.UpdatedAt = now
	cp := *a
	return &cp, nil
}

func (m memAccounts) WithTx(_ context.Context, fn func(repo.AccountRepository) error) error {
	return fn(m)
}

type memCategories struct{ s *store }

func (m memCategories) Create(_ context.Context, c *entity.Category) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, x := range m.s.categories {
		if x.Name == c.Name {
			return repo.ErrDuplicate
		}
	}
	c.ID = m.s.id()
	c.CreatedAt, c.UpdatedAt = m.s.now, m.s.now
	cp := *c
	m.s.categories[c.ID] = &cp
	return nil
}

func (m memCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m memCategories) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, err := m.GetByID(ctx, id)
	return err == nil, nil
}

func (m memCategories) List(context.Context) ([]entity.Category, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]entity.Category, 0, len(m.s.categories))
	for _, c := range m.s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memCategories) Update(_ context.Context, id int64, p entity.CategoryPatch) (*entity.Category, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.DescriptionSet {
		c.Description = p.Description
	}
	cp := *c
	return &cp, nil
}

func (m memCategories) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.s.categories, id)
	for _, a := range m.s.archives {
		if a.CategoryID != nil && *a.CategoryID == id {
			a.CategoryID = nil
		}
	}
	return nil
}

type memArchives struct{ s *store }

func (m memArchives) details(a *entity.Archive) entity.ArchiveWithDetails {
	d := entity.ArchiveWithDetails{Archive: *a}
	if a.CategoryID != nil {
		if c, ok := m.s.categories[*a.CategoryID]; ok {
			cp := *c
			d.Category = &cp
		}
	}
	if u, ok := m.s.accounts[a.UploadedBy]; ok {
		d.Uploader = entity.Uploader{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
	}
	return d
}

func (m memArchives) Create(_ context.Context, a *entity.Archive) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a.ID = m.s.id()
	a.CreatedAt, a.UpdatedAt = m.s.now, m.s.now
	cp := *a
	m.s.archives[a.ID] = &cp
	return nil
}

func (m memArchives) GetByID(_ context.Context, id int64) (*entity.Archive, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.archives[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m memArchives) GetWithDetails(_ context.Context, id int64) (*entity.ArchiveWithDetails, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.archives[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	d := m.details(a)
	return &d, nil
}

func (m memArchives) GetManyWithDetails(_ context.Context, ids []int64) ([]entity.ArchiveWithDetails, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []entity.ArchiveWithDetails
	for _, id := range ids {
		if a, ok := m.s.archives[id]; ok {
			out = append(out, m.details(a))
		}
	}
	return out, nil
}

func (m memArchives) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, err := m.GetByID(ctx, id)
	return err == nil, nil
}

func (m memArchives) ListWithDetails(context.Context) ([]entity.ArchiveWithDetails, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]entity.ArchiveWithDetails, 0, len(m.s.archives))
	for _, a := range m.s.archives {
		out = append(out, m.details(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m memArchives) Search(ctx context.Context, f entity.SearchFilter) ([]entity.ArchiveWithDetails, error) {
	all, _ := m.ListWithDetails(ctx)
	var out []entity.ArchiveWithDetails
	for _, d := range all {
		if f.Query != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(f.Query)) {
			continue
		}
		if f.FileType != "" && d.FileType != f.FileType {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m memArchives) Update(_ context.Context, id int64, p entity.ArchivePatch) (*entity.Archive, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.archives[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.DescriptionSet {
		a.Description = p.Description
	}
	if p.CategoryIDSet {
		a.CategoryID = p.CategoryID
	}
	cp := *a
	return &cp, nil
}

func (m memArchives) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.archives[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.s.archives, id)
	kept := m.s.logs[:0]
	for _, l := range m.s.logs {
		if l.ArchiveID != id {
			kept = append(kept, l)
		}
	}
	m.s.logs = kept
	return nil
}

type memLogs struct{ s *store }

func (m memLogs) Create(_ context.Context, l *entity.AccessLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	l.ID = m.s.id()
	l.CreatedAt = m.s.now
	m.s.logs = append(m.s.logs, *l)
	return nil
}

func (m memLogs) List(_ context.Context, f entity.AccessLogFilter) ([]entity.AccessLog, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []entity.AccessLog{}
	for i := len(m.s.logs) - 1; i >= 0; i-- {
		l := m.s.logs[i]
		if f.UserID != nil && l.UserID != *f.UserID {
			continue
		}
		if f.ArchiveID != nil && l.ArchiveID != *f.ArchiveID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type memStats struct{ s *store }

func (m memStats) Dashboard(_ context.Context, since time.Time) (*entity.DashboardStats, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	st := &entity.DashboardStats{
		TotalUsers:      int64(len(m.s.accounts)),
		TotalArchives:   int64(len(m.s.archives)),
		TotalCategories: int64(len(m.s.categories)),
	}
	for _, a := range m.s.archives {
		st.StorageUsed += a.FileSize
		if !a.CreatedAt.Before(since) {
			st.RecentUploads++
		}
	}
	for _, l := range m.s.logs {
		if !l.CreatedAt.Before(since) {
			st.RecentAccesses++
		}
	}
	return st, nil
}

type memUploader struct {
	paths []string
	sizes []int64
}

func (u *memUploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", err
	}
	u.paths = append(u.paths, objectPath)
	u.sizes = append(u.sizes, n)
	return "https://storage.test/" + objectPath, nil
}

func (u *memUploader) Delete(_ context.Context, objectPath string) error {
	for i, p := range u.paths {
		if p == objectPath {
			u.paths = append(u.paths[:i], u.paths[i+1:]...)
			u.sizes = append(u.sizes[:i], u.sizes[i+1:]...)
			break
		}
	}
	return nil
}
