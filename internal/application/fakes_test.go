package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

// fakeAccounts is an in-memory credential store. WithTx serializes callers and
// restores the previous state when fn fails, like a row-locking transaction.
type fakeAccounts struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	rows   map[int64]entity.Account
	nextID int64

	// hideEmails makes ExistsByEmail report false, simulating a lost race.
	hideEmails bool
	failWith   error
	txCount    int
}

func newFakeAccounts(accounts ...entity.Account) *fakeAccounts {
	f := &fakeAccounts{rows: map[int64]entity.Account{}}
	for _, a := range accounts {
		f.nextID++
		if a.ID == 0 {
			a.ID = f.nextID
		}
		if a.ID > f.nextID {
			f.nextID = a.ID
		}
		f.rows[a.ID] = a
	}
	return f
}

func (f *fakeAccounts) get(id int64) entity.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fakeAccounts) Create(_ context.Context, a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, r := range f.rows {
		if r.Email == a.Email {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.rows {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeAccounts) ExistsByID(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeAccounts) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideEmails {
		return false, nil
	}
	for _, a := range f.rows {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccounts) List(_ context.Context) ([]entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Account, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAccounts) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

func (f *fakeAccounts) CountActiveAdmins(_ context.Context, excludingID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, a := range f.rows {
		if id != excludingID && a.Role == entity.RoleAdmin && a.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeAccounts) UpdatePartial(_ context.Context, id int64, p entity.AccountPatch, now time.Time) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Email != nil {
		for oid, o := range f.rows {
			if oid != id && o.Email == *p.Email {
				return nil, repo.ErrDuplicate
			}
		}
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
	f.rows[id] = a
	return &a, nil
}

func (f *fakeAccounts) WithTx(_ context.Context, fn func(repo.AccountRepository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	f.txCount++
	snapshot := make(map[int64]entity.Account, len(f.rows))
	for k, v := range f.rows {
		snapshot[k] = v
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.rows = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

type recordingNotifier struct {
	mu          sync.Mutex
	created     []int64
	deactivated []int64
	err         error
}

func (n *recordingNotifier) AccountCreated(_ context.Context, a *entity.Account) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, a.ID)
	return n.err
}

func (n *recordingNotifier) AccountDeactivated(_ context.Context, a *entity.Account) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deactivated = append(n.deactivated, a.ID)
	return n.err
}

type fakeCategories struct {
	rows   map[int64]entity.Category
	nextID int64
}

func newFakeCategories(cs ...entity.Category) *fakeCategories {
	f := &fakeCategories{rows: map[int64]entity.Category{}}
	for _, c := range cs {
		f.rows[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	for _, r := range f.rows {
		if r.Name == c.Name {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategories) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeCategories) List(_ context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, id int64, p entity.CategoryPatch) (*entity.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Name != nil {
		for oid, o := range f.rows {
			if oid != id && o.Name == *p.Name {
				return nil, repo.ErrDuplicate
			}
		}
		c.Name = *p.Name
	}
	if p.DescriptionSet {
		c.Description = p.Description
	}
	f.rows[id] = c
	return &c, nil
}

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeArchives struct {
	rows     map[int64]entity.Archive
	nextID   int64
	searched int
}

func newFakeArchives(as ...entity.Archive) *fakeArchives {
	f := &fakeArchives{rows: map[int64]entity.Archive{}}
	for _, a := range as {
		f.rows[a.ID] = a
		if a.ID > f.nextID {
			f.nextID = a.ID
		}
	}
	return f
}

func (f *fakeArchives) details(a entity.Archive) entity.ArchiveWithDetails {
	return entity.ArchiveWithDetails{Archive: a, Uploader: entity.Uploader{ID: a.UploadedBy}}
}

func (f *fakeArchives) Create(_ context.Context, a *entity.Archive) error {
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeArchives) GetByID(_ context.Context, id int64) (*entity.Archive, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &a, nil
}

func (f *fakeArchives) GetWithDetails(_ context.Context, id int64) (*entity.ArchiveWithDetails, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	d := f.details(a)
	return &d, nil
}

func (f *fakeArchives) GetManyWithDetails(_ context.Context, ids []int64) ([]entity.ArchiveWithDetails, error) {
	var out []entity.ArchiveWithDetails
	for _, id := range ids {
		if a, ok := f.rows[id]; ok {
			out = append(out, f.details(a))
		}
	}
	// reverse to prove callers restore index order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (f *fakeArchives) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeArchives) ListWithDetails(_ context.Context) ([]entity.ArchiveWithDetails, error) {
	out := []entity.ArchiveWithDetails{}
	for _, a := range f.rows {
		out = append(out, f.details(a))
	}
	return out, nil
}

func (f *fakeArchives) Search(_ context.Context, _ entity.SearchFilter) ([]entity.ArchiveWithDetails, error) {
	f.searched++
	return f.ListWithDetails(context.Background())
}

func (f *fakeArchives) Update(_ context.Context, id int64, p entity.ArchivePatch) (*entity.Archive, error) {
	a, ok := f.rows[id]
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
	f.rows[id] = a
	return &a, nil
}

func (f *fakeArchives) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeIndex struct {
	ids     []int64
	err     error
	indexed []int64
	deleted []int64
}

func (f *fakeIndex) Index(_ context.Context, a *entity.ArchiveWithDetails) error {
	f.indexed = append(f.indexed, a.ID)
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ entity.SearchFilter) ([]int64, error) {
	return f.ids, f.err
}

type fakeUploader struct {
	paths   []string
	deleted []string
	body    string
}

func (f *fakeUploader) Delete(_ context.Context, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

func (f *fakeUploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.body = string(b)
	f.paths = append(f.paths, objectPath)
	return "https://storage.test/" + objectPath, nil
}

type fakeLogs struct {
	rows []entity.AccessLog
}

func (f *fakeLogs) Create(_ context.Context, l *entity.AccessLog) error {
	l.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *l)
	return nil
}

func (f *fakeLogs) List(_ context.Context, _ entity.AccessLogFilter) ([]entity.AccessLog, error) {
	return f.rows, nil
}

type fakeStats struct {
	calls int
	since time.Time
	err   error
}

func (f *fakeStats) Dashboard(_ context.Context, since time.Time) (*entity.DashboardStats, error) {
	f.calls++
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	return &entity.DashboardStats{TotalUsers: 3, StorageUsed: 99}, nil
}

var errDB = errors.New("db down")
