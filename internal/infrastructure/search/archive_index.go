package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ArchiveIndex keeps archive metadata searchable in Elasticsearch.
type ArchiveIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewArchiveIndex(es *elasticsearch.Client, index string) *ArchiveIndex {
	return &ArchiveIndex{ES: es, IndexName: index}
}

type archiveDoc struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	FileName     string  `json:"file_name"`
	FileType     string  `json:"file_type"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	UploadedBy   int64   `json:"uploaded_by"`
	Uploader     string  `json:"uploader"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	Score        float64 `json:"-"`
}

func toDoc(a *entity.ArchiveWithDetails) archiveDoc {
	d := archiveDoc{
		ID:         a.ID,
		Title:      a.Title,
		FileName:   a.FileName,
		FileType:   string(a.FileType),
		CategoryID: a.CategoryID,
		UploadedBy: a.UploadedBy,
		Uploader:   a.Uploader.FirstName + " " + a.Uploader.LastName,
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  a.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if a.Description != nil {
		d.Description = *a.Description
	}
	if a.Category != nil {
		d.CategoryName = a.Category.Name
	}
	return d
}

func (x *ArchiveIndex) Index(ctx context.Context, a *entity.ArchiveWithDetails) error {
	b, err := json.Marshal(toDoc(a))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.IndexName,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *ArchiveIndex) Delete(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// already gone is fine
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// buildQuery matches the text against title, description and file name,
// with category and file type as exact filters.
func buildQuery(f entity.SearchFilter) map[string]any {
	var filters []map[string]any
	if f.CategoryID != nil {
		filters = append(filters, map[string]any{"term": map[string]any{"category_id": *f.CategoryID}})
	}
	if f.FileType != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"file_type": string(f.FileType)}})
	}
	boolQ := map[string]any{
		"must": []map[string]any{{
			"multi_match": map[string]any{
				"query":     f.Query,
				"fields":    []string{"title^3", "description", "file_name^2"},
				"fuzziness": "AUTO",
			},
		}},
	}
	if len(filters) > 0 {
		boolQ["filter"] = filters
	}

	size := f.Limit
	if size <= 0 || size > 100 {
		size = 20
	}
	from := f.Offset
	if from < 0 {
		from = 0
	}
	return map[string]any{
		"query":   map[string]any{"bool": boolQ},
		"size":    size,
		"from":    from,
		"_source": false,
	}
}

// Search returns ids of matching archives by relevance.
func (x *ArchiveIndex) Search(ctx context.Context, f entity.SearchFilter) ([]int64, error) {
	b, err := json.Marshal(buildQuery(f))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
