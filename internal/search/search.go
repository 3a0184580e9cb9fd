// internal/search/search.go

// Package search mirrors applications into Elasticsearch and answers
// free-text queries over company names and job roles. Search is
// best-effort: index failures are reported but never block the write path.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	stderrors "applytrack/internal/common/errors"
	"applytrack/internal/common/logger"
	"applytrack/internal/models"
)

// Searcher is the query surface the API depends on.
type Searcher interface {
	Index(ctx context.Context, app models.Application) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]string, error)
}

type document struct {
	CompanyName string `json:"company_name"`
	JobRole     string `json:"job_role"`
	Status      string `json:"status"`
}

// ApplicationIndex maintains one document per application in a single index.
type ApplicationIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewApplicationIndex(client *elasticsearch.Client, index string, log logger.Logger) *ApplicationIndex {
	return &ApplicationIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"index": index}),
	}
}

// Index upserts the application document keyed by its id.
func (a *ApplicationIndex) Index(ctx context.Context, app models.Application) error {
	body, err := json.Marshal(document{
		CompanyName: app.CompanyName,
		JobRole:     app.JobRole,
		Status:      string(app.Status),
	})
	if err != nil {
		return stderrors.NewSearchIndexFailedError(app.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      a.index,
		DocumentID: app.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return stderrors.NewSearchIndexFailedError(app.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return stderrors.NewSearchIndexFailedError(app.ID, fmt.Errorf("index response: %s", res.String()))
	}
	return nil
}

// Remove deletes the application document. A document that was never
// indexed is not an error.
func (a *ApplicationIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      a.index,
		DocumentID: id,
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return stderrors.NewSearchIndexFailedError(id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return stderrors.NewSearchIndexFailedError(id, fmt.Errorf("delete response: %s", res.String()))
	}
	return nil
}

// Search returns the ids of applications whose company name or job role
// matches the query, best matches first.
func (a *ApplicationIndex) Search(ctx context.Context, query string) ([]string, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"company_name^2", "job_role"},
				"type":   "best_fields",
			},
		},
	}
	body, _ := json.Marshal(queryBody)

	size := 100
	req := esapi.SearchRequest{
		Index: []string{a.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return nil, stderrors.NewSearchQueryFailedError(query, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, stderrors.NewSearchQueryFailedError(query, fmt.Errorf("search response: %s", res.String()))
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, stderrors.NewSearchQueryFailedError(query, err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Match reports whether an application's company name or job role contains
// the query, ignoring case. It backs the in-memory fallback used when no
// search index is configured.
func Match(app models.Application, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(app.CompanyName), q) ||
		strings.Contains(strings.ToLower(app.JobRole), q)
}

// Disabled is the Searcher used when Elasticsearch is not configured. Index
// and Remove are no-ops; Search reports that no index is available.
type Disabled struct{}

func (Disabled) Index(context.Context, models.Application) error { return nil }
func (Disabled) Remove(context.Context, string) error { return nil }
func (Disabled) Search(ctx context.Context, query string) ([]string, error) {
	return nil, stderrors.NewSearchQueryFailedError(query, fmt.Errorf("search index not configured"))
}
