// internal/repository/search.go
package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/common/logger"
)

// CandidateSearch prefilters candidates in elasticsearch before scoring: a
// terms query on the skills field narrows a large pool to IDs worth the full
// factor evaluation.
type CandidateSearch struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewCandidateSearch(client *elasticsearch.Client, index string, log logger.Logger) *CandidateSearch {
	return &CandidateSearch{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"repository": "search"}),
	}
}

// FindBySkills returns the IDs of freelancers indexed with at least one of
// the given skills, best matches first.
func (s *CandidateSearch) FindBySkills(ctx context.Context, skills []string, size int) ([]string, error) {
	if size <= 0 {
		size = 50
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"terms": map[string]interface{}{
				"skills": skills,
			},
		},
		"_source": false,
	}
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(
			&esError{status: res.Status()})
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.ID)
	}

	s.logger.Debug("candidate prefilter complete", map[string]interface{}{
		"skills": skills,
		"hits":   len(ids),
	})
	return ids, nil
}

type esError struct {
	status string
}

func (e *esError) Error() string {
	return "search query failed: " + e.status
}
