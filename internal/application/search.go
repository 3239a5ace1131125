package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// ArtifactIndex mirrors public artifacts into Elasticsearch for the visitor
// search box. Only PUBLIC artifacts live in the index; toggling one private
// removes its document. All operations are best effort because the portfolio
// stays fully usable without search.
type ArtifactIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewArtifactIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ArtifactIndex {
	return &ArtifactIndex{ES: es, Index: index, Logger: logger}
}

type artifactDoc struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Content string    `json:"content_md"`
	Tags    []string  `json:"tags"`
	Date    time.Time `json:"date"`
}

// Put indexes or removes the artifact depending on its visibility.
func (ix *ArtifactIndex) Put(ctx context.Context, a *entity.Artifact) {
	if ix == nil || ix.ES == nil || a == nil {
		return
	}
	if a.Visibility != entity.VisibilityPublic {
		ix.Remove(ctx, a.ID)
		return
	}
	doc := artifactDoc{
		ID:      a.ID,
		Type:    string(a.Type),
		Title:   a.Title,
		Summary: a.Summary,
		Content: a.ContentMd,
		Tags:    a.Tags,
		Date:    a.Date,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return
	}
	res, err := ix.ES.Index(ix.Index, bytes.NewReader(body),
		ix.ES.Index.WithDocumentID(a.ID),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		ix.warn(err, "artifact index failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		ix.warn(fmt.Errorf("status %s", res.Status()), "artifact index failed")
	}
}

// Remove drops the document for an artifact id. Missing documents are fine.
func (ix *ArtifactIndex) Remove(ctx context.Context, id string) {
	if ix == nil || ix.ES == nil {
		return
	}
	res, err := ix.ES.Delete(ix.Index, id, ix.ES.Delete.WithContext(ctx))
	if err != nil {
		ix.warn(err, "artifact index delete failed")
		return
	}
	defer res.Body.Close()
}

// ArtifactHit is one search result for the public portfolio search.
type ArtifactHit struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Score   float64  `json:"score"`
}

// Search runs a multi-field match over the public artifact documents. A nil
// client returns no hits rather than an error.
func (ix *ArtifactIndex) Search(ctx context.Context, query string, size int) ([]ArtifactHit, error) {
	if ix == nil || ix.ES == nil || query == "" {
		return nil, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	var buf bytes.Buffer
	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^3", "summary^2", "tags^2", "content_md"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64     `json:"_score"`
				Source artifactDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	hits := make([]ArtifactHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, ArtifactHit{
			ID:      h.Source.ID,
			Type:    h.Source.Type,
			Title:   h.Source.Title,
			Summary: h.Source.Summary,
			Tags:    h.Source.Tags,
			Score:   h.Score,
		})
	}
	return hits, nil
}

func (ix *ArtifactIndex) warn(err error, msg string) {
	if ix.Logger != nil {
		ix.Logger.WithError(err).Warn(msg)
	}
}
