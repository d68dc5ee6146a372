package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAssignmentHits(t *testing.T) {
	raw := meilisearch.Hits{
		meilisearch.Hit{
			"id":          json.RawMessage(`"a1"`),
			"class_id":    json.RawMessage(`"c1"`),
			"title":       json.RawMessage(`"Week 3 journal"`),
			"description": json.RawMessage(`"Write about your week"`),
			"created_at":  json.RawMessage(`1700000000`),
		},
		meilisearch.Hit{
			"id":         json.RawMessage(`"a2"`),
			"created_at": json.RawMessage(`"not-a-number"`),
		},
	}

	hits := decodeAssignmentHits(raw)

	// The malformed document is skipped, not surfaced as an error.
	require.Len(t, hits, 1)
	assert.Equal(t, "a1", hits[0].ID)
	assert.Equal(t, "c1", hits[0].ClassID)
	assert.Equal(t, "Week 3 journal", hits[0].Title)
	assert.Equal(t, "Write about your week", hits[0].Description)
	assert.Equal(t, int64(1700000000), hits[0].CreatedAt)
}

func TestDecodeAssignmentHitsEmpty(t *testing.T) {
	assert.Empty(t, decodeAssignmentHits(nil))
}
