package service

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const assignmentsIndex = "assignments"

// SearchService maintains the Meilisearch assignment index. Index writes
// are best-effort: a failed index never fails the owning operation.
type SearchService interface {
	IndexAssignment(assignment *model.Assignment) error
	DeleteAssignment(id string) error
	SearchAssignments(query string, classID string, limit int) ([]AssignmentHit, error)
}

type AssignmentHit struct {
	ID          string `json:"id"`
	ClassID     string `json:"class_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"created_at"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterable := []any{"class_id"}
	if _, err := s.client.Index(assignmentsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("Failed to update assignments filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(assignmentsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update assignments sortable attributes: %v", err)
	}
}

func (s *searchService) cleanForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *searchService) IndexAssignment(assignment *model.Assignment) error {
	doc := AssignmentHit{
		ID:          assignment.ID.String(),
		ClassID:     assignment.ClassID.String(),
		Title:       assignment.Title,
		Description: s.cleanForIndex(assignment.Description),
		CreatedAt:   assignment.CreatedAt.Unix(),
	}

	task, err := s.client.Index(assignmentsIndex).AddDocuments([]AssignmentHit{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed assignment %s, task id: %d", assignment.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteAssignment(id string) error {
	_, err := s.client.Index(assignmentsIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchAssignments(query string, classID string, limit int) ([]AssignmentHit, error) {
	req := &meilisearch.SearchRequest{
		Limit: int64(limit),
		Sort:  []string{"created_at:desc"},
	}
	if classID != "" {
		req.Filter = fmt.Sprintf("class_id = %q", classID)
	}

	resp, err := s.client.Index(assignmentsIndex).Search(query, req)
	if err != nil {
		return nil, err
	}

	return decodeAssignmentHits(resp.Hits), nil
}

// decodeAssignmentHits unpacks raw search hits, dropping any document that
// does not decode into the assignment shape.
func decodeAssignmentHits(raw meilisearch.Hits) []AssignmentHit {
	hits := make([]AssignmentHit, 0, len(raw))
	for _, h := range raw {
		hit := AssignmentHit{}
		if err := h.Decode(&hit); err != nil {
			continue
		}
		hits = append(hits, hit)
	}
	return hits
}

func strPtr(s string) *string {
	return &s
}
