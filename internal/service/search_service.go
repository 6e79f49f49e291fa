package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"github.com/oreumshop/commerce-api/internal/entity"
)

const workIndex = "works"

// SearchService mirrors work tickets into Meilisearch so the list endpoint's
// free-text search does not fall back to SQL LIKE scans. Implementations must
// tolerate being absent: callers hold a nil interface when search is not
// configured.
type SearchService interface {
	IndexWork(work *entity.Work) error
	DeleteWork(id string) error
	// SearchWorks returns matching work ids, or ok=false when the index is
	// unavailable and the caller should use the SQL fallback.
	SearchWorks(term string) (ids []uuid.UUID, ok bool)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	sortable := []string{"created_at", "due_date", "status"}
	if _, err := s.client.Index(workIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update works sortable attributes: %v", err)
	}
	log.Println("Meilisearch works index initialized")
}

type meiliWorkDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	WorkType    string `json:"work_type"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *meiliSearchService) IndexWork(work *entity.Work) error {
	doc := meiliWorkDoc{
		ID:          work.ID.String(),
		Title:       work.Title,
		Description: s.sanitizer.Sanitize(work.Description),
		OrderNumber: work.Order.OrderNumber,
		Status:      string(work.Status),
		WorkType:    string(work.WorkType),
		CreatedAt:   work.CreatedAt.Unix(),
	}

	task, err := s.client.Index(workIndex).AddDocuments([]meiliWorkDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed work %s, task id: %d", work.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteWork(id string) error {
	_, err := s.client.Index(workIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchWorks(term string) ([]uuid.UUID, bool) {
	resp, err := s.client.Index(workIndex).Search(term, &meilisearch.SearchRequest{Limit: 500})
	if err != nil {
		log.Printf("Meilisearch works query failed, falling back to SQL: %v", err)
		return nil, false
	}

	// Round-trip through JSON so we only depend on the documents' shape,
	// not on the SDK's hit container type.
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, false
	}
	var hits []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, false
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		if id, err := uuid.Parse(h.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, true
}

func strPtr(s string) *string {
	return &s
}
