package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
	"github.com/eventhub/event-management-backend/pkg/helpers"
)

// EventService implements event CRUD and the moderation workflow.
// Elasticsearch and GCS are optional; nil clients disable those paths.
type EventService struct {
	Events        repo.EventRepository
	Redis         *redis.Client
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESEventsIndex string
	GCS           *storage.Client
	GCSBucket     string
}

func NewEventService(events repo.EventRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *EventService {
	return &EventService{
		Events:        events,
		Redis:         rdb,
		Logger:        logger,
		ES:            es,
		ESEventsIndex: esIndex,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
	}
}

const (
	eventListGenKey = "events:list:gen"
	eventListTTL    = 30 * time.Second
)

type pagedEvents struct {
	Events []entity.Event `json:"events"`
	Total  int64          `json:"total"`
}

// ListPublished returns a page of published events, served from a short-lived
// Redis cache keyed by a generation counter bumped on every mutation.
func (s *EventService) ListPublished(ctx context.Context, pr repo.PageRequest) ([]entity.Event, int64, error) {
	key := s.listCacheKey(ctx, pr)
	if key != "" {
		var cached pagedEvents
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached.Events, cached.Total, nil
		}
	}
	events, total, err := s.Events.ListByStatus(ctx, entity.EventPublished, pr)
	if err != nil {
		return nil, 0, err
	}
	if key != "" {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, pagedEvents{Events: events, Total: total}, eventListTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("event list cache write failed")
		}
	}
	return events, total, nil
}

func (s *EventService) listCacheKey(ctx context.Context, pr repo.PageRequest) string {
	if s.Redis == nil {
		return ""
	}
	gen, err := s.Redis.Get(ctx, eventListGenKey).Result()
	if err != nil {
		gen = "0"
	}
	return "events:list:" + gen + ":" + strconv.Itoa(pr.Page) + ":" + strconv.Itoa(pr.Size) + ":" + pr.SortBy + ":" + pr.SortDir
}

func (s *EventService) bumpListGen(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Incr(ctx, eventListGenKey).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("event list cache invalidation failed")
	}
}

func (s *EventService) ListUpcoming(ctx context.Context, pr repo.PageRequest) ([]entity.Event, int64, error) {
	return s.Events.ListUpcoming(ctx, pr)
}

func (s *EventService) ListPending(ctx context.Context, pr repo.PageRequest) ([]entity.Event, int64, error) {
	return s.Events.ListByStatus(ctx, entity.EventPending, pr)
}

func (s *EventService) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	return s.Events.GetByID(ctx, id)
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID int64) ([]entity.Event, error) {
	return s.Events.ListByOrganizer(ctx, organizerID)
}

// Create persists an admin-created event. DRAFT, PENDING, or missing status
// is coerced to PUBLISHED: admins publish directly.
func (s *EventService) Create(ctx context.Context, e *entity.Event, organizerID int64) (*entity.Event, error) {
	e.OrganizerID = organizerID
	switch e.Status {
	case "", entity.EventDraft, entity.EventPending:
		e.Status = entity.EventPublished
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	s.bumpListGen(ctx)
	s.indexEvent(ctx, e)
	return e, nil
}

// Submit records an organizer-submitted event awaiting moderation.
func (s *EventService) Submit(ctx context.Context, e *entity.Event, organizerID int64) (*entity.Event, error) {
	e.OrganizerID = organizerID
	e.Status = entity.EventPending
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	s.indexEvent(ctx, e)
	return e, nil
}

type UpdateEventInput struct {
	Title         string
	Description   string
	StartDateTime time.Time
	EndDateTime   time.Time
	Location      string
	MaxAttendees  int
	TicketPrice   float64
	ImageURL      string
	Status        entity.EventStatus
	CategoryID    int64
}

func (s *EventService) Update(ctx context.Context, id int64, in UpdateEventInput) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Title = in.Title
	e.Description = in.Description
	e.StartDateTime = in.StartDateTime
	e.EndDateTime = in.EndDateTime
	e.Location = in.Location
	e.MaxAttendees = in.MaxAttendees
	e.TicketPrice = in.TicketPrice
	e.ImageURL = in.ImageURL
	e.Status = in.Status
	e.CategoryID = in.CategoryID
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.bumpListGen(ctx)
	s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.Events.Delete(ctx, id); err != nil {
		return err
	}
	s.bumpListGen(ctx)
	s.removeFromIndex(ctx, id)
	return nil
}

func (s *EventService) Approve(ctx context.Context, id int64) (*entity.Event, error) {
	return s.setStatus(ctx, id, entity.EventPublished)
}

func (s *EventService) Reject(ctx context.Context, id int64) (*entity.Event, error) {
	return s.setStatus(ctx, id, entity.EventRejected)
}

func (s *EventService) setStatus(ctx context.Context, id int64, status entity.EventStatus) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Status = status
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.bumpListGen(ctx)
	s.indexEvent(ctx, e)
	return e, nil
}

// Search runs a keyword query against Elasticsearch when configured and falls
// back to the SQL repository otherwise (or when ES errors).
func (s *EventService) Search(ctx context.Context, keyword string, pr repo.PageRequest) ([]entity.Event, int64, error) {
	if s.ES != nil && s.ESEventsIndex != "" {
		events, total, err := s.searchES(ctx, keyword, pr)
		if err == nil {
			return events, total, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to sql")
		}
	}
	return s.Events.Search(ctx, keyword, pr)
}

func (s *EventService) searchES(ctx context.Context, keyword string, pr repo.PageRequest) ([]entity.Event, int64, error) {
	size := pr.Size
	if size <= 0 || size > 50 {
		size = 10
	}
	from := pr.Page * size
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  keyword,
						"fields": []string{"title^2", "description", "location"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": string(entity.EventPublished)},
				},
			},
		},
		"from": from,
		"size": size,
		"sort": []map[string]any{{"start_datetime": map[string]any{"order": "asc"}}},
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEventsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, 0, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source entity.Event `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	events := make([]entity.Event, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		events = append(events, h.Source)
	}
	return events, parsed.Hits.Total.Value, nil
}

func (s *EventService) indexEvent(ctx context.Context, e *entity.Event) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":             e.ID,
		"title":          e.Title,
		"description":    e.Description,
		"location":       e.Location,
		"status":         string(e.Status),
		"start_datetime": e.StartDateTime.Format(time.RFC3339Nano),
		"ticket_price":   e.TicketPrice,
		"category_id":    e.CategoryID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESEventsIndex,
		DocumentID: strconv.FormatInt(e.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
}

func (s *EventService) removeFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEventsIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// UploadImage stores an event image in GCS and records the public URL.
func (s *EventService) UploadImage(ctx context.Context, eventID int64, r io.Reader, filename, contentType string) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, fmt.Errorf("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("events", strconv.FormatInt(eventID, 10), uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	e.ImageURL = url
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.bumpListGen(ctx)
	s.indexEvent(ctx, e)
	return e, nil
}
