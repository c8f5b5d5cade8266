package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/core/entity"
	"enercore/internal/core/id"
	"enercore/internal/domain"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
	"enercore/internal/infrastructure/http/v1/middleware"
)

type memo struct {
	entity.Resource

	Subject       string
	ArchiveReason string
}

func (m *memo) Validate(ctx context.Context) error { return nil }

func memoTable() *transition.Table {
	return &transition.Table{
		Entity:  "memo",
		Initial: "open",
		Rules: map[string]transition.Rule{
			"archive": {
				From:           []string{"open"},
				To:             "archived",
				RequiredFields: []string{"archive_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"archive_reason": req.GetString("archive_reason"),
					}
				},
			},
		},
	}
}

type memoRepo struct {
	items map[id.ID]*memo
}

func newMemoRepo() *memoRepo {
	return &memoRepo{items: make(map[id.ID]*memo)}
}

func (r *memoRepo) Create(ctx context.Context, m *memo) error {
	r.items[m.ID] = m
	return nil
}

func (r *memoRepo) GetByID(ctx context.Context, entityID id.ID) (*memo, error) {
	m, ok := r.items[entityID]
	if !ok {
		return nil, errNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memoRepo) Update(ctx context.Context, m *memo) error {
	r.items[m.ID] = m
	return nil
}

func (r *memoRepo) Delete(ctx context.Context, entityID id.ID) error {
	delete(r.items, entityID)
	return nil
}

func (r *memoRepo) List(ctx context.Context, params query.Params) (domain.ListResult[*memo], error) {
	return domain.ListResult[*memo]{}, nil
}

func (r *memoRepo) Statistics(ctx context.Context, params query.Params) (query.Statistics, error) {
	return query.NewStatistics(), nil
}

func (r *memoRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := r.items[entityID]
	return ok, nil
}

func (r *memoRepo) ExistsByKey(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (r *memoRepo) ApplyTransition(ctx context.Context, entityID id.ID, action, fromStatus string, fields map[string]any) error {
	m, ok := r.items[entityID]
	if !ok {
		return errNotFound
	}
	if m.Status != fromStatus {
		return errNotFound
	}
	m.Status, _ = fields["status"].(string)
	if reason, ok := fields["archive_reason"].(string); ok {
		m.ArchiveReason = reason
	}
	return nil
}

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var errNotFound = assert.AnError

func memoRouter(t *testing.T) (*gin.Engine, *memoRepo, *memo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemoRepo()
	m := &memo{Resource: entity.NewResource("open"), Subject: "quarterly recap"}
	repo.items[m.ID] = m

	svc := domain.NewResourceService(domain.ResourceServiceConfig[*memo]{
		Repo:        repo,
		TxManager:   noopTxManager{},
		Transitions: memoTable(),
		QueryConfig: query.Config{Entity: "memo"},
		EntityName:  "memo",
	})

	h := NewResourceHandler(NewBaseHandler(), ResourceHandlerConfig[*memo, struct{}, struct{}]{
		Service:      svc,
		EntityName:   "memo",
		MapCreateDTO: func(struct{}) *memo { return &memo{} },
		MapUpdateDTO: func(struct{}, *memo) {},
	})

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	h.Register(router.Group("/memos"))

	return router, repo, m
}

// chunkedBody hides the concrete reader type so httptest leaves
// ContentLength at -1, as a chunked transfer encoding would.
func chunkedBody(s string) io.Reader {
	return struct{ io.Reader }{strings.NewReader(s)}
}

func TestActionBindsChunkedBody(t *testing.T) {
	router, repo, m := memoRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/memos/"+m.ID.String()+"/archive",
		chunkedBody(`{"archive_reason": "superseded"}`))
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "archived", repo.items[m.ID].Status)
	assert.Equal(t, "superseded", repo.items[m.ID].ArchiveReason)
}

func TestActionChunkedEmptyBodyReachesGuard(t *testing.T) {
	router, repo, m := memoRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/memos/"+m.ID.String()+"/archive",
		chunkedBody(""))
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// An empty body is not a bind failure; the guard rejects the missing
	// required field instead.
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PAYLOAD")
	assert.Equal(t, "open", repo.items[m.ID].Status)
}

func TestActionNoBody(t *testing.T) {
	router, _, m := memoRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/memos/"+m.ID.String()+"/archive", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PAYLOAD")
}
