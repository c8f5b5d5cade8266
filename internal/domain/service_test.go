package domain

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/core/apperror"
	appctx "enercore/internal/core/context"
	"enercore/internal/core/entity"
	"enercore/internal/core/id"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

type ticket struct {
	entity.Resource

	Code     string
	Uses     int
	Approved *string
}

func (t *ticket) Validate(ctx context.Context) error {
	if t.Code == "" {
		return apperror.NewValidation("code is required").WithDetail("field", "code")
	}
	return nil
}

func ticketTransitions() *transition.Table {
	return &transition.Table{
		Entity:  "ticket",
		Initial: "draft",
		Rules: map[string]transition.Rule{
			"approve": {
				From: []string{"draft"},
				To:   "approved",
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{"approved_by": req.Actor}
				},
			},
			"close": {
				From: []string{"approved"},
				To:   "closed",
			},
		},
	}
}

func newTicket(code string) *ticket {
	return &ticket{Resource: entity.NewResource("draft"), Code: code}
}

// fakeRepo is an in-memory ResourceRepository with the same conditional
// transition write the Postgres layer performs.
type fakeRepo struct {
	mu    sync.Mutex
	items map[id.ID]*ticket
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*ticket)}
}

func (r *fakeRepo) Create(ctx context.Context, t *ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, entityID id.ID) (*ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[entityID]
	if !ok {
		return nil, apperror.NewNotFound("ticket", entityID.String())
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) Update(ctx context.Context, t *ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; !ok {
		return apperror.NewNotFound("ticket", t.ID.String())
	}
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, entityID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, entityID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, params query.Params) (ListResult[*ticket], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ticket, 0, len(r.items))
	for _, t := range r.items {
		cp := *t
		out = append(out, &cp)
	}
	return ListResult[*ticket]{
		Items: out,
		Meta:  query.NewPageMeta(params.Page, params.PerPage, int64(len(out))),
	}, nil
}

func (r *fakeRepo) Statistics(ctx context.Context, params query.Params) (query.Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := query.NewStatistics()
	stats.Total = int64(len(r.items))
	return stats, nil
}

func (r *fakeRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[entityID]
	return ok, nil
}

func (r *fakeRepo) ExistsByKey(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.items {
		if t.Code == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ApplyTransition(ctx context.Context, entityID id.ID, action, fromStatus string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound("ticket", entityID.String())
	}
	// Conditional write: only applies if the stored status still matches.
	if t.Status != fromStatus {
		return apperror.NewIllegalTransition("ticket", action, t.Status)
	}
	for field, value := range fields {
		switch field {
		case "status":
			t.Status = value.(string)
		case "approved_by":
			if s, ok := value.(string); ok {
				t.Approved = &s
			}
		}
	}
	t.Version++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingAuditor struct {
	mu      sync.Mutex
	records []TransitionRecord
}

func (a *recordingAuditor) Record(ctx context.Context, rec TransitionRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
	return nil
}

func newTicketService(repo *fakeRepo, auditor TransitionAuditor) *ResourceService[*ticket] {
	return NewResourceService(ResourceServiceConfig[*ticket]{
		Repo:        repo,
		TxManager:   fakeTxManager{},
		Transitions: ticketTransitions(),
		QueryConfig: query.Config{Entity: "ticket", SortFields: []string{"created_at"}},
		Auditor:     auditor,
		EntityName:  "ticket",
		KeyField:    "code",
		Clone: func(src *ticket, newKey string) *ticket {
			// Counters reset, status starts over.
			return newTicket(newKey)
		},
	})
}

func TestServiceCreateValidates(t *testing.T) {
	svc := newTicketService(newFakeRepo(), nil)

	err := svc.Create(context.Background(), newTicket(""))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestServiceTransitionAppliesFieldsAndAudits(t *testing.T) {
	repo := newFakeRepo()
	auditor := &recordingAuditor{}
	svc := newTicketService(repo, auditor)

	tk := newTicket("T-1")
	require.NoError(t, svc.Create(context.Background(), tk))

	ctx := appctx.WithActor(context.Background(), &appctx.ActorContext{UserID: "alice"})
	updated, err := svc.Transition(ctx, tk.ID, "approve", nil)
	require.NoError(t, err)

	assert.Equal(t, "approved", updated.Status)
	require.NotNil(t, updated.Approved)
	assert.Equal(t, "alice", *updated.Approved)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, "approve", auditor.records[0].Action)
	assert.Equal(t, "draft", auditor.records[0].FromStatus)
	assert.Equal(t, "approved", auditor.records[0].ToStatus)
	assert.Equal(t, "alice", auditor.records[0].Actor)
}

func TestServiceTransitionRepeatFails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTicketService(repo, nil)

	tk := newTicket("T-2")
	require.NoError(t, svc.Create(context.Background(), tk))

	_, err := svc.Transition(context.Background(), tk.ID, "approve", nil)
	require.NoError(t, err)

	// The machine moved on; approving again is rejected with the stored status.
	_, err = svc.Transition(context.Background(), tk.ID, "approve", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "approved", appErr.Details["current_status"])
}

func TestServiceTransitionRaceLoserRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTicketService(repo, nil)

	tk := newTicket("T-3")
	require.NoError(t, svc.Create(context.Background(), tk))

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transition(context.Background(), tk.ID, "approve", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.True(t, apperror.IsIllegalTransition(err))
		lost++
	}
	assert.Equal(t, 1, won, "exactly one racer should win")
	assert.Equal(t, workers-1, lost)

	stored, err := svc.GetByID(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
}

func TestServiceTransitionUnknownEntity(t *testing.T) {
	svc := newTicketService(newFakeRepo(), nil)

	_, err := svc.Transition(context.Background(), id.New(), "approve", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceDuplicate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTicketService(repo, nil)

	src := newTicket("T-10")
	require.NoError(t, svc.Create(context.Background(), src))
	_, err := svc.Transition(context.Background(), src.ID, "approve", nil)
	require.NoError(t, err)

	dup, err := svc.Duplicate(context.Background(), src.ID, "T-11")
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "T-11", dup.Code)
	assert.Equal(t, "draft", dup.Status, "copy starts over in the initial state")
	assert.Zero(t, dup.Uses)

	// The source is untouched.
	stored, err := svc.GetByID(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
}

func TestServiceDuplicateKeyCollision(t *testing.T) {
	repo := newFakeRepo()
	svc := newTicketService(repo, nil)

	src := newTicket("T-20")
	require.NoError(t, svc.Create(context.Background(), src))
	other := newTicket("T-21")
	require.NoError(t, svc.Create(context.Background(), other))

	_, err := svc.Duplicate(context.Background(), src.ID, "T-21")
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
	assert.Equal(t, 422, apperror.GetHTTPStatus(err))
}

func TestServiceDuplicateEmptyKey(t *testing.T) {
	repo := newFakeRepo()
	svc := newTicketService(repo, nil)

	src := newTicket("T-30")
	require.NoError(t, svc.Create(context.Background(), src))

	_, err := svc.Duplicate(context.Background(), src.ID, "")
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidPayload(err))
}

func TestServiceHooksRejectCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTicketService(repo, nil)
	svc.Hooks().OnBeforeCreate(func(ctx context.Context, tk *ticket) error {
		return fmt.Errorf("blocked")
	})

	err := svc.Create(context.Background(), newTicket("T-40"))
	require.Error(t, err)

	exists, err := repo.ExistsByKey(context.Background(), "T-40")
	require.NoError(t, err)
	assert.False(t, exists)
}
