package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) // понедельник

func fixedClock() time.Time { return testNow }

// fakeBackend держит данные маркетплейса в памяти и записывает вызовы
type fakeBackend struct {
	mu sync.Mutex

	sessions     map[string]*model.Session
	users        map[string]*model.User
	classes      map[string]*model.ClassDefinition
	availability *model.Availability
	requests     []model.SessionRequest

	approved   map[string]lifecycle.ApproveBody
	rejected   map[string]lifecycle.RejectBody
	deleted    []string
	cancelled  []string
	created    []*model.ClassDefinition
	generated  []string
	savedAv    *model.Availability
	failCommit error
	tokens     []string
	listCalls  int
	lookups    int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		sessions: map[string]*model.Session{},
		users:    map[string]*model.User{},
		classes:  map[string]*model.ClassDefinition{},
		approved: map[string]lifecycle.ApproveBody{},
		rejected: map[string]lifecycle.RejectBody{},
	}
}

func (f *fakeBackend) connector() Connector {
	return func(identity *model.Identity) Backend {
		f.mu.Lock()
		if identity != nil {
			f.tokens = append(f.tokens, identity.APIToken)
		}
		f.mu.Unlock()
		return Backend{
			Sessions:     fakeSessionAPI{f},
			Users:        fakeUserAPI{f},
			Classes:      fakeClassAPI{f},
			Availability: fakeAvailabilityAPI{f},
			Requests:     fakeRequestAPI{f},
		}
	}
}

type fakeSessionAPI struct{ f *fakeBackend }

func (a fakeSessionAPI) List(_ context.Context, p backend.SessionListParams) ([]model.Session, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	var out []model.Session
	for _, s := range a.f.sessions {
		if p.TutorID == "" || s.TutorID == p.TutorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (a fakeSessionAPI) Get(_ context.Context, id string) (*model.Session, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if s, ok := a.f.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, &backend.APIError{Status: 404, Message: "session not found"}
}

func (a fakeSessionAPI) Update(_ context.Context, _ string, _ backend.SessionPatch) error {
	return nil
}

func (a fakeSessionAPI) Cancel(_ context.Context, id, _ string) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if a.f.failCommit != nil {
		return a.f.failCommit
	}
	a.f.cancelled = append(a.f.cancelled, id)
	return nil
}

type fakeUserAPI struct{ f *fakeBackend }

func (a fakeUserAPI) Get(_ context.Context, id string) (*model.User, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.lookups++
	if u, ok := a.f.users[id]; ok {
		return u, nil
	}
	return nil, &backend.APIError{Status: 404, Message: "user not found"}
}

type fakeClassAPI struct{ f *fakeBackend }

func (a fakeClassAPI) List(_ context.Context, tutorID string) ([]model.ClassDefinition, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	var out []model.ClassDefinition
	for _, c := range a.f.classes {
		if c.TutorID == tutorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (a fakeClassAPI) Get(_ context.Context, id string) (*model.ClassDefinition, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if c, ok := a.f.classes[id]; ok {
		return c, nil
	}
	return nil, &backend.APIError{Status: 404, Message: "class not found"}
}

func (a fakeClassAPI) Create(_ context.Context, def *model.ClassDefinition) (*model.ClassDefinition, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	cp := *def
	cp.ID = "class-" + def.Code
	a.f.classes[cp.ID] = &cp
	a.f.created = append(a.f.created, &cp)
	return &cp, nil
}

func (a fakeClassAPI) Delete(_ context.Context, id string) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	delete(a.f.classes, id)
	return nil
}

func (a fakeClassAPI) GenerateSessions(_ context.Context, id string) (int, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.generated = append(a.f.generated, id)
	return 15, nil
}

type fakeAvailabilityAPI struct{ f *fakeBackend }

func (a fakeAvailabilityAPI) Get(_ context.Context, tutorID string) (*model.Availability, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if a.f.availability == nil {
		return &model.Availability{TutorID: tutorID}, nil
	}
	return a.f.availability, nil
}

func (a fakeAvailabilityAPI) Set(_ context.Context, av *model.Availability) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.savedAv = av
	return nil
}

type fakeRequestAPI struct{ f *fakeBackend }

func (a fakeRequestAPI) List(_ context.Context, p backend.RequestListParams) (*backend.RequestPage, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.listCalls++

	var matched []model.SessionRequest
	for _, r := range a.f.requests {
		if p.Status != "" && r.Status != p.Status {
			continue
		}
		if p.Type != "" && r.Type != p.Type {
			continue
		}
		matched = append(matched, r)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	from := (page - 1) * limit
	if from > len(matched) {
		from = len(matched)
	}
	to := from + limit
	if to > len(matched) {
		to = len(matched)
	}
	return &backend.RequestPage{Requests: matched[from:to], Page: page, Total: len(matched)}, nil
}

func (a fakeRequestAPI) Approve(_ context.Context, id string, body lifecycle.ApproveBody) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if a.f.failCommit != nil {
		return a.f.failCommit
	}
	a.f.approved[id] = body
	return nil
}

func (a fakeRequestAPI) Reject(_ context.Context, id string, body lifecycle.RejectBody) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if a.f.failCommit != nil {
		return a.f.failCommit
	}
	a.f.rejected[id] = body
	return nil
}

func (a fakeRequestAPI) Delete(_ context.Context, id string) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if a.f.failCommit != nil {
		return a.f.failCommit
	}
	a.f.deleted = append(a.f.deleted, id)
	return nil
}

// fakeIdentityStore хранилище учителей в памяти
type fakeIdentityStore struct {
	mu   sync.Mutex
	byTG map[int64]*model.Identity
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{byTG: map[int64]*model.Identity{}}
}

func (s *fakeIdentityStore) Save(_ context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *identity
	s.byTG[identity.TelegramID] = &cp
	return nil
}

func (s *fakeIdentityStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byTG[telegramID], nil
}

func (s *fakeIdentityStore) ListAll(_ context.Context) ([]*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Identity
	for _, v := range s.byTG {
		out = append(out, v)
	}
	return out, nil
}

func (s *fakeIdentityStore) Delete(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byTG, telegramID)
	return nil
}
