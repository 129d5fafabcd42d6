package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supaboard/internal/models"
)

// In-memory stores mirroring the constraints of the Postgres schema:
// unique emails, slugs, database names and (database, table name) pairs.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

var clock = &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

type fakeUserStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	projects *fakeProjectStore
	findErr  error
}

func newFakeUserStore(projects *fakeProjectStore) *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User), projects: projects}
}

// Create stores user verbatim, as UserRepository.Create does.
func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = clock.tick()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindWithProjects(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	if s.projects != nil {
		user.Projects, _ = s.projects.ListByCreator(ctx, id)
	}
	return user, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
	ttls     map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (s *fakeSessionStore) Store(_ context.Context, jti string, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[jti] = userID
	s.ttls[jti] = ttl
	return nil
}

func (s *fakeSessionStore) Lookup(_ context.Context, jti string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[jti]
	return userID, ok, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, jti)
	return nil
}

type fakeProjectStore struct {
	mu        sync.Mutex
	projects  []*models.Project
	creates   int
	createErr error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{}
}

func (s *fakeProjectStore) Create(_ context.Context, project *models.Project, apiKey *models.ApiKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return s.createErr
	}
	for _, p := range s.projects {
		if p.Slug == project.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	project.ID = uuid.New()
	project.CreatedAt = clock.tick()
	apiKey.ID = uuid.New()
	apiKey.ProjectID = project.ID
	project.ApiKeys = []models.ApiKey{*apiKey}
	stored := *project
	s.projects = append(s.projects, &stored)
	return nil
}

func (s *fakeProjectStore) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProjectStore) ListByCreator(_ context.Context, creatorID uuid.UUID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Project
	for _, p := range s.projects {
		if p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeProjectStore) GetBySlug(_ context.Context, slug string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.Slug == slug {
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) DeleteByIDAndCreator(_ context.Context, id, creatorID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.projects {
		if p.ID == id && p.CreatorID == creatorID {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeDatabaseStore struct {
	mu        sync.Mutex
	databases []*models.Database
	tables    *fakeTableStore
	creates   int
	createErr error
}

func newFakeDatabaseStore(tables *fakeTableStore) *fakeDatabaseStore {
	return &fakeDatabaseStore{tables: tables}
}

func (s *fakeDatabaseStore) Create(_ context.Context, database *models.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return s.createErr
	}
	for _, d := range s.databases {
		if d.Name == database.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	database.ID = uuid.New()
	database.CreatedAt = clock.tick()
	stored := *database
	s.databases = append(s.databases, &stored)
	return nil
}

func (s *fakeDatabaseStore) NameExists(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.databases {
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeDatabaseStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Database
	for _, d := range s.databases {
		if d.ProjectID == projectID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *fakeDatabaseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.databases {
		if d.ID == id {
			out := *d
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeDatabaseStore) GetWithTables(ctx context.Context, id uuid.UUID) (*models.Database, error) {
	database, err := s.GetByID(ctx, id)
	if err != nil || database == nil {
		return database, err
	}
	if s.tables != nil {
		database.Tables, _ = s.tables.ListByDatabase(ctx, id)
	}
	return database, nil
}

type fakeTableStore struct {
	mu      sync.Mutex
	tables  []*models.Table
	creates int
}

func newFakeTableStore() *fakeTableStore {
	return &fakeTableStore{}
}

func (s *fakeTableStore) Create(_ context.Context, table *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	for _, t := range s.tables {
		if t.DatabaseID == table.DatabaseID && t.Name == table.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	table.ID = uuid.New()
	table.CreatedAt = clock.tick()
	for i := range table.Columns {
		table.Columns[i].ID = uuid.New()
		table.Columns[i].TableID = table.ID
		table.Columns[i].Position = i
	}
	stored := *table
	stored.Columns = append([]models.Column(nil), table.Columns...)
	s.tables = append(s.tables, &stored)
	return nil
}

func (s *fakeTableStore) ListByDatabase(_ context.Context, databaseID uuid.UUID) ([]models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Table
	for _, t := range s.tables {
		if t.DatabaseID == databaseID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeTableStore) GetByID(_ context.Context, id uuid.UUID) (*models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		if t.ID == id {
			out := *t
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeTableStore) ColumnBelongsTo(_ context.Context, databaseID, tableID, columnID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		if t.ID != tableID || t.DatabaseID != databaseID {
			continue
		}
		for _, c := range t.Columns {
			if c.ID == columnID {
				return true, nil
			}
		}
	}
	return false, nil
}

// fakeStores wires every fake together the way the repositories share one
// Postgres database.
type fakeStores struct {
	users     *fakeUserStore
	sessions  *fakeSessionStore
	projects  *fakeProjectStore
	databases *fakeDatabaseStore
	tables    *fakeTableStore
}

func newFakeStores() *fakeStores {
	tables := newFakeTableStore()
	databases := newFakeDatabaseStore(tables)
	projects := newFakeProjectStore()
	return &fakeStores{
		users:     newFakeUserStore(projects),
		sessions:  newFakeSessionStore(),
		projects:  projects,
		databases: databases,
		tables:    tables,
	}
}
