package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/atlashq/atlas-project-service/config"
	"github.com/atlashq/atlas-project-service/entity"
	"github.com/atlashq/atlas-project-service/infra"
	"github.com/atlashq/atlas-project-service/infra/produce"
	"github.com/atlashq/atlas-project-service/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeOrgRepo struct {
	orgs    map[uuid.UUID]*entity.Organization
	members map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		orgs:    make(map[uuid.UUID]*entity.Organization),
		members: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeOrgRepo) addOrg(userID uuid.UUID) *entity.Organization {
	org := &entity.Organization{ID: uuid.New(), Name: "Default", CreatedAt: time.Now()}
	r.orgs[org.ID] = org
	r.members[org.ID] = map[uuid.UUID]bool{userID: true}
	return org
}

func (r *fakeOrgRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	var orgs []entity.Organization
	for id, org := range r.orgs {
		if r.members[id][userID] {
			orgs = append(orgs, *org)
		}
	}
	return orgs, nil
}

func (r *fakeOrgRepo) FindForUser(_ context.Context, orgID, userID uuid.UUID) (*entity.Organization, error) {
	org, ok := r.orgs[orgID]
	if !ok || !r.members[orgID][userID] {
		return nil, repository.ErrNotFound
	}
	return org, nil
}

type fakeProjectRepo struct {
	orgs     *fakeOrgRepo
	projects map[uuid.UUID]*entity.Project

	hardDeleted []uuid.UUID
}

func newFakeProjectRepo(orgs *fakeOrgRepo) *fakeProjectRepo {
	return &fakeProjectRepo{
		orgs:     orgs,
		projects: make(map[uuid.UUID]*entity.Project),
	}
}

func (r *fakeProjectRepo) addProject(orgID uuid.UUID) *entity.Project {
	project := &entity.Project{ID: uuid.New(), Name: "test project", OrganizationID: orgID, CreatedAt: time.Now()}
	r.projects[project.ID] = project
	return project
}

func (r *fakeProjectRepo) Create(_ context.Context, project *entity.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) ListForOrganization(_ context.Context, orgID uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	for _, p := range r.projects {
		if p.OrganizationID == orgID && !p.IsDeleted() {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) FindForUser(_ context.Context, orgID, projectID, userID uuid.UUID, includeDeleted bool) (*entity.Project, error) {
	p, ok := r.projects[projectID]
	if !ok || p.OrganizationID != orgID || !r.orgs.members[orgID][userID] {
		return nil, repository.ErrNotFound
	}
	if !includeDeleted && p.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *entity.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) SoftDelete(_ context.Context, project *entity.Project) error {
	now := time.Now()
	project.DeletedAt = &now
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) HardDelete(_ context.Context, project *entity.Project) error {
	delete(r.projects, project.ID)
	r.hardDeleted = append(r.hardDeleted, project.ID)
	return nil
}

type fakeFileRepo struct {
	files map[uuid.UUID]*entity.File

	created    []*entity.File
	detections map[uuid.UUID]datatypes.JSON
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{
		files:      make(map[uuid.UUID]*entity.File),
		detections: make(map[uuid.UUID]datatypes.JSON),
	}
}

func (r *fakeFileRepo) addFile(projectID uuid.UUID, path, mimeType string) *entity.File {
	file := &entity.File{
		ID:               uuid.New(),
		ProjectID:        projectID,
		Path:             path,
		MimeType:         mimeType,
		OriginalFilename: "report.pdf",
		CreatedAt:        time.Now(),
	}
	r.files[file.ID] = file
	return file
}

func (r *fakeFileRepo) CreateBatch(_ context.Context, files []*entity.File) error {
	for _, f := range files {
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		r.files[f.ID] = f
		r.created = append(r.created, f)
	}
	return nil
}

func (r *fakeFileRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	for _, f := range r.files {
		if f.ProjectID == projectID {
			files = append(files, *f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) FindByIDAndProject(_ context.Context, fileID, projectID uuid.UUID) (*entity.File, error) {
	f, ok := r.files[fileID]
	if !ok || f.ProjectID != projectID {
		return nil, repository.ErrNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) FindByIDsAndProject(_ context.Context, fileIDs []uuid.UUID, projectID uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	for _, id := range fileIDs {
		if f, ok := r.files[id]; ok && f.ProjectID == projectID {
			files = append(files, *f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) DeleteByIDs(_ context.Context, fileIDs []uuid.UUID, projectID uuid.UUID) error {
	for _, id := range fileIDs {
		if f, ok := r.files[id]; ok && f.ProjectID == projectID {
			delete(r.files, id)
		}
	}
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) MarkProcessed(_ context.Context, fileID uuid.UUID, contents string, processedAt time.Time) error {
	f, ok := r.files[fileID]
	if !ok {
		return repository.ErrNotFound
	}
	f.Contents = &contents
	f.ProcessedAt = &processedAt
	return nil
}

func (r *fakeFileRepo) SaveDetections(_ context.Context, fileID uuid.UUID, detections datatypes.JSON) error {
	f, ok := r.files[fileID]
	if !ok {
		return repository.ErrNotFound
	}
	f.Detections = detections
	r.detections[fileID] = detections
	return nil
}

// fakeObjectStorage is safe for the concurrent puts and deletes the upload
// and batch-delete handlers issue.
type fakeObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	putErr     error
	deleteErr  error
	presignErr error
	deleted    []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (s *fakeObjectStorage) PutObject(_ context.Context, key string, data []byte, _ string, _ map[string]string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStorage) DeleteObject(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeObjectStorage) PresignedGetURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "https://storage.test/" + key + "?sig=fake", nil
}

type fakeExtractionPublisher struct {
	mu        sync.Mutex
	published []produce.ExtractDocumentMessage
	err       error
}

func (p *fakeExtractionPublisher) PublishExtractDocument(_ context.Context, msg produce.ExtractDocumentMessage) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, msg)
	return nil
}

type fakeVisionService struct {
	result *infra.DetectedObjectList
	err    error

	lastImageURL string
	lastContents map[string]string
}

func (v *fakeVisionService) ExtractBoundingBoxes(_ context.Context, imageURL string, documentContents map[string]string, _, _ string) (*infra.DetectedObjectList, error) {
	v.lastImageURL = imageURL
	v.lastContents = documentContents
	if v.err != nil {
		return nil, v.err
	}
	return v.result, nil
}

type fakeKeyValueStore struct {
	values map[string]string
	setErr error
}

func newFakeKeyValueStore() *fakeKeyValueStore {
	return &fakeKeyValueStore{values: make(map[string]string)}
}

func (s *fakeKeyValueStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *fakeKeyValueStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", infra.ErrCacheMiss
	}
	return value, nil
}

func (s *fakeKeyValueStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *fakeKeyValueStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.values[key]
	return ok, nil
}

type fakeUserRepo struct {
	usersByID    map[uuid.UUID]*entity.User
	usersByEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    make(map[uuid.UUID]*entity.User),
		usersByEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) CreateWithOrganization(_ context.Context, user *entity.User, org *entity.Organization) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	user.Organizations = append(user.Organizations, *org)
	r.usersByID[user.ID] = user
	r.usersByEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.usersByID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := r.usersByEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.usersByEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.usersByID[user.ID] = user
	r.usersByEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	user, ok := r.usersByID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.usersByEmail, user.Email)
	delete(r.usersByID, id)
	return nil
}

// testEnv bundles a controller wired to in-memory fakes with the tenant
// fixture most handler tests need: a user, their organization and a project.
type testEnv struct {
	ctrl *Controller

	users     *fakeUserRepo
	orgsRepo  *fakeOrgRepo
	projects  *fakeProjectRepo
	files     *fakeFileRepo
	storage   *fakeObjectStorage
	cache     *fakeKeyValueStore
	publisher *fakeExtractionPublisher
	vision    *fakeVisionService

	userID  uuid.UUID
	org     *entity.Organization
	project *entity.Project
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	orgs := newFakeOrgRepo()
	projects := newFakeProjectRepo(orgs)
	files := newFakeFileRepo()
	storage := newFakeObjectStorage()
	cache := newFakeKeyValueStore()
	publisher := &fakeExtractionPublisher{}
	vision := &fakeVisionService{result: &infra.DetectedObjectList{}}

	cfg := &config.Config{EnvConfig: &config.EnvConfig{}}
	cfg.EnvConfig.JWT.SecretKey = "test-secret"
	cfg.EnvConfig.JWT.AccessExpireMinutes = 30
	cfg.EnvConfig.JWT.RefreshExpireDays = 7

	ctrl := &Controller{
		Config: cfg,
		Infra: &infra.Infra{
			Logger:  infra.InitLoggerClient(cfg.EnvConfig),
			Storage: storage,
			Cache:   cache,
			Vision:  vision,
			Produce: &produce.Produce{Extraction: publisher},
		},
		Repository: &repository.Repository{
			Users:         users,
			Organizations: orgs,
			Projects:      projects,
			Files:         files,
		},
	}

	userID := uuid.New()
	org := orgs.addOrg(userID)
	project := projects.addProject(org.ID)

	return &testEnv{
		ctrl:      ctrl,
		users:     users,
		orgsRepo:  orgs,
		projects:  projects,
		files:     files,
		storage:   storage,
		cache:     cache,
		publisher: publisher,
		vision:    vision,
		userID:    userID,
		org:       org,
		project:   project,
	}
}

// newRequestContext builds an authenticated gin context carrying the fixture
// tenant's path params.
func (env *testEnv) newRequestContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, body)
	c.Set("user_id", env.userID)
	c.Params = gin.Params{
		{Key: "orgID", Value: env.org.ID.String()},
		{Key: "projectID", Value: env.project.ID.String()},
	}
	return c, rec
}

func setParam(c *gin.Context, key, value string) {
	for i := range c.Params {
		if c.Params[i].Key == key {
			c.Params[i].Value = value
			return
		}
	}
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}
