package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	logging.Logger.SetOutput(io.Discard)
	logging.Logger.SetLevel(logrus.PanicLevel)
}

type fakeTx struct {
	calls int
}

func (tx *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

// memTable is an in-memory collection with the same soft-delete semantics as
// the Mongo stores.
type memTable[T any] struct {
	rows     map[primitive.ObjectID]*T
	order    []primitive.ObjectID
	id       func(*T) primitive.ObjectID
	deleted  func(*T) bool
	markDel  func(*T)
	notFound error
	writes   int
}

func newMemTable[T any](notFound error, id func(*T) primitive.ObjectID, deleted func(*T) bool, markDel func(*T)) memTable[T] {
	return memTable[T]{rows: map[primitive.ObjectID]*T{}, id: id, deleted: deleted, markDel: markDel, notFound: notFound}
}

func (m *memTable[T]) Insert(_ context.Context, doc *T) error {
	cp := *doc
	id := m.id(&cp)
	if _, ok := m.rows[id]; ok {
		return errs.ErrDuplicate
	}
	m.rows[id] = &cp
	m.order = append(m.order, id)
	m.writes++
	return nil
}

func (m *memTable[T]) FindLive(_ context.Context, id primitive.ObjectID) (*T, error) {
	row, ok := m.rows[id]
	if !ok || m.deleted(row) {
		return nil, m.notFound
	}
	cp := *row
	return &cp, nil
}

func (m *memTable[T]) replace(doc *T) error {
	id := m.id(doc)
	row, ok := m.rows[id]
	if !ok || m.deleted(row) {
		return m.notFound
	}
	cp := *doc
	m.rows[id] = &cp
	m.writes++
	return nil
}

func (m *memTable[T]) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	row, ok := m.rows[id]
	if !ok {
		return m.notFound
	}
	m.markDel(row)
	m.writes++
	return nil
}

func (m *memTable[T]) live(match func(*T) bool) []T {
	out := []T{}
	for _, id := range m.order {
		row := m.rows[id]
		if !m.deleted(row) && match(row) {
			out = append(out, *row)
		}
	}
	return out
}

type taskStore struct{ memTable[models.Task] }

func newTaskStore() *taskStore {
	return &taskStore{newMemTable(errs.ErrTaskNotFound,
		func(t *models.Task) primitive.ObjectID { return t.ID },
		func(t *models.Task) bool { return t.Deleted },
		func(t *models.Task) { t.Deleted = true })}
}

func (s *taskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, errs.ErrTaskNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *taskStore) Replace(_ context.Context, task *models.Task) error {
	if row, ok := s.rows[task.ID]; ok && row.State.IsTerminal() {
		return errs.ErrTaskStateCannotBeChanged
	}
	return s.replace(task)
}

func (s *taskStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	if row, ok := s.rows[id]; ok && row.State.IsTerminal() {
		return errs.ErrTaskStateCannotBeChanged
	}
	return s.memTable.SoftDelete(ctx, id)
}

func (s *taskStore) ListByAssignee(_ context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.live(func(t *models.Task) bool { return t.AssigneeID == userID }), nil
}

func (s *taskStore) ListByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return s.live(func(t *models.Task) bool { return t.ProjectID == projectID }), nil
}

type userStore struct{ memTable[models.User] }

func newUserStore() *userStore {
	return &userStore{newMemTable(errs.ErrUserNotFound,
		func(u *models.User) primitive.ObjectID { return u.ID },
		func(u *models.User) bool { return u.Deleted },
		func(u *models.User) { u.Deleted = true })}
}

func (s *userStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	found := s.live(func(u *models.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, errs.ErrUserNotFound
	}
	return &found[0], nil
}

func (s *userStore) ListLive(context.Context) ([]models.User, error) {
	return s.live(func(*models.User) bool { return true }), nil
}

func (s *userStore) ListByDepartment(_ context.Context, departmentID primitive.ObjectID) ([]models.User, error) {
	return s.live(func(u *models.User) bool { return u.DepartmentID == departmentID }), nil
}

func (s *userStore) Replace(_ context.Context, user *models.User) error { return s.replace(user) }

type projectStore struct{ memTable[models.Project] }

func newProjectStore() *projectStore {
	return &projectStore{newMemTable(errs.ErrProjectNotFound,
		func(p *models.Project) primitive.ObjectID { return p.ID },
		func(p *models.Project) bool { return p.Deleted },
		func(p *models.Project) { p.Deleted = true })}
}

func (s *projectStore) ListByDepartment(_ context.Context, departmentID primitive.ObjectID) ([]models.Project, error) {
	return s.live(func(p *models.Project) bool { return p.DepartmentID == departmentID }), nil
}

func (s *projectStore) Replace(_ context.Context, project *models.Project) error {
	return s.replace(project)
}

type departmentStore struct{ memTable[models.Department] }

func newDepartmentStore() *departmentStore {
	return &departmentStore{newMemTable(errs.ErrDepartmentNotFound,
		func(d *models.Department) primitive.ObjectID { return d.ID },
		func(d *models.Department) bool { return d.Deleted },
		func(d *models.Department) { d.Deleted = true })}
}

func (s *departmentStore) Replace(_ context.Context, department *models.Department) error {
	return s.replace(department)
}

type authorityStore struct{ memTable[models.Authority] }

func newAuthorityStore() *authorityStore {
	return &authorityStore{newMemTable(errs.ErrAuthorityNotFound,
		func(a *models.Authority) primitive.ObjectID { return a.ID },
		func(a *models.Authority) bool { return a.Deleted },
		func(a *models.Authority) { a.Deleted = true })}
}

func (s *authorityStore) FindByName(_ context.Context, name string) (*models.Authority, error) {
	found := s.live(func(a *models.Authority) bool { return a.Authority == name })
	if len(found) == 0 {
		return nil, errs.ErrAuthorityNotFound
	}
	return &found[0], nil
}

func (s *authorityStore) Replace(_ context.Context, authority *models.Authority) error {
	return s.replace(authority)
}

type commentStore struct{ memTable[models.Comment] }

func newCommentStore() *commentStore {
	return &commentStore{newMemTable(errs.ErrCommentNotFound,
		func(c *models.Comment) primitive.ObjectID { return c.ID },
		func(c *models.Comment) bool { return c.Deleted },
		func(c *models.Comment) { c.Deleted = true })}
}

func (s *commentStore) ListByTask(_ context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	return s.live(func(c *models.Comment) bool { return c.TaskID == taskID }), nil
}

func (s *commentStore) Replace(_ context.Context, comment *models.Comment) error {
	return s.replace(comment)
}

type attachmentStore struct{ memTable[models.AttachmentFile] }

func newAttachmentStore() *attachmentStore {
	return &attachmentStore{newMemTable(errs.ErrAttachmentNotFound,
		func(a *models.AttachmentFile) primitive.ObjectID { return a.ID },
		func(a *models.AttachmentFile) bool { return a.Deleted },
		func(a *models.AttachmentFile) { a.Deleted = true })}
}

func (s *attachmentStore) ListByTask(_ context.Context, taskID primitive.ObjectID) ([]models.AttachmentFile, error) {
	return s.live(func(a *models.AttachmentFile) bool { return a.TaskID == taskID }), nil
}

func (s *attachmentStore) Replace(_ context.Context, file *models.AttachmentFile) error {
	return s.replace(file)
}

type blobStore struct {
	blobs     map[primitive.ObjectID][]byte
	failAfter int
}

func newBlobStore() *blobStore {
	return &blobStore{blobs: map[primitive.ObjectID][]byte{}, failAfter: -1}
}

func (b *blobStore) Upload(filename string, source io.Reader) (primitive.ObjectID, int64, error) {
	if b.failAfter == 0 {
		return primitive.NilObjectID, 0, fmt.Errorf("upload %s: %w", filename, errs.ErrAttachmentIO)
	}
	b.failAfter--
	data, err := io.ReadAll(source)
	if err != nil {
		return primitive.NilObjectID, 0, fmt.Errorf("upload %s: %w", filename, errs.ErrAttachmentIO)
	}
	id := primitive.NewObjectID()
	b.blobs[id] = data
	return id, int64(len(data)), nil
}

func (b *blobStore) Download(id primitive.ObjectID, w io.Writer) (int64, error) {
	data, ok := b.blobs[id]
	if !ok {
		return 0, errs.ErrAttachmentNotFound
	}
	n, err := io.Copy(w, bytes.NewReader(data))
	return n, err
}

func (b *blobStore) Delete(id primitive.ObjectID) error {
	delete(b.blobs, id)
	return nil
}

type recorder struct {
	mu         sync.Mutex
	activities []models.TaskActivity
	err        error
}

func (r *recorder) Record(_ context.Context, activity models.TaskActivity) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, activity)
	return nil
}

func (r *recorder) ListByTask(_ context.Context, taskID string) ([]models.TaskActivity, error) {
	out := []models.TaskActivity{}
	for i := len(r.activities) - 1; i >= 0; i-- {
		if r.activities[i].TaskID == taskID {
			out = append(out, r.activities[i])
		}
	}
	return out, nil
}

func (r *recorder) types() []models.ActivityType {
	var out []models.ActivityType
	for _, a := range r.activities {
		out = append(out, a.ActivityType)
	}
	return out
}

type notifier struct {
	sent []string
	err  error
}

func (n *notifier) Notify(_ context.Context, _, username, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, username)
	return nil
}

type fixture struct {
	tx          *fakeTx
	tasks       *taskStore
	users       *userStore
	projects    *projectStore
	departments *departmentStore
	authorities *authorityStore
	comments    *commentStore
	attachments *attachmentStore
	blobs       *blobStore
	activity    *recorder
	notifier    *notifier
	svc         *TaskService
}

func newFixture() *fixture {
	f := &fixture{
		tx:          &fakeTx{},
		tasks:       newTaskStore(),
		users:       newUserStore(),
		projects:    newProjectStore(),
		departments: newDepartmentStore(),
		authorities: newAuthorityStore(),
		comments:    newCommentStore(),
		attachments: newAttachmentStore(),
		blobs:       newBlobStore(),
		activity:    &recorder{},
		notifier:    &notifier{},
	}
	f.svc = NewTaskService(f.tx, f.tasks, f.users, f.projects, f.comments, f.attachments, f.activity, f.notifier)
	return f
}

func (f *fixture) seedDepartment(t *testing.T, name string) *models.Department {
	t.Helper()
	d := &models.Department{ID: primitive.NewObjectID(), DepartmentName: name}
	if err := f.departments.Insert(context.Background(), d); err != nil {
		t.Fatalf("seed department: %v", err)
	}
	return d
}

func (f *fixture) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{ID: primitive.NewObjectID(), Username: username, Enabled: true, Authorities: []string{models.AuthorityTeamMember}}
	if err := f.users.Insert(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (f *fixture) seedProject(t *testing.T, title string) *models.Project {
	t.Helper()
	p := &models.Project{ID: primitive.NewObjectID(), Title: title, Status: models.ProjectInProgress}
	if err := f.projects.Insert(context.Background(), p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func (f *fixture) seedTask(t *testing.T, state models.TaskState, assignee *models.User, project *models.Project) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:                 primitive.NewObjectID(),
		UserStory:          "story",
		AcceptanceCriteria: "criteria",
		State:              state,
		Priority:           models.PriorityMedium,
		AssigneeID:         assignee.ID,
		ProjectID:          project.ID,
		CreatedAt:          time.Now().UTC(),
	}
	if err := f.tasks.Insert(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func input(state models.TaskState, assignee *models.User, project *models.Project, reason *string) TaskInput {
	return TaskInput{
		UserStory:            "story",
		AcceptanceCriteria:   "criteria",
		State:                state,
		Priority:             models.PriorityMedium,
		AssigneeID:           assignee.ID,
		ProjectID:            project.ID,
		ReasonForStateChange: reason,
	}
}

func ptr(s string) *string { return &s }

func expectErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
