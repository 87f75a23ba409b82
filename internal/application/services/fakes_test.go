package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cloudnest-api/internal/domain/file"
	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/infrastructure/mq"
	"cloudnest-api/internal/infrastructure/storage"
)

// In-memory repositories standing in for the postgres layer. The disk side
// is the real DiskStore under a temp dir, so every dual-store property is
// exercised against actual files.

type fakeUserRepo struct {
	ids   map[user.UUID]user.ID
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		ids:   make(map[user.UUID]user.ID),
		users: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) FetchUserByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	u := req
	u.UUID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.Email] = &u
	r.ids[u.UUID] = user.ID(len(r.ids) + 1)
	return &u, nil
}

func (r *fakeUserRepo) FetchInternalID(_ context.Context, id user.UUID) (user.ID, error) {
	n, ok := r.ids[id]
	if !ok {
		return 0, fmt.Errorf("unknown user %s", id)
	}
	return n, nil
}

type fakeFolderRepo struct {
	seq  folder.ID
	rows map[string]*folder.Folder

	createErr error
	renameErr error
	renameNil bool
	deleteErr error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{rows: make(map[string]*folder.Folder)}
}

func folderKey(owner user.ID, name string) string {
	return fmt.Sprintf("%d/%s", owner, name)
}

func (r *fakeFolderRepo) FetchFolder(_ context.Context, ownerID user.ID, name string) (*folder.Folder, error) {
	return r.rows[folderKey(ownerID, name)], nil
}

func (r *fakeFolderRepo) CreateFolder(_ context.Context, ownerID user.ID, name string) (*folder.Folder, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	f := &folder.Folder{
		ID:        r.seq,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.rows[folderKey(ownerID, name)] = f
	return f, nil
}

func (r *fakeFolderRepo) RenameFolder(_ context.Context, ownerID user.ID, oldName, newName string) (*folder.Folder, error) {
	if r.renameErr != nil {
		return nil, r.renameErr
	}
	if r.renameNil {
		return nil, nil
	}
	f := r.rows[folderKey(ownerID, oldName)]
	if f == nil {
		return nil, nil
	}
	delete(r.rows, folderKey(ownerID, oldName))
	f.Name = newName
	f.UpdatedAt = time.Now()
	r.rows[folderKey(ownerID, newName)] = f
	return f, nil
}

func (r *fakeFolderRepo) DeleteFolder(_ context.Context, ownerID user.ID, name string) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	key := folderKey(ownerID, name)
	_, ok := r.rows[key]
	delete(r.rows, key)
	return ok, nil
}

type fakeFileRepo struct {
	rows map[uuid.UUID]*file.File

	createErr      error
	updateErr      error
	deleteErr      error
	placementCalls int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{rows: make(map[uuid.UUID]*file.File)}
}

func (r *fakeFileRepo) FetchFile(_ context.Context, ownerID user.ID, fileUUID uuid.UUID) (*file.File, error) {
	f := r.rows[fileUUID]
	if f == nil || f.OwnerID != ownerID {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) FetchFiles(_ context.Context, ownerID user.ID, _ int) (file.Files, error) {
	var out file.Files
	for _, f := range r.rows {
		if f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) CreateFile(_ context.Context, req *file.File) (*file.File, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := *req
	cp.UUID = uuid.New()
	cp.UploadedAt = time.Now()
	cp.UpdatedAt = cp.UploadedAt
	r.rows[cp.UUID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeFileRepo) UpdatePlacement(_ context.Context, ownerID user.ID, fileUUID uuid.UUID, folderID *folder.ID, storagePath string) (*file.File, error) {
	r.placementCalls++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	f := r.rows[fileUUID]
	if f == nil || f.OwnerID != ownerID {
		return nil, nil
	}
	f.FolderID = folderID
	f.StoragePath = storagePath
	f.UpdatedAt = time.Now()
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) DeleteFilesByFolder(_ context.Context, ownerID user.ID, folderID folder.ID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for id, f := range r.rows {
		if f.OwnerID == ownerID && f.FolderID != nil && *f.FolderID == folderID {
			delete(r.rows, id)
		}
	}
	return nil
}

type fakeMQ struct {
	in chan mq.Event
}

func newFakeMQ() *fakeMQ { return &fakeMQ{in: make(chan mq.Event, 128)} }

func (m *fakeMQ) Connect(context.Context, string) error { return nil }
func (m *fakeMQ) Init() error                           { return nil }
func (m *fakeMQ) PublisherWorker(context.Context)       {}
func (m *fakeMQ) GetInputChan() chan mq.Event           { return m.in }
func (m *fakeMQ) GetConn() *amqp091.Connection          { return nil }

func (m *fakeMQ) drain() []mq.Event {
	var out []mq.Event
	for {
		select {
		case e := <-m.in:
			out = append(out, e)
		default:
			return out
		}
	}
}

func (m *fakeMQ) actions() []string {
	var out []string
	for _, e := range m.drain() {
		out = append(out, e.Action)
	}
	return out
}

type testEnv struct {
	owner    user.UUID
	ownerID  user.ID
	users    *fakeUserRepo
	folders  *fakeFolderRepo
	files    *fakeFileRepo
	store    *storage.DiskStore
	resolver *storage.Resolver
	mq       *fakeMQ
	counter  *prometheus.CounterVec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	resolver, err := storage.NewResolver(t.TempDir())
	require.NoError(t, err)
	store, err := storage.NewDiskStore(zap.NewNop(), resolver, "http://files.local")
	require.NoError(t, err)

	users := newFakeUserRepo()
	u, err := users.CreateUser(context.Background(), user.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)

	return &testEnv{
		owner:    u.UUID,
		ownerID:  users.ids[u.UUID],
		users:    users,
		folders:  newFakeFolderRepo(),
		files:    newFakeFileRepo(),
		store:    store,
		resolver: resolver,
		mq:       newFakeMQ(),
		counter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_counters"},
			[]string{"result"},
		),
	}
}

func (e *testEnv) path(t *testing.T, segments ...string) string {
	t.Helper()
	p, err := e.resolver.Resolve(e.ownerID, segments...)
	require.NoError(t, err)
	return p
}

func userFixture(username, email string) user.User {
	return user.User{Username: username, Email: email, PasswordHash: "x"}
}

func readerOf(s string) *strings.Reader { return strings.NewReader(s) }

// seedFileRow plants a metadata row directly, bypassing the upload pipeline.
func seedFileRow(e *testEnv, name, path string, folderID *folder.ID) *file.File {
	f := &file.File{
		UUID:        uuid.New(),
		OwnerID:     e.ownerID,
		Name:        name,
		StoredName:  name,
		SizeBytes:   1,
		StoragePath: path,
		FolderID:    folderID,
		UploadedAt:  time.Now(),
		UpdatedAt:   time.Now(),
	}
	e.files.rows[f.UUID] = f
	return f
}
