package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.Session{},
		&types.Chain{},
		&types.Question{},
		&types.Configuration{},
		&types.Answer{},
		&types.AnswerComment{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func seedSession(t *testing.T, repo SessionRepo, name string, createdAt time.Time) *types.Session {
	t.Helper()
	session, err := repo.Create(context.Background(), nil, &types.Session{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed session %s: %v", name, err)
	}
	return session
}

func TestGetByID_MissReturnsNil(t *testing.T) {
	repo := NewSessionRepo(openTestDB(t), testLogger())

	got, err := repo.GetByID(context.Background(), nil, uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for missing row", got)
	}
}

func TestGetMulti_OrderAndPagination(t *testing.T) {
	repo := NewSessionRepo(openTestDB(t), testLogger())
	base := time.Now().Add(-time.Hour)
	seedSession(t, repo, "oldest", base)
	seedSession(t, repo, "middle", base.Add(time.Minute))
	seedSession(t, repo, "newest", base.Add(2*time.Minute))

	page, err := repo.GetMulti(context.Background(), nil, 0, 2, "created_at", false)
	if err != nil {
		t.Fatalf("get multi: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d rows, want 2", len(page))
	}
	if page[0].Name != "newest" || page[1].Name != "middle" {
		t.Errorf("page = [%s, %s], want [newest, middle]", page[0].Name, page[1].Name)
	}

	rest, err := repo.GetMulti(context.Background(), nil, 2, 2, "created_at", false)
	if err != nil {
		t.Fatalf("get multi offset: %v", err)
	}
	if len(rest) != 1 || rest[0].Name != "oldest" {
		t.Errorf("rest = %v, want [oldest]", rest)
	}
}

func TestGetMulti_InvalidSortFallsBack(t *testing.T) {
	repo := NewSessionRepo(openTestDB(t), testLogger())
	base := time.Now().Add(-time.Hour)
	seedSession(t, repo, "first", base)
	seedSession(t, repo, "second", base.Add(time.Minute))

	// "name; DROP TABLE" is not a whitelisted column, so the repo must
	// quietly sort by created_at instead of interpolating it.
	rows, err := repo.GetMulti(context.Background(), nil, 0, 10, "name; DROP TABLE session", true)
	if err != nil {
		t.Fatalf("get multi: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Name != "first" {
		t.Errorf("rows[0] = %s, want first (created_at asc)", rows[0].Name)
	}
}

func TestUpdate_EmptyFieldsIsNoOp(t *testing.T) {
	repo := NewSessionRepo(openTestDB(t), testLogger())
	session := seedSession(t, repo, "untouched", time.Now())

	got, err := repo.Update(context.Background(), nil, session, map[string]interface{}{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "untouched" {
		t.Errorf("name = %q, want untouched", got.Name)
	}
}

func TestChainCreateBulk_IgnoresConflicts(t *testing.T) {
	db := openTestDB(t)
	log := testLogger()
	sessionRepo := NewSessionRepo(db, log)
	chainRepo := NewChainRepo(db, log)
	ctx := context.Background()

	session := seedSession(t, sessionRepo, "conflicts", time.Now())
	first := []*types.Chain{{ID: uuid.New(), SessionID: session.ID, FileName: "a.py"}}
	if _, err := chainRepo.CreateBulk(ctx, nil, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same (session, file) pair again, as if two selections raced.
	second := []*types.Chain{
		{ID: uuid.New(), SessionID: session.ID, FileName: "a.py"},
		{ID: uuid.New(), SessionID: session.ID, FileName: "b.py"},
	}
	created, err := chainRepo.CreateBulk(ctx, nil, second)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	// The a.py row was dropped by the conflict clause; only the row
	// that really persisted may be reported as created.
	if len(created) != 1 || created[0].FileName != "b.py" {
		t.Errorf("created = %v, want only b.py", created)
	}

	names, err := chainRepo.GetFileNamesBySessionID(ctx, nil, session.ID)
	if err != nil {
		t.Fatalf("list file names: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("file names = %v, want exactly [a.py b.py]", names)
	}
}

func TestChainExists(t *testing.T) {
	db := openTestDB(t)
	log := testLogger()
	sessionRepo := NewSessionRepo(db, log)
	chainRepo := NewChainRepo(db, log)
	ctx := context.Background()

	session := seedSession(t, sessionRepo, "exists", time.Now())
	chain := &types.Chain{ID: uuid.New(), SessionID: session.ID, FileName: "x.py"}
	if _, err := chainRepo.CreateBulk(ctx, nil, []*types.Chain{chain}); err != nil {
		t.Fatalf("create chain: %v", err)
	}

	ok, err := chainRepo.Exists(ctx, nil, chain.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("exists = false for persisted chain")
	}

	ok, err = chainRepo.Exists(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("exists = true for random id")
	}
}
