package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/database"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test_secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewGormDB(database.DriverSQLite, dsn, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, evt := range p.events {
		types = append(types, evt.Type)
	}
	return types
}

func (p *recordingPublisher) Last() events.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type testEnv struct {
	db        *gorm.DB
	uow       unitofwork.RepositoryFactory
	publisher *recordingPublisher
	auth      IAuthService
	notes     INoteService
	folders   IFolderService
}

var testFolderDefaults = config.FolderDefaults{DefaultColor: "#6366f1"}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := logger.NewNopLogger()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	publisher := &recordingPublisher{}

	notes := NewNoteService(uowFactory, publisher, log)
	return &testEnv{
		db:        db,
		uow:       uowFactory,
		publisher: publisher,
		auth:      NewAuthService(uowFactory, memory.NewTokenDenylist(), testSecret, time.Hour, log),
		notes:     notes,
		folders:   NewFolderService(uowFactory, notes, NewCascadeCoordinator(log), publisher, testFolderDefaults, log),
	}
}

// seedUser inserts a user directly, skipping bcrypt.
func (e *testEnv) seedUser(t *testing.T, email string) uuid.UUID {
	t.Helper()

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Name:         email,
		Email:        email,
		PasswordHash: "unused",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ctx := context.Background()
	require.NoError(t, e.uow.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	return user.Id
}

func strPtr(s string) *string {
	return &s
}

var errBoom = errors.New("boom")
