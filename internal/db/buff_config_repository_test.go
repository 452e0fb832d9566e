package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/db"
	"github.com/udisondev/unitsim/internal/testutil"
)

// BuffConfigSuite проверяет BuffConfigRepository на реальном PostgreSQL.
type BuffConfigSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *db.BuffConfigRepository
	ctx  context.Context
}

func (s *BuffConfigSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool = testutil.SetupTestDB(s.T())
	s.repo = db.NewBuffConfigRepository(s.pool)
}

func (s *BuffConfigSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE buff_configs")
	s.Require().NoError(err)
}

func (s *BuffConfigSuite) TestUpsertAndLoadAll() {
	cfg := data.BuffConfig{
		ID:                42,
		Class:             "Periodic",
		Tag:               data.BuffTagDamageOverTime,
		Type:              data.BuffTypeNegative,
		Duration:          6 * time.Second,
		TickInterval:      1500 * time.Millisecond,
		MaxLayer:          3,
		RefreshOnLayer:    true,
		RemoveAllOnExpiry: true,
		Params:            map[string]string{"attribute": "Health", "delta": "-5"},
	}
	s.Require().NoError(s.repo.Upsert(s.ctx, cfg))

	loaded, err := s.repo.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal(cfg, loaded[0])
}

func (s *BuffConfigSuite) TestUpsertReplacesExisting() {
	cfg := data.BuffConfig{ID: 1, Class: "Instant", OneShot: true, Params: map[string]string{"delta": "10"}}
	s.Require().NoError(s.repo.Upsert(s.ctx, cfg))

	cfg.Params = map[string]string{"delta": "25"}
	s.Require().NoError(s.repo.Upsert(s.ctx, cfg))

	loaded, err := s.repo.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal("25", loaded[0].Params["delta"])
}

func (s *BuffConfigSuite) TestSeedBuiltinCatalog() {
	builtin := data.DefaultBuffCatalog()
	s.Require().NoError(s.repo.Seed(s.ctx, builtin.Configs()))

	catalog, err := s.repo.LoadCatalog(s.ctx)
	s.Require().NoError(err)
	s.Equal(builtin.IDs(), catalog.IDs())

	for _, id := range builtin.IDs() {
		want, _ := builtin.Get(id)
		got, ok := catalog.Get(id)
		s.Require().True(ok)
		s.Equal(want.Class, got.Class)
		s.Equal(want.Duration, got.Duration)
		s.Equal(want.Tag, got.Tag)
	}
}

func (s *BuffConfigSuite) TestDelete() {
	s.Require().NoError(s.repo.Upsert(s.ctx, data.BuffConfig{ID: 7, Class: "SampleBuff", TickInterval: time.Second}))

	deleted, err := s.repo.Delete(s.ctx, 7)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.repo.Delete(s.ctx, 7)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *BuffConfigSuite) TestLoadAllRejectsUnknownTag() {
	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO buff_configs (id, class, tag, tick_interval_ms) VALUES (3, 'SampleBuff', 'POISON', 1000)`)
	s.Require().NoError(err)

	_, err = s.repo.LoadAll(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "buff config 3")
}

func TestBuffConfigSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database tests in short mode")
	}
	suite.Run(t, new(BuffConfigSuite))
}
