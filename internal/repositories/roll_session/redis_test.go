package rollsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/clock"
	mockclock "github.com/KirkDiggler/rpg-tables/internal/pkg/clock/mock"
	rollsession "github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session"
	"github.com/KirkDiggler/rpg-tables/internal/testutils"
)

const (
	testEntityID = "poi_123"
	testContext  = "settlement_gen"
	testKey      = "roll_session:poi_123:settlement_gen"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	mr    *miniredis.Miniredis
	clock *clock.Fixed
	repo  rollsession.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ctx = context.Background()
	s.clock = clock.NewFixed(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	repo, err := rollsession.NewRedisRepository(&rollsession.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func sampleRoll(id string) rollsession.Roll {
	return rollsession.Roll{
		RollID:   id,
		Notation: "4d6dl1",
		Policy:   "normal",
		Dice:     []int{3, 5, 6},
		Dropped:  []int{1},
		Total:    14,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository_Validation() {
	_, err := rollsession.NewRedisRepository(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	ctrl := gomock.NewController(s.T())
	_, err = rollsession.NewRedisRepository(&rollsession.Config{Clock: mockclock.NewMockClock(ctrl)})
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "client")
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		Rolls:    []rollsession.Roll{sampleRoll("roll_1")},
	})
	s.Require().NoError(err)
	s.Assert().Equal(s.clock.Now(), out.Session.CreatedAt)
	s.Assert().Equal(s.clock.Now().Add(rollsession.DefaultTTL), out.Session.ExpiresAt)

	s.Assert().True(s.mr.Exists(testKey))
	s.Assert().Equal(rollsession.DefaultTTL, s.mr.TTL(testKey))

	got, err := s.repo.Get(s.ctx, rollsession.GetInput{EntityID: testEntityID, Context: testContext})
	s.Require().NoError(err)
	s.Require().Len(got.Session.Rolls, 1)
	s.Assert().Equal(sampleRoll("roll_1"), got.Session.Rolls[0])
	s.Assert().True(out.Session.ExpiresAt.Equal(got.Session.ExpiresAt))
}

func (s *RedisRepositoryTestSuite) TestCreateCustomTTL() {
	_, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		TTL:      time.Hour,
	})
	s.Require().NoError(err)
	s.Assert().Equal(time.Hour, s.mr.TTL(testKey))
}

func (s *RedisRepositoryTestSuite) TestCreateInvalidInput() {
	testCases := []struct {
		name  string
		input rollsession.CreateInput
	}{
		{name: "missing entity", input: rollsession.CreateInput{Context: testContext}},
		{name: "missing context", input: rollsession.CreateInput{EntityID: testEntityID}},
		{name: "negative ttl", input: rollsession.CreateInput{EntityID: testEntityID, Context: testContext, TTL: -time.Second}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, tc.input)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, rollsession.GetInput{EntityID: testEntityID, Context: testContext})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal(testEntityID, errors.GetMeta(err)["entity_id"])
}

func (s *RedisRepositoryTestSuite) TestGetExpiredByClock() {
	_, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		TTL:      time.Minute,
	})
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, rollsession.GetInput{EntityID: testEntityID, Context: testContext})
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().False(s.mr.Exists(testKey), "expired session is cleaned up")
}

func (s *RedisRepositoryTestSuite) TestGetExpiredByRedis() {
	_, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		TTL:      time.Minute,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, rollsession.GetInput{EntityID: testEntityID, Context: testContext})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateKeepsRemainingTTL() {
	out, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		TTL:      10 * time.Minute,
	})
	s.Require().NoError(err)

	s.clock.Advance(4 * time.Minute)

	session := out.Session
	session.Rolls = append(session.Rolls, sampleRoll("roll_2"))
	s.Require().NoError(s.repo.Update(s.ctx, session))

	s.Assert().Equal(6*time.Minute, s.mr.TTL(testKey))

	got, err := s.repo.Get(s.ctx, rollsession.GetInput{EntityID: testEntityID, Context: testContext})
	s.Require().NoError(err)
	s.Assert().Len(got.Session.Rolls, 1)
	s.Assert().Equal("roll_2", got.Session.Rolls[0].RollID)
}

func (s *RedisRepositoryTestSuite) TestUpdateExpired() {
	out, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		TTL:      time.Minute,
	})
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)

	err = s.repo.Update(s.ctx, out.Session)
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateInvalid() {
	s.Assert().True(errors.IsInvalidArgument(s.repo.Update(s.ctx, nil)))
	s.Assert().True(errors.IsInvalidArgument(s.repo.Update(s.ctx, &rollsession.RollSession{EntityID: testEntityID})))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, rollsession.CreateInput{
		EntityID: testEntityID,
		Context:  testContext,
		Rolls:    []rollsession.Roll{sampleRoll("roll_1"), sampleRoll("roll_2")},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, rollsession.DeleteInput{EntityID: testEntityID, Context: testContext})
	s.Require().NoError(err)
	s.Assert().Equal(int32(2), out.RollsDeleted)
	s.Assert().False(s.mr.Exists(testKey))

	out, err = s.repo.Delete(s.ctx, rollsession.DeleteInput{EntityID: testEntityID, Context: testContext})
	s.Require().NoError(err)
	s.Assert().Zero(out.RollsDeleted)
}
