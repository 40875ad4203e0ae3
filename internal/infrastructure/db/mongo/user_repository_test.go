package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ecopilot/trip-planner/internal/core/domain"
)

const usersNS = "test.users"

func newMockTest(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "u-1",
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// setFields returns the $set document of the single update statement sent by the driver.
func setFields(mt *mtest.T) bson.Raw {
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "update", evt.CommandName)

	set, err := evt.Command.LookupErr("updates", "0", "u", "$set")
	require.NoError(mt, err)
	return set.Document()
}

func TestUserRepository_Create(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("stores a new user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.Create(context.Background(), sampleUser()))
	})

	mt.Run("duplicate email maps to ErrUserExists", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: email_1",
		}))

		err := repo.Create(context.Background(), sampleUser())
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("other write errors are wrapped", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		err := repo.Create(context.Background(), sampleUser())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, domain.ErrUserExists)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("no document maps to ErrUserNotFound", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("decodes the stored record", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		since := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u-1"},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@x.com"},
			{Key: "password_hash", Value: "hash"},
			{Key: "is_premium", Value: true},
			{Key: "subscription_date", Value: since},
			{Key: "created_at", Value: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		}))

		user, err := repo.FindByEmail(context.Background(), "ana@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", user.ID)
		assert.Equal(mt, "hash", user.PasswordHash)
		assert.True(mt, user.IsPremium)
		require.NotNil(mt, user.SubscriptionDate)
		assert.True(mt, user.SubscriptionDate.Equal(since))
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("sets only the hash", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.UpdatePassword(context.Background(), "ana@x.com", "new-hash"))

		set := setFields(mt)
		assert.Equal(mt, "new-hash", set.Lookup("password_hash").StringValue())
		_, err := set.LookupErr("is_premium")
		assert.Error(mt, err, "subscription fields must not be written")
	})

	mt.Run("no match maps to ErrUserNotFound", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdatePassword(context.Background(), "ghost@x.com", "new-hash")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_UpdateSubscription(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("sets only the plan fields", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		since := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

		require.NoError(mt, repo.UpdateSubscription(context.Background(), "ana@x.com", true, &since))

		set := setFields(mt)
		assert.True(mt, set.Lookup("is_premium").Boolean())
		assert.True(mt, set.Lookup("subscription_date").Time().Equal(since))
		_, err := set.LookupErr("password_hash")
		assert.Error(mt, err, "password hash must not be written")
	})

	mt.Run("no match maps to ErrUserNotFound", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdateSubscription(context.Background(), "ghost@x.com", false, nil)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}
