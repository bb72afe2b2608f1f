package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DatabaseTestSuite struct {
	suite.Suite
	db  *Client
	ctx context.Context
}

func (s *DatabaseTestSuite) SetupTest() {
	db, err := New(filepath.Join(s.T().TempDir(), "data", "moneta.db"))
	s.Require().NoError(err)
	s.db = db
	s.ctx = context.Background()
}

func (s *DatabaseTestSuite) TearDownTest() {
	if s.db != nil {
		s.NoError(s.db.Close())
	}
}

func (s *DatabaseTestSuite) createUser(name string) *User {
	user, err := s.db.CreateUser(s.ctx, name, "hash-"+name)
	s.Require().NoError(err)
	return user
}

func (s *DatabaseTestSuite) createAsset(userID uint, name string, income, expenditure int64) *FinancialAsset {
	asset := &FinancialAsset{
		UserID:      userID,
		Name:        name,
		Income:      decimal.NewFromInt(income),
		Expenditure: decimal.NewFromInt(expenditure),
	}
	s.Require().NoError(s.db.CreateAsset(s.ctx, asset))
	s.Require().NotZero(asset.ID)
	return asset
}

func (s *DatabaseTestSuite) TestCreateAndGetUser() {
	created := s.createUser("alice")
	s.NotZero(created.ID)

	user, err := s.db.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)
	s.Equal("hash-alice", user.PasswordHash)
}

func (s *DatabaseTestSuite) TestGetUserByUsername_CaseSensitive() {
	s.createUser("alice")

	_, err := s.db.GetUserByUsername(s.ctx, "Alice")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *DatabaseTestSuite) TestCreateUser_DuplicateUsername() {
	s.createUser("alice")

	_, err := s.db.CreateUser(s.ctx, "alice", "other")
	s.ErrorIs(err, ErrUsernameTaken)

	stats, err := s.db.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.Users)
}

func (s *DatabaseTestSuite) TestAssetRoundTrip() {
	user := s.createUser("alice")
	asset := &FinancialAsset{
		UserID:      user.ID,
		Name:        "Salary",
		Income:      decimal.RequireFromString("50000.50"),
		Expenditure: decimal.Zero,
	}
	s.Require().NoError(s.db.CreateAsset(s.ctx, asset))

	assets, err := s.db.GetAssets(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(assets, 1)
	s.Equal("Salary", assets[0].Name)
	s.True(assets[0].Income.Equal(decimal.RequireFromString("50000.5")), "income: %s", assets[0].Income)
	s.True(assets[0].Expenditure.IsZero())
}

func (s *DatabaseTestSuite) TestUpdateAsset() {
	user := s.createUser("alice")
	asset := s.createAsset(user.ID, "Salary", 50000, 0)

	err := s.db.UpdateAsset(s.ctx, user.ID, asset.ID, "Salary", decimal.NewFromInt(55000), decimal.NewFromInt(1000))
	s.Require().NoError(err)

	got, err := s.db.GetAsset(s.ctx, user.ID, asset.ID)
	s.Require().NoError(err)
	s.True(got.Income.Equal(decimal.NewFromInt(55000)))
	s.True(got.Expenditure.Equal(decimal.NewFromInt(1000)))
}

func (s *DatabaseTestSuite) TestUpdateAsset_SameValuesStillMatches() {
	user := s.createUser("alice")
	asset := s.createAsset(user.ID, "Salary", 50000, 0)

	err := s.db.UpdateAsset(s.ctx, user.ID, asset.ID, "Salary", decimal.NewFromInt(50000), decimal.Zero)
	s.NoError(err)
}

func (s *DatabaseTestSuite) TestDeleteAsset() {
	user := s.createUser("alice")
	asset := s.createAsset(user.ID, "Salary", 50000, 0)

	s.Require().NoError(s.db.DeleteAsset(s.ctx, user.ID, asset.ID))

	assets, err := s.db.GetAssets(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(assets)

	s.ErrorIs(s.db.DeleteAsset(s.ctx, user.ID, asset.ID), ErrAssetNotFound)
}

func (s *DatabaseTestSuite) TestOwnershipScoping() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	bobsAsset := s.createAsset(bob.ID, "Rent", 0, 1200)

	// alice can't see bob's asset
	assets, err := s.db.GetAssets(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(assets)

	_, err = s.db.GetAsset(s.ctx, alice.ID, bobsAsset.ID)
	s.ErrorIs(err, ErrAssetNotFound)

	// alice can't modify or delete it
	err = s.db.UpdateAsset(s.ctx, alice.ID, bobsAsset.ID, "Hacked", decimal.Zero, decimal.Zero)
	s.ErrorIs(err, ErrAssetNotFound)
	s.ErrorIs(s.db.DeleteAsset(s.ctx, alice.ID, bobsAsset.ID), ErrAssetNotFound)

	// bob's asset is untouched
	got, err := s.db.GetAsset(s.ctx, bob.ID, bobsAsset.ID)
	s.Require().NoError(err)
	s.Equal("Rent", got.Name)
	s.True(got.Expenditure.Equal(decimal.NewFromInt(1200)))
}

func (s *DatabaseTestSuite) TestGetStatsAndMaintenance() {
	user := s.createUser("alice")
	s.createAsset(user.ID, "Salary", 1, 0)
	s.createAsset(user.ID, "Rent", 0, 1)

	stats, err := s.db.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.Users)
	s.Equal(int64(2), stats.Assets)

	s.NoError(s.db.Ping(s.ctx))
	s.NoError(s.db.Optimize(s.ctx))
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
