package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

func memoryDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
}

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: memoryDSN(t)}

	db, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))
	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "oracle"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestRecipeRoundTrip(t *testing.T) {
	db, err := Open(sqlite.Open(memoryDSN(t)))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	user := model.User{Username: "chef", Email: "chef@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	recipes := []model.Recipe{
		{
			Title:        "Pancakes",
			Category:     "Breakfast",
			Ingredients:  model.JSONBStringArray{"flour", "milk", "egg"},
			Instructions: types.StepInstructions("Mix", "Fry"),
			CreatedByID:  user.ID,
		},
		{
			Title:        "Toast",
			Category:     "Breakfast",
			Ingredients:  model.JSONBStringArray{"bread"},
			Instructions: types.TextInstructions("Toast the bread."),
			CreatedByID:  user.ID,
		},
	}
	require.NoError(t, db.Create(&recipes).Error)

	var stored []model.Recipe
	require.NoError(t, db.Preload("CreatedBy").Order("title").Find(&stored).Error)
	require.Len(t, stored, 2)

	assert.Equal(t, types.InstructionsSteps, stored[0].Instructions.Kind)
	assert.Equal(t, []string{"Mix", "Fry"}, stored[0].Instructions.Steps)
	assert.Equal(t, model.JSONBStringArray{"flour", "milk", "egg"}, stored[0].Ingredients)
	assert.Equal(t, "chef", stored[0].CreatedBy.Username)

	assert.Equal(t, types.InstructionsText, stored[1].Instructions.Kind)
	assert.Equal(t, "Toast the bread.", stored[1].Instructions.Text)
}

func TestRedisOptions(t *testing.T) {
	opts, err := RedisOptions(&config.Config{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, redisOpTimeout, opts.ReadTimeout)

	opts, err = RedisOptions(&config.Config{RedisHost: "ignored", RedisPort: "1", RedisURL: "redis://:secret@redis.internal:6379/3"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, redisOpTimeout, opts.WriteTimeout)

	_, err = RedisOptions(&config.Config{RedisURL: "http://not-redis"})
	assert.Error(t, err)
}
