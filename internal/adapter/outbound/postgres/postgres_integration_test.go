package postgres

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/shared/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by CREATORKIT_TEST_DATABASE_URL
// and applies migrations. Tests are skipped when it is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	url := os.Getenv("CREATORKIT_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CREATORKIT_TEST_DATABASE_URL not set")
	}
	_, err := database.Migrate(url)
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func testUser() string {
	return "it_" + uuid.NewString()
}

func TestCreationAdapter_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	adapter := NewCreationAdapter(db)

	t.Run("list by user is newest first", func(t *testing.T) {
		user := testUser()
		var ids []int64
		for _, prompt := range []string{"a", "b", "c"} {
			c := &model.Creation{UserID: user, Prompt: prompt, Content: prompt, Type: model.CreationTypeArticle, Likes: []string{}}
			require.NoError(t, adapter.Create(ctx, c))
			ids = append(ids, c.ID)
		}

		list, err := adapter.ListByUser(ctx, user, 10)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, ids[2], list[0].ID)
		assert.Equal(t, ids[0], list[2].ID)
	})

	t.Run("find missing returns nil", func(t *testing.T) {
		c, err := adapter.FindByID(ctx, -1)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("toggle twice restores the like set", func(t *testing.T) {
		c := &model.Creation{UserID: testUser(), Prompt: "p", Content: "c", Type: model.CreationTypeArticle, Publish: true, Likes: []string{}}
		require.NoError(t, adapter.Create(ctx, c))

		first, err := adapter.ToggleLike(ctx, c.ID, "u1")
		require.NoError(t, err)
		assert.True(t, first.Liked)
		assert.Equal(t, 1, first.LikeCount)

		second, err := adapter.ToggleLike(ctx, c.ID, "u1")
		require.NoError(t, err)
		assert.False(t, second.Liked)
		assert.Equal(t, 0, second.LikeCount)

		stored, err := adapter.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Likes)
	})

	t.Run("concurrent toggles by distinct users are all kept", func(t *testing.T) {
		c := &model.Creation{UserID: testUser(), Prompt: "p", Content: "c", Type: model.CreationTypeArticle, Publish: true, Likes: []string{}}
		require.NoError(t, adapter.Create(ctx, c))

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := adapter.ToggleLike(ctx, c.ID, model.NormalizeUserID(i))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		stored, err := adapter.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Likes, n)
	})

	t.Run("toggle on missing creation", func(t *testing.T) {
		res, err := adapter.ToggleLike(ctx, -1, "u1")
		require.NoError(t, err)
		assert.Nil(t, res)
	})
}

func TestUsageAdapter_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	adapter := NewUsageAdapter(db)

	t.Run("concurrent increments stop at the limit", func(t *testing.T) {
		user := testUser()
		const limit = 15
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
			rejected int
		)
		for i := 0; i < 40; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := adapter.Increment(ctx, user, "2026-10", limit)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					accepted++
				} else {
					assert.ErrorIs(t, err, outbound.ErrUsageLimitReached)
					rejected++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, limit, accepted)
		assert.Equal(t, 25, rejected)
		row, err := adapter.Get(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, limit, row.FreeUsageCount)
	})

	t.Run("new period restarts the count", func(t *testing.T) {
		user := testUser()
		require.NoError(t, adapter.Set(ctx, user, "2026-09", 15))

		count, err := adapter.Increment(ctx, user, "2026-10", 15)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("missing user reads nil", func(t *testing.T) {
		row, err := adapter.Get(ctx, testUser())
		require.NoError(t, err)
		assert.Nil(t, row)
	})
}

func TestTransactor_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tx := NewTransactor(db)
	creations := NewCreationAdapter(db)
	usages := NewUsageAdapter(db)

	user := testUser()
	require.NoError(t, usages.Set(ctx, user, "2026-10", 15))

	err := tx.WithinTx(ctx, func(txCtx context.Context) error {
		c := &model.Creation{UserID: user, Prompt: "p", Content: "c", Type: model.CreationTypeArticle, Likes: []string{}}
		if err := creations.Create(txCtx, c); err != nil {
			return err
		}
		_, err := usages.Increment(txCtx, user, "2026-10", 15)
		return err
	})
	require.ErrorIs(t, err, outbound.ErrUsageLimitReached)

	list, err := creations.ListByUser(ctx, user, 10)
	require.NoError(t, err)
	assert.Empty(t, list, "creation insert must roll back with the failed usage commit")
}
