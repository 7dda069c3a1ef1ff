package creation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCreationDB is a mock implementation of CreationDatabasePort.
type MockCreationDB struct {
	mock.Mock
}

func (m *MockCreationDB) Create(ctx context.Context, c *model.Creation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCreationDB) FindByID(ctx context.Context, id int64) (*model.Creation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Creation), args.Error(1)
}

func (m *MockCreationDB) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Creation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Creation), args.Error(1)
}

func (m *MockCreationDB) ListPublished(ctx context.Context, limit int) ([]*model.Creation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Creation), args.Error(1)
}

func (m *MockCreationDB) ToggleLike(ctx context.Context, id int64, userID string) (*model.LikeResult, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LikeResult), args.Error(1)
}

// memCreationDB keeps rows in memory with the same ordering and toggle
// semantics as the postgres adapter.
type memCreationDB struct {
	mu     sync.Mutex
	rows   []*model.Creation
	nextID int64
	clock  func() time.Time
}

func newMemCreationDB(clock func() time.Time) *memCreationDB {
	return &memCreationDB{clock: clock}
}

func (m *memCreationDB) Create(_ context.Context, c *model.Creation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = m.clock()
	cp := *c
	cp.Likes = append([]string{}, c.Likes...)
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memCreationDB) FindByID(_ context.Context, id int64) (*model.Creation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCreationDB) list(match func(*model.Creation) bool, limit int) []*model.Creation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Creation, 0)
	for _, r := range m.rows {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memCreationDB) ListByUser(_ context.Context, userID string, limit int) ([]*model.Creation, error) {
	return m.list(func(c *model.Creation) bool { return c.UserID == userID }, limit), nil
}

func (m *memCreationDB) ListPublished(_ context.Context, limit int) ([]*model.Creation, error) {
	return m.list(func(c *model.Creation) bool { return c.Publish }, limit), nil
}

func (m *memCreationDB) ToggleLike(_ context.Context, id int64, userID string) (*model.LikeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID != id {
			continue
		}
		if r.LikedBy(userID) {
			kept := r.Likes[:0]
			for _, u := range r.Likes {
				if u != userID {
					kept = append(kept, u)
				}
			}
			r.Likes = kept
			return &model.LikeResult{Liked: false, LikeCount: len(r.Likes)}, nil
		}
		r.Likes = append(r.Likes, userID)
		return &model.LikeResult{Liked: true, LikeCount: len(r.Likes)}, nil
	}
	return nil, nil
}

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i%len(times)]
		i++
		return t
	}
}

func TestDomain_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := new(MockCreationDB)
		db.On("Create", ctx, mock.AnythingOfType("*model.Creation")).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Creation).ID = 7 }).
			Return(nil)
		d := NewCreationDomain(db, zap.NewNop())

		c := &model.Creation{UserID: " user_1 ", Prompt: "p", Content: "text", Type: model.CreationTypeArticle}
		id, err := d.Append(ctx, c)

		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.Equal(t, "user_1", c.UserID)
		assert.NotNil(t, c.Likes)
		db.AssertExpectations(t)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		db := new(MockCreationDB)
		d := NewCreationDomain(db, zap.NewNop())

		_, err := d.Append(ctx, &model.Creation{UserID: "u", Content: "x", Type: "video"})

		assert.ErrorIs(t, err, ErrInvalidCreation)
		db.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		d := NewCreationDomain(new(MockCreationDB), zap.NewNop())

		_, err := d.Append(ctx, &model.Creation{Content: "x", Type: model.CreationTypeImage})

		assert.ErrorIs(t, err, ErrInvalidUser)
	})

	t.Run("store error", func(t *testing.T) {
		db := new(MockCreationDB)
		db.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))
		d := NewCreationDomain(db, zap.NewNop())

		_, err := d.Append(ctx, &model.Creation{UserID: "u", Content: "x", Type: model.CreationTypeImage})

		assert.Error(t, err)
	})
}

func TestDomain_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db := new(MockCreationDB)
		db.On("FindByID", ctx, int64(9)).Return(nil, nil)

		_, err := NewCreationDomain(db, zap.NewNop()).Get(ctx, 9)

		assert.ErrorIs(t, err, ErrCreationNotFound)
	})

	t.Run("found", func(t *testing.T) {
		db := new(MockCreationDB)
		db.On("FindByID", ctx, int64(3)).Return(&model.Creation{ID: 3}, nil)

		c, err := NewCreationDomain(db, zap.NewNop()).Get(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), c.ID)
	})
}

func TestDomain_ListLimits(t *testing.T) {
	ctx := context.Background()
	db := new(MockCreationDB)
	db.On("ListPublished", ctx, DefaultListLimit).Return([]*model.Creation{}, nil).Once()
	db.On("ListPublished", ctx, MaxListLimit).Return([]*model.Creation{}, nil).Once()
	db.On("ListByUser", ctx, "user_1", 20).Return([]*model.Creation{}, nil).Once()
	d := NewCreationDomain(db, zap.NewNop())

	_, err := d.ListPublished(ctx, 0)
	require.NoError(t, err)
	_, err = d.ListPublished(ctx, 10_000)
	require.NoError(t, err)
	_, err = d.ListByUser(ctx, "user_1", 20)
	require.NoError(t, err)

	db.AssertExpectations(t)
}

func TestDomain_ListOrdering(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	// The third and fourth rows share a timestamp; insertion order breaks the tie.
	db := newMemCreationDB(fixedClock(base, base.Add(2*time.Hour), base.Add(time.Hour), base.Add(time.Hour)))
	d := NewCreationDomain(db, zap.NewNop())

	for i, publish := range []bool{true, false, true, true} {
		_, err := d.Append(ctx, &model.Creation{
			UserID:  "user_1",
			Prompt:  "p",
			Content: "c",
			Type:    model.CreationTypeImage,
			Publish: publish,
		})
		require.NoError(t, err, "row %d", i)
	}

	mine, err := d.ListByUser(ctx, "user_1", 0)
	require.NoError(t, err)
	require.Len(t, mine, 4)
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(mine))
	assertNonIncreasing(t, mine)

	published, err := d.ListPublished(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 1}, ids(published))
	assertNonIncreasing(t, published)
}

func TestDomain_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle twice restores the like set", func(t *testing.T) {
		db := newMemCreationDB(time.Now)
		d := NewCreationDomain(db, zap.NewNop())
		id, err := d.Append(ctx, &model.Creation{
			UserID: "owner", Content: "c", Type: model.CreationTypeArticle, Likes: []string{"other"},
		})
		require.NoError(t, err)

		first, err := d.ToggleLike(ctx, id, "user_1")
		require.NoError(t, err)
		assert.True(t, first.Liked)
		assert.Equal(t, 2, first.LikeCount)

		second, err := d.ToggleLike(ctx, id, "user_1")
		require.NoError(t, err)
		assert.False(t, second.Liked)
		assert.Equal(t, 1, second.LikeCount)

		c, err := d.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"other"}, []string(c.Likes))
	})

	t.Run("concurrent toggles from distinct users both register", func(t *testing.T) {
		db := newMemCreationDB(time.Now)
		d := NewCreationDomain(db, zap.NewNop())
		id, err := d.Append(ctx, &model.Creation{UserID: "owner", Content: "c", Type: model.CreationTypeArticle})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for _, u := range []string{"user_a", "user_b"} {
			wg.Add(1)
			go func(u string) {
				defer wg.Done()
				_, err := d.ToggleLike(ctx, id, u)
				assert.NoError(t, err)
			}(u)
		}
		wg.Wait()

		c, err := d.Get(ctx, id)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"user_a", "user_b"}, []string(c.Likes))
	})

	t.Run("missing creation", func(t *testing.T) {
		db := new(MockCreationDB)
		db.On("ToggleLike", ctx, int64(404), "user_1").Return(nil, nil)

		_, err := NewCreationDomain(db, zap.NewNop()).ToggleLike(ctx, 404, "user_1")

		assert.ErrorIs(t, err, ErrCreationNotFound)
	})

	t.Run("normalizes user id", func(t *testing.T) {
		db := new(MockCreationDB)
		db.On("ToggleLike", ctx, int64(1), "42").Return(&model.LikeResult{Liked: true, LikeCount: 1}, nil)

		res, err := NewCreationDomain(db, zap.NewNop()).ToggleLike(ctx, 1, " 42 ")

		require.NoError(t, err)
		assert.True(t, res.Liked)
		db.AssertExpectations(t)
	})

	t.Run("rejects empty user", func(t *testing.T) {
		db := new(MockCreationDB)

		_, err := NewCreationDomain(db, zap.NewNop()).ToggleLike(ctx, 1, "  ")

		assert.ErrorIs(t, err, ErrInvalidUser)
		db.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
	})
}

func ids(cs []*model.Creation) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func assertNonIncreasing(t *testing.T, cs []*model.Creation) {
	t.Helper()
	for i := 1; i < len(cs); i++ {
		assert.False(t, cs[i].CreatedAt.After(cs[i-1].CreatedAt), "row %d is newer than row %d", i, i-1)
	}
}
