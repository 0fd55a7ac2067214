package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mpdash/internal/common"
	"github.com/dmitrijs2005/mpdash/internal/server/models"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	db, m := openDB(t)
	_, err := db.Exec(`INSERT INTO users (id, email, username, password_hash) VALUES
		(1, 'a@example.com', 'alice', x'00'),
		(2, 'b@example.com', 'bob', x'00')`)
	require.NoError(t, err)

	s := NewProductService(db, m)
	s.now = fixedNow
	return s
}

func price(v float64) *float64 { return &v }

func TestTrack(t *testing.T) {
	s := newProductService(t)
	ctx := context.Background()

	p, err := s.Track(ctx, 1, TrackRequest{Article: "123", Name: "Mug", Price: price(9.5)})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, models.Product{ID: p.ID, UserID: 1, Article: "123", Name: "Mug", Price: 9.5, LastChecked: "2025-03-04T05:06:07Z"}, *p)

	d, err := s.Track(ctx, 1, TrackRequest{Article: "456"})
	require.NoError(t, err)
	assert.Equal(t, "Product 456", d.Name)
	assert.Zero(t, d.Price)

	items, err := s.Tracked(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	none, err := s.Tracked(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTrack_AlreadyTracked(t *testing.T) {
	s := newProductService(t)
	ctx := context.Background()

	_, err := s.Track(ctx, 1, TrackRequest{Article: "123"})
	require.NoError(t, err)

	_, err = s.Track(ctx, 1, TrackRequest{Article: "123"})
	assert.ErrorIs(t, err, ErrProductTracked)

	_, err = s.Track(ctx, 2, TrackRequest{Article: "123"})
	assert.NoError(t, err, "tracking is per user")
}

func TestTrack_Validation(t *testing.T) {
	s := newProductService(t)

	_, err := s.Track(context.Background(), 1, TrackRequest{Article: " "})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Track(context.Background(), 1, TrackRequest{Article: "1", Price: price(-1)})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUntrack(t *testing.T) {
	s := newProductService(t)
	ctx := context.Background()

	p, err := s.Track(ctx, 1, TrackRequest{Article: "123"})
	require.NoError(t, err)

	_, err = s.Untrack(ctx, 2, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	got, err := s.Untrack(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = s.Untrack(ctx, 1, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAnalyze(t *testing.T) {
	s := newProductService(t)
	ctx := context.Background()

	_, err := s.Analyze(ctx, 1, "123")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.Track(ctx, 1, TrackRequest{Article: "123", Name: "Mug", Price: price(3)})
	require.NoError(t, err)
	_, err = s.Track(ctx, 1, TrackRequest{Article: "456"})
	require.NoError(t, err)

	a, err := s.Analyze(ctx, 1, "123")
	require.NoError(t, err)
	assert.Equal(t, &models.Analysis{Article: "123", Name: "Mug", Price: 3}, a)

	b, err := s.Analyze(ctx, 1, "456")
	require.NoError(t, err)
	assert.Len(t, b.Recommendations, 1)

	_, err = s.Analyze(ctx, 2, "123")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DBErrors(t *testing.T) {
	db, _ := openDB(t)
	s := NewProductService(db, newBrokenManager(t))
	ctx := context.Background()

	_, err := s.Tracked(ctx, 1)
	require.Error(t, err)

	_, err = s.Untrack(ctx, 1, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)

	_, err = s.Analyze(ctx, 1, "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)

	_, err = s.Track(ctx, 1, TrackRequest{Article: "1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductTracked)
}
