package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenflow/zenflow/pkg/domain"
)

func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestLeadRepository_RecordAndGet(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Ping(ctx))

	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	for i, h := range []string{"@leo_vlogs", "@yoga_jane", "@travel_tok"} {
		lead := domain.Lead{ID: h + "-id", Handle: h, Status: "Just commented #RECIPE", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repos.Lead.RecordLead(ctx, lead))
	}

	t.Run("recent leads newest first", func(t *testing.T) {
		res, err := repos.Lead.GetRecentLeads(ctx, 10)
		require.NoError(t, err)
		require.Len(t, res, 3)
		assert.Equal(t, "@travel_tok", res[0].Handle)
		assert.Equal(t, "@travel_tok-id", res[0].ID)
		assert.Equal(t, "Just commented #RECIPE", res[0].Status)
		assert.WithinDuration(t, base.Add(2*time.Minute), res[0].CreatedAt, time.Second)
		assert.Equal(t, "@leo_vlogs", res[2].Handle)
	})

	t.Run("limit", func(t *testing.T) {
		res, err := repos.Lead.GetRecentLeads(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("counts", func(t *testing.T) {
		total, err := repos.Lead.CountLeads(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		since, err := repos.Lead.CountLeadsSince(ctx, base.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(2), since)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repos.Lead.RecordLead(ctx, domain.Lead{ID: "@leo_vlogs-id", Handle: "@leo_vlogs", CreatedAt: base})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record lead")
	})

	t.Run("empty id rejected", func(t *testing.T) {
		assert.Error(t, repos.Lead.RecordLead(ctx, domain.Lead{Handle: "@x"}))
	})
}

func TestLeadRepository_CountLeadsByDay(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

	record := func(id string, at time.Time) {
		require.NoError(t, repos.Lead.RecordLead(ctx, domain.Lead{ID: id, Handle: "@yoga_jane", CreatedAt: at}))
	}
	record("a", now.Add(-time.Hour))    // today
	record("b", now.Add(-2*time.Hour))  // today
	record("c", now.AddDate(0, 0, -1))  // yesterday
	record("d", now.AddDate(0, 0, -6))  // first day of the window
	record("e", now.AddDate(0, 0, -10)) // outside the window

	res, err := repos.Lead.CountLeadsByDay(ctx, now, 7)
	require.NoError(t, err)
	require.Len(t, res, 7)

	assert.Equal(t, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), res[0].Day)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), res[6].Day)
	counts := make([]int, 0, len(res))
	for _, d := range res {
		counts = append(counts, d.Count)
	}
	assert.Equal(t, []int{1, 0, 0, 0, 0, 1, 2}, counts)

	empty, err := repos.Lead.CountLeadsByDay(ctx, now, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLeadRepository_UpdateLeadStatus(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Lead.RecordLead(ctx, domain.Lead{ID: "l1", Handle: "@leo_vlogs", Status: "Just commented #RECIPE", CreatedAt: base}))
	require.NoError(t, repos.Lead.RecordLead(ctx, domain.Lead{ID: "l2", Handle: "@yoga_jane", Status: "Just commented #RECIPE", CreatedAt: base.Add(time.Minute)}))

	t.Run("updates only the matching lead", func(t *testing.T) {
		require.NoError(t, repos.Lead.UpdateLeadStatus(ctx, "l1", "Contacted"))
		res, err := repos.Lead.GetRecentLeads(ctx, 10)
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "Just commented #RECIPE", res[0].Status)
		assert.Equal(t, "Contacted", res[1].Status)
		assert.Equal(t, "@leo_vlogs", res[1].Handle)
	})

	t.Run("same status again is not a miss", func(t *testing.T) {
		assert.NoError(t, repos.Lead.UpdateLeadStatus(ctx, "l1", "Contacted"))
	})

	t.Run("unknown lead", func(t *testing.T) {
		err := repos.Lead.UpdateLeadStatus(ctx, "nope", "Contacted")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		err := repos.Lead.UpdateLeadStatus(ctx, "", "Contacted")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrLeadNotFound)
	})
}

func TestSplitMigrationStatements(t *testing.T) {
	sql := `
-- comment
CREATE INDEX IF NOT EXISTS a ON leads(handle);

CREATE INDEX IF NOT EXISTS b
    ON leads(created_at);
SELECT 1`
	res := splitMigrationStatements(sql)
	require.Len(t, res, 3)
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS a ON leads(handle);", res[0])
	assert.Contains(t, res[1], "ON leads(created_at);")
	assert.Equal(t, "SELECT 1", res[2])
}

func TestCriticalError(t *testing.T) {
	inner := errors.New("constraint failed")
	err := &criticalError{err: inner}
	assert.Equal(t, "constraint failed", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.False(t, isLockError(errors.New("no such table")))
}
