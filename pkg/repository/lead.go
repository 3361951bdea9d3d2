package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/zenflow/zenflow/pkg/domain"
)

// LeadRepository handles the lead history log
type LeadRepository struct {
	db *sqlx.DB
}

// leadSQL represents a lead for SQL operations
type leadSQL struct {
	ID        int64     `db:"id"`
	UID       string    `db:"uid"`
	Handle    string    `db:"handle"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// RecordLead appends an emitted lead to the history, retrying on lock contention
func (r *LeadRepository) RecordLead(ctx context.Context, lead domain.Lead) error {
	if lead.ID == "" {
		return fmt.Errorf("record lead: empty id")
	}
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	row := leadSQL{UID: lead.ID, Handle: lead.Handle, Status: lead.Status, CreatedAt: createdAt.UTC()}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO leads (uid, handle, status, created_at)
			VALUES (:uid, :handle, :status, :created_at)
		`
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record lead: %w", err)}
		}
		return nil
	})
}

// UpdateLeadStatus replaces the status of a recorded lead, returns domain.ErrLeadNotFound for unknown uid
func (r *LeadRepository) UpdateLeadStatus(ctx context.Context, uid, status string) error {
	if uid == "" {
		return fmt.Errorf("update lead status: empty id")
	}

	var affected int64
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE leads SET status = ? WHERE uid = ?", status, uid)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update lead status: %w", err)}
		}
		if affected, err = res.RowsAffected(); err != nil {
			return &criticalError{err: fmt.Errorf("update lead status, rows affected: %w", err)}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("update lead status %s: %w", uid, domain.ErrLeadNotFound)
	}
	return nil
}

// GetRecentLeads returns up to limit leads, newest first
func (r *LeadRepository) GetRecentLeads(ctx context.Context, limit int) ([]domain.Lead, error) {
	var rows []leadSQL
	query := "SELECT * FROM leads ORDER BY created_at DESC, id DESC LIMIT ?"
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get recent leads: %w", err)
	}
	return lo.Map(rows, func(row leadSQL, _ int) domain.Lead { return row.toDomain() }), nil
}

// CountLeads returns the total number of recorded leads
func (r *LeadRepository) CountLeads(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM leads"); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

// CountLeadsSince returns the number of leads recorded at or after since
func (r *LeadRepository) CountLeadsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM leads WHERE created_at >= ?", since.UTC())
	if err != nil {
		return 0, fmt.Errorf("count leads since: %w", err)
	}
	return count, nil
}

// CountLeadsByDay returns per-day lead counts for the given number of days ending on the day of now,
// oldest day first. Days without leads are included with zero count.
func (r *LeadRepository) CountLeadsByDay(ctx context.Context, now time.Time, days int) ([]domain.DayCount, error) {
	if days <= 0 {
		return []domain.DayCount{}, nil
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	from := today.AddDate(0, 0, -(days - 1))

	var stamps []time.Time
	err := r.db.SelectContext(ctx, &stamps, "SELECT created_at FROM leads WHERE created_at >= ?", from.UTC())
	if err != nil {
		return nil, fmt.Errorf("count leads by day: %w", err)
	}

	res := make([]domain.DayCount, days)
	for i := range res {
		res[i].Day = from.AddDate(0, 0, i)
	}
	for _, ts := range stamps {
		ts = ts.In(loc)
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc)
		idx := int(math.Round(day.Sub(from).Hours() / 24))
		if idx >= 0 && idx < days {
			res[idx].Count++
		}
	}
	return res, nil
}

func (l leadSQL) toDomain() domain.Lead {
	return domain.Lead{ID: l.UID, Handle: l.Handle, Status: l.Status, CreatedAt: l.CreatedAt}
}
