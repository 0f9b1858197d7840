package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudagama/job-portal/internal/model"
)

func jobRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "title", "description", "category", "budget", "budget_type",
		"location", "contact_phone", "is_urgent", "status", "created_by",
		"created_at", "updated_at",
	})
}

func TestFindOpen_NoFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs WHERE status = 'Open' ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(jobRows().
			AddRow(int64(2), "Fix plumbing", "Leaky pipe under sink", "Plumbing", 200.0, "Fixed", "Riga", "555-0101", false, "Open", int64(1), now, now).
			AddRow(int64(1), "Garden cleanup", "Autumn leaves", "Gardening", 80.0, "Daily", "Riga", "555-0102", true, "Open", int64(1), now, now))

	repo := NewJobRepository(mock)
	jobs, err := repo.FindOpen(context.Background(), model.JobFilters{})

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Fix plumbing", jobs[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOpen_KeywordAndLocationFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'Open' AND (title ILIKE $1 OR description ILIKE $1) AND location ILIKE $2`)).
		WithArgs("%plumber%", "%riga%").
		WillReturnRows(jobRows().
			AddRow(int64(7), "Plumber needed", "Replace bathroom tap", "Plumbing", 120.0, "Fixed", "Riga", "", false, "Open", int64(3), now, now))

	keyword := "plumber"
	location := "riga"
	repo := NewJobRepository(mock)
	jobs, err := repo.FindOpen(context.Background(), model.JobFilters{Keyword: &keyword, Location: &location})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(7), jobs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOpen_AllFiltersWithPagination(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`AND (title ILIKE $1 OR description ILIKE $1) AND category = $2 AND budget_type = $3 AND is_urgent = TRUE AND location ILIKE $4 ORDER BY created_at DESC, id DESC LIMIT $5 OFFSET $6`)).
		WithArgs("%paint%", "Construction", "Daily", "%centre%", 10, 10).
		WillReturnRows(jobRows())

	keyword := "paint"
	category := "Construction"
	budgetType := "Daily"
	urgent := true
	location := "centre"
	repo := NewJobRepository(mock)
	jobs, err := repo.FindOpen(context.Background(), model.JobFilters{
		Keyword:    &keyword,
		Category:   &category,
		BudgetType: &budgetType,
		IsUrgent:   &urgent,
		Location:   &location,
		Page:       2,
		Limit:      10,
	})

	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobUpdate_NotOwnedReturnsError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE jobs`)).
		WithArgs("t", "d", "Other", 50.0, "Fixed", "", "", false, "Open", int64(5), int64(9)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewJobRepository(mock)
	err = repo.Update(context.Background(), &model.Job{
		ID: 5, Title: "t", Description: "d", Category: "Other", Budget: 50,
		BudgetType: "Fixed", Status: "Open", CreatedBy: 9,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not owned")
	assert.NoError(t, mock.ExpectationsWereMet())
}
