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
)

const (
	acceptCloseJobSQL  = `UPDATE jobs SET status = 'Closed', updated_at = NOW() WHERE id = $1 AND status = 'Open'`
	acceptUpdateAppSQL = `UPDATE applications SET status = 'Accepted' WHERE id = $1 AND status = 'Pending'`
)

func TestAccept_ClosesJobAndAcceptsApplication(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acceptCloseJobSQL)).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(acceptUpdateAppSQL)).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewApplicationRepository(mock)
	err = repo.Accept(context.Background(), 5, 10)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// When another accept already closed the job, the conditional close touches
// zero rows and the transaction rolls back without touching the application.
func TestAccept_JobAlreadyClosed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acceptCloseJobSQL)).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repo := NewApplicationRepository(mock)
	err = repo.Accept(context.Background(), 5, 10)

	assert.ErrorIs(t, err, ErrJobNotOpen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_ApplicationNoLongerPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(acceptCloseJobSQL)).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(acceptUpdateAppSQL)).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repo := NewApplicationRepository(mock)
	err = repo.Accept(context.Background(), 5, 10)

	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIf_ZeroRowsIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1 WHERE id = $2 AND status = $3`)).
		WithArgs("Rejected", int64(5), "Pending").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewApplicationRepository(mock)
	err = repo.UpdateStatusIf(context.Background(), 5, "Pending", "Rejected")

	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFoundReturnsNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM applications WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewApplicationRepository(mock)
	app, err := repo.FindByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, app)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveByJobIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE job_id = ANY($1) AND status IN ('Accepted', 'Finished')`)).
		WithArgs([]int64{10, 11}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "job_id", "applicant_id", "cover_letter", "status", "applied_at"}).
			AddRow(int64(5), int64(10), int64(2), "ready to start", "Accepted", now))

	repo := NewApplicationRepository(mock)
	apps, err := repo.FindActiveByJobIDs(context.Background(), []int64{10, 11})

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Accepted", apps[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An empty ID set short-circuits without touching the database.
func TestFindActiveByJobIDs_EmptyInput(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewApplicationRepository(mock)
	apps, err := repo.FindActiveByJobIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}
