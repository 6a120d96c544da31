package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"

    "github.com/iliyamo/matchday-rundown/internal/model"
    "github.com/iliyamo/matchday-rundown/internal/roster"
)

func newMockAssignmentRepo(t *testing.T) (*AssignmentRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock.New: %v", err)
    }
    t.Cleanup(func() { _ = db.Close() })
    return NewAssignmentRepo(db), mock
}

var assignmentCols = []string{"id", "segment_id", "person_id", "position_id", "created_at"}

// A merge must plan against the rows found inside its own transaction.
// Here the pair (2, 101) is already on the target at read time, as if
// a concurrent insert landed just before the copy; only the missing
// pair may be written.
func TestApplyCopyToTarget_MergeReadsTargetInsideTransaction(t *testing.T) {
    repo, mock := newMockAssignmentRepo(t)
    now := time.Now()

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT (.+) FROM segment_assignments WHERE segment_id = \? ORDER BY id ASC FOR UPDATE`).
        WithArgs(9).
        WillReturnRows(sqlmock.NewRows(assignmentCols).AddRow(1, 9, 2, 101, now))
    mock.ExpectExec(`INSERT INTO segment_assignments`).
        WithArgs(9, 3, 102).
        WillReturnResult(sqlmock.NewResult(2, 1))
    mock.ExpectCommit()

    source := []model.SegmentAssignment{
        {ID: 10, SegmentID: 5, PersonID: 2, PositionID: 101},
        {ID: 11, SegmentID: 5, PersonID: 3, PositionID: 102},
    }
    if err := repo.ApplyCopyToTarget(context.Background(), 9, source, roster.CopyMerge); err != nil {
        t.Fatalf("ApplyCopyToTarget: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("unmet expectations: %v", err)
    }
}

func TestApplyCopyToTarget_MergeWithNothingMissingOnlyCommits(t *testing.T) {
    repo, mock := newMockAssignmentRepo(t)
    now := time.Now()

    mock.ExpectBegin()
    mock.ExpectQuery(`FOR UPDATE`).
        WithArgs(9).
        WillReturnRows(sqlmock.NewRows(assignmentCols).AddRow(1, 9, 2, 101, now))
    mock.ExpectCommit()

    source := []model.SegmentAssignment{{PersonID: 2, PositionID: 101}}
    if err := repo.ApplyCopyToTarget(context.Background(), 9, source, roster.CopyMerge); err != nil {
        t.Fatalf("ApplyCopyToTarget: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("unmet expectations: %v", err)
    }
}

// Overwrite never reads the target: the plan is clear plus install the
// full source set, duplicates included, and both happen in one
// transaction.
func TestApplyCopyToTarget_OverwriteClearsThenInstallsFullSource(t *testing.T) {
    repo, mock := newMockAssignmentRepo(t)

    mock.ExpectBegin()
    mock.ExpectExec(`DELETE FROM segment_assignments WHERE segment_id = \?`).
        WithArgs(9).
        WillReturnResult(sqlmock.NewResult(0, 2))
    mock.ExpectExec(`INSERT INTO segment_assignments`).
        WithArgs(9, 2, 101, 9, 2, 101).
        WillReturnResult(sqlmock.NewResult(3, 2))
    mock.ExpectCommit()

    source := []model.SegmentAssignment{
        {PersonID: 2, PositionID: 101},
        {PersonID: 2, PositionID: 101},
    }
    if err := repo.ApplyCopyToTarget(context.Background(), 9, source, roster.CopyOverwrite); err != nil {
        t.Fatalf("ApplyCopyToTarget: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("unmet expectations: %v", err)
    }
}

func TestApplyCopyToTarget_InsertFailureRollsBack(t *testing.T) {
    repo, mock := newMockAssignmentRepo(t)

    mock.ExpectBegin()
    mock.ExpectExec(`DELETE FROM segment_assignments WHERE segment_id = \?`).
        WithArgs(9).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(`INSERT INTO segment_assignments`).
        WithArgs(9, 2, 101).
        WillReturnError(context.DeadlineExceeded)
    mock.ExpectRollback()

    source := []model.SegmentAssignment{{PersonID: 2, PositionID: 101}}
    if err := repo.ApplyCopyToTarget(context.Background(), 9, source, roster.CopyOverwrite); err == nil {
        t.Fatal("ApplyCopyToTarget succeeded despite failed insert")
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("unmet expectations: %v", err)
    }
}
