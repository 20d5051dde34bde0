package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/internal/config"
	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/core/selection"
	"github.com/sekolahku/ppdb/pkg/db"
)

// mockStudentStore is an in-memory store covering every service interface
type mockStudentStore struct {
	students []db.StudentRecord
	semester []db.SemesterGradeRecord

	outcomes     map[string]string
	scoreUpdates []db.ScoreUpdate
	auditEntries []db.AuditEntry

	outcomesErr error
	auditErr    error

	commitCount int
}

func newMockStore(students ...db.StudentRecord) *mockStudentStore {
	return &mockStudentStore{
		students: students,
		outcomes: make(map[string]string),
	}
}

func (m *mockStudentStore) GetVerifiedStudents(ctx context.Context, filter db.StudentFilter) ([]db.StudentRecord, error) {
	var out []db.StudentRecord
	for _, s := range m.students {
		if filter.Path != "" && s.Path != filter.Path {
			continue
		}
		if filter.WaveID != "" && s.WaveID != filter.WaveID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentStore) GetSemesterGrades(ctx context.Context, studentIDs []string) ([]db.SemesterGradeRecord, error) {
	return m.semester, nil
}

func (m *mockStudentStore) UpdateScores(ctx context.Context, updates []db.ScoreUpdate) error {
	m.scoreUpdates = updates
	return nil
}

func (m *mockStudentStore) UpdateOutcomes(ctx context.Context, accepted, rejected []string, paths []string) error {
	if m.outcomesErr != nil {
		return m.outcomesErr
	}
	m.commitCount++
	for _, id := range accepted {
		m.outcomes[id] = string(model.OutcomeAccepted)
	}
	for _, id := range rejected {
		m.outcomes[id] = string(model.OutcomeRejected)
	}
	return nil
}

func (m *mockStudentStore) UpdateOutcome(ctx context.Context, studentID, outcome string) error {
	m.outcomes[studentID] = outcome
	return nil
}

func (m *mockStudentStore) InsertAuditEntry(ctx context.Context, entry db.AuditEntry) error {
	if m.auditErr != nil {
		return m.auditErr
	}
	m.auditEntries = append(m.auditEntries, entry)
	return nil
}

// mockNotifier records deliveries and can fail specific addresses
type mockNotifier struct {
	sent    []string
	failFor map[string]bool
}

func (m *mockNotifier) Notify(to, subject, body string) error {
	if m.failFor[to] {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Quotas: config.QuotasConfig{
			PerPath: map[string]int{
				string(model.PathRegular):                2,
				string(model.PathAffirmation):            1,
				string(model.PathAcademicAchievement):    1,
				string(model.PathNonAcademicAchievement): 1,
			},
			Total: 5,
		},
		Notifier: config.NotifierConfig{SchoolName: "SMA Harapan 1"},
	}
}

// regularStudent builds a verified Regular-path student whose composite
// score is exam*0.5 + skills*0.5
func regularStudent(id string, exam, skills float64, registered time.Time) db.StudentRecord {
	return db.StudentRecord{
		ID:           id,
		FirstName:    "Student",
		LastName:     id,
		Email:        fmt.Sprintf("%s@example.com", id),
		Path:         string(model.PathRegular),
		Verification: string(model.VerificationVerified),
		Outcome:      string(model.OutcomePending),
		RegisteredAt: registered,
		ExamScore:    exam,
		SkillsScore:  skills,
	}
}

func TestRunSelection_CommitsQuotaPartition(t *testing.T) {
	now := time.Now()
	store := newMockStore(
		regularStudent("s1", 90, 90, now), // 90
		regularStudent("s2", 80, 80, now), // 80
		regularStudent("s3", 70, 70, now), // 70
	)
	notifier := &mockNotifier{}

	result, err := RunSelection(context.Background(), store, notifier, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.PathRegular,
	})
	require.NoError(t, err)

	// Quota 2: the two highest scores accepted, the third rejected
	assert.Equal(t, 2, result.AcceptedCount)
	assert.Equal(t, 1, result.RejectedCount)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, "accepted", store.outcomes["s1"])
	assert.Equal(t, "accepted", store.outcomes["s2"])
	assert.Equal(t, "rejected", store.outcomes["s3"])

	// Every decided student was notified, and the commit was audited
	assert.Len(t, notifier.sent, 3)
	assert.Empty(t, result.NotifyFailures)
	require.Len(t, store.auditEntries, 1)
	assert.Equal(t, "selection.commit", store.auditEntries[0].Action)
}

func TestRunSelection_DryRunWritesNothing(t *testing.T) {
	now := time.Now()
	store := newMockStore(regularStudent("s1", 90, 90, now))
	notifier := &mockNotifier{}

	result, err := RunSelection(context.Background(), store, notifier, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path:   model.PathRegular,
		DryRun: true,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.AcceptedCount)
	assert.Empty(t, store.outcomes)
	assert.Empty(t, store.auditEntries)
	assert.Empty(t, notifier.sent)
}

func TestRunSelection_IdempotentCommit(t *testing.T) {
	now := time.Now()
	store := newMockStore(
		regularStudent("s1", 90, 90, now),
		regularStudent("s2", 80, 80, now),
		regularStudent("s3", 70, 70, now),
	)

	opts := RunSelectionOptions{Path: model.PathRegular}
	_, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), opts)
	require.NoError(t, err)

	first := map[string]string{}
	for id, outcome := range store.outcomes {
		first[id] = outcome
	}

	// Re-running the same selection over the same snapshot re-applies the
	// same absolute writes and changes nothing
	_, err = RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, store.outcomes)
	assert.Equal(t, 2, store.commitCount)
}

func TestRunSelection_EmptyCandidateSet(t *testing.T) {
	// Verified students exist, but none on the requested path
	store := newMockStore(regularStudent("s1", 90, 90, time.Now()))

	_, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.PathAffirmation,
	})
	assert.ErrorIs(t, err, selection.ErrEmptyCandidateSet)
	assert.Empty(t, store.outcomes)
}

func TestRunSelection_ConcurrencyConflictPropagates(t *testing.T) {
	store := newMockStore(regularStudent("s1", 90, 90, time.Now()))
	store.outcomesErr = db.ErrConcurrencyConflict

	_, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.PathRegular,
	})
	assert.ErrorIs(t, err, db.ErrConcurrencyConflict)
}

func TestRunSelection_NotifyFailureIsPartialSuccessNotError(t *testing.T) {
	now := time.Now()
	store := newMockStore(
		regularStudent("s1", 90, 90, now),
		regularStudent("s2", 80, 80, now),
	)
	notifier := &mockNotifier{failFor: map[string]bool{"s2@example.com": true}}

	result, err := RunSelection(context.Background(), store, notifier, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.PathRegular,
	})

	// Outcomes are durable despite the delivery failure
	require.NoError(t, err)
	assert.Equal(t, "accepted", store.outcomes["s1"])
	assert.Equal(t, "accepted", store.outcomes["s2"])

	require.Len(t, result.NotifyFailures, 1)
	assert.Equal(t, "s2", result.NotifyFailures[0].StudentID)
	assert.Equal(t, "smtp unreachable", result.NotifyFailures[0].Error)
}

func TestRunSelection_AuditFailureIsPartialSuccessNotError(t *testing.T) {
	store := newMockStore(regularStudent("s1", 90, 90, time.Now()))
	store.auditErr = errors.New("audit table unavailable")

	result, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.PathRegular,
	})
	require.NoError(t, err)
	assert.Equal(t, "accepted", store.outcomes["s1"])
	assert.Equal(t, "audit table unavailable", result.AuditError)
}

func TestRunSelection_FilteredRunLeavesOtherPathsAlone(t *testing.T) {
	now := time.Now()
	affirmation := regularStudent("aff-1", 95, 95, now)
	affirmation.Path = string(model.PathAffirmation)
	store := newMockStore(regularStudent("s1", 90, 90, now), affirmation)

	_, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.PathRegular,
	})
	require.NoError(t, err)

	assert.Equal(t, "accepted", store.outcomes["s1"])
	_, touched := store.outcomes["aff-1"]
	assert.False(t, touched)
}

func TestRunSelection_WholeCohortProcessesAllPaths(t *testing.T) {
	now := time.Now()
	affirmation := regularStudent("aff-1", 95, 95, now)
	affirmation.Path = string(model.PathAffirmation)
	store := newMockStore(
		regularStudent("s1", 90, 90, now),
		regularStudent("s2", 80, 80, now),
		regularStudent("s3", 70, 70, now),
		affirmation,
	)

	result, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), RunSelectionOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.AllPaths(), result.Paths)
	assert.Equal(t, 3, result.AcceptedCount) // s1, s2 (regular quota 2) + aff-1 (affirmation quota 1)
	assert.Equal(t, "rejected", store.outcomes["s3"])
	assert.Equal(t, "accepted", store.outcomes["aff-1"])
}

func TestRunSelection_UnknownPathRejected(t *testing.T) {
	store := newMockStore()
	_, err := RunSelection(context.Background(), store, nil, testConfig(), zap.NewNop(), RunSelectionOptions{
		Path: model.AdmissionPath("vip"),
	})
	assert.ErrorContains(t, err, "unknown admission path")
}
