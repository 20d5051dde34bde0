package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/pkg/core/model"
	"github.com/sekolahku/ppdb/pkg/db"
)

func TestComputeScores_RebuildsReportAverageFromSemesters(t *testing.T) {
	student := regularStudent("s1", 70, 90, time.Now())
	student.Path = string(model.PathAcademicAchievement)
	student.AchievementPoints = 10
	student.ReportAverage = 50 // stale cached value, must be rebuilt

	store := newMockStore(student)
	store.semester = []db.SemesterGradeRecord{
		{StudentID: "s1", Semester: 1, Average: 80},
		{StudentID: "s1", Semester: 2, Average: 90},
	}

	result, err := ComputeScores(context.Background(), store, testConfig(), zap.NewNop(), ComputeScoresOptions{})
	require.NoError(t, err)

	// Report average = mean of semester means = (80+90)/2 = 85
	// Academic path: 85*0.3 + 70*0.3 + 90*0.3 + 10 = 25.5+21+27+10 = 83.5
	require.Equal(t, 1, result.Updated)
	require.Len(t, store.scoreUpdates, 1)
	assert.Equal(t, 85.0, store.scoreUpdates[0].ReportAverage)
	assert.Equal(t, 83.50, store.scoreUpdates[0].FinalScore)
}

func TestComputeScores_KeepsStoredAverageWithoutSemesterRows(t *testing.T) {
	student := regularStudent("s1", 70, 90, time.Now())
	student.ReportAverage = 88 // no semester rows exist for this student

	store := newMockStore(student)

	_, err := ComputeScores(context.Background(), store, testConfig(), zap.NewNop(), ComputeScoresOptions{})
	require.NoError(t, err)

	require.Len(t, store.scoreUpdates, 1)
	assert.Equal(t, 88.0, store.scoreUpdates[0].ReportAverage)
	// Regular path ignores the report component: 70*0.5 + 90*0.5 = 80
	assert.Equal(t, 80.00, store.scoreUpdates[0].FinalScore)
}

func TestComputeScores_SingleBulkWrite(t *testing.T) {
	now := time.Now()
	store := newMockStore(
		regularStudent("s1", 60, 60, now),
		regularStudent("s2", 70, 70, now),
		regularStudent("s3", 80, 80, now),
	)

	result, err := ComputeScores(context.Background(), store, testConfig(), zap.NewNop(), ComputeScoresOptions{})
	require.NoError(t, err)

	// One batch covering every student, not a write per row
	assert.Equal(t, 3, result.Updated)
	assert.Len(t, store.scoreUpdates, 3)
}

func TestComputeScores_EmptyFilterResult(t *testing.T) {
	store := newMockStore(regularStudent("s1", 60, 60, time.Now()))

	result, err := ComputeScores(context.Background(), store, testConfig(), zap.NewNop(), ComputeScoresOptions{
		Path: model.PathAffirmation,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Updated)
	assert.Empty(t, store.scoreUpdates)
}
