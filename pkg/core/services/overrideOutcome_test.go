package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/pkg/core/model"
)

func TestOverrideOutcome_WritesAndAudits(t *testing.T) {
	store := newMockStore()

	err := OverrideOutcome(context.Background(), store, zap.NewNop(), "s1", model.OutcomeAccepted)
	require.NoError(t, err)

	assert.Equal(t, "accepted", store.outcomes["s1"])
	require.Len(t, store.auditEntries, 1)
	assert.Equal(t, "outcome.override", store.auditEntries[0].Action)
	assert.Equal(t, "s1", store.auditEntries[0].EntityID)
}

func TestOverrideOutcome_OnlyAcceptedOrRejected(t *testing.T) {
	store := newMockStore()

	// Pending is reserved for the re-registration flow
	err := OverrideOutcome(context.Background(), store, zap.NewNop(), "s1", model.OutcomePending)
	assert.Error(t, err)
	assert.Empty(t, store.outcomes)

	err = OverrideOutcome(context.Background(), store, zap.NewNop(), "s1", model.OutcomeStatus("waitlisted"))
	assert.Error(t, err)
}
