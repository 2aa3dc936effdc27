package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanIsEligible(t *testing.T) {
	assert.True(t, PlanState{Available: true}.IsEligible())
	assert.False(t, PlanState{Available: false}.IsEligible())
	assert.False(t, PlanState{Available: true, OnHold: true}.IsEligible())
	assert.False(t, PlanState{Available: true, Canceled: true}.IsEligible())
	assert.False(t, PlanState{Available: true, Ended: true}.IsEligible())
	assert.False(t, PlanState{Available: true, Exhausted: true}.IsEligible())
}

func TestEligibleAnyIsOrSemantics(t *testing.T) {
	// One exhausted plan plus one clean plan: still eligible.
	assert.True(t, EligibleAny([]PlanState{
		{Available: false},
		{Available: true},
	}))

	assert.False(t, EligibleAny([]PlanState{
		{Available: true, Exhausted: true},
		{Available: true, OnHold: true},
	}))

	// Zero plans is never eligible.
	assert.False(t, EligibleAny(nil))
	assert.False(t, EligibleAny([]PlanState{}))
}

func TestTruthyFlagNormalization(t *testing.T) {
	truthy := []interface{}{true, "Y", "y", "T", "1", "true", "YES", float64(1), 1}
	for _, v := range truthy {
		assert.True(t, TruthyFlag(v), "expected %v (%T) to be truthy", v, v)
	}

	falsy := []interface{}{false, "N", "F", "0", "false", "", " ", nil, float64(0), 0}
	for _, v := range falsy {
		assert.False(t, TruthyFlag(v), "expected %v (%T) to be falsy", v, v)
	}
}
