package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionForStatus(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{StatusServiceable, ConditionGood},
		{StatusForRepair, ConditionNotWorking},
		{StatusDefective, ConditionNotWorking},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			assert.Equal(t, tc.want, ConditionForStatus(tc.status))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusServiceable))
	assert.True(t, IsValidStatus(StatusForRepair))
	assert.True(t, IsValidStatus(StatusDefective))
	assert.False(t, IsValidStatus("broken"))
	assert.False(t, IsValidStatus(""))
}
