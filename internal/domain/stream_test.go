package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageEvent_Valid(t *testing.T) {
	tests := []struct {
		name     string
		event    StageEvent
		expected bool
	}{
		{
			name:     "both ids present",
			event:    StageEvent{AreaID: uuid.New(), TaskID: uuid.New()},
			expected: true,
		},
		{
			name:     "missing task id",
			event:    StageEvent{AreaID: uuid.New()},
			expected: false,
		},
		{
			name:     "missing area id",
			event:    StageEvent{TaskID: uuid.New()},
			expected: false,
		},
		{
			name:     "empty event",
			event:    StageEvent{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Valid())
		})
	}
}

func TestStageEvent_JSONOmitsEmptyBBox(t *testing.T) {
	event := StageEvent{AreaID: uuid.New(), TaskID: uuid.New()}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bbox")

	event.BBox = &BoundingBox{MinLat: 1, MinLon: 2, MaxLat: 3, MaxLon: 4}
	data, err = json.Marshal(event)
	require.NoError(t, err)

	var decoded StageEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.BBox)
	assert.Equal(t, *event.BBox, *decoded.BBox)
}
