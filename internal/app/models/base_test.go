package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuditStampsKeepLastUpdatedDateNonDecreasing(t *testing.T) {
	creator := uuid.New()
	editor := uuid.New()
	start := time.Date(2025, time.June, 14, 9, 30, 0, 0, time.UTC)

	var entity BaseModel
	entity.StampCreate(creator, start)
	assert.Equal(t, start, entity.CreatedDate)
	assert.Equal(t, start, entity.LastUpdatedDate)

	previous := entity.LastUpdatedDate
	for _, step := range []time.Duration{0, time.Second, time.Minute, 48 * time.Hour} {
		entity.StampUpdate(editor, previous.Add(step))
		assert.False(t, entity.LastUpdatedDate.Before(previous))
		previous = entity.LastUpdatedDate
	}

	// Creation half of the audit quad never moves on update.
	assert.Equal(t, creator, entity.CreatedByUserID)
	assert.Equal(t, start, entity.CreatedDate)
	assert.Equal(t, editor, entity.LastUpdatedByUserID)
}
