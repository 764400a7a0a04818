package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestSamePrior(t *testing.T) {
	id := uuid.New()
	other := uuid.New()
	latest := &entity.CashClosing{ID: id}

	assert.True(t, samePrior(nil, nil))
	assert.True(t, samePrior(latest, &id))
	assert.False(t, samePrior(latest, &other))
	assert.False(t, samePrior(latest, nil))
	assert.False(t, samePrior(nil, &id))
}
