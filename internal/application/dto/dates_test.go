package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bizboard-api/internal/domain"
)

func TestDateRangeQuery_Parse(t *testing.T) {
	dr, err := DateRangeQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *dr.Start)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *dr.End)
	assert.True(t, dr.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, dr.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))

	dr, err = DateRangeQuery{}.Parse()
	require.NoError(t, err)
	assert.Nil(t, dr.Start)
	assert.Nil(t, dr.End)
}

func TestDateRangeQuery_Invalido(t *testing.T) {
	_, err := DateRangeQuery{StartDate: "01/03/2024"}.Parse()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = DateRangeQuery{StartDate: "2024-04-01", EndDate: "2024-03-01"}.Parse()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 0, NewPagination(1, 20, 0).Pages)
}
