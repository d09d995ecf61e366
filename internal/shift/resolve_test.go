package shift_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/entity"
	"pedidos-tracker/internal/shift"
)

func mkShift(id int, start, end string) entity.Shift {
	layout := "02/01/2006 15:04"
	s, _ := time.Parse(layout, start)
	e, _ := time.Parse(layout, end)
	return entity.Shift{ID: id, Date: s.Truncate(24 * time.Hour), Start: s, End: e}
}

func TestResolve(t *testing.T) {
	shifts := []entity.Shift{
		mkShift(1, "05/03/2024 12:00", "05/03/2024 16:00"),
		mkShift(2, "05/03/2024 20:00", "06/03/2024 00:30"),
	}

	id, err := shift.Resolve(time.Date(2024, 3, 5, 23, 50, 0, 0, time.UTC), shifts)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	// inclusive bounds
	id, err = shift.Resolve(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC), shifts)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestResolveNotFound(t *testing.T) {
	shifts := []entity.Shift{mkShift(1, "05/03/2024 12:00", "05/03/2024 16:00")}
	_, err := shift.Resolve(time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC), shifts)
	assert.ErrorIs(t, err, common.ErrShiftNotFound)
}

func TestResolveAmbiguous(t *testing.T) {
	shifts := []entity.Shift{
		mkShift(1, "05/03/2024 12:00", "05/03/2024 20:00"),
		mkShift(2, "05/03/2024 18:00", "06/03/2024 00:30"),
	}
	_, err := shift.Resolve(time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC), shifts)
	assert.ErrorIs(t, err, common.ErrShiftAmbiguous)
}
