package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Monthly, p)

	p, err = Parse("weekly")
	require.NoError(t, err)
	assert.Equal(t, Weekly, p)

	_, err = Parse("yearly")
	assert.Error(t, err)
}

func TestBucketer_Labels(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	start, label := For(Daily).Key(ts)
	assert.Equal(t, "2024-03-15", label)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)

	start, label = For(Monthly).Key(ts)
	assert.Equal(t, "2024-03", label)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)

	// 15/03/2024 es viernes; la semana ISO empieza el lunes 11
	start, label = For(Weekly).Key(ts)
	assert.Equal(t, "2024-W11", label)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), start)
}

func TestWeekly_CambioDeAnio(t *testing.T) {
	// 01/01/2021 pertenece a la semana 53 de 2020
	_, label := For(Weekly).Key(time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2020-W53", label)

	// domingo sigue en la semana del lunes anterior
	start, _ := For(Weekly).Key(time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), start)
}

func TestFor_Desconocido(t *testing.T) {
	assert.Equal(t, "month", For("quarterly").SQLUnit)
}
