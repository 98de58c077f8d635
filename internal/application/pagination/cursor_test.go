package pagination_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/application/pagination"
)

type item struct{ id string }

func ids(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: fmt.Sprintf("id-%02d", i)}
	}
	return out
}

func TestCut_PaginaIncompleta_SinCursor(t *testing.T) {
	page, next := pagination.Cut(ids(3), 4, func(i item) string { return i.id })
	assert.Len(t, page, 3)
	assert.Nil(t, next, "menos de pageSize filas implica fin de lista")
}

func TestCut_PaginaExacta_SinCursor(t *testing.T) {
	page, next := pagination.Cut(ids(4), 4, func(i item) string { return i.id })
	assert.Len(t, page, 4)
	assert.Nil(t, next)
}

func TestCut_FilaExtra_DevuelveCursor(t *testing.T) {
	// El repositorio trajo pageSize+1: la fila sobrante es el cursor.
	page, next := pagination.Cut(ids(5), 4, func(i item) string { return i.id })
	assert.Len(t, page, 4)
	require.NotNil(t, next)
	assert.Equal(t, "id-04", *next, "el cursor debe ser el id de la fila excluida")
}

func TestCut_ListaVacia(t *testing.T) {
	page, next := pagination.Cut([]item{}, 4, func(i item) string { return i.id })
	assert.Empty(t, page)
	assert.Nil(t, next)
}

func TestExtra(t *testing.T) {
	assert.Equal(t, 5, pagination.Extra(4))
}
