// Package pagination implementa el contrato de paginación por cursor
// compartido por todos los listados: se piden pageSize+1 filas a partir
// del cursor; la fila extra aporta el nextCursor y se excluye de la
// página. nextCursor nil señala fin de lista.
package pagination

// Extra devuelve cuántas filas pedir al repositorio para una página.
func Extra(pageSize int) int {
	return pageSize + 1
}

// Cut recorta items al tamaño de página y calcula el cursor siguiente.
// idOf extrae el identificador estable de cada elemento. Si el
// repositorio devolvió pageSize+1 filas, el id de la fila sobrante es
// el cursor de la página siguiente.
func Cut[T any](items []T, pageSize int, idOf func(T) string) ([]T, *string) {
	if len(items) <= pageSize {
		return items, nil
	}
	next := idOf(items[pageSize])
	return items[:pageSize], &next
}
