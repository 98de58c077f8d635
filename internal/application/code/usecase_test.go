package code_test

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/application/code"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/memory"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestGenerate_CodigoDe6Digitos(t *testing.T) {
	store := memory.NewStore()
	uc := code.NewCodeUseCase(store.Codes())
	companyID := uuid.New().String()

	out, err := uc.Generate(companyID)
	require.NoError(t, err)
	assert.Regexp(t, sixDigits, out.Code, "el código debe ser de 6 dígitos numéricos")
	assert.Equal(t, companyID, out.CompanyID)
	assert.False(t, out.Used, "un código recién emitido está sin usar")
}

func TestGenerate_SinEmpresa(t *testing.T) {
	store := memory.NewStore()
	uc := code.NewCodeUseCase(store.Codes())

	_, err := uc.Generate("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Borrar un código ya borrado devuelve ErrNotFound, sin pánico.
func TestDelete_CodigoYaBorrado(t *testing.T) {
	store := memory.NewStore()
	uc := code.NewCodeUseCase(store.Codes())
	companyID := uuid.New().String()

	created, err := uc.Generate(companyID)
	require.NoError(t, err)

	deleted, err := uc.Delete(companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = uc.Delete(companyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"el segundo borrado debe fallar limpio")
}

// Un código de otra empresa no se puede borrar.
func TestDelete_CodigoDeOtraEmpresa(t *testing.T) {
	store := memory.NewStore()
	uc := code.NewCodeUseCase(store.Codes())

	created, err := uc.Generate(uuid.New().String())
	require.NoError(t, err)

	_, err = uc.Delete(uuid.New().String(), created.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// 7 códigos con página de 5: 5 + cursor, luego 2 + null.
func TestList_PaginacionPorCursor(t *testing.T) {
	store := memory.NewStore()
	uc := code.NewCodeUseCase(store.Codes())
	companyID := uuid.New().String()

	for i := 0; i < 7; i++ {
		_, err := uc.Generate(companyID)
		require.NoError(t, err)
	}

	first, err := uc.List(companyID, "")
	require.NoError(t, err)
	assert.Len(t, first.Codes, 5)
	require.NotNil(t, first.NextCursor)

	second, err := uc.List(companyID, *first.NextCursor)
	require.NoError(t, err)
	assert.Len(t, second.Codes, 2)
	assert.Nil(t, second.NextCursor)
}
