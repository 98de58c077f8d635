package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/application/upload"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/memory"
	"github.com/jhoicas/BiciFlow-api/pkg/logger"
)

type fakeStore struct {
	saved map[string][]byte
	fail  bool
}

func (f *fakeStore) Save(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("storage caído")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[key] = data
	return "https://cdn.bikes.co/uploads/" + key, nil
}

func newUploadUC(t *testing.T, store *memory.Store, objects *fakeStore) *upload.UploadUseCase {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return upload.NewUploadUseCase(objects, store.BikeRequests(), log)
}

func TestStore_SubidaValida(t *testing.T) {
	objects := &fakeStore{}
	uc := newUploadUC(t, memory.NewStore(), objects)
	payload := bytes.Repeat([]byte{0xAB}, 1024)

	out, err := uc.Store(context.Background(), uuid.New().String(), "", "image/png", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Key, "bike-requests/"))
	assert.True(t, strings.HasSuffix(out.Key, ".png"))
	assert.Contains(t, out.URL, out.Key)
	assert.False(t, out.Attached)
	assert.Equal(t, payload, objects.saved[out.Key])
}

func TestStore_RechazaImagenGrande(t *testing.T) {
	uc := newUploadUC(t, memory.NewStore(), &fakeStore{})

	_, err := uc.Store(context.Background(), uuid.New().String(), "", "image/jpeg", upload.MaxImageSize+1, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_RechazaTipoNoPermitido(t *testing.T) {
	uc := newUploadUC(t, memory.NewStore(), &fakeStore{})

	_, err := uc.Store(context.Background(), uuid.New().String(), "", "application/pdf", 100, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Con request_id la URL queda ligada a la solicitud del comprador.
func TestStore_LigaURLALaSolicitud(t *testing.T) {
	store := memory.NewStore()
	uc := newUploadUC(t, store, &fakeStore{})
	now := time.Now()
	buyerID := uuid.New().String()
	req := &entity.BikeRequest{
		ID: uuid.New().String(), BikeModel: "Trek X1", Reason: "Commuting",
		Status: entity.StatusPending, BuyerID: buyerID, SellerID: uuid.New().String(),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.BikeRequests().Create(req))

	out, err := uc.Store(context.Background(), buyerID, req.ID, "image/webp", 512, bytes.NewReader(make([]byte, 512)))
	require.NoError(t, err)
	assert.True(t, out.Attached)

	reloaded, err := store.BikeRequests().GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, out.URL, reloaded.URL)
}

// Si la solicitud no es del caller, la subida se conserva y Attached
// queda en false (inconsistencia aceptada).
func TestStore_EnlaceFallido_DevuelveURLIgual(t *testing.T) {
	store := memory.NewStore()
	uc := newUploadUC(t, store, &fakeStore{})
	now := time.Now()
	req := &entity.BikeRequest{
		ID: uuid.New().String(), BikeModel: "Trek X1", Reason: "Commuting",
		Status: entity.StatusPending, BuyerID: uuid.New().String(), SellerID: uuid.New().String(),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.BikeRequests().Create(req))

	out, err := uc.Store(context.Background(), uuid.New().String(), req.ID, "image/gif", 256, bytes.NewReader(make([]byte, 256)))
	require.NoError(t, err, "el enlace fallido no es un error de la subida")
	assert.False(t, out.Attached)
	assert.NotEmpty(t, out.URL)

	reloaded, err := store.BikeRequests().GetByID(req.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.URL, "la solicitud ajena no debe tocarse")
}

func TestStore_FalloDelStorage(t *testing.T) {
	uc := newUploadUC(t, memory.NewStore(), &fakeStore{fail: true})

	_, err := uc.Store(context.Background(), uuid.New().String(), "", "image/png", 100, bytes.NewReader(make([]byte, 100)))
	assert.Error(t, err)
}
