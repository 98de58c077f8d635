package request_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/application/request"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/infrastructure/memory"
)

// seedUser crea un usuario con empresa propia si companyID está vacío.
func seedUser(t *testing.T, store *memory.Store, role, companyID string) *entity.User {
	t.Helper()
	now := time.Now()
	if companyID == "" {
		company := &entity.Company{ID: uuid.New().String(), Name: "Bikes & Co", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, store.Companies().Create(company))
		companyID = company.ID
	}
	u := &entity.User{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Email:     uuid.New().String() + "@bikes.co",
		Firstname: "Test",
		Lastname:  "User",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Users().Create(u))
	return u
}

// Escenario completo: el comprador pide una Trek X1, el vendedor la ve
// en su bandeja y la aprueba con una nota.
func TestRequest_EscenarioCompradorVendedor(t *testing.T) {
	store := memory.NewStore()
	uc := request.NewRequestUseCase(store.BikeRequests(), store.Users())
	seller := seedUser(t, store, entity.RoleSeller, "")
	buyer := seedUser(t, store, entity.RoleBuyer, seller.CompanyID)

	created, err := uc.Create(buyer.ID, dto.CreateBikeRequestRequest{
		SellerID:  seller.ID,
		BikeModel: "Trek X1",
		Reason:    "Commuting to the office",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, created.Status)
	assert.Empty(t, created.DecidedBy, "una solicitud PENDING no tiene decisor")

	// El vendedor la ve en su bandeja.
	inbox, err := uc.ListForSeller(seller.ID, "")
	require.NoError(t, err)
	require.Len(t, inbox.BikeRequests, 1)
	assert.Equal(t, "Trek X1", inbox.BikeRequests[0].BikeModel)
	assert.Equal(t, buyer.ID, inbox.BikeRequests[0].Buyer.ID)

	// Y la aprueba con nota.
	decided, err := uc.Decide(seller.ID, seller.CompanyID, created.ID, dto.DecideRequestRequest{
		Status: entity.StatusApproved,
		Notes:  "Pickup Friday",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, decided.Status)
	assert.Equal(t, "Pickup Friday", decided.Notes)
	assert.Equal(t, seller.ID, decided.DecidedBy, "debe registrar quién decidió")

	detail, err := uc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, detail.Status)
}

// Un vendedor de otra empresa no puede decidir; la solicitud queda
// intacta.
func TestDecide_OtraEmpresa_Unauthorized(t *testing.T) {
	store := memory.NewStore()
	uc := request.NewRequestUseCase(store.BikeRequests(), store.Users())
	seller := seedUser(t, store, entity.RoleSeller, "")
	buyer := seedUser(t, store, entity.RoleBuyer, seller.CompanyID)
	intruder := seedUser(t, store, entity.RoleSeller, "") // empresa distinta

	created, err := uc.Create(buyer.ID, dto.CreateBikeRequestRequest{
		SellerID: seller.ID, BikeModel: "Trek X1", Reason: "Commuting",
	})
	require.NoError(t, err)

	_, err = uc.Decide(intruder.ID, intruder.CompanyID, created.ID, dto.DecideRequestRequest{
		Status: entity.StatusApproved,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	detail, err := uc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, detail.Status, "el estado no debe cambiar")
	assert.Empty(t, detail.DecidedBy)
}

// Una solicitud ya decidida no admite una segunda decisión.
func TestDecide_SolicitudYaDecidida_Conflict(t *testing.T) {
	store := memory.NewStore()
	uc := request.NewRequestUseCase(store.BikeRequests(), store.Users())
	seller := seedUser(t, store, entity.RoleSeller, "")
	buyer := seedUser(t, store, entity.RoleBuyer, seller.CompanyID)

	created, err := uc.Create(buyer.ID, dto.CreateBikeRequestRequest{
		SellerID: seller.ID, BikeModel: "Trek X1", Reason: "Commuting",
	})
	require.NoError(t, err)

	_, err = uc.Decide(seller.ID, seller.CompanyID, created.ID, dto.DecideRequestRequest{Status: entity.StatusRejected})
	require.NoError(t, err)

	_, err = uc.Decide(seller.ID, seller.CompanyID, created.ID, dto.DecideRequestRequest{Status: entity.StatusApproved})
	assert.ErrorIs(t, err, domain.ErrConflict)

	detail, err := uc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, detail.Status, "la primera decisión debe prevalecer")
}

func TestDecide_StatusInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := request.NewRequestUseCase(store.BikeRequests(), store.Users())
	seller := seedUser(t, store, entity.RoleSeller, "")

	_, err := uc.Decide(seller.ID, seller.CompanyID, uuid.New().String(), dto.DecideRequestRequest{Status: "MAYBE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_DestinatarioNoVendedor(t *testing.T) {
	store := memory.NewStore()
	uc := request.NewRequestUseCase(store.BikeRequests(), store.Users())
	buyer := seedUser(t, store, entity.RoleBuyer, "")
	otherBuyer := seedUser(t, store, entity.RoleBuyer, buyer.CompanyID)

	_, err := uc.Create(buyer.ID, dto.CreateBikeRequestRequest{
		SellerID: otherBuyer.ID, BikeModel: "Trek X1", Reason: "Commuting",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = uc.Create(buyer.ID, dto.CreateBikeRequestRequest{
		SellerID: uuid.New().String(), BikeModel: "Trek X1", Reason: "Commuting",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Recorrido completo del cursor: 6 solicitudes con página de 4 dan una
// página de 4 con cursor y una de 2 con nextCursor null; cada elemento
// aparece exactamente una vez.
func TestListForBuyer_RecorridoCompletoDelCursor(t *testing.T) {
	store := memory.NewStore()
	uc := request.NewRequestUseCase(store.BikeRequests(), store.Users())
	seller := seedUser(t, store, entity.RoleSeller, "")
	buyer := seedUser(t, store, entity.RoleBuyer, seller.CompanyID)

	for i := 0; i < 6; i++ {
		_, err := uc.Create(buyer.ID, dto.CreateBikeRequestRequest{
			SellerID: seller.ID, BikeModel: "Trek X1", Reason: "Commuting",
		})
		require.NoError(t, err)
	}

	first, err := uc.ListForBuyer(buyer.ID, "")
	require.NoError(t, err)
	assert.Len(t, first.BikeRequests, 4)
	require.NotNil(t, first.NextCursor, "quedan elementos: debe haber cursor")

	second, err := uc.ListForBuyer(buyer.ID, *first.NextCursor)
	require.NoError(t, err)
	assert.Len(t, second.BikeRequests, 2)
	assert.Nil(t, second.NextCursor, "página final: nextCursor debe ser null")

	seen := make(map[string]bool)
	for _, r := range append(first.BikeRequests, second.BikeRequests...) {
		assert.False(t, seen[r.ID], "ningún elemento debe repetirse entre páginas")
		seen[r.ID] = true
	}
	assert.Len(t, seen, 6, "el recorrido debe devolver los 6 elementos")
}
