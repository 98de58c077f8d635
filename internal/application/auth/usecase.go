package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/BiciFlow-api/internal/application/dto"
	"github.com/jhoicas/BiciFlow-api/internal/domain"
	"github.com/jhoicas/BiciFlow-api/internal/domain/entity"
	"github.com/jhoicas/BiciFlow-api/internal/domain/repository"
	"github.com/jhoicas/BiciFlow-api/pkg/jwt"
)

// TxRunner ejecuta el onboarding dentro de una transacción: la creación
// de empresa/usuario/suscripción y el canje de código deben ser
// atómicos respecto a canjes concurrentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		codes repository.CodeRepository,
		subs repository.SubscriptionRepository,
	) error) error
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de onboarding y login. El onboarding cubre
// los dos caminos: vendedor (crea la empresa) y comprador (canjea un
// código de invitación).
type AuthUseCase struct {
	userRepo repository.UserRepository
	tx       TxRunner
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tx: tx, jwtCfg: jwtCfg}
}

// RegisterSeller crea la empresa, el usuario SELLER y su suscripción
// FREE en una sola transacción, y devuelve sesión iniciada.
func (uc *AuthUseCase) RegisterSeller(ctx context.Context, in dto.RegisterSellerRequest) (*dto.LoginResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		Website:   in.CompanyWebsite,
		Logo:      in.CompanyLogo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Role:         entity.RoleSeller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Plan:      entity.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.tx.Run(ctx, func(
		users repository.UserRepository,
		companies repository.CompanyRepository,
		_ repository.CodeRepository,
		subs repository.SubscriptionRepository,
	) error {
		if err := companies.Create(company); err != nil {
			return err
		}
		if err := users.Create(user); err != nil {
			return err
		}
		return subs.Create(sub)
	})
	if err != nil {
		return nil, err
	}
	return uc.session(user)
}

// RegisterBuyer canjea un código de invitación sin usar y crea el
// usuario BUYER ligado a la empresa del código. El marcado del código
// como usado es un compare-and-set dentro de la misma transacción que
// crea al usuario: de dos canjes concurrentes, a lo sumo uno gana; el
// otro recibe ErrInvalidCode.
func (uc *AuthUseCase) RegisterBuyer(ctx context.Context, in dto.RegisterBuyerRequest) (*dto.LoginResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Role:         entity.RoleBuyer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(
		users repository.UserRepository,
		_ repository.CompanyRepository,
		codes repository.CodeRepository,
		_ repository.SubscriptionRepository,
	) error {
		code, err := codes.FindUnused(in.InvitationCode)
		if err != nil {
			return err
		}
		if code == nil {
			return domain.ErrInvalidCode
		}
		won, err := codes.MarkUsed(code.ID)
		if err != nil {
			return err
		}
		if !won {
			// Otro canje concurrente lo marcó primero.
			return domain.ErrInvalidCode
		}
		user.CompanyID = code.CompanyID
		return users.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(user)
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse proyección sin password de un usuario.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Image:     u.Image,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
