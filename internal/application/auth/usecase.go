package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/domain/repository"
	"github.com/jhoicas/dropforge-api/pkg/jwt"
)

// MaxPasswordBytes límite de bcrypt; contraseñas más largas se rechazan como entrada inválida.
const MaxPasswordBytes = 72

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de credenciales: registro, login, perfil y listado de usuarios.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtCfg    JWTConfig
	hashCost  int
	dummyHash []byte // se compara cuando el teléfono no existe para igualar tiempos
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return newAuthUseCase(userRepo, jwtCfg, bcrypt.DefaultCost)
}

func newAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, cost int) *AuthUseCase {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("dropforge-dummy-password"), cost)
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, hashCost: cost, dummyHash: dummy, now: time.Now}
}

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", errPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register crea un cliente nuevo. Devuelve ErrDuplicatePhone si el teléfono ya está registrado.
// La verificación previa es optimista; el índice único de phone es la garantía real.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, phone y password son requeridos", domain.ErrInvalidInput)
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, errPasswordTooLong
	}
	existing, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicatePhone
	}
	hash, err := HashPassword(in.Password, uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.authResponse(user)
}

// Login verifica teléfono/password y emite un token.
// Teléfono desconocido y password incorrecto producen el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByPhone(ctx, strings.TrimSpace(in.Phone))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.authResponse(user)
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile aplica los campos presentes (nombre, teléfono, password) y emite un token nuevo.
// Un campo ausente o vacío no modifica el valor guardado.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.AuthResponse, error) {
	if in.Password != nil && len(*in.Password) > MaxPasswordBytes {
		return nil, errPasswordTooLong
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if v := trimmed(in.Name); v != "" {
		user.Name = v
	}
	if v := trimmed(in.Phone); v != "" && v != user.Phone {
		other, err := uc.userRepo.GetByPhone(ctx, v)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrDuplicatePhone
		}
		user.Phone = v
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := HashPassword(*in.Password, uc.hashCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.authResponse(user)
}

// ListUsers lista todas las cuentas (solo administradores).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func (uc *AuthUseCase) authResponse(u *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{ID: u.ID, Name: u.Name, Phone: u.Phone, Role: u.Role, Token: token}, nil
}

var errPasswordTooLong = fmt.Errorf("%w: password excede %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
