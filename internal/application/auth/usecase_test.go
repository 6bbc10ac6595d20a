package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/internal/domain"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/dropforge-api/pkg/jwt"
)

// --- Mocks ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) DeleteByPhone(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

const testSecret = "test-secret"

func newTestUseCase(repo *MockUserRepository) *AuthUseCase {
	return newAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, bcrypt.MinCost)
}

func existingUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: "user-1", Name: "Rahim", Phone: "01700000000", PasswordHash: hash, Role: entity.RoleCustomer}
}

// --- Register ---

func TestRegister_CreaClienteConToken(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.On("GetByPhone", ctx, "01700000000").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Phone == "01700000000" && u.Role == entity.RoleCustomer &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(nil)

	out, err := uc.Register(ctx, dto.RegisterRequest{Name: " Rahim ", Phone: "01700000000", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "Rahim", out.Name)
	assert.Equal(t, entity.RoleCustomer, out.Role)
	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.ID, userID)
	assert.Equal(t, entity.RoleCustomer, role)
	repo.AssertExpectations(t)
}

func TestRegister_TelefonoDuplicado_NoCreaUsuario(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.On("GetByPhone", ctx, "01700000000").Return(&entity.User{ID: "otro"}, nil)

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "X", Phone: "01700000000", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_CarreraResueltaPorIndiceUnico(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.On("GetByPhone", ctx, "01700000000").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicatePhone)

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "X", Phone: "01700000000", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)
}

func TestRegister_CamposFaltantes(t *testing.T) {
	uc := newTestUseCase(new(MockUserRepository))
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "X", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// --- Login ---

func TestLogin_Correcto(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	u := existingUser(t, "secret123")
	repo.On("GetByPhone", ctx, u.Phone).Return(u, nil)

	out, err := uc.Login(ctx, dto.LoginRequest{Phone: u.Phone, Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.ID)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_PasswordIncorrectoYTelefonoDesconocido_MismoError(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	u := existingUser(t, "secret123")
	repo.On("GetByPhone", ctx, u.Phone).Return(u, nil)
	repo.On("GetByPhone", ctx, "01799999999").Return(nil, nil)

	out1, errWrongPass := uc.Login(ctx, dto.LoginRequest{Phone: u.Phone, Password: "nope"})
	out2, errUnknown := uc.Login(ctx, dto.LoginRequest{Phone: "01799999999", Password: "secret123"})

	assert.Nil(t, out1)
	assert.Nil(t, out2)
	assert.Equal(t, errWrongPass, errUnknown, "no debe distinguirse teléfono desconocido de password incorrecto")
	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
}

// --- UpdateProfile ---

func TestUpdateProfile_ActualizaSoloCamposPresentes(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	u := existingUser(t, "secret123")
	oldHash := u.PasswordHash
	repo.On("GetByID", ctx, u.ID).Return(u, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	newName := "Rahim Updated"
	out, err := uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Rahim Updated", out.Name)
	assert.Equal(t, "01700000000", out.Phone)
	assert.Equal(t, oldHash, u.PasswordHash, "sin password en el patch no se re-hashea")
	assert.NotEmpty(t, out.Token)
}

func TestUpdateProfile_RehasheaPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	u := existingUser(t, "secret123")
	repo.On("GetByID", ctx, u.ID).Return(u, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	pw := "nueva-clave"
	_, err := uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Password: &pw})
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva-clave")))
	assert.NotEqual(t, "nueva-clave", u.PasswordHash)
}

func TestUpdateProfile_TelefonoDeOtroUsuario(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	u := existingUser(t, "secret123")
	repo.On("GetByID", ctx, u.ID).Return(u, nil)
	repo.On("GetByPhone", ctx, "01788888888").Return(&entity.User{ID: "otro"}, nil)

	phone := "01788888888"
	_, err := uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrDuplicatePhone)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	repo.On("GetByID", ctx, "ghost").Return(nil, nil)

	_, err := uc.Me(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// --- Passwords largos ---

func TestRegister_PasswordMayorA72Bytes_EntradaInvalida(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "X", Phone: "01700000000", Password: strings.Repeat("x", 73)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_PasswordDe72Bytes_Aceptado(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)
	ctx := context.Background()
	repo.On("GetByPhone", ctx, "01700000000").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "X", Phone: "01700000000", Password: strings.Repeat("x", 72)})
	assert.NoError(t, err)
}

func TestUpdateProfile_PasswordMayorA72Bytes_EntradaInvalida(t *testing.T) {
	repo := new(MockUserRepository)
	uc := newTestUseCase(repo)

	pw := strings.Repeat("á", 37) // 74 bytes en UTF-8
	_, err := uc.UpdateProfile(context.Background(), "user-1", dto.UpdateProfileRequest{Password: &pw})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHashPassword_PasswordMayorA72Bytes(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
