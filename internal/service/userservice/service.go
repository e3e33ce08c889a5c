package userservice

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
	"petconnect/internal/pkg/token"
)

// AuthResult é devolvido no registro e no login: o usuário (sem hash)
// e o JWT de sessão.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Service implementa registro, login e consulta do usuário autenticado.
type Service struct {
	users  domain.UserRepository
	tokens token.TokenService
	logger logger.Logger
}

// NewService cria o serviço de usuários.
func NewService(users domain.UserRepository, tokens token.TokenService, log logger.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: log,
	}
}

// Register cria um usuário novo com o papel "user" e já devolve o token
// de sessão. Email duplicado vira ConflictError vindo do repositório.
func (s *Service) Register(ctx context.Context, reg domain.UserRegistration) (AuthResult, error) {
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return AuthResult{}, apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if len(reg.Password) < 6 {
		return AuthResult{}, apperror.NewValidationError("A senha deve ter no mínimo 6 caracteres.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, apperror.NewInternalError("Falha ao gerar o hash da senha.", err)
	}

	user, err := s.users.Save(ctx, domain.User{
		Name:         reg.Name,
		Email:        strings.ToLower(strings.TrimSpace(reg.Email)),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return AuthResult{}, err
	}

	signed, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return AuthResult{}, apperror.NewInternalError("Falha ao gerar o token de sessão.", err)
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return AuthResult{User: user, Token: signed}, nil
}

// Login autentica por email e senha. Credencial inválida devolve sempre
// a mesma mensagem, sem distinguir email inexistente de senha errada.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	signed, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return AuthResult{}, apperror.NewInternalError("Falha ao gerar o token de sessão.", err)
	}

	return AuthResult{User: user, Token: signed}, nil
}

// Me devolve o usuário dono do token atual.
func (s *Service) Me(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, apperror.NewUnauthorizedError("Usuário não autenticado.")
	}
	return s.users.FindByID(ctx, userID)
}
