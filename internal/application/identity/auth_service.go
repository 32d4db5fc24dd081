package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/identity"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, login and password recovery
type AuthService struct {
	userRepo       identity.UserRepository
	resetRepo      identity.PasswordResetRepository
	jwtService     *auth.JWTService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	resetRepo identity.PasswordResetRepository,
	jwtService *auth.JWTService,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		resetRepo:      resetRepo,
		jwtService:     jwtService,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Register creates a new account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		return nil, err
	}

	s.publishEvents(ctx, user)

	return s.authResponse(user)
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Refresh exchanges a valid refresh token for a fresh pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidToken
		}
		return nil, err
	}

	return s.authResponse(user)
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// RequestPasswordReset issues a reset token for the account. An unknown
// email succeeds without doing anything so the endpoint cannot be used
// to probe which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req PasswordResetRequestRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := identity.NewPasswordResetToken(user.ID)
	if err != nil {
		return err
	}
	if err := s.resetRepo.Save(ctx, token); err != nil {
		return err
	}

	user.AddDomainEvent(identity.NewPasswordResetRequestedEvent(user, token.Token))
	s.publishEvents(ctx, user)

	return nil
}

// ConfirmPasswordReset redeems a token and sets the new password
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirmRequest) error {
	token, err := s.resetRepo.FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrInvalidToken
		}
		return err
	}
	if !token.IsUsable(time.Now()) {
		return shared.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	token.MarkUsed()
	if err := s.resetRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to mark reset token as used",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return nil
}

// ListUsers lists accounts for the admin dashboard
func (s *AuthService) ListUsers(ctx context.Context, filter ListUsersFilter) (*shared.Paginated[UserResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	}
	if filter.Search != "" {
		domainFilter.Filters["search"] = filter.Search
	}
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *AuthService) authResponse(user *identity.User) (*AuthResponse, error) {
	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}
