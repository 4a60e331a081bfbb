package services

import (
	"chat-poll/auth"
	"chat-poll/domain"
	"chat-poll/errors"
	"chat-poll/repositories"
	stderrors "errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

const maxDescriptionLength = 280

type IAuthService interface {
	Register(tag, password, passwordAgain string) (domain.User, error)
	Login(tag, password string) (domain.User, error)
	Resolve(userID domain.UserID) (auth.Identity, error)
	UpdateDescription(identity auth.Identity, description string) error
	EnsureAdmin(tag, password string) (bool, error)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	hasher         auth.Hasher
	log            *slog.Logger
}

func NewAuthService(repo repositories.IUserRepository, hasher auth.Hasher, log *slog.Logger) *AuthService {
	return &AuthService{userRepository: repo, hasher: hasher, log: log}
}

// Register creates a regular user. Checks run in this order: tag taken,
// passwords mismatch, tag format, password strength. A registration losing
// a race on the same tag still fails with ErrTagTaken.
func (s *AuthService) Register(tag, password, passwordAgain string) (domain.User, error) {
	_, err := s.userRepository.GetUserByTag(tag)
	switch {
	case err == nil:
		return domain.User{}, errors.ErrTagTaken
	case !stderrors.Is(err, errors.ErrUserNotFound):
		return domain.User{}, err
	}

	if password != passwordAgain {
		return domain.User{}, errors.ErrPasswordMismatch
	}

	// Validated before any expensive cryptographic operation
	if err = auth.ValidateRegister(auth.RegisterRequest{Tag: tag, Password: password}); err != nil {
		return domain.User{}, err
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(tag, hashedPassword, false)
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("User registered", "user_id", user.ID, "tag", user.Tag)
	return user, nil
}

// Login returns ErrInvalidCredentials for an unknown tag and for a wrong
// password alike.
func (s *AuthService) Login(tag, password string) (domain.User, error) {
	user, err := s.userRepository.GetUserByTag(tag)
	if stderrors.Is(err, errors.ErrUserNotFound) {
		return domain.User{}, errors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	match, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		s.log.Error("Stored password hash is unreadable", "user_id", user.ID, "error", err)
		return domain.User{}, errors.ErrInvalidCredentials
	}
	if !match {
		return domain.User{}, errors.ErrInvalidCredentials
	}
	return user, nil
}

// Resolve turns a session's user id into the current identity. A user that
// no longer exists resolves to the anonymous identity.
func (s *AuthService) Resolve(userID domain.UserID) (auth.Identity, error) {
	if userID <= 0 {
		return auth.Identity{}, nil
	}
	user, err := s.userRepository.GetUserByID(userID)
	if stderrors.Is(err, errors.ErrUserNotFound) {
		return auth.Identity{}, nil
	}
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.IdentityOf(user), nil
}

func (s *AuthService) UpdateDescription(identity auth.Identity, description string) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return errors.ErrBadRequest
	}
	return s.userRepository.UpdateDescription(identity.UserID, description)
}

// EnsureAdmin creates the global admin account if no user holds tag yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(tag, password string) (bool, error) {
	_, err := s.userRepository.GetUserByTag(tag)
	if err == nil {
		return false, nil
	}
	if !stderrors.Is(err, errors.ErrUserNotFound) {
		return false, err
	}
	if err = auth.ValidateRegister(auth.RegisterRequest{Tag: tag, Password: password}); err != nil {
		return false, fmt.Errorf("admin account: %w", err)
	}
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hashing failed: %w", err)
	}
	user, err := s.userRepository.CreateUser(tag, hashedPassword, true)
	if stderrors.Is(err, errors.ErrTagTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("Admin account created", "user_id", user.ID, "tag", user.Tag)
	return true, nil
}
