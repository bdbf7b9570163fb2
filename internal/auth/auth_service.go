package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "github.com/andreicionca/motivare-absente/internal/auth/errors"
	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/school"
	"github.com/andreicionca/motivare-absente/internal/shared/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Authenticate(ctx context.Context, req AuthenticateRequest) (AuthResponse, error)
	Me(ctx context.Context, p domain.Principal) (UserResponse, error)
}

type service struct {
	repo     school.Repository
	secret   string
	tokenTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo school.Repository, secret string, tokenTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, secret: secret, tokenTTL: tokenTTL, now: time.Now, logger: l}
}

func (s *service) Authenticate(ctx context.Context, req AuthenticateRequest) (AuthResponse, error) {
	role, ok := domain.ParseRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if !ok {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}
	s.logger.Debug("authenticate requested", zap.String("role", string(role)))

	var (
		user domain.User
		err  error
	)
	switch role {
	case domain.RoleTeacher:
		user, err = s.authenticateTeacher(ctx, req.Credentials)
	case domain.RoleStudent:
		user, err = s.authenticateStudent(ctx, req.Credentials)
	case domain.RoleParent:
		user, err = s.authenticateParent(ctx, req.Credentials)
	}
	if err != nil {
		s.logger.Warn("authenticate failed", zap.String("role", string(role)), zap.Error(err))
		return AuthResponse{}, err
	}

	now := s.now()
	accessToken, err := token.Issue(s.secret, domain.PrincipalOf(user), s.tokenTTL, now)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("authenticate success",
		zap.String("role", string(role)),
		zap.String("user_id", user.UserID().String()),
	)
	return AuthResponse{
		User:        toUserResponse(user),
		AccessToken: accessToken,
		ExpiresAt:   now.Add(s.tokenTTL).UTC().Format(time.RFC3339),
	}, nil
}

func (s *service) authenticateTeacher(ctx context.Context, cred Credentials) (domain.User, error) {
	if strings.TrimSpace(cred.Email) == "" || cred.Password == "" {
		return nil, autherrors.ErrCredentialsRequired
	}
	t, err := s.repo.FindTeacherByEmail(ctx, strings.TrimSpace(cred.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(cred.Password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}
	return t.ToDomain(), nil
}

func (s *service) authenticateStudent(ctx context.Context, cred Credentials) (domain.User, error) {
	name, code := strings.TrimSpace(cred.Name), strings.TrimSpace(cred.PersonalCode)
	if name == "" || code == "" {
		return nil, autherrors.ErrCredentialsRequired
	}

	students, err := s.repo.FindStudentsByLastName(ctx, name)
	if err != nil {
		return nil, err
	}
	if last, first := splitName(name); len(students) == 0 && first != "" {
		byLast, err := s.repo.FindStudentsByLastName(ctx, last)
		if err != nil {
			return nil, err
		}
		for _, st := range byLast {
			if matchesFirst(st.FirstName, first) {
				students = append(students, st)
			}
		}
	}

	for _, st := range students {
		if bcrypt.CompareHashAndPassword([]byte(st.PersonalCodeHash), []byte(code)) == nil {
			return st.ToDomain(), nil
		}
	}
	return nil, autherrors.ErrInvalidCredentials
}

func (s *service) authenticateParent(ctx context.Context, cred Credentials) (domain.User, error) {
	name, code := strings.TrimSpace(cred.Name), strings.TrimSpace(cred.PersonalCode)
	if name == "" || code == "" {
		return nil, autherrors.ErrCredentialsRequired
	}

	parents, err := s.repo.FindParentsByLastName(ctx, name)
	if err != nil {
		return nil, err
	}
	if last, first := splitName(name); len(parents) == 0 && first != "" {
		byLast, err := s.repo.FindParentsByLastName(ctx, last)
		if err != nil {
			return nil, err
		}
		for _, p := range byLast {
			if matchesFirst(p.FirstName, first) {
				parents = append(parents, p)
			}
		}
	}

	for _, p := range parents {
		if bcrypt.CompareHashAndPassword([]byte(p.PersonalCodeHash), []byte(code)) == nil {
			return p.ToDomain(), nil
		}
	}
	return nil, autherrors.ErrInvalidCredentials
}

func (s *service) Me(ctx context.Context, p domain.Principal) (UserResponse, error) {
	resp := UserResponse{ID: p.UserID, Role: string(p.Role), Class: p.Class, StudentID: p.StudentID}
	if p.Role == domain.RoleStudent {
		st, err := s.repo.FindStudentByID(ctx, p.StudentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return UserResponse{}, autherrors.ErrInvalidToken
			}
			return UserResponse{}, err
		}
		return toUserResponse(st.ToDomain()), nil
	}
	return resp, nil
}

// splitName reads "Last First..." and returns both parts.
func splitName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name, ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func matchesFirst(stored, given string) bool {
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(given))
}

func toUserResponse(u domain.User) UserResponse {
	resp := UserResponse{ID: u.UserID().String(), Role: string(u.Role())}
	switch v := u.(type) {
	case domain.Student:
		resp.FirstName, resp.LastName, resp.Class = v.FirstName, v.LastName, v.Class
		resp.StudentID = v.ID.String()
	case domain.Parent:
		resp.FirstName, resp.LastName, resp.Class = v.FirstName, v.LastName, v.Student.Class
		resp.StudentID = v.Student.ID.String()
	case domain.Teacher:
		resp.FirstName, resp.LastName, resp.Class = v.FirstName, v.LastName, v.Class
		resp.Email = v.Email
	}
	return resp
}
