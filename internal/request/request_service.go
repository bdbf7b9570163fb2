package request

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	"github.com/andreicionca/motivare-absente/internal/holiday"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka"
	"github.com/andreicionca/motivare-absente/internal/quota"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"
	"github.com/andreicionca/motivare-absente/internal/school"
	"github.com/andreicionca/motivare-absente/internal/shared/lock"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	ListForStudent(ctx context.Context, p domain.Principal, req ListForStudentRequest) (StudentRequestsResponse, error)
	ListForTeacher(ctx context.Context, p domain.Principal, req ListForTeacherRequest) (ClassRequestsResponse, error)
	UpdateStatus(ctx context.Context, p domain.Principal, req UpdateStatusRequest) (StatusUpdateResponse, error)
	FinalizeBatch(ctx context.Context, p domain.Principal, req BatchRequest) (FinalizeBatchResponse, error)
	DeletePending(ctx context.Context, p domain.Principal, req DeletePendingRequest) (DeletePendingResponse, error)
	ExportScript(ctx context.Context, p domain.Principal, req BatchRequest) (ExportScriptResponse, error)
	ClassStats(ctx context.Context, p domain.Principal) (ClassStatsResponse, error)
}

type Settings struct {
	HoursPerDay  int
	QuotaCeiling int
	LockTTL      time.Duration
}

type service struct {
	db          *sql.DB
	excuses     excuse.Repository
	shortLeaves shortleave.Repository
	students    school.Repository
	holidays    holiday.Service
	outbox      kafka.OutboxRepository
	locker      lock.Locker
	settings    Settings
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	excuses excuse.Repository,
	shortLeaves shortleave.Repository,
	students school.Repository,
	holidays holiday.Service,
	outbox kafka.OutboxRepository,
	locker lock.Locker,
	settings Settings,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	if locker == nil {
		locker = lock.Noop{}
	}
	if settings.LockTTL <= 0 {
		settings.LockTTL = 30 * time.Second
	}
	return &service{
		db:          db,
		excuses:     excuses,
		shortLeaves: shortLeaves,
		students:    students,
		holidays:    holidays,
		outbox:      outbox,
		locker:      locker,
		settings:    settings,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) ListForStudent(ctx context.Context, p domain.Principal, req ListForStudentRequest) (StudentRequestsResponse, error) {
	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		studentID = p.StudentID
	}
	if studentID == "" {
		return StudentRequestsResponse{}, requesterrors.ErrStudentNotFound
	}
	if _, err := uuid.Parse(studentID); err != nil {
		return StudentRequestsResponse{}, requesterrors.ErrInvalidRecordID
	}

	student, err := s.students.FindStudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentRequestsResponse{}, requesterrors.ErrStudentNotFound
		}
		s.logger.Error("list for student lookup failed", zap.Error(err))
		return StudentRequestsResponse{}, err
	}
	if !canRead(p, *student) {
		s.logger.Warn("list for student denied",
			zap.String("actor_id", p.UserID),
			zap.String("student_id", studentID),
		)
		return StudentRequestsResponse{}, requesterrors.ErrNotOwnRecord
	}

	excuses, err := s.excuses.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list excuses failed", zap.Error(err))
		return StudentRequestsResponse{}, err
	}
	leaves, err := s.shortLeaves.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list short leaves failed", zap.Error(err))
		return StudentRequestsResponse{}, err
	}

	names := map[string]string{studentID: student.FullName()}
	return StudentRequestsResponse{
		StudentID:   studentID,
		Excuses:     excuseResponses(excuses, names),
		ShortLeaves: shortLeaveResponses(leaves, names),
		Quota:       s.summary(excuses, leaves),
	}, nil
}

func (s *service) ListForTeacher(ctx context.Context, p domain.Principal, req ListForTeacherRequest) (ClassRequestsResponse, error) {
	class, err := teacherClass(p, req.Class)
	if err != nil {
		return ClassRequestsResponse{}, err
	}

	students, err := s.students.ListStudentsByClass(ctx, class)
	if err != nil {
		s.logger.Error("list class students failed", zap.String("class", class), zap.Error(err))
		return ClassRequestsResponse{}, err
	}
	excuses, err := s.excuses.ListByClass(ctx, class)
	if err != nil {
		s.logger.Error("list class excuses failed", zap.String("class", class), zap.Error(err))
		return ClassRequestsResponse{}, err
	}
	leaves, err := s.shortLeaves.ListByClass(ctx, class)
	if err != nil {
		s.logger.Error("list class short leaves failed", zap.String("class", class), zap.Error(err))
		return ClassRequestsResponse{}, err
	}

	names := studentNames(students)
	byStudentExcuses := groupExcuses(excuses)
	byStudentLeaves := groupShortLeaves(leaves)
	summaries := make(map[string]quota.Summary, len(students))
	for _, st := range students {
		id := st.ID.String()
		summaries[id] = s.summary(byStudentExcuses[id], byStudentLeaves[id])
	}

	return ClassRequestsResponse{
		Class:       class,
		Excuses:     excuseResponses(excuses, names),
		ShortLeaves: shortLeaveResponses(leaves, names),
		Quota:       summaries,
	}, nil
}

func (s *service) summary(excuses []excuse.Excuse, leaves []shortleave.ShortLeave) quota.Summary {
	used := quota.Total(excuse.QuotaEntries(excuses), shortleave.QuotaEntries(leaves))
	return quota.Summarize(used, s.settings.QuotaCeiling)
}

// canRead lets the student, the linked parent and the homeroom teacher see a
// student's requests.
func canRead(p domain.Principal, st school.Student) bool {
	if p.Role == domain.RoleTeacher {
		return p.Class != "" && p.Class == st.Class
	}
	return p.ActsFor(st.ID.String())
}

// teacherClass resolves the class a teacher operates on; it defaults to the
// class in the token and refuses any other.
func teacherClass(p domain.Principal, requested string) (string, error) {
	if p.Role != domain.RoleTeacher || p.Class == "" {
		return "", requesterrors.ErrNotOwnClass
	}
	class := strings.TrimSpace(requested)
	if class == "" {
		return p.Class, nil
	}
	if !strings.EqualFold(class, p.Class) {
		return "", requesterrors.ErrNotOwnClass
	}
	return p.Class, nil
}

func parseKind(v string) (domain.RequestKind, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.KindExcuse, nil
	}
	kind := domain.RequestKind(v)
	if !kind.Valid() {
		return "", requesterrors.ErrInvalidKind
	}
	return kind, nil
}

func parseIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, requesterrors.ErrInvalidRecordID.WithDetails([]string{raw})
		}
		key := id.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

func studentNames(students []school.Student) map[string]string {
	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID.String()] = st.FullName()
	}
	return names
}

func groupExcuses(list []excuse.Excuse) map[string][]excuse.Excuse {
	out := make(map[string][]excuse.Excuse)
	for _, e := range list {
		id := e.StudentID.String()
		out[id] = append(out[id], e)
	}
	return out
}

func groupShortLeaves(list []shortleave.ShortLeave) map[string][]shortleave.ShortLeave {
	out := make(map[string][]shortleave.ShortLeave)
	for _, l := range list {
		id := l.StudentID.String()
		out[id] = append(out[id], l)
	}
	return out
}

func excuseResponses(list []excuse.Excuse, names map[string]string) []excuse.ExcuseResponse {
	out := excuse.ToListResponse(list)
	for i := range out {
		out[i].StudentName = names[out[i].StudentID]
	}
	return out
}

func shortLeaveResponses(list []shortleave.ShortLeave, names map[string]string) []shortleave.ShortLeaveResponse {
	out := shortleave.ToListResponse(list)
	for i := range out {
		out[i].StudentName = names[out[i].StudentID]
	}
	return out
}
