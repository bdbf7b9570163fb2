package request

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
	"text/template"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/excuse"
	requesterrors "github.com/andreicionca/motivare-absente/internal/request/errors"
	"github.com/andreicionca/motivare-absente/internal/shortleave"

	"go.uber.org/zap"
)

const (
	exportDateLayout = "02.01.2006"

	reasonTypePersonal = "0"
	reasonTypeMedical  = "1"
	reasonTypeOther    = "2"

	stepDelayMillis = 3000
	saveDelayMillis = 4000
)

//go:embed export_script.tmpl
var exportScriptSource string

var exportScriptTemplate = template.Must(template.New("export").Parse(exportScriptSource))

// ExportScript renders the browser script that types the selected approved
// records into the records system one student at a time.
func (s *service) ExportScript(ctx context.Context, p domain.Principal, req BatchRequest) (ExportScriptResponse, error) {
	class, err := teacherClass(p, "")
	if err != nil {
		return ExportScriptResponse{}, err
	}
	excuseIDs, err := parseIDs(req.ExcuseIDs)
	if err != nil {
		return ExportScriptResponse{}, err
	}
	leaveIDs, err := parseIDs(req.ShortLeaveIDs)
	if err != nil {
		return ExportScriptResponse{}, err
	}
	if len(excuseIDs) == 0 && len(leaveIDs) == 0 {
		return ExportScriptResponse{}, requesterrors.ErrEmptyBatch
	}

	excuses, err := s.excuses.FindByIDs(ctx, excuseIDs)
	if err != nil {
		s.logger.Error("export script load excuses failed", zap.Error(err))
		return ExportScriptResponse{}, err
	}
	leaves, err := s.shortLeaves.FindByIDs(ctx, leaveIDs)
	if err != nil {
		s.logger.Error("export script load short leaves failed", zap.Error(err))
		return ExportScriptResponse{}, err
	}
	if err := s.checkClass(ctx, class, excuses, leaves); err != nil {
		return ExportScriptResponse{}, err
	}
	students, err := s.students.ListStudentsByClass(ctx, class)
	if err != nil {
		return ExportScriptResponse{}, err
	}
	names := studentNames(students)

	res := ExportScriptResponse{
		Items:   []ExportItem{},
		Skipped: BatchIDs{ExcuseIDs: []string{}, ShortLeaveIDs: []string{}},
	}
	for _, e := range excuses {
		if !exportable(e.RequestStatus().Stage) {
			res.Skipped.ExcuseIDs = append(res.Skipped.ExcuseIDs, e.ID.String())
			continue
		}
		res.Items = append(res.Items, excuseExportItem(e, names[e.StudentID.String()]))
	}
	for _, l := range leaves {
		if !exportable(l.RequestStatus().Stage) {
			res.Skipped.ShortLeaveIDs = append(res.Skipped.ShortLeaveIDs, l.ID.String())
			continue
		}
		res.Items = append(res.Items, shortLeaveExportItem(l, names[l.StudentID.String()]))
	}
	if len(res.Items) == 0 {
		return ExportScriptResponse{}, requesterrors.ErrNothingToExport
	}
	sort.SliceStable(res.Items, func(i, j int) bool {
		return res.Items[i].StudentName < res.Items[j].StudentName
	})

	script, err := RenderExportScript(res.Items)
	if err != nil {
		s.logger.Error("export script render failed", zap.Error(err))
		return ExportScriptResponse{}, err
	}
	res.Script = script

	s.logger.Info("export script success",
		zap.String("class", class),
		zap.Int("items", len(res.Items)),
		zap.Int("skipped", len(res.Skipped.ExcuseIDs)+len(res.Skipped.ShortLeaveIDs)),
	)
	return res, nil
}

// RenderExportScript embeds the items as a JSON array in the script.
func RenderExportScript(items []ExportItem) (string, error) {
	config, err := json.MarshalIndent(items, "    ", "    ")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = exportScriptTemplate.Execute(&buf, struct {
		Config    string
		StepDelay int
		SaveDelay int
	}{
		Config:    string(config),
		StepDelay: stepDelayMillis,
		SaveDelay: saveDelayMillis,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func exportable(stage domain.Stage) bool {
	return stage == domain.StageApproved || stage == domain.StageFinalized
}

func excuseExportItem(e excuse.Excuse, name string) ExportItem {
	reasonType, reason := reasonTypeOther, "Motivare"
	switch e.Category {
	case domain.ExcuseMedical:
		reasonType, reason = reasonTypeMedical, "Scutire medicală"
	case domain.ExcuseLongLeave:
		reasonType, reason = reasonTypePersonal, "Învoire părinte"
	}
	if e.Reason != nil && strings.TrimSpace(*e.Reason) != "" {
		reason = strings.TrimSpace(*e.Reason)
	}
	return ExportItem{
		StudentName: name,
		StartDate:   e.PeriodStart.Format(exportDateLayout),
		EndDate:     e.End().Format(exportDateLayout),
		Reason:      reason,
		ReasonType:  reasonType,
	}
}

func shortLeaveExportItem(l shortleave.ShortLeave, name string) ExportItem {
	reasonType, reason := reasonTypePersonal, "Problemă personală"
	if l.Category == domain.ShortLeaveMedicalUrgent {
		reasonType, reason = reasonTypeOther, "Învoire justificată"
	}
	if strings.TrimSpace(l.Reason) != "" {
		reason = strings.TrimSpace(l.Reason)
	}
	date := l.Date.Format(exportDateLayout)
	return ExportItem{
		StudentName: name,
		StartDate:   date,
		EndDate:     date,
		Reason:      reason,
		ReasonType:  reasonType,
	}
}
