package client

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/quota"
	"github.com/andreicionca/motivare-absente/internal/request"
)

// TeacherAPI is what the homeroom teacher view calls on the server.
type TeacherAPI interface {
	ListForTeacher(ctx context.Context, req request.ListForTeacherRequest) (request.ClassRequestsResponse, error)
	UpdateStatus(ctx context.Context, req request.UpdateStatusRequest) (request.StatusUpdateResponse, error)
	FinalizeBatch(ctx context.Context, req request.BatchRequest) (request.FinalizeBatchResponse, error)
	ExportScript(ctx context.Context, req request.BatchRequest) (request.ExportScriptResponse, error)
	ClassStats(ctx context.Context) (request.ClassStatsResponse, error)
}

var (
	ErrUnknownItem    = errors.New("request is not in the loaded list")
	ErrEmptySelection = errors.New("no request selected")
)

// TeacherController holds the class lists, the multi-select used by finalize
// and export, and the single request open in the review modal.
type TeacherController struct {
	api  TeacherAPI
	user domain.Teacher

	mu       sync.RWMutex
	items    []Item
	quota    map[string]quota.Summary
	filter   Filter
	selected map[ItemKey]struct{}
	modal    *ItemKey
}

func NewTeacherController(api TeacherAPI, user domain.Teacher) *TeacherController {
	return &TeacherController{
		api:      api,
		user:     user,
		quota:    map[string]quota.Summary{},
		selected: map[ItemKey]struct{}{},
	}
}

func (t *TeacherController) User() domain.Teacher { return t.user }

// Load refreshes the class lists. Selection entries that disappeared from the
// server are dropped; the modal closes if its request is gone.
func (t *TeacherController) Load(ctx context.Context) error {
	res, err := t.api.ListForTeacher(ctx, request.ListForTeacherRequest{Class: t.user.Class})
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = itemsOf(res.Excuses, res.ShortLeaves)
	t.quota = res.Quota
	if t.quota == nil {
		t.quota = map[string]quota.Summary{}
	}

	present := make(map[ItemKey]struct{}, len(t.items))
	for _, it := range t.items {
		present[it.Key()] = struct{}{}
	}
	for k := range t.selected {
		if _, ok := present[k]; !ok {
			delete(t.selected, k)
		}
	}
	if t.modal != nil {
		if _, ok := present[*t.modal]; !ok {
			t.modal = nil
		}
	}
	return nil
}

func (t *TeacherController) SetFilter(f Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
}

func (t *TeacherController) Visible() []Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return filterItems(t.items, t.filter)
}

func (t *TeacherController) Items() []Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Item(nil), t.items...)
}

func (t *TeacherController) Quota(studentID string) quota.Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.quota[studentID]
}

func (t *TeacherController) find(key ItemKey) (Item, bool) {
	for _, it := range t.items {
		if it.Key() == key {
			return it, true
		}
	}
	return Item{}, false
}

func (t *TeacherController) Toggle(key ItemKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.find(key); !ok {
		return ErrUnknownItem
	}
	if _, ok := t.selected[key]; ok {
		delete(t.selected, key)
	} else {
		t.selected[key] = struct{}{}
	}
	return nil
}

// SelectVisible adds every approved request the filter shows.
func (t *TeacherController) SelectVisible() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, it := range filterItems(t.items, t.filter) {
		if it.Stage == domain.StageApproved {
			t.selected[it.Key()] = struct{}{}
		}
	}
}

func (t *TeacherController) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = map[ItemKey]struct{}{}
}

func (t *TeacherController) IsSelected(key ItemKey) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.selected[key]
	return ok
}

// Selection returns the selected ids grouped by kind in a stable order.
func (t *TeacherController) Selection() request.BatchRequest {
	t.mu.RLock()
	defer t.mu.RUnlock()
	batch := request.BatchRequest{ExcuseIDs: []string{}, ShortLeaveIDs: []string{}}
	for k := range t.selected {
		if k.Kind == domain.KindExcuse {
			batch.ExcuseIDs = append(batch.ExcuseIDs, k.ID)
		} else {
			batch.ShortLeaveIDs = append(batch.ShortLeaveIDs, k.ID)
		}
	}
	sort.Strings(batch.ExcuseIDs)
	sort.Strings(batch.ShortLeaveIDs)
	return batch
}

func (t *TeacherController) OpenModal(key ItemKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.find(key); !ok {
		return ErrUnknownItem
	}
	t.modal = &key
	return nil
}

func (t *TeacherController) CloseModal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modal = nil
}

func (t *TeacherController) Modal() (Item, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.modal == nil {
		return Item{}, false
	}
	return t.find(*t.modal)
}

// Approve accepts the request with the label of its kind.
func (t *TeacherController) Approve(ctx context.Context, key ItemKey, note string) error {
	status := domain.ExcuseApproved
	if key.Kind == domain.KindShortLeave {
		status = domain.ShortLeaveTeacherAccepted
	}
	return t.review(ctx, key, status, note)
}

func (t *TeacherController) Reject(ctx context.Context, key ItemKey, note string) error {
	status := domain.ExcuseRejected
	if key.Kind == domain.KindShortLeave {
		status = domain.ShortLeaveRejected
	}
	return t.review(ctx, key, status, note)
}

func (t *TeacherController) review(ctx context.Context, key ItemKey, status, note string) error {
	req := request.UpdateStatusRequest{Kind: string(key.Kind), RecordID: key.ID, NewStatus: status}
	if note != "" {
		req.Reason = &note
	}
	if _, err := t.api.UpdateStatus(ctx, req); err != nil {
		return err
	}

	t.CloseModal()
	return t.Load(ctx)
}

// FinalizeSelected finalizes the selection and clears it once the server
// accepted the batch.
func (t *TeacherController) FinalizeSelected(ctx context.Context) (request.FinalizeBatchResponse, error) {
	batch := t.Selection()
	if len(batch.ExcuseIDs) == 0 && len(batch.ShortLeaveIDs) == 0 {
		return request.FinalizeBatchResponse{}, ErrEmptySelection
	}

	res, err := t.api.FinalizeBatch(ctx, batch)
	if err != nil {
		return request.FinalizeBatchResponse{}, err
	}
	t.ClearSelection()
	return res, t.Load(ctx)
}

// ExportSelected renders the records-system script for the selection.
func (t *TeacherController) ExportSelected(ctx context.Context) (request.ExportScriptResponse, error) {
	batch := t.Selection()
	if len(batch.ExcuseIDs) == 0 && len(batch.ShortLeaveIDs) == 0 {
		return request.ExportScriptResponse{}, ErrEmptySelection
	}
	return t.api.ExportScript(ctx, batch)
}

func (t *TeacherController) Stats(ctx context.Context) (request.ClassStatsResponse, error) {
	return t.api.ClassStats(ctx)
}
