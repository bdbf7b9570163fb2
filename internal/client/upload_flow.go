package client

import (
	"errors"
	"sync"
)

type UploadState string

const (
	UploadIdle         UploadState = "idle"
	UploadFileSelected UploadState = "file_selected"
	UploadUploading    UploadState = "uploading"
	UploadSubmitted    UploadState = "submitted"
)

var (
	ErrNoFileSelected = errors.New("no evidence image selected")
	ErrUploadBusy     = errors.New("an upload is already in progress")
)

// File is an evidence image picked by the user, held until submit.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadFlow tracks the evidence image of the excuse form.
type UploadFlow struct {
	mu       sync.Mutex
	state    UploadState
	file     *File
	rotation int
}

func NewUploadFlow() *UploadFlow {
	return &UploadFlow{state: UploadIdle}
}

func (u *UploadFlow) State() UploadState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *UploadFlow) File() (File, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.file == nil {
		return File{}, false
	}
	return *u.file, true
}

func (u *UploadFlow) Rotation() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rotation
}

// Select picks a file, replacing the one already selected.
func (u *UploadFlow) Select(f File) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == UploadUploading {
		return ErrUploadBusy
	}
	u.file = &f
	u.state = UploadFileSelected
	return nil
}

// Rotate turns the preview a quarter turn clockwise.
func (u *UploadFlow) Rotate() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != UploadFileSelected {
		return ErrNoFileSelected
	}
	u.rotation = (u.rotation + 90) % 360
	return nil
}

// Remove drops the image and any rotation applied to it.
func (u *UploadFlow) Remove() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == UploadUploading {
		return ErrUploadBusy
	}
	u.reset()
	return nil
}

// Cancel abandons the form before submit.
func (u *UploadFlow) Cancel() error {
	return u.Remove()
}

func (u *UploadFlow) begin() (File, int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch u.state {
	case UploadUploading:
		return File{}, 0, ErrUploadBusy
	case UploadFileSelected:
	default:
		return File{}, 0, ErrNoFileSelected
	}
	u.state = UploadUploading
	return *u.file, u.rotation, nil
}

// fail returns to the selection so the user can retry with the same file.
func (u *UploadFlow) fail() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == UploadUploading {
		u.state = UploadFileSelected
	}
}

func (u *UploadFlow) done() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.file = nil
	u.rotation = 0
	u.state = UploadSubmitted
}

func (u *UploadFlow) reset() {
	u.file = nil
	u.rotation = 0
	u.state = UploadIdle
}
