// Package store holds the listing being edited: one Workspace per browser session.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"flyer_builder/internal/flyer"
	"flyer_builder/internal/model"
)

// MaxImages caps the photo list of a workspace.
const MaxImages = 16

var (
	ErrImageLimit       = errors.New("image limit reached")
	ErrIndexOutOfRange  = errors.New("image index out of range")
	ErrExportInProgress = errors.New("an export is already running")
)

// Snapshot is a consistent copy of the record and its photos.
type Snapshot struct {
	Record model.PropertyRecord `json:"record"`
	Images []model.ImageAsset   `json:"images"`
}

// Workspace owns one PropertyRecord and its ordered image list. The store accepts
// any strings; validation happens separately.
type Workspace struct {
	mu        sync.RWMutex
	record    model.PropertyRecord
	images    []model.ImageAsset
	exporting bool
	updatedAt time.Time
	stage     *flyer.Stage
}

func NewWorkspace() *Workspace {
	return &Workspace{updatedAt: time.Now(), stage: flyer.NewStage()}
}

// Stage is the display scaling state of this session's preview.
func (w *Workspace) Stage() *flyer.Stage {
	return w.stage
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Snapshot{Record: copyRecord(w.record), Images: append([]model.ImageAsset{}, w.images...)}
}

func (w *Workspace) Record() model.PropertyRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return copyRecord(w.record)
}

func (w *Workspace) Images() []model.ImageAsset {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]model.ImageAsset{}, w.images...)
}

// SetFormData applies patch and returns the updated record.
func (w *Workspace) SetFormData(patch model.RecordPatch) model.PropertyRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	patch.Apply(&w.record)
	w.touch()
	return copyRecord(w.record)
}

// AddImages appends assets in order. A batch that would exceed MaxImages is
// rejected as a whole.
func (w *Workspace) AddImages(assets ...model.ImageAsset) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.images)+len(assets) > MaxImages {
		return len(w.images), fmt.Errorf("%w: %d of %d used", ErrImageLimit, len(w.images), MaxImages)
	}
	w.images = append(w.images, assets...)
	w.touch()
	return len(w.images), nil
}

// RemoveImage drops the image at index, keeping the order of the rest.
func (w *Workspace) RemoveImage(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.images) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	w.images = append(w.images[:index:index], w.images[index+1:]...)
	w.touch()
	return nil
}

// SetAgentPhoto replaces the agent photo; nil clears it.
func (w *Workspace) SetAgentPhoto(a *model.ImageAsset) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record.AgentPhoto = copyAsset(a)
	w.touch()
}

// SetAgentQRCode replaces the agent QR code; nil clears it.
func (w *Workspace) SetAgentQRCode(a *model.ImageAsset) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record.AgentQRCode = copyAsset(a)
	w.touch()
}

// Reset restores the empty record and photo list.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record = model.PropertyRecord{}
	w.images = nil
	w.touch()
}

// BeginExport marks the workspace busy. The returned release must be called on
// every exit path; calling it more than once is harmless.
func (w *Workspace) BeginExport() (func(), error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.exporting {
		return nil, ErrExportInProgress
	}
	w.exporting = true

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			w.exporting = false
			w.mu.Unlock()
		})
	}, nil
}

func (w *Workspace) Exporting() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.exporting
}

func (w *Workspace) UpdatedAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.updatedAt
}

func (w *Workspace) touch() {
	w.updatedAt = time.Now()
}

func copyAsset(a *model.ImageAsset) *model.ImageAsset {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func copyRecord(r model.PropertyRecord) model.PropertyRecord {
	r.AgentPhoto = copyAsset(r.AgentPhoto)
	r.AgentQRCode = copyAsset(r.AgentQRCode)
	return r
}
