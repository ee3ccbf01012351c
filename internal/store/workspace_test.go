package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyer_builder/internal/model"
)

func img(i int) model.ImageAsset {
	return model.ImageAsset{Preview: fmt.Sprintf("data:image/png;base64,%d", i), Name: fmt.Sprintf("%d.png", i)}
}

func str(s string) *string { return &s }

func TestSetFormDataPatchesOnlyGivenFields(t *testing.T) {
	w := NewWorkspace()
	w.SetFormData(model.RecordPatch{PropertyTitle: str("Riverside Villa"), Price: str("abc")})
	rec := w.SetFormData(model.RecordPatch{Address: str("12 Main St")})

	assert.Equal(t, "Riverside Villa", rec.PropertyTitle)
	assert.Equal(t, "12 Main St", rec.Address)
	// the store keeps whatever was typed
	assert.Equal(t, "abc", rec.Price)
}

func TestSetFormDataCapsDescription(t *testing.T) {
	w := NewWorkspace()
	long := make([]rune, model.DescriptionMaxLength+50)
	for i := range long {
		long[i] = 'é'
	}
	rec := w.SetFormData(model.RecordPatch{Description: str(string(long))})
	assert.Len(t, []rune(rec.Description), model.DescriptionMaxLength)
}

func TestImagesKeepOrder(t *testing.T) {
	w := NewWorkspace()
	n, err := w.AddImages(img(0), img(1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = w.AddImages(img(2))
	require.NoError(t, err)

	require.NoError(t, w.RemoveImage(1))
	assert.Equal(t, []model.ImageAsset{img(0), img(2)}, w.Images())

	assert.ErrorIs(t, w.RemoveImage(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.RemoveImage(-1), ErrIndexOutOfRange)
}

func TestImageLimitRejectsWholeBatch(t *testing.T) {
	w := NewWorkspace()
	batch := make([]model.ImageAsset, MaxImages-1)
	for i := range batch {
		batch[i] = img(i)
	}
	_, err := w.AddImages(batch...)
	require.NoError(t, err)

	n, err := w.AddImages(img(100), img(101))
	assert.ErrorIs(t, err, ErrImageLimit)
	assert.Equal(t, MaxImages-1, n)
	assert.Len(t, w.Images(), MaxImages-1)

	_, err = w.AddImages(img(100))
	assert.NoError(t, err)
}

func TestSnapshotIsACopy(t *testing.T) {
	w := NewWorkspace()
	w.SetAgentPhoto(&model.ImageAsset{Preview: "data:a", Name: "a.png"})
	_, _ = w.AddImages(img(0))

	snap := w.Snapshot()
	snap.Record.AgentPhoto.Name = "changed"
	snap.Images[0].Name = "changed"

	assert.Equal(t, "a.png", w.Record().AgentPhoto.Name)
	assert.Equal(t, "0.png", w.Images()[0].Name)

	w.SetAgentPhoto(nil)
	assert.Nil(t, w.Record().AgentPhoto)
}

func TestAgentQRCode(t *testing.T) {
	w := NewWorkspace()
	w.SetAgentQRCode(&model.ImageAsset{Preview: "data:qr", Name: "qr.png"})
	require.NotNil(t, w.Record().AgentQRCode)
	assert.Equal(t, "qr.png", w.Record().AgentQRCode.Name)
}

func TestReset(t *testing.T) {
	w := NewWorkspace()
	w.SetFormData(model.RecordPatch{PropertyTitle: str("Villa")})
	_, _ = w.AddImages(img(0))
	before := w.UpdatedAt()
	time.Sleep(time.Millisecond)

	w.Reset()
	assert.Equal(t, model.PropertyRecord{}, w.Record())
	assert.Empty(t, w.Images())
	assert.True(t, w.UpdatedAt().After(before))
}

func TestBeginExportGuardsOverlap(t *testing.T) {
	w := NewWorkspace()

	release, err := w.BeginExport()
	require.NoError(t, err)
	assert.True(t, w.Exporting())

	_, err = w.BeginExport()
	assert.ErrorIs(t, err, ErrExportInProgress)

	release()
	release()
	assert.False(t, w.Exporting())

	release, err = w.BeginExport()
	require.NoError(t, err)
	release()
}

func TestBeginExportConcurrent(t *testing.T) {
	w := NewWorkspace()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	hold := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := w.BeginExport()
			if err != nil {
				return
			}
			mu.Lock()
			winners++
			mu.Unlock()
			<-hold
			release()
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(hold)
	wg.Wait()
	assert.Equal(t, 1, winners)
	assert.False(t, w.Exporting())
}
