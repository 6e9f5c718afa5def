package export

import (
	"errors"

	"github.com/lightspeedlabs/invoicegen/internal/render"
)

var (
	// ErrRendererNotReady is returned when an export is attempted before
	// the rendering capability has finished its asynchronous startup.
	ErrRendererNotReady = render.ErrNotReady

	// ErrRenderFailure is returned when the rendering capability failed
	// during conversion. The pipeline is safely retriable after it.
	ErrRenderFailure = errors.New("pdf render failed")

	// ErrSaveFailure is returned when the save-to-disk primitive failed.
	ErrSaveFailure = errors.New("artifact save failed")
)
