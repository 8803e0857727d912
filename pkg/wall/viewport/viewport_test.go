package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGeometry(w, h float64) Geometry {
	return GeometryFunc(func() (float64, float64, bool) { return w, h, true })
}

func brokenGeometry() Geometry {
	return GeometryFunc(func() (float64, float64, bool) { return 0, 0, false })
}

func TestTrackerAttachesFromPrimary(t *testing.T) {
	tr := NewTracker(fixedGeometry(800, 600), nil, nil)

	changed := tr.Tick(time.Now())

	require.True(t, changed)
	assert.True(t, tr.Attached())
	assert.Equal(t, 800.0, tr.State().ContainerWidth)
	assert.Equal(t, 600.0, tr.State().ContainerHeight)
}

func TestTrackerScrollSettleDebounce(t *testing.T) {
	tr := NewTracker(fixedGeometry(800, 600), nil, nil)
	now := time.Now()
	tr.Tick(now)

	tr.OnScroll(120, now)
	assert.True(t, tr.State().IsScrolling)
	assert.Equal(t, 120.0, tr.State().ScrollTop)

	// Still scrolling just before the settle deadline.
	tr.Tick(now.Add(ScrollSettleDelay - time.Millisecond))
	assert.True(t, tr.State().IsScrolling)

	// A fresh event pushes the deadline out.
	tr.OnScroll(160, now.Add(100*time.Millisecond))
	tr.Tick(now.Add(ScrollSettleDelay))
	assert.True(t, tr.State().IsScrolling)

	tr.Tick(now.Add(100*time.Millisecond + ScrollSettleDelay))
	assert.False(t, tr.State().IsScrolling)
	assert.Equal(t, 160.0, tr.State().ScrollTop)
}

func TestTrackerResizeUpdatesState(t *testing.T) {
	tr := NewTracker(brokenGeometry(), nil, nil)

	tr.OnResize(1024, 768)

	assert.True(t, tr.Attached())
	assert.Equal(t, 1024.0, tr.State().ContainerWidth)
	assert.Equal(t, 768.0, tr.State().ContainerHeight)
}

func TestTrackerFallbackAfterBoundedRetries(t *testing.T) {
	tr := NewTracker(brokenGeometry(), fixedGeometry(640, 480), nil)
	now := time.Now()

	for i := 0; i < DefaultAttachRetries; i++ {
		assert.False(t, tr.Attached())
		tr.Tick(now)
	}

	tr.Tick(now)
	require.True(t, tr.Attached())
	assert.Equal(t, 640.0, tr.State().ContainerWidth)
	assert.Equal(t, 480.0, tr.State().ContainerHeight)
}

func TestTrackerReturnsToPrimaryWhenContainerAppears(t *testing.T) {
	var ready bool
	primary := GeometryFunc(func() (float64, float64, bool) {
		if !ready {
			return 0, 0, false
		}
		return 800, 600, true
	})
	tr := NewTracker(primary, fixedGeometry(640, 480), nil)
	now := time.Now()

	for i := 0; i <= DefaultAttachRetries; i++ {
		tr.Tick(now)
	}
	require.True(t, tr.Attached())
	require.Equal(t, 640.0, tr.State().ContainerWidth)

	// Fallback keeps serving while the container is still missing.
	tr.Tick(now)
	assert.Equal(t, 640.0, tr.State().ContainerWidth)

	ready = true
	changed := tr.Tick(now)

	require.True(t, changed)
	assert.Equal(t, 800.0, tr.State().ContainerWidth)
	assert.Equal(t, 600.0, tr.State().ContainerHeight)
}

func TestTrackerNoFallbackKeepsRetrying(t *testing.T) {
	tr := NewTracker(brokenGeometry(), nil, nil)
	now := time.Now()

	for i := 0; i < DefaultAttachRetries*3; i++ {
		tr.Tick(now)
	}
	assert.False(t, tr.Attached())
}
