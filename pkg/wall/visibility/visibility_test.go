package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mediawall/pkg/wall/layout"
	"mediawall/pkg/wall/viewport"
)

func slotAt(top, height float64) layout.Slot {
	return layout.Slot{Top: top, Height: height, Width: 100}
}

func vpAt(scrollTop float64) viewport.State {
	return viewport.State{ScrollTop: scrollTop, ContainerWidth: 200, ContainerHeight: 600}
}

func TestEvaluateInsideViewport(t *testing.T) {
	w := Evaluate(slotAt(100, 200), vpAt(0), DefaultConfig())

	assert.True(t, w.InLoad)
	assert.True(t, w.InPlay)
	assert.Equal(t, 1.0, w.Ratio)
}

func TestEvaluateLoadWindowWiderThanPlayWindow(t *testing.T) {
	// Slot just below the viewport but inside the 0.5x load margin.
	w := Evaluate(slotAt(700, 200), vpAt(0), DefaultConfig())

	assert.True(t, w.InLoad)
	assert.False(t, w.InPlay)
	assert.Equal(t, 0.0, w.Ratio)
}

func TestEvaluateBeyondLoadMargin(t *testing.T) {
	// 0.5x margin ends at 900; slot starts past it.
	w := Evaluate(slotAt(950, 200), vpAt(0), DefaultConfig())

	assert.False(t, w.InLoad)
	assert.False(t, w.InPlay)
}

func TestEvaluateMinPlayRatio(t *testing.T) {
	cfg := DefaultConfig()

	// 15 of 200 visible: 7.5%, below the 10% floor.
	w := Evaluate(slotAt(585, 200), vpAt(0), cfg)
	assert.True(t, w.InLoad)
	assert.False(t, w.InPlay)
	assert.InDelta(t, 0.075, w.Ratio, 0.001)

	// 30 of 200 visible: 15%, plays.
	w = Evaluate(slotAt(570, 200), vpAt(0), cfg)
	assert.True(t, w.InPlay)
	assert.InDelta(t, 0.15, w.Ratio, 0.001)
}

func TestEvaluateScrolledViewport(t *testing.T) {
	w := Evaluate(slotAt(0, 200), vpAt(1000), DefaultConfig())

	assert.False(t, w.InLoad)
	assert.False(t, w.InPlay)
}

func TestEvaluateZeroHeightViewport(t *testing.T) {
	w := Evaluate(slotAt(0, 200), viewport.State{}, DefaultConfig())

	assert.False(t, w.InLoad)
	assert.False(t, w.InPlay)
}

func TestEvaluatePlayMarginExpansion(t *testing.T) {
	cfg := Config{LoadMargin: 0.5, PlayMargin: 100, MinPlayRatio: 0.10}

	// Slot entirely inside the expanded play window below the viewport.
	w := Evaluate(slotAt(650, 200), vpAt(0), cfg)
	assert.True(t, w.InPlay)
	assert.InDelta(t, 0.25, w.Ratio, 0.001)
}
