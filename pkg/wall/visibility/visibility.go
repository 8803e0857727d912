package visibility

import (
	"mediawall/pkg/wall/layout"
	"mediawall/pkg/wall/viewport"
)

// DefaultMinPlayRatio is the visible fraction an item needs inside the
// play window before playback is allowed.
const DefaultMinPlayRatio = 0.10

// Config sets the two expansion margins. LoadMargin is a multiplier of
// the viewport height applied above and below for the load window;
// PlayMargin is an absolute expansion for the play window, usually zero.
type Config struct {
	LoadMargin   float64
	PlayMargin   float64
	MinPlayRatio float64
}

// DefaultConfig mirrors the grid's stock margins.
func DefaultConfig() Config {
	return Config{
		LoadMargin:   0.5,
		PlayMargin:   0,
		MinPlayRatio: DefaultMinPlayRatio,
	}
}

// Windows is the verdict for a single slot: whether it sits inside the
// load window, whether it qualifies for playback, and the visible
// fraction inside the play window.
type Windows struct {
	InLoad bool
	InPlay bool
	Ratio  float64
}

// Evaluate decides both windows for one slot given the current viewport.
// The load window is viewport height expanded by LoadMargin in both
// directions; the play window is the viewport expanded by PlayMargin,
// and playback additionally needs at least MinPlayRatio of the slot
// visible inside it.
func Evaluate(slot layout.Slot, vp viewport.State, cfg Config) Windows {
	if vp.ContainerHeight <= 0 || slot.Height <= 0 {
		return Windows{}
	}

	loadTop := vp.ScrollTop - cfg.LoadMargin*vp.ContainerHeight
	loadBottom := vp.ScrollTop + vp.ContainerHeight + cfg.LoadMargin*vp.ContainerHeight

	playTop := vp.ScrollTop - cfg.PlayMargin
	playBottom := vp.ScrollTop + vp.ContainerHeight + cfg.PlayMargin

	w := Windows{
		InLoad: overlaps(slot.Top, slot.Bottom(), loadTop, loadBottom),
		Ratio:  visibleRatio(slot.Top, slot.Bottom(), playTop, playBottom),
	}

	minRatio := cfg.MinPlayRatio
	if minRatio <= 0 {
		minRatio = DefaultMinPlayRatio
	}
	w.InPlay = w.Ratio >= minRatio
	return w
}

func overlaps(top, bottom, windowTop, windowBottom float64) bool {
	return bottom > windowTop && top < windowBottom
}

func visibleRatio(top, bottom, windowTop, windowBottom float64) float64 {
	visibleTop := top
	if windowTop > visibleTop {
		visibleTop = windowTop
	}
	visibleBottom := bottom
	if windowBottom < visibleBottom {
		visibleBottom = windowBottom
	}
	if visibleBottom <= visibleTop {
		return 0
	}
	return (visibleBottom - visibleTop) / (bottom - top)
}
