// Package wall orchestrates the media wall: the masonry layout, the
// viewport tracker, per-item lifecycle controllers, the visibility
// windows that drive them, and the idle auto-scroll. Everything is
// advanced by a single Tick with an explicit clock, so a host can drive
// the grid from any event loop and tests never sleep.
package wall

import (
	"math/rand"
	"time"

	"mediawall/pkg/logger"
	"mediawall/pkg/models"
	"mediawall/pkg/wall/autoscroll"
	"mediawall/pkg/wall/layout"
	"mediawall/pkg/wall/lifecycle"
	"mediawall/pkg/wall/mediares"
	"mediawall/pkg/wall/viewport"
	"mediawall/pkg/wall/visibility"
)

// Config collects the knobs for the whole grid.
type Config struct {
	ColumnWidth float64
	Gutter      float64
	Overscan    float64 // extra viewport heights rendered above and below

	Visibility visibility.Config
	Lifecycle  lifecycle.Config
	AutoScroll autoscroll.Config
}

// DefaultConfig returns the stock grid configuration.
func DefaultConfig() Config {
	return Config{
		ColumnWidth: 240,
		Gutter:      8,
		Overscan:    1,
		Visibility:  visibility.DefaultConfig(),
		Lifecycle:   lifecycle.DefaultConfig(),
		AutoScroll:  autoscroll.DefaultConfig(),
	}
}

// ResourceFactory builds the backing resource for one item. The grid
// uses it so hosts and tests can substitute their own media facility.
type ResourceFactory func(item models.MediaItem) lifecycle.Resource

// Grid is the orchestrator. Not safe for concurrent use; drive it from
// one goroutine.
type Grid struct {
	cfg   Config
	items []models.MediaItem

	tracker *viewport.Tracker
	layout  layout.Layout
	ctrls   []*lifecycle.Controller
	ctrlIdx map[string]int

	scroller *autoscroll.Driver
	prober   *mediares.Prober
	factory  ResourceFactory

	layoutWidth float64
	now         time.Time
	log         logger.Logger
}

// NewGrid builds a grid over the given items. When factory is nil the
// prober supplies HTTP-probe resources.
func NewGrid(items []models.MediaItem, cfg Config, tracker *viewport.Tracker, prober *mediares.Prober, factory ResourceFactory, log logger.Logger) *Grid {
	if log == nil {
		log = logger.GetLogger()
	}
	g := &Grid{
		cfg:     cfg,
		tracker: tracker,
		prober:  prober,
		factory: factory,
		log:     log,
	}
	g.scroller = autoscroll.NewDriver(cfg.AutoScroll, g.autoAdvance)
	g.SetItems(items)
	return g
}

// SetItems replaces the item list and rebuilds every controller. Old
// controllers release their resources first so a swap never strands an
// in-flight load or a playing item.
func (g *Grid) SetItems(items []models.MediaItem) {
	for _, c := range g.ctrls {
		c.Release()
	}
	g.items = items
	g.ctrls = make([]*lifecycle.Controller, len(items))
	g.ctrlIdx = make(map[string]int, len(items))
	for i, item := range items {
		g.ctrls[i] = lifecycle.NewController(item.ID, item.SourcePath, g.resourceFor(item), g.cfg.Lifecycle, g.log)
		g.ctrlIdx[item.ID] = i
	}
	g.layoutWidth = 0 // force a reflow on the next tick
}

func (g *Grid) resourceFor(item models.MediaItem) lifecycle.Resource {
	if g.factory != nil {
		return g.factory(item)
	}
	// The catalog only keeps the ratio, so dimensions are normalized.
	known := lifecycle.Media{}
	if item.AspectRatio > 0 {
		known.Width = item.AspectRatio
		known.Height = 1
	}
	return g.prober.ForItem(item.ID, known)
}

// Items returns the current item order.
func (g *Grid) Items() []models.MediaItem {
	return g.items
}

// Empty reports whether the wall has nothing to show.
func (g *Grid) Empty() bool {
	return len(g.items) == 0
}

// Layout returns the current computed layout.
func (g *Grid) Layout() layout.Layout {
	return g.layout
}

// Viewport returns the current viewport snapshot.
func (g *Grid) Viewport() viewport.State {
	return g.tracker.State()
}

// PhaseOf returns the lifecycle phase of the item at index.
func (g *Grid) PhaseOf(index int) lifecycle.Phase {
	if index < 0 || index >= len(g.ctrls) {
		return lifecycle.PhaseUnloaded
	}
	return g.ctrls[index].Phase()
}

// ControllerOf exposes the controller at index for hosts that need the
// failure reason or media properties.
func (g *Grid) ControllerOf(index int) *lifecycle.Controller {
	if index < 0 || index >= len(g.ctrls) {
		return nil
	}
	return g.ctrls[index]
}

// Shuffle reorders the wall and resets all lifecycle state.
func (g *Grid) Shuffle(rng *rand.Rand) {
	g.SetItems(models.Shuffle(g.items, rng))
}

// AutoScrollEnabled reports the auto-scroll feature switch.
func (g *Grid) AutoScrollEnabled() bool {
	return g.scroller.Enabled()
}

// SetAutoScroll flips the auto-scroll feature.
func (g *Grid) SetAutoScroll(enabled bool, now time.Time) {
	g.scroller.SetEnabled(enabled, now)
}

// SetAutoplay flips autoplay for items loaded from now on.
func (g *Grid) SetAutoplay(autoplay bool) {
	g.cfg.Lifecycle.Autoplay = autoplay
	for _, c := range g.ctrls {
		c.SetAutoplay(autoplay)
	}
}

// Autoplay reports the autoplay switch.
func (g *Grid) Autoplay() bool {
	return g.cfg.Lifecycle.Autoplay
}

// Resize reports new container dimensions; the layout reflows on the
// next tick.
func (g *Grid) Resize(width, height float64) {
	g.tracker.OnResize(width, height)
}

// UserScroll moves the viewport by delta pixels on the viewer's behalf.
// The offset clamps to the content range and the interaction resets the
// auto-scroll idle countdown.
func (g *Grid) UserScroll(delta float64, now time.Time) {
	g.setScrollTop(g.tracker.State().ScrollTop+delta, now)
	g.scroller.NoteInteraction(now)
}

// ScrollTo jumps the viewport to an absolute offset.
func (g *Grid) ScrollTo(top float64, now time.Time) {
	g.setScrollTop(top, now)
	g.scroller.NoteInteraction(now)
}

// PointerMove reports pointer movement for the idle countdown.
func (g *Grid) PointerMove(x, y float64, now time.Time) {
	g.scroller.NotePointerMove(x, y, now)
}

// Toggle is the viewer's click on the item at index.
func (g *Grid) Toggle(index int, now time.Time) {
	if index < 0 || index >= len(g.ctrls) {
		return
	}
	g.ctrls[index].Toggle()
	g.scroller.NoteInteraction(now)
}

// Retry clears a pinned failure on the item at index.
func (g *Grid) Retry(index int, now time.Time) {
	if index < 0 || index >= len(g.ctrls) {
		return
	}
	g.ctrls[index].Retry(now)
	g.scroller.NoteInteraction(now)
}

// Tick advances the whole grid: geometry, load completions, auto-scroll
// and every item's lifecycle.
func (g *Grid) Tick(now time.Time) {
	g.now = now
	g.tracker.Tick(now)
	g.reflowIfNeeded()
	g.drainResults(now)
	g.scroller.Tick(now)
	g.observeAll(now)
}

func (g *Grid) reflowIfNeeded() {
	width := g.tracker.State().ContainerWidth
	if width == g.layoutWidth && g.layout.Ready() == (width > 0) {
		return
	}
	g.layoutWidth = width
	g.layout = layout.Compute(g.items, width, g.cfg.ColumnWidth, g.cfg.Gutter)
}

func (g *Grid) drainResults(now time.Time) {
	if g.prober == nil {
		return
	}
	for {
		select {
		case r := <-g.prober.Results():
			g.applyResult(r, now)
		default:
			return
		}
	}
}

// ApplyResult delivers one load completion, for hosts that receive
// results through their own event loop instead of the prober channel.
func (g *Grid) ApplyResult(r mediares.Result, now time.Time) {
	g.applyResult(r, now)
}

func (g *Grid) applyResult(r mediares.Result, now time.Time) {
	idx, ok := g.ctrlIdx[r.ItemID]
	if !ok {
		return
	}
	if r.Err != nil {
		g.ctrls[idx].HandleLoadError(r.Source, r.Err, now)
		return
	}
	g.ctrls[idx].HandleLoaded(r.Source, r.Media, now)

	// Loaded metadata corrects an estimated slot height in place.
	if ratio := r.Media.AspectRatio(); ratio > 0 && g.layout.Ready() {
		g.layout.UpdateItemHeight(idx, ratio)
	}
}

func (g *Grid) observeAll(now time.Time) {
	if !g.layout.Ready() {
		return
	}
	vp := g.tracker.State()
	for i, c := range g.ctrls {
		w := visibility.Evaluate(g.layout.Slots[i], vp, g.cfg.Visibility)
		c.Observe(w.InLoad, w.InPlay, now)
		c.Tick(now)
	}
}

// RenderWindow returns the indices of the slots a renderer should draw:
// everything intersecting the viewport expanded by Overscan viewport
// heights in both directions, in item order.
func (g *Grid) RenderWindow() []int {
	if !g.layout.Ready() {
		return nil
	}
	vp := g.tracker.State()
	margin := g.cfg.Overscan * vp.ContainerHeight
	top := vp.ScrollTop - margin
	bottom := vp.ScrollTop + vp.ContainerHeight + margin

	var out []int
	for i, s := range g.layout.Slots {
		if s.Bottom() > top && s.Top < bottom {
			out = append(out, i)
		}
	}
	return out
}

// MaxScroll is the largest valid scroll offset.
func (g *Grid) MaxScroll() float64 {
	max := g.layout.TotalHeight - g.tracker.State().ContainerHeight
	if max < 0 {
		return 0
	}
	return max
}

func (g *Grid) setScrollTop(top float64, now time.Time) {
	if top < 0 {
		top = 0
	}
	if max := g.MaxScroll(); top > max {
		top = max
	}
	g.tracker.OnScroll(top, now)
}

// autoAdvance is the auto-scroll callback. The movement comes from the
// driver itself, so it never counts as an interaction.
func (g *Grid) autoAdvance(delta float64) bool {
	cur := g.tracker.State().ScrollTop
	max := g.MaxScroll()
	next := cur + delta
	if next >= max {
		next = max
	}
	g.tracker.OnScroll(next, g.now)
	return next >= max
}
