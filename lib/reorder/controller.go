// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reorder

import (
	"log/slog"
	"time"

	"github.com/bureau-foundation/notepad/lib/clock"
	"github.com/bureau-foundation/notepad/lib/task"
)

const (
	// DefaultTouchThreshold is the vertical travel, in the caller's
	// coordinate unit, that moves a touch-dragged task one position.
	DefaultTouchThreshold = 30

	// DefaultAbortAfter is how long a gesture may go without events
	// before it is abandoned.
	DefaultAbortAfter = 30 * time.Second
)

// Target is the list a Controller permutes.
type Target interface {
	Len() int
	At(index int) (task.Task, bool)
	IndexOf(id task.ID) int
	Reorder(from, to int) task.List
}

// State identifies which gesture, if any, is in progress.
type State int

const (
	Idle State = iota
	Dragging
	TouchDragging
)

func (state State) String() string {
	switch state {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case TouchDragging:
		return "touch-dragging"
	default:
		return "unknown"
	}
}

// Config holds the tunables of a Controller.
type Config struct {
	// TouchThreshold is the travel per touch step. Zero or negative
	// means DefaultTouchThreshold.
	TouchThreshold float64

	// AbortAfter is the idle timeout. Zero means DefaultAbortAfter;
	// negative disables the timeout.
	AbortAfter time.Duration

	// Clock measures the idle timeout. Nil uses the real clock.
	Clock clock.Clock

	// Logger receives gesture lifecycle events at debug level. Nil
	// discards output.
	Logger *slog.Logger
}

// Controller translates gesture events into Target.Reorder calls. It is
// not safe for concurrent use.
type Controller struct {
	target     Target
	threshold  float64
	abortAfter time.Duration
	clock      clock.Clock
	logger     *slog.Logger

	state State

	// sourceID is the task being dragged, in either state.
	sourceID task.ID

	// anchorY is the touch coordinate of the last step (or the start).
	anchorY float64

	// lastEvent is when the current gesture last saw an event.
	lastEvent time.Time

	// steps counts reorders applied by the current gesture.
	steps int
}

// New returns an idle Controller over target.
func New(target Target, config Config) *Controller {
	threshold := config.TouchThreshold
	if threshold <= 0 {
		threshold = DefaultTouchThreshold
	}
	abortAfter := config.AbortAfter
	if abortAfter == 0 {
		abortAfter = DefaultAbortAfter
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		target:     target,
		threshold:  threshold,
		abortAfter: abortAfter,
		clock:      clock.OrReal(config.Clock),
		logger:     logger,
	}
}

// State returns the current gesture state.
func (controller *Controller) State() State {
	return controller.state
}

// Active reports whether a gesture is in progress.
func (controller *Controller) Active() bool {
	return controller.state != Idle
}

// Threshold returns the touch step distance in effect.
func (controller *Controller) Threshold() float64 {
	return controller.threshold
}

// Source returns the ID and current index of the dragged task. ok is
// false when no gesture is active or the task no longer exists.
func (controller *Controller) Source() (id task.ID, index int, ok bool) {
	if controller.state == Idle {
		return "", -1, false
	}
	index = controller.target.IndexOf(controller.sourceID)
	if index < 0 {
		return "", -1, false
	}
	return controller.sourceID, index, true
}

// DragStart begins a pointer drag of the task at index. Out-of-range
// indices are ignored. A gesture already in progress is aborted first.
func (controller *Controller) DragStart(index int) {
	controller.begin(Dragging, index, 0)
}

// DragOver moves the dragged task to index. It returns true if the list
// changed. Events with no pointer drag in progress, targets equal to
// the task's current position, and out-of-range targets are ignored.
func (controller *Controller) DragOver(index int) bool {
	current, ok := controller.resolve(Dragging)
	if !ok || index == current {
		return false
	}
	if index < 0 || index >= controller.target.Len() {
		return false
	}
	controller.step(current, index)
	return true
}

// DragEnd finishes a pointer drag. Ignored when no pointer drag is in
// progress.
func (controller *Controller) DragEnd() {
	if controller.state != Dragging {
		return
	}
	controller.finish("drag ended")
}

// TouchStart begins a touch drag of the task at index, anchored at y.
// Out-of-range indices are ignored. A gesture already in progress is
// aborted first.
func (controller *Controller) TouchStart(index int, y float64) {
	controller.begin(TouchDragging, index, y)
}

// TouchMove reports the finger at y. When y is more than the threshold
// away from the anchor, the task moves one position in that direction
// (if there is room) and the anchor moves to y. It returns true if the
// list changed. Travel is measured from the last step, so a single
// move never advances more than one position.
func (controller *Controller) TouchMove(y float64) bool {
	current, ok := controller.resolve(TouchDragging)
	if !ok {
		return false
	}

	delta := y - controller.anchorY
	if delta <= controller.threshold && delta >= -controller.threshold {
		return false
	}

	direction := 1
	if delta < 0 {
		direction = -1
	}
	next := current + direction
	if next < 0 || next >= controller.target.Len() {
		return false
	}

	controller.step(current, next)
	controller.anchorY = y
	return true
}

// TouchEnd finishes a touch drag. Ignored when no touch drag is in
// progress.
func (controller *Controller) TouchEnd() {
	if controller.state != TouchDragging {
		return
	}
	controller.finish("touch ended")
}

// Abort abandons any gesture in progress. Steps already applied stay
// applied.
func (controller *Controller) Abort() {
	if controller.state == Idle {
		return
	}
	controller.finish("gesture aborted")
}

// Expire aborts the current gesture if it has been idle for longer than
// the timeout, and reports whether it did.
func (controller *Controller) Expire() bool {
	if controller.state == Idle || controller.abortAfter < 0 {
		return false
	}
	if controller.clock.Now().Sub(controller.lastEvent) <= controller.abortAfter {
		return false
	}
	controller.finish("gesture timed out")
	return true
}

// begin enters state for the task at index.
func (controller *Controller) begin(state State, index int, y float64) {
	controller.Abort()

	entry, ok := controller.target.At(index)
	if !ok {
		return
	}
	controller.state = state
	controller.sourceID = entry.ID
	controller.anchorY = y
	controller.steps = 0
	controller.lastEvent = controller.clock.Now()
	controller.logger.Debug("gesture started",
		"state", state.String(),
		"task_id", string(entry.ID),
		"index", index,
	)
}

// resolve checks that a gesture of the wanted state is live and
// returns the dragged task's current index. It expires stale gestures
// and aborts gestures whose task has disappeared.
func (controller *Controller) resolve(want State) (int, bool) {
	if controller.Expire() || controller.state != want {
		return -1, false
	}
	controller.lastEvent = controller.clock.Now()

	index := controller.target.IndexOf(controller.sourceID)
	if index < 0 {
		controller.finish("dragged task disappeared")
		return -1, false
	}
	return index, true
}

func (controller *Controller) step(from, to int) {
	controller.target.Reorder(from, to)
	controller.steps++
	controller.logger.Debug("gesture step",
		"task_id", string(controller.sourceID),
		"from", from,
		"to", to,
	)
}

func (controller *Controller) finish(reason string) {
	controller.logger.Debug(reason,
		"state", controller.state.String(),
		"task_id", string(controller.sourceID),
		"steps", controller.steps,
	)
	controller.state = Idle
	controller.sourceID = ""
	controller.anchorY = 0
	controller.steps = 0
}
