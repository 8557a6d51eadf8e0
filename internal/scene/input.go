package scene

import (
	"runtime"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"exhibition/internal/input"
	"exhibition/internal/nav"
)

// clickSlop is how far, in pixels, the pointer may travel between press and release and still
// count as a click rather than a drag.
const clickSlop = 5

// Input polls raylib once per frame and forwards pointer, touch and joystick events to the
// navigation controllers. It never mutates camera state itself.
type Input struct {
	orient   *nav.Orientation
	joystick *input.Joystick

	// StickCenter, when set and returning ok, places the on-screen joystick; presses within its
	// radius drive the stick instead of the camera.
	StickCenter func() (x, y float32, ok bool)
	// OnClick is called for a primary press and release without dragging.
	OnClick func(x, y float32)

	pressX, pressY float32
	pressed        bool
	stickActive    bool
	stickTouch     int
	stickX, stickY float32
	lastX, lastY   float32
	touches        map[int32]rl.Vector2
}

// NewInput returns an input poller driving orient and joystick.
func NewInput(orient *nav.Orientation, joystick *input.Joystick) *Input {
	return &Input{orient: orient, joystick: joystick, stickTouch: -1, touches: make(map[int32]rl.Vector2)}
}

// Poll reads this frame's input. Call once per frame before the simulation tick.
func (in *Input) Poll() {
	if runtime.GOOS == "android" {
		in.pollTouch()
		return
	}
	in.pollMouse()
}

func (in *Input) inStick(x, y float32) (cx, cy float32, ok bool) {
	if in.StickCenter == nil {
		return 0, 0, false
	}
	cx, cy, ok = in.StickCenter()
	if !ok {
		return 0, 0, false
	}
	return cx, cy, math32.Hypot(x-cx, y-cy) <= in.joystick.Radius
}

func (in *Input) pollMouse() {
	pos := rl.GetMousePosition()
	x, y := pos.X, pos.Y

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if cx, cy, ok := in.inStick(x, y); ok {
			in.stickActive = true
			in.stickX, in.stickY = cx, cy
		} else {
			in.orient.PointerDown(nav.ButtonPrimary, x, y)
			in.pressX, in.pressY, in.pressed = x, y, true
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		in.orient.PointerDown(nav.ButtonSecondary, x, y)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		in.orient.PointerDown(nav.ButtonMiddle, x, y)
	}

	if in.stickActive {
		in.joystick.Move(x-in.stickX, y-in.stickY)
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			in.joystick.Release()
			in.stickActive = false
		}
		in.lastX, in.lastY = x, y
		return
	}

	if x != in.lastX || y != in.lastY {
		in.orient.PointerMove(x, y)
		in.lastX, in.lastY = x, y
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.orient.PointerUp(nav.ButtonPrimary)
		if in.pressed && math32.Hypot(x-in.pressX, y-in.pressY) <= clickSlop && in.OnClick != nil {
			in.OnClick(x, y)
		}
		in.pressed = false
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		in.orient.PointerUp(nav.ButtonSecondary)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonMiddle) {
		in.orient.PointerUp(nav.ButtonMiddle)
	}
}

// pollTouch diffs the current touch points against the previous frame to synthesise
// start, move and end events.
func (in *Input) pollTouch() {
	count := int(rl.GetTouchPointCount())
	current := make(map[int32]rl.Vector2, count)
	for i := 0; i < count; i++ {
		current[rl.GetTouchPointId(int32(i))] = rl.GetTouchPosition(int32(i))
	}

	for id, p := range current {
		prev, seen := in.touches[id]
		switch {
		case !seen:
			if cx, cy, ok := in.inStick(p.X, p.Y); ok && in.stickTouch < 0 {
				in.stickTouch = int(id)
				in.stickX, in.stickY = cx, cy
				in.joystick.Move(p.X-cx, p.Y-cy)
				continue
			}
			in.orient.TouchStart(int(id), p.X, p.Y, count)
			in.pressX, in.pressY, in.pressed = p.X, p.Y, count == 1
		case int(id) == in.stickTouch:
			in.joystick.Move(p.X-in.stickX, p.Y-in.stickY)
		case p != prev:
			in.orient.TouchMove(int(id), p.X, p.Y)
		}
	}
	for id, p := range in.touches {
		if _, still := current[id]; still {
			continue
		}
		if int(id) == in.stickTouch {
			in.joystick.Release()
			in.stickTouch = -1
			continue
		}
		in.orient.TouchEnd(int(id))
		if in.pressed && math32.Hypot(p.X-in.pressX, p.Y-in.pressY) <= clickSlop && in.OnClick != nil {
			in.OnClick(p.X, p.Y)
		}
		in.pressed = false
	}
	in.touches = current
}
