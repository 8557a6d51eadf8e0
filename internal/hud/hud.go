package hud

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"exhibition/internal/input"
	"exhibition/internal/scenegraph"
	"exhibition/internal/signal"
)

const (
	titleSize   = 28
	bodySize    = 18
	hintSize    = 18
	padding     = 24
	lineGap     = 6
	panelMaxW   = 720
	buttonW     = 140
	buttonH     = 40
	crosshair   = 8
	stickMargin = 110
)

var (
	panelColor    = rl.NewColor(18, 18, 22, 235)
	buttonColor   = rl.NewColor(70, 70, 80, 255)
	hintColor     = rl.NewColor(255, 255, 255, 200)
	stickBase     = rl.NewColor(255, 255, 255, 50)
	stickKnob     = rl.NewColor(255, 255, 255, 140)
	crossIdle     = rl.NewColor(255, 255, 255, 160)
	crossTargeted = rl.NewColor(255, 200, 80, 255)
)

// HUD is the minimal presentation layer: crosshair, target hint, artwork detail panel,
// stand-up button and on-screen joystick. It is the only writer of the detail-open state.
type HUD struct {
	detail  *signal.State[bool]
	target  signal.Reader[*scenegraph.Metadata]
	looking signal.Reader[bool]
	stick   *input.Joystick
	seated  func() bool
	font    rl.Font

	// ShowJoystick draws the on-screen stick and makes StickCenter report it.
	ShowJoystick bool
	// OnOpen is called after the detail panel opens.
	OnOpen func(meta *scenegraph.Metadata)
	// OnClose is called after the detail panel closes.
	OnClose func()
	// OnStand is called when the viewer asks to stand up.
	OnStand func()

	shown *scenegraph.Metadata
}

// New returns a HUD writing detail and reading the gaze channels. seated reports whether the
// viewer is sitting; it may be nil.
func New(detail *signal.State[bool], target signal.Reader[*scenegraph.Metadata], looking signal.Reader[bool], stick *input.Joystick, seated func() bool) *HUD {
	if seated == nil {
		seated = func() bool { return false }
	}
	return &HUD{detail: detail, target: target, looking: looking, stick: stick, seated: seated}
}

// SetFont sets the font used for panel text. Zero texture ID = use raylib default.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

// IsOpen reports whether the detail panel is showing.
func (h *HUD) IsOpen() bool { return h.detail.Get() }

// Open shows meta in the detail panel.
func (h *HUD) Open(meta *scenegraph.Metadata) {
	if meta == nil {
		return
	}
	h.shown = meta
	if h.detail.Set(true) && h.OnOpen != nil {
		h.OnOpen(meta)
	}
}

// Close hides the detail panel. The published target is left as it is.
func (h *HUD) Close() {
	if h.detail.Set(false) && h.OnClose != nil {
		h.OnClose()
	}
}

// Update handles keyboard shortcuts: Escape closes the panel, Space stands up while seated.
func (h *HUD) Update() {
	if h.IsOpen() && rl.IsKeyPressed(rl.KeyEscape) {
		h.Close()
	}
	if !h.IsOpen() && h.seated() && rl.IsKeyPressed(rl.KeySpace) && h.OnStand != nil {
		h.OnStand()
	}
}

// HandleClick gives the HUD first refusal on a click. It returns true when the click was consumed.
// While the panel is open every click is consumed; clicks on the close button or outside the
// panel close it.
func (h *HUD) HandleClick(x, y float32) bool {
	p := rl.NewVector2(x, y)
	if h.IsOpen() {
		panel, closeBtn := h.panelRects()
		if rl.CheckCollisionPointRec(p, closeBtn) || !rl.CheckCollisionPointRec(p, panel) {
			h.Close()
		}
		return true
	}
	if h.seated() && rl.CheckCollisionPointRec(p, standRect()) {
		if h.OnStand != nil {
			h.OnStand()
		}
		return true
	}
	return false
}

// StickCenter returns the on-screen joystick centre when it is shown.
func (h *HUD) StickCenter() (x, y float32, ok bool) {
	if !h.ShowJoystick {
		return 0, 0, false
	}
	return stickMargin, float32(rl.GetScreenHeight()) - stickMargin, true
}

// Draw renders the HUD. Call after the 3D scene.
func (h *HUD) Draw() {
	if h.IsOpen() {
		h.drawPanel()
		return
	}
	h.drawCrosshair()
	if h.looking.Get() {
		if meta := h.target.Get(); meta != nil {
			h.drawCentered(meta.Title+"  (click to view)", float32(rl.GetScreenHeight())/2+30, hintSize, hintColor)
		}
	}
	if h.seated() {
		r := standRect()
		rl.DrawRectangleRec(r, buttonColor)
		h.drawText("Stand up", r.X+24, r.Y+10, hintSize, rl.White)
	}
	if h.ShowJoystick {
		h.drawStick()
	}
}

func (h *HUD) drawCrosshair() {
	cx := int32(rl.GetScreenWidth() / 2)
	cy := int32(rl.GetScreenHeight() / 2)
	c := crossIdle
	if h.looking.Get() {
		c = crossTargeted
	}
	rl.DrawLine(cx-crosshair, cy, cx+crosshair, cy, c)
	rl.DrawLine(cx, cy-crosshair, cx, cy+crosshair, c)
}

func (h *HUD) drawStick() {
	cx, cy, _ := h.StickCenter()
	kx, ky := h.stick.Knob()
	rl.DrawCircleV(rl.NewVector2(cx, cy), h.stick.Radius, stickBase)
	rl.DrawCircleV(rl.NewVector2(cx+kx, cy+ky), h.stick.Radius*0.4, stickKnob)
}

func (h *HUD) panelRects() (panel, closeBtn rl.Rectangle) {
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	w := min(float32(panelMaxW), sw-2*padding)
	hgt := sh * 0.7
	panel = rl.NewRectangle((sw-w)/2, (sh-hgt)/2, w, hgt)
	closeBtn = rl.NewRectangle(panel.X+panel.Width-buttonW-padding, panel.Y+panel.Height-buttonH-padding, buttonW, buttonH)
	return panel, closeBtn
}

func standRect() rl.Rectangle {
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	return rl.NewRectangle((sw-buttonW)/2, sh-buttonH-padding, buttonW, buttonH)
}

func (h *HUD) drawPanel() {
	meta := h.shown
	if meta == nil {
		return
	}
	panel, closeBtn := h.panelRects()
	rl.DrawRectangleRec(panel, panelColor)

	x := panel.X + padding
	y := panel.Y + padding
	h.drawText(meta.Title, x, y, titleSize, rl.White)
	y += titleSize + lineGap*2

	var byline []string
	if meta.Artist != "" {
		byline = append(byline, meta.Artist)
	}
	if meta.Year != "" {
		byline = append(byline, meta.Year)
	}
	if len(byline) > 0 {
		h.drawText(strings.Join(byline, ", "), x, y, bodySize, rl.LightGray)
		y += bodySize + lineGap*2
	}

	maxW := panel.Width - 2*padding
	bottom := closeBtn.Y - lineGap
	for _, line := range h.wrap(meta.Description, maxW, bodySize) {
		if y+bodySize > bottom {
			break
		}
		h.drawText(line, x, y, bodySize, rl.RayWhite)
		y += bodySize + lineGap
	}

	rl.DrawRectangleRec(closeBtn, buttonColor)
	h.drawText("Close", closeBtn.X+44, closeBtn.Y+10, hintSize, rl.White)
}

// wrap splits text into lines no wider than maxW, keeping explicit line breaks.
func (h *HUD) wrap(text string, maxW float32, size int32) []string {
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if h.measure(candidate, size) > maxW {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

func (h *HUD) measure(text string, size int32) float32 {
	if h.font.Texture.ID != 0 {
		return rl.MeasureTextEx(h.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}

func (h *HUD) drawCentered(text string, y float32, size int32, c rl.Color) {
	x := (float32(rl.GetScreenWidth()) - h.measure(text, size)) / 2
	h.drawText(text, x, y, size, c)
}

func (h *HUD) drawText(text string, x, y float32, size int32, c rl.Color) {
	if h.font.Texture.ID != 0 {
		rl.DrawTextEx(h.font, text, rl.NewVector2(x, y), float32(size), 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), size, c)
}
