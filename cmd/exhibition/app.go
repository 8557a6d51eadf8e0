package main

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"exhibition/internal/audio"
	"exhibition/internal/commands"
	"exhibition/internal/config"
	"exhibition/internal/debug"
	"exhibition/internal/exhibit"
	"exhibition/internal/fonts"
	"exhibition/internal/hud"
	"exhibition/internal/input"
	"exhibition/internal/interact"
	"exhibition/internal/logger"
	"exhibition/internal/nav"
	"exhibition/internal/physics"
	"exhibition/internal/scene"
	"exhibition/internal/scenegraph"
	"exhibition/internal/signal"
	"exhibition/internal/terminal"
)

// seatOffset lifts the body above a seat's origin when sitting.
const seatOffset = 0.5

var defaultSpawn = mgl32.Vec3{0, 1.5, 0}

var keyBindings = input.Bindings{
	Forward: []int32{rl.KeyW, rl.KeyUp},
	Back:    []int32{rl.KeyS, rl.KeyDown},
	Left:    []int32{rl.KeyA, rl.KeyLeft},
	Right:   []int32{rl.KeyD, rl.KeyRight},
}

type app struct {
	cfg config.Config
	log *logger.Logger

	world     *physics.World
	body      *physics.Body
	colliders []*physics.Body
	graph     *scenegraph.Graph
	spawn     mgl32.Vec3

	detail   *signal.State[bool]
	channels interact.Channels
	registry *interact.Registry
	gaze     *interact.Service

	joystick *input.Joystick
	player   *nav.Player
	cues     *audio.Player

	scene   *scene.Scene
	input   *scene.Input
	hud     *hud.HUD
	debug   *debug.Debug
	console *terminal.Terminal

	started bool
	font    rl.Font
}

func newApp(cfg config.Config, log *logger.Logger) *app {
	a := &app{cfg: cfg, log: log}
	zl := log.Logger

	a.world = physics.NewWorld()
	a.world.SetGravity(mgl32.Vec3{0, cfg.Body.Gravity, 0})

	a.detail = signal.New(false)
	a.channels = interact.NewChannels(a.detail.Reader())
	a.registry = interact.NewRegistry(nil, zl.With().Str("component", "registry").Logger())
	a.gaze = interact.NewService(a.registry, a.channels, cfg.Interact, zl.With().Str("component", "gaze").Logger())

	a.joystick = input.NewJoystick()
	a.joystick.Radius = cfg.Joystick.Radius
	a.joystick.Threshold = cfg.Joystick.Threshold
	keyboard := input.NewKeyboard(keyBindings, func(key int32) bool {
		return !a.console.IsOpen() && rl.IsKeyDown(key)
	})
	a.player = nav.New(cfg.Nav,
		nav.WithLogger(zl.With().Str("component", "nav").Logger()),
		nav.WithIntents(keyboard, a.joystick),
		nav.WithGaze(a.gaze),
	)

	if cfg.Audio.Enabled {
		cues, err := audio.New(cfg.Audio.Volume, zl.With().Str("component", "audio").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("audio cues disabled")
		} else {
			a.cues = cues
		}
	}

	a.scene = scene.New(cfg.Window.Fovy)
	a.scene.GridVisible = cfg.Overlay.ShowGrid
	a.hud = hud.New(a.detail, a.channels.Target.Reader(), a.channels.LookingAt.Reader(), a.joystick, a.player.Seated)
	a.hud.ShowJoystick = cfg.Joystick.Visible
	a.hud.OnOpen = a.onDetailOpen
	a.hud.OnClose = a.onDetailClose
	a.hud.OnStand = func() { a.player.StandUp() }

	a.input = scene.NewInput(a.player.Orientation(), a.joystick)
	a.input.StickCenter = a.hud.StickCenter
	a.input.OnClick = a.onClick

	a.debug = debug.New()
	a.debug.SetShowFPS(cfg.Overlay.ShowFPS)
	a.debug.SetShowMemAlloc(cfg.Overlay.ShowMemAlloc)
	a.debug.SetShowNav(cfg.Overlay.ShowNav)
	a.debug.SetNavInfo(a.navLines)

	a.console = terminal.New(log, a.commands())
	a.console.OnToggle = func(open bool) {
		if open {
			// The release would be swallowed while the console has the keyboard and mouse.
			a.player.Orientation().PointerUp(nav.ButtonPrimary)
			a.joystick.Release()
		}
	}

	a.loadLayout()
	a.body = physics.NewCapsule(a.spawn, cfg.Body.Radius, cfg.Body.HalfHeight, cfg.Body.Mass, cfg.Body.LinearDamping)
	a.world.AddBody(a.body)
	a.player.Attach(a.body)
	a.player.SetOrientation(0, 0)
	log.Info().Str("layout", cfg.Layout).Interface("spawn", a.spawn).Msg("viewer spawned")
	return a
}

// loadLayout (re)builds the scene from the configured layout. On failure the viewer gets an empty
// room with only a floor, and nothing is ever targeted.
func (a *app) loadLayout() {
	graph, spawn := scenegraph.NewGraph(), defaultSpawn
	layout, err := exhibit.Load(a.cfg.Layout)
	if err == nil {
		graph, err = layout.Build()
	}
	if err != nil {
		a.log.Error().Err(err).Str("layout", a.cfg.Layout).Msg("exhibition failed to load; starting in an empty room")
		graph = scenegraph.NewGraph()
	} else {
		tagged := exhibit.Decorate(graph, layout.Decorations())
		a.log.Info().Str("name", layout.Name).Int("interactables", tagged).Msg("exhibition loaded")
		if p, err := layout.SpawnPoint(); err == nil {
			spawn = p
		} else if errors.Is(err, exhibit.ErrNoSpawn) {
			a.log.Warn().Msg("layout has no spawn point; using the origin")
		}
	}

	for _, c := range a.colliders {
		a.world.RemoveBody(c)
	}
	a.colliders = exhibit.Colliders(graph)
	if len(a.colliders) == 0 {
		a.colliders = append(a.colliders, physics.NewStatic(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{200, 1, 200}))
	}
	for _, c := range a.colliders {
		a.world.AddBody(c)
	}

	a.graph, a.spawn = graph, spawn
	a.registry.Attach(graph)
	a.scene.SetGraph(graph)
}

func (a *app) update(dt float32) {
	if !a.started {
		a.start()
	}
	a.console.Update()
	if !a.console.IsOpen() {
		a.hud.Update()
		a.input.Poll()
	}

	a.world.Step(dt)
	a.player.Tick(dt)

	a.scene.SetPose(a.player.Pose())
	if t, ok := a.gaze.Current(); ok {
		a.scene.SetHighlight(t.Owner)
	} else {
		a.scene.SetHighlight(nil)
	}
}

// start runs on the first frame, once the window and GL context exist.
func (a *app) start() {
	a.started = true
	a.player.Orientation().OnCursor(func(c nav.Cursor) {
		rl.SetMouseCursor(cursorShape(c))
	})
	if name := a.cfg.Overlay.Font; name != "" {
		_, path, err := fonts.Find(fonts.BaseDirs(), name)
		if err != nil {
			a.log.Warn().Str("font", name).Msg("font not found; using the default font")
			return
		}
		a.font = rl.LoadFont(path)
		a.console.SetFont(a.font)
		a.hud.SetFont(a.font)
		a.debug.SetFont(a.font)
	}
}

func cursorShape(c nav.Cursor) int32 {
	switch c {
	case nav.CursorGrab:
		return rl.MouseCursorPointingHand
	case nav.CursorGrabbing:
		return rl.MouseCursorResizeAll
	default:
		return rl.MouseCursorDefault
	}
}

func (a *app) draw() {
	a.scene.Draw()
	a.hud.Draw()
	a.debug.Draw()
	a.console.Draw()
}

func (a *app) close() {
	if a.cues != nil {
		_ = a.cues.Close()
	}
	a.registry.Close()
	if a.started {
		a.scene.Unload()
		if a.font.Texture.ID != 0 {
			rl.UnloadFont(a.font)
		}
	}
}

// onClick resolves a click: the HUD first, then the artwork under the gaze or a seat under the pointer.
func (a *app) onClick(x, y float32) {
	if a.hud.HandleClick(x, y) {
		return
	}
	t, ok := a.gaze.Click(a.scene.ScreenRay(x, y))
	if !ok {
		return
	}
	switch t.Kind {
	case scenegraph.KindSeat:
		a.sit(t.Owner)
	case scenegraph.KindArtwork:
		a.hud.Open(t.Metadata)
	}
}

func (a *app) sit(seat *scenegraph.Node) bool {
	pos := seat.WorldPosition().Add(mgl32.Vec3{0, seatOffset, 0})
	if !a.player.ActivateSeat(pos) {
		return false
	}
	a.log.Info().Str("seat", seat.Name).Msg("sat down")
	return true
}

func (a *app) onDetailOpen(meta *scenegraph.Metadata) {
	a.player.DisableRotation()
	a.log.Info().Str("title", meta.Title).Msg("detail view opened")
	if a.cues == nil || meta.AudioCue == "" {
		return
	}
	if err := a.cues.Play(meta.AudioCue); err != nil {
		a.log.Warn().Err(err).Str("cue", meta.AudioCue).Msg("audio cue failed")
	}
}

func (a *app) onDetailClose() {
	a.player.EnableRotation()
	if a.cues != nil {
		a.cues.Stop()
	}
}

func (a *app) navLines() []string {
	p := a.player.Pose()
	lines := []string{
		fmt.Sprintf("Pos: %.2f %.2f %.2f", p.Position[0], p.Position[1], p.Position[2]),
		fmt.Sprintf("Yaw: %.1f  Pitch: %.1f", mgl32.RadToDeg(p.Yaw), mgl32.RadToDeg(p.Pitch)),
		fmt.Sprintf("Speed: %.2f", nav.HorizontalSpeed(a.body.LinearVelocity())),
		fmt.Sprintf("Seated: %v  Cursor: %s", a.player.Seated(), a.player.Orientation().Cursor()),
		fmt.Sprintf("Interactables: %d", a.registry.Len()),
	}
	if t, ok := a.gaze.Current(); ok {
		lines = append(lines, fmt.Sprintf("Target: %s (%.1f)", t.Owner.Name, t.Distance))
	}
	return lines
}

func (a *app) commands() *commands.Registry {
	reg := commands.NewRegistry()

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			a.log.Info().Msg(line)
		}
		return nil
	})

	sitFlags := commands.NewFlagSet("sit")
	node := sitFlags.String("node", "", "seat node name")
	reg.Register("sit", "sit on a seat: --node NAME", sitFlags, func([]string) error {
		n := a.graph.Find(*node)
		if n == nil || n.Interactable == nil || n.Interactable.Kind != scenegraph.KindSeat {
			return fmt.Errorf("no seat named %q", *node)
		}
		if !a.sit(n) {
			return errors.New("no body attached")
		}
		return nil
	})

	reg.Register("stand", "stand up", nil, func([]string) error {
		if !a.player.StandUp() {
			return errors.New("not seated")
		}
		return nil
	})

	gotoFlags := commands.NewFlagSet("goto")
	gx := gotoFlags.Float32("x", 0, "x")
	gy := gotoFlags.Float32("y", defaultSpawn[1], "y")
	gz := gotoFlags.Float32("z", 0, "z")
	reg.Register("goto", "move the body: --x --y --z", gotoFlags, func([]string) error {
		a.player.StandUp()
		a.body.SetTranslation(mgl32.Vec3{*gx, *gy, *gz})
		a.body.SetLinearVelocity(mgl32.Vec3{})
		return nil
	})

	lookFlags := commands.NewFlagSet("look")
	yaw := lookFlags.Float32("yaw", 0, "yaw in degrees, positive turns right")
	pitch := lookFlags.Float32("pitch", 0, "pitch in degrees, positive looks up")
	reg.Register("look", "set the view direction: --yaw --pitch", lookFlags, func([]string) error {
		a.player.SetOrientation(mgl32.DegToRad(*yaw), mgl32.DegToRad(*pitch))
		return nil
	})

	overlayFlags := commands.NewFlagSet("overlay")
	fps := overlayFlags.Bool("fps", true, "show FPS")
	mem := overlayFlags.Bool("mem", true, "show heap size")
	navInfo := overlayFlags.Bool("nav", true, "show navigation state")
	grid := overlayFlags.Bool("grid", true, "show the floor grid")
	// Only the flags given change; e.g. "overlay --nav --fps=false".
	reg.Register("overlay", "toggle overlays: --fps --mem --nav --grid", overlayFlags, func([]string) error {
		if overlayFlags.Changed("fps") {
			a.debug.SetShowFPS(*fps)
		}
		if overlayFlags.Changed("mem") {
			a.debug.SetShowMemAlloc(*mem)
		}
		if overlayFlags.Changed("nav") {
			a.debug.SetShowNav(*navInfo)
		}
		if overlayFlags.Changed("grid") {
			a.scene.GridVisible = *grid
		}
		return nil
	})

	reg.Register("reload", "reload the exhibition layout", nil, func([]string) error {
		a.hud.Close()
		a.player.StandUp()
		a.loadLayout()
		a.body.SetTranslation(a.spawn)
		a.body.SetLinearVelocity(mgl32.Vec3{})
		a.player.Attach(a.body)
		a.player.SetOrientation(0, 0)
		return nil
	})

	return reg
}
