package scene

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"exhibition/internal/nav"
	"exhibition/internal/primitives"
	"exhibition/internal/scenegraph"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	skyboxScale    = 1000

	// Artwork glow: a faint idle emissive, brighter while the artwork is the gaze target.
	artworkEmissive = 0.8
	hoverEmissive   = 2.0
)

// skyboxPaths are tried in order so the skybox is found whether run from repo root or cmd/exhibition.
var skyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

// lightDir is the direction towards the gallery's key light.
var lightDir = [3]float32{0.4, 1, 0.3}

// Scene draws the exhibition scene graph from the viewer's camera.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	graph     *scenegraph.Graph
	prims     *primitives.Registry
	highlight *scenegraph.Node

	// Skybox: optional texture drawn first in 3D mode. Cubemap or equirectangular panorama.
	skyboxTex       rl.Texture2D
	skyboxMesh      rl.Mesh
	skyboxMtl       rl.Material
	skyboxLoaded    bool
	skyboxPending   bool   // true = path known, GPU load deferred until first Draw (after window/GL exists)
	skyboxPath      string // set when pending; used to load texture on first frame
	skyboxEquirect  bool   // true = panorama (2D texture + shader), false = cubemap
	skyboxShader    rl.Shader
	skyboxCamPosLoc int32
	skyboxTexLoc    int32
}

// New returns a scene with a perspective camera of the given vertical field of view (degrees)
// looking down -Z. Tries to load a skybox from assets/skybox/ (see skyboxPaths).
func New(fovy float32) *Scene {
	s := &Scene{prims: primitives.NewRegistry()}
	s.Camera.Position = rl.NewVector3(0, 1.6, 0)
	s.Camera.Target = rl.NewVector3(0, 1.6, -1)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fovy
	s.Camera.Projection = rl.CameraPerspective
	s.loadSkybox()
	return s
}

// SetGraph sets the graph drawn each frame. nil draws nothing but the backdrop.
func (s *Scene) SetGraph(g *scenegraph.Graph) {
	s.graph = g
	s.highlight = nil
}

// SetPose places the camera at the viewer's pose.
func (s *Scene) SetPose(p nav.Pose) {
	t := p.Target()
	s.Camera.Position = rl.NewVector3(p.Position[0], p.Position[1], p.Position[2])
	s.Camera.Target = rl.NewVector3(t[0], t[1], t[2])
}

// SetHighlight marks the capability owner whose meshes glow as hovered. nil clears it.
func (s *Scene) SetHighlight(owner *scenegraph.Node) {
	s.highlight = owner
}

// ScreenRay returns the world ray through screen point (x, y).
func (s *Scene) ScreenRay(x, y float32) scenegraph.Ray {
	r := rl.GetScreenToWorldRay(rl.NewVector2(x, y), s.Camera)
	return scenegraph.Ray{
		Origin:    mgl32.Vec3{r.Position.X, r.Position.Y, r.Position.Z},
		Direction: mgl32.Vec3{r.Direction.X, r.Direction.Y, r.Direction.Z}.Normalize(),
	}
}

// equirectAspectMin/Max: width/height ratio for equirectangular panorama (typically 2:1).
const equirectAspectMin = 1.8
const equirectAspectMax = 2.2

// loadSkybox finds the skybox file and decides cubemap vs equirect. GPU loading is deferred to
// ensureSkyboxLoaded (called from Draw) so it runs after the window/OpenGL context exists.
func (s *Scene) loadSkybox() {
	var path string
	for _, p := range skyboxPaths {
		cleaned := filepath.Clean(p)
		if _, err := os.Stat(cleaned); err == nil {
			path = cleaned
			break
		}
	}
	if path == "" {
		return
	}
	img := rl.LoadImage(path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return
	}
	aspect := float32(img.Width) / float32(img.Height)
	s.skyboxEquirect = aspect >= equirectAspectMin && aspect <= equirectAspectMax
	rl.UnloadImage(img)

	s.skyboxPath = path
	s.skyboxPending = true
}

// ensureSkyboxLoaded runs the first time we Draw with a pending skybox; it loads GPU resources
// (texture, mesh, material, shader) so that LoadTexture/LoadTextureCubemap run after the window/GL context exists.
func (s *Scene) ensureSkyboxLoaded() {
	if !s.skyboxPending || s.skyboxPath == "" {
		return
	}
	path := s.skyboxPath
	s.skyboxPending = false
	s.skyboxPath = ""

	if !s.skyboxEquirect {
		img := rl.LoadImage(path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			return
		}
		s.skyboxTex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.skyboxTex) {
			return
		}
		s.skyboxMesh = rl.GenMeshCube(1, 1, 1)
		s.skyboxMtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.skyboxMtl, rl.MapCubemap, s.skyboxTex)
		s.skyboxLoaded = true
		return
	}

	s.skyboxTex = rl.LoadTexture(path)
	if !rl.IsTextureValid(s.skyboxTex) {
		return
	}
	shader := loadEquirectSkyboxShader()
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.skyboxTex)
		return
	}
	s.skyboxMesh = rl.GenMeshCube(1, 1, 1)
	s.skyboxMtl = rl.LoadMaterialDefault()
	s.skyboxMtl.Shader = shader
	s.skyboxCamPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.skyboxTexLoc = rl.GetShaderLocation(shader, "skybox")
	s.skyboxShader = shader
	s.skyboxLoaded = true
}

// Equirectangular skybox shader: samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)

func loadEquirectSkyboxShader() rl.Shader {
	return rl.LoadShaderFromMemory(equirectVS, equirectFS)
}

// Draw renders the 3D scene. Call after ClearBackground and before 2D overlays.
// Draws the skybox first (if loaded), then every mesh in the graph, then the grid when GridVisible.
func (s *Scene) Draw() {
	s.ensureSkyboxLoaded()
	rl.BeginMode3D(s.Camera)
	if s.skyboxLoaded {
		drawSkybox(s)
	}
	if s.graph != nil {
		pos := s.Camera.Position
		s.prims.SetView([3]float32{pos.X, pos.Y, pos.Z}, lightDir)
		s.graph.Walk(func(n *scenegraph.Node) bool {
			if n.Mesh != nil {
				s.drawNode(n)
			}
			return true
		})
	}
	if s.GridVisible {
		drawEditorGrid()
	}
	rl.EndMode3D()
}

func (s *Scene) drawNode(n *scenegraph.Node) {
	var emissive float32
	if owner := scenegraph.FindInteractable(n); owner != nil && owner.Interactable.Kind == scenegraph.KindArtwork {
		emissive = artworkEmissive
		if owner == s.highlight {
			emissive = hoverEmissive
		}
	}
	c := n.Mesh.Center()
	size := n.Mesh.Size()
	m := n.WorldMatrix().
		Mul4(mgl32.Translate3D(c[0], c[1], c[2])).
		Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	col := rl.NewColor(n.Color[0], n.Color[1], n.Color[2], n.Color[3])
	s.prims.DrawBox(toMatrix(m), col, emissive)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

// Unload releases GPU resources.
func (s *Scene) Unload() {
	s.prims.Unload()
	if s.skyboxLoaded {
		rl.UnloadTexture(s.skyboxTex)
		rl.UnloadMesh(&s.skyboxMesh)
		s.skyboxLoaded = false
	}
}

// drawSkybox draws the skybox as a large cube centered on the camera (cubemap or equirect).
func drawSkybox(s *Scene) {
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	pos := s.Camera.Position
	scale := rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale)
	trans := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)
	transform := rl.MatrixMultiply(scale, trans)
	if s.skyboxEquirect {
		if s.skyboxCamPosLoc >= 0 {
			camPos := []float32{pos.X, pos.Y, pos.Z}
			rl.SetShaderValueV(s.skyboxMtl.Shader, s.skyboxCamPosLoc, camPos, rl.ShaderUniformVec3, 1)
		}
		if s.skyboxTexLoc >= 0 {
			rl.SetShaderValueTexture(s.skyboxMtl.Shader, s.skyboxTexLoc, s.skyboxTex)
		}
	}
	rl.DrawMesh(s.skyboxMesh, s.skyboxMtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// drawEditorGrid draws an infinite-style grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	// Grid lines on XZ plane (Y=0): lines along X (varying Z) and along Z (varying X)
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
