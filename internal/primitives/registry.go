package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Registry owns the unit-cube mesh and lit material every scene box is drawn with. GPU resources
// are created on first Draw so that they are allocated after the window/OpenGL context exists.
type Registry struct {
	mesh     rl.Mesh
	mtl      rl.Material
	ready    bool
	locs     uniformLocs
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

type uniformLocs struct {
	viewPos, lightDir, ambient, lightColor     int32
	lightIntensity, specularPower, specularStr int32
	emissive                                   int32
}

// NewRegistry returns a registry. The cube is created on first Draw.
func NewRegistry() *Registry {
	return &Registry{lightDir: [3]float32{0.5, 1, 0.5}}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so boxes get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Registry) ensureCube() {
	if r.ready {
		return
	}
	r.ready = true
	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.mtl = rl.LoadMaterialDefault()
	shader := loadLitShader()
	if !rl.IsShaderValid(shader) {
		r.locs = uniformLocs{-1, -1, -1, -1, -1, -1, -1, -1}
		return
	}
	r.mtl.Shader = shader
	r.locs = uniformLocs{
		viewPos:        rl.GetShaderLocation(shader, "viewPos"),
		lightDir:       rl.GetShaderLocation(shader, "lightDir"),
		ambient:        rl.GetShaderLocation(shader, "ambient"),
		lightColor:     rl.GetShaderLocation(shader, "lightColor"),
		lightIntensity: rl.GetShaderLocation(shader, "lightIntensity"),
		specularPower:  rl.GetShaderLocation(shader, "specularPower"),
		specularStr:    rl.GetShaderLocation(shader, "specularStrength"),
		emissive:       rl.GetShaderLocation(shader, "emissive"),
	}
}

// loadLitShader returns a shader that does simple directional light + ambient + emissive glow.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float emissive;
out vec4 finalColor;
const float emissiveScale = 0.12;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  vec3 glow = tint.rgb * emissive * emissiveScale;
  finalColor = vec4(amb + diffuse + specular + glow, tint.a);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0–1).
const defaultSpecularStrength = float32(0.35)

// setUniforms sets the per-frame lighting and the per-draw emissive term (cgo-safe: local arrays).
func (r *Registry) setUniforms(emissive float32) {
	shader := r.mtl.Shader
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if r.locs.viewPos >= 0 {
		rl.SetShaderValueV(shader, r.locs.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if r.locs.lightDir >= 0 {
		rl.SetShaderValueV(shader, r.locs.lightDir, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if r.locs.ambient >= 0 {
		rl.SetShaderValueV(shader, r.locs.ambient, amb[:], rl.ShaderUniformVec4, 1)
	}
	if r.locs.lightColor >= 0 {
		rl.SetShaderValueV(shader, r.locs.lightColor, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if r.locs.lightIntensity >= 0 {
		rl.SetShaderValue(shader, r.locs.lightIntensity, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if r.locs.specularPower >= 0 {
		rl.SetShaderValue(shader, r.locs.specularPower, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if r.locs.specularStr >= 0 {
		rl.SetShaderValue(shader, r.locs.specularStr, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
	if r.locs.emissive >= 0 {
		rl.SetShaderValue(shader, r.locs.emissive, []float32{emissive}, rl.ShaderUniformFloat)
	}
}

// DrawBox draws the unit cube under transform, tinted with color. emissive adds a self-lit glow
// (0 for plain geometry). Must be called between BeginMode3D and EndMode3D, after SetView.
func (r *Registry) DrawBox(transform rl.Matrix, color rl.Color, emissive float32) {
	r.ensureCube()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setUniforms(emissive)
	rl.DrawMesh(r.mesh, r.mtl, transform)
}

// Unload releases the GPU resources. Call before the window closes.
func (r *Registry) Unload() {
	if !r.ready {
		return
	}
	rl.UnloadMesh(&r.mesh)
	rl.UnloadMaterial(r.mtl)
	r.ready = false
}
