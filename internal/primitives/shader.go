package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"render-bench/internal/lighting"
)

// shaderLocs caches uniform locations; -1 means the uniform was optimised out.
type shaderLocs struct {
	viewPos, lightCount                                int32
	lightPosition, lightAmbient, lightDiffuse          int32
	lightSpecular, spotDirection, spotCutoff, spotExpo int32
	matAmbient, matDiffuse, matSpecular, matShininess  int32
}

// ensureShader compiles the lit shader on first use. Reports whether it is usable.
func (r *Registry) ensureShader() bool {
	if r.shader.ID != 0 {
		return rl.IsShaderValid(r.shader)
	}
	r.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(r.shader) {
		return false
	}
	loc := func(name string) int32 { return rl.GetShaderLocation(r.shader, name) }
	r.locs = shaderLocs{
		viewPos:       loc("viewPos"),
		lightCount:    loc("lightCount"),
		lightPosition: loc("lightPosition"),
		lightAmbient:  loc("lightAmbient"),
		lightDiffuse:  loc("lightDiffuse"),
		lightSpecular: loc("lightSpecular"),
		spotDirection: loc("spotDirection"),
		spotCutoff:    loc("spotCutoff"),
		spotExpo:      loc("spotExponent"),
		matAmbient:    loc("matAmbient"),
		matDiffuse:    loc("matDiffuse"),
		matSpecular:   loc("matSpecular"),
		matShininess:  loc("matShininess"),
	}
	return true
}

// Vertex attributes and the mvp/texture0/colDiffuse uniforms follow raylib's
// default names so the immediate-mode batch feeds this shader directly.
// Positions and normals arrive already in world space.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;
uniform mat4 mvp;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
out vec4 fragColor;
void main() {
  fragPosition = vertexPosition;
  fragTexCoord = vertexTexCoord;
  fragNormal = vertexNormal;
  fragColor = vertexColor;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
#define MAX_LIGHTS 3
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
in vec4 fragColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform float lightCount;
uniform vec3 lightPosition[MAX_LIGHTS];
uniform vec4 lightAmbient[MAX_LIGHTS];
uniform vec4 lightDiffuse[MAX_LIGHTS];
uniform vec4 lightSpecular[MAX_LIGHTS];
uniform vec3 spotDirection[MAX_LIGHTS];
uniform float spotCutoff[MAX_LIGHTS];
uniform float spotExponent[MAX_LIGHTS];
uniform vec4 matAmbient;
uniform vec4 matDiffuse;
uniform vec4 matSpecular;
uniform float matShininess;
out vec4 finalColor;
void main() {
  vec4 base = texture(texture0, fragTexCoord) * colDiffuse * fragColor;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 V = normalize(viewPos - fragPosition);
  vec3 color = vec3(0.0);
  int n = int(lightCount);
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (i >= n) break;
    vec3 L = normalize(lightPosition[i] - fragPosition);
    float spot = 1.0;
    if (spotCutoff[i] > 0.0 && spotCutoff[i] < 180.0) {
      float c = dot(-L, normalize(spotDirection[i]));
      spot = c >= cos(radians(spotCutoff[i])) ? pow(max(c, 0.0), spotExponent[i]) : 0.0;
    }
    float NdotL = max(dot(N, L), 0.0);
    float spec = 0.0;
    if (NdotL > 0.0) {
      spec = pow(max(dot(N, normalize(L + V)), 0.0), matShininess);
    }
    color += lightAmbient[i].rgb * matAmbient.rgb;
    color += spot * (lightDiffuse[i].rgb * matDiffuse.rgb * NdotL + lightSpecular[i].rgb * matSpecular.rgb * spec);
  }
  finalColor = vec4(color * base.rgb, matDiffuse.a * base.a);
}
`
)

// setLitShaderUniforms uploads the current lights and m (cgo-safe: local slices).
func (r *Registry) setLitShaderUniforms(m lighting.Material) {
	var (
		pos, dir       [3 * lighting.MaxLights]float32
		amb, dif, spec [4 * lighting.MaxLights]float32
		cutoff, expo   [lighting.MaxLights]float32
	)
	for i, l := range r.lights {
		copy(pos[i*3:], l.Position[:])
		copy(dir[i*3:], l.SpotDirection[:])
		copy(amb[i*4:], l.Ambient[:])
		copy(dif[i*4:], l.Diffuse[:])
		copy(spec[i*4:], l.Specular[:])
		cutoff[i] = l.SpotCutoff
		expo[i] = l.SpotExponent
	}
	viewPos := r.viewPos

	setV := func(loc int32, v []float32, t rl.ShaderUniformDataType, count int32) {
		if loc >= 0 {
			rl.SetShaderValueV(r.shader, loc, v, t, count)
		}
	}
	set := func(loc int32, v float32) {
		if loc >= 0 {
			rl.SetShaderValue(r.shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}

	setV(r.locs.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	set(r.locs.lightCount, float32(len(r.lights)))
	setV(r.locs.lightPosition, pos[:], rl.ShaderUniformVec3, lighting.MaxLights)
	setV(r.locs.spotDirection, dir[:], rl.ShaderUniformVec3, lighting.MaxLights)
	setV(r.locs.lightAmbient, amb[:], rl.ShaderUniformVec4, lighting.MaxLights)
	setV(r.locs.lightDiffuse, dif[:], rl.ShaderUniformVec4, lighting.MaxLights)
	setV(r.locs.lightSpecular, spec[:], rl.ShaderUniformVec4, lighting.MaxLights)
	setV(r.locs.spotCutoff, cutoff[:], rl.ShaderUniformFloat, lighting.MaxLights)
	setV(r.locs.spotExpo, expo[:], rl.ShaderUniformFloat, lighting.MaxLights)

	matAmb, matDif, matSpec := m.Ambient, m.Diffuse, m.Specular
	setV(r.locs.matAmbient, matAmb[:], rl.ShaderUniformVec4, 1)
	setV(r.locs.matDiffuse, matDif[:], rl.ShaderUniformVec4, 1)
	setV(r.locs.matSpecular, matSpec[:], rl.ShaderUniformVec4, 1)
	set(r.locs.matShininess, m.Shininess)
}
