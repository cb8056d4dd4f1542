package bench

// Result is the summary of one configuration. Field names are shared by all
// three suites; only the discriminator fields differ.
type Result struct {
	TriangleCount int     `json:"triangle_count"`
	LightType     string  `json:"light_type,omitempty"`
	UseTexture    *bool   `json:"use_texture,omitempty"`
	TextureSize   string  `json:"texture_size,omitempty"`
	AvgFPS        float64 `json:"avg_fps"`
	MinFPS        float64 `json:"min_fps"`
	MaxFPS        float64 `json:"max_fps"`
	AvgCPU        float64 `json:"avg_cpu"`
	AvgGPU        float64 `json:"avg_gpu"`
	TotalFrames   int     `json:"total_frames"`
}

// NewResult packages the reduced statistics of a configuration.
func NewResult(count int, v Variant, s Stats) Result {
	r := Result{
		TriangleCount: count,
		AvgFPS:        s.AvgFPS,
		MinFPS:        s.MinFPS,
		MaxFPS:        s.MaxFPS,
		AvgCPU:        s.AvgCPU,
		AvgGPU:        s.AvgGPU,
		TotalFrames:   s.TotalFrames,
	}
	v.label(&r)
	return r
}

// VariantLabel is the human readable variant of a result, empty for the basic suite.
func (r Result) VariantLabel() string {
	switch {
	case r.LightType != "":
		return r.LightType
	case r.TextureSize != "":
		return r.TextureSize
	}
	return ""
}
