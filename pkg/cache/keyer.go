package cache

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// ComponentsKey addresses the parsed components of an input whose raw
	// bytes hash to contentHash.
	ComponentsKey(contentHash string) string
	// ArtifactKey addresses one rendered output.
	ArtifactKey(componentsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Component string    `json:"component"`
	Root      string    `json:"root,omitempty"`
	View      string    `json:"view"`
	Format    string    `json:"format"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Font      string    `json:"font,omitempty"`
	Labels    bool      `json:"labels"`
	Detailed  bool      `json:"detailed,omitempty"`
	Angles    []float64 `json:"angles,omitempty"`
	Scale     float64   `json:"scale,omitempty"`
}

// DefaultKeyer produces "components:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ComponentsKey(contentHash string) string {
	return "components:" + contentHash
}

func (DefaultKeyer) ArtifactKey(componentsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", componentsHash, opts)
}
