package scenegraph

// Kind tells what an interactable node is for.
type Kind int

const (
	KindNone Kind = iota
	KindArtwork
	KindSeat
)

func (k Kind) String() string {
	switch k {
	case KindArtwork:
		return "artwork"
	case KindSeat:
		return "seat"
	default:
		return "none"
	}
}

// Metadata is the content record attached to an artwork. Artist, Year and AudioCue are optional
// and empty when absent. AudioCue is a path to an mp3 file.
type Metadata struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Artist      string `yaml:"artist,omitempty"`
	Year        string `yaml:"year,omitempty"`
	AudioCue    string `yaml:"audio,omitempty"`
}

// Interactable is the capability the scene decorator attaches to a node once, at load time.
// Seats usually carry no Metadata; artworks without Metadata are never reported as a target.
type Interactable struct {
	Kind     Kind
	Metadata *Metadata
}
