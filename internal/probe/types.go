package probe

// TrackType classifies a stream within the container.
type TrackType string

const (
	TrackVideo    TrackType = "video"
	TrackAudio    TrackType = "audio"
	TrackSubtitle TrackType = "subtitle"
	TrackOther    TrackType = "other" // data/attachment streams ffprobe reports
)

// Format holds container-level metadata from ffprobe's format section.
type Format struct {
	Filename   string
	NbStreams  int
	FormatName string
	Duration   float64
	Size       int64
	Tags       map[string]string
}

// Track holds the parsed properties of a single stream. Index is the
// absolute ffprobe stream index; the slice order in Result.Tracks matches
// source order.
type Track struct {
	Index   int
	Type    TrackType
	Codec   string
	Tags    map[string]string
	Default bool
	Forced  bool

	// CoverArt marks an embedded cover image (attached_pic disposition or a
	// trailing mjpeg stream). Cover art is not a playable track and is
	// excluded from muxing.
	CoverArt bool
}

// Chapter is one chapter marker with times in seconds.
type Chapter struct {
	ID    int64
	Start float64
	End   float64
	Title string
}

// Result is the fully parsed output of a single ffprobe JSON call.
// It is read-only for the lifetime of the run.
type Result struct {
	Format   Format
	Tracks   []Track
	Chapters []Chapter
}

// Title returns the track's title tag, or "".
func (t *Track) Title() string { return t.Tags["title"] }

// Language returns the track's language tag, or "".
func (t *Track) Language() string { return t.Tags["language"] }

// MuxableTracks returns the tracks that should appear in the destination,
// preserving source order. Cover art and non-A/V/S streams are excluded.
func (r *Result) MuxableTracks() []Track {
	out := make([]Track, 0, len(r.Tracks))
	for _, t := range r.Tracks {
		if t.CoverArt || t.Type == TrackOther {
			continue
		}
		out = append(out, t)
	}
	return out
}
