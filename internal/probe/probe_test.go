package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Realistic ffprobe JSON for an iTunes-style m4v with:
//   - 1 h264 video stream
//   - 1 AAC stereo audio stream tagged language=eng
//   - 1 mov_text subtitle stream
//   - 1 trailing mjpeg cover-art stream (no attached_pic disposition,
//     as Apple-authored files ship it)
//   - container tags and 2 chapters
const sampleM4V = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "disposition": { "default": 1, "attached_pic": 0 },
      "tags": { "language": "und", "handler_name": "Core Media Video" }
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "disposition": { "default": 1, "attached_pic": 0 },
      "tags": { "language": "eng", "title": "Stereo" }
    },
    {
      "index": 2,
      "codec_name": "mov_text",
      "codec_type": "subtitle",
      "disposition": { "default": 0, "forced": 1 },
      "tags": { "language": "eng" }
    },
    {
      "index": 3,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "disposition": { "default": 0, "attached_pic": 0 },
      "tags": {}
    }
  ],
  "chapters": [
    {
      "id": 1,
      "start_time": "0.000000",
      "end_time": "600.500000",
      "tags": { "title": "Opening" }
    },
    {
      "id": 2,
      "start_time": "600.500000",
      "end_time": "1200.000000",
      "tags": { "title": "The Middle" }
    }
  ],
  "format": {
    "filename": "/media/movie.m4v",
    "nb_streams": 4,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "1200.000000",
    "size": "734003200",
    "tags": {
      "major_brand": "M4V ",
      "title": "Foo",
      "creation_time": "2019-04-01T00:00:00.000000Z"
    }
  }
}`

func TestParseJSON_Format(t *testing.T) {
	r, err := ParseJSON([]byte(sampleM4V))
	require.NoError(t, err)

	assert.Equal(t, "mov,mp4,m4a,3gp,3g2,mj2", r.Format.FormatName)
	assert.Equal(t, int64(734003200), r.Format.Size)
	assert.InDelta(t, 1200.0, r.Format.Duration, 0.001)
	assert.Equal(t, "Foo", r.Format.Tags["title"])
}

func TestParseJSON_Tracks(t *testing.T) {
	r, err := ParseJSON([]byte(sampleM4V))
	require.NoError(t, err)
	require.Len(t, r.Tracks, 4)

	video := r.Tracks[0]
	assert.Equal(t, TrackVideo, video.Type)
	assert.Equal(t, "h264", video.Codec)
	assert.True(t, video.Default)
	assert.False(t, video.CoverArt)

	audio := r.Tracks[1]
	assert.Equal(t, TrackAudio, audio.Type)
	assert.Equal(t, "eng", audio.Language())
	assert.Equal(t, "Stereo", audio.Title())

	sub := r.Tracks[2]
	assert.Equal(t, TrackSubtitle, sub.Type)
	assert.Equal(t, "mov_text", sub.Codec)
	assert.True(t, sub.Forced)

	cover := r.Tracks[3]
	assert.True(t, cover.CoverArt, "trailing mjpeg stream should be detected as cover art")
}

func TestParseJSON_AttachedPicDisposition(t *testing.T) {
	const withDisposition = `{
	  "streams": [
	    {"index": 0, "codec_name": "png", "codec_type": "video",
	     "disposition": {"attached_pic": 1}, "tags": {}}
	  ],
	  "format": {"filename": "x.m4v", "nb_streams": 1, "format_name": "mov", "tags": {}}
	}`
	r, err := ParseJSON([]byte(withDisposition))
	require.NoError(t, err)
	require.Len(t, r.Tracks, 1)
	assert.True(t, r.Tracks[0].CoverArt)
}

func TestParseJSON_Chapters(t *testing.T) {
	r, err := ParseJSON([]byte(sampleM4V))
	require.NoError(t, err)
	require.Len(t, r.Chapters, 2)

	assert.Equal(t, "Opening", r.Chapters[0].Title)
	assert.InDelta(t, 0.0, r.Chapters[0].Start, 0.001)
	assert.InDelta(t, 600.5, r.Chapters[0].End, 0.001)
	assert.Equal(t, "The Middle", r.Chapters[1].Title)
}

func TestMuxableTracks_ExcludesCoverArt(t *testing.T) {
	r, err := ParseJSON([]byte(sampleM4V))
	require.NoError(t, err)

	muxable := r.MuxableTracks()
	require.Len(t, muxable, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{muxable[0].Index, muxable[1].Index, muxable[2].Index},
		"source order must be preserved")
}

func TestParseJSON_MissingTagsObject(t *testing.T) {
	const noTags = `{
	  "streams": [{"index": 0, "codec_name": "h264", "codec_type": "video"}],
	  "format": {"filename": "x.m4v", "nb_streams": 1, "format_name": "mov"}
	}`
	r, err := ParseJSON([]byte(noTags))
	require.NoError(t, err)
	assert.NotNil(t, r.Format.Tags)
	require.Len(t, r.Tracks, 1)
	assert.NotNil(t, r.Tracks[0].Tags)
	assert.Empty(t, r.Tracks[0].Language())
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte("not json at all"))
	assert.Error(t, err)
}
