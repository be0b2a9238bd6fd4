// Package ffmpeg is the transcoder escape hatch: it converts subtitle
// streams that Matroska cannot carry (MP4 mov_text/tx3g) into SRT side
// files for mkvmerge to pick up. No audio or video is ever re-encoded.
package ffmpeg
