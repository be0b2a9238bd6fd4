package planner

// needsConversion reports whether a subtitle codec must be converted to SRT
// before muxing. MP4 text subtitles (mov_text/tx3g) have no Matroska codec
// mapping, so mkvmerge rejects them; SubRip and other Matroska-native codecs
// pass through from the main input.
func needsConversion(codec string) bool {
	switch codec {
	case "subrip", "srt", "ass", "ssa", "webvtt", "hdmv_pgs_subtitle", "dvd_subtitle":
		return false
	default:
		return true
	}
}
