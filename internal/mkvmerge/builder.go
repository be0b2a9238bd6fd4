package mkvmerge

import (
	"fmt"
	"strings"

	"github.com/backmassage/m4v2mkv/internal/planner"
	"github.com/backmassage/m4v2mkv/internal/probe"
)

// Build constructs the complete mkvmerge argument slice (excluding the
// executable itself) for a plan. The argv is fully determined by the plan,
// so identical inputs produce identical commands.
//
// Layout:
//
//	--output OUT [--global-tags XML]
//	<per-track metadata for tracks read from the main input>
//	<track selection flags> INPUT
//	<per-file metadata + path for each extracted SRT>
//	--track-order 0:a,0:b,1:0,... <raw args>
func Build(plan *planner.Plan) []string {
	args := make([]string, 0, 32)

	args = append(args, "--output", plan.OutputPath)

	if plan.GlobalTagsFile != "" {
		args = append(args, "--global-tags", plan.GlobalTagsFile)
	}

	// --- Main input: per-track metadata ---
	// Extracted subtitle tracks are excluded here; their metadata rides on
	// the SRT input group instead.
	extractedFile := map[int]int{} // source index → mkvmerge file index
	fileIdx := 1
	for _, e := range plan.Extractions {
		extractedFile[e.SourceIndex] = fileIdx
		fileIdx++
	}

	var videoTIDs, audioTIDs, subTIDs []string
	for _, t := range plan.Tracks {
		if t.ExtractedPath != "" {
			continue
		}

		tid := t.SourceIndex
		switch t.Type {
		case probe.TrackVideo:
			videoTIDs = append(videoTIDs, fmt.Sprint(tid))
		case probe.TrackAudio:
			audioTIDs = append(audioTIDs, fmt.Sprint(tid))
		case probe.TrackSubtitle:
			subTIDs = append(subTIDs, fmt.Sprint(tid))
		}

		args = appendTrackMeta(args, tid, t)
	}

	// --- Main input: explicit track selection ---
	// Selection is always explicit so cover-art streams and converted
	// subtitles never leak through from the source container.
	args = appendSelection(args, "--video-tracks", "--no-video", videoTIDs)
	args = appendSelection(args, "--audio-tracks", "--no-audio", audioTIDs)
	args = appendSelection(args, "--subtitle-tracks", "--no-subtitles", subTIDs)

	args = append(args, plan.InputPath)

	// --- Extracted SRT inputs ---
	// Each SRT file carries exactly one track; its TID within the file is 0.
	for _, t := range plan.Tracks {
		if t.ExtractedPath == "" {
			continue
		}
		args = appendTrackMeta(args, 0, t)
		args = append(args, t.ExtractedPath)
	}

	// --- Track order: source order end-to-end ---
	if order := trackOrder(plan, extractedFile); order != "" {
		args = append(args, "--track-order", order)
	}

	args = append(args, plan.RawArgs...)

	return args
}

// appendTrackMeta adds the metadata flags for one track addressed by tid.
func appendTrackMeta(args []string, tid int, t planner.TrackPlan) []string {
	if t.Language != "" {
		args = append(args, "--language", fmt.Sprintf("%d:%s", tid, t.Language))
	}
	if t.Title != "" {
		args = append(args, "--track-name", fmt.Sprintf("%d:%s", tid, t.Title))
	}
	if t.Default {
		args = append(args, "--default-track", fmt.Sprintf("%d:yes", tid))
	}
	if t.Forced {
		args = append(args, "--forced-track", fmt.Sprintf("%d:yes", tid))
	}
	if t.TagsFile != "" {
		args = append(args, "--tags", fmt.Sprintf("%d:%s", tid, t.TagsFile))
	}
	return args
}

// appendSelection emits the keep-list flag, or the none flag when the list
// is empty.
func appendSelection(args []string, keepFlag, noneFlag string, tids []string) []string {
	if len(tids) == 0 {
		return append(args, noneFlag)
	}
	return append(args, keepFlag, strings.Join(tids, ","))
}

// trackOrder builds the --track-order value walking plan tracks in source
// order. Tracks from the main input are file 0; each extracted SRT is its
// own single-track file.
func trackOrder(plan *planner.Plan, extractedFile map[int]int) string {
	entries := make([]string, 0, len(plan.Tracks))
	for _, t := range plan.Tracks {
		if fileIdx, ok := extractedFile[t.SourceIndex]; ok {
			entries = append(entries, fmt.Sprintf("%d:0", fileIdx))
			continue
		}
		entries = append(entries, fmt.Sprintf("0:%d", t.SourceIndex))
	}
	return strings.Join(entries, ",")
}
