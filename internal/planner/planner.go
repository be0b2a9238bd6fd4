package planner

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/m4v2mkv/internal/config"
	"github.com/backmassage/m4v2mkv/internal/probe"
)

// BuildPlan produces the complete multiplex plan from config and probe data.
// workDir is the per-run temp directory where side files (tag XMLs,
// extracted SRTs) will be materialized by the pipeline.
//
// Flow:
//  1. Resolve container tags through the tag policy
//  2. Walk muxable tracks in source order, resolving per-track tags and
//     carrying title/language/default/forced where present
//  3. Schedule SRT extraction for subtitle codecs Matroska cannot carry
//  4. Record the chapter count for reporting
func BuildPlan(cfg *config.Config, pr *probe.Result, workDir string) *Plan {
	plan := &Plan{
		InputPath:    cfg.Input,
		OutputPath:   cfg.Output,
		ChapterCount: len(pr.Chapters),
		RawArgs:      cfg.RawArgs,
	}

	// --- 1. Container tags ---
	plan.GlobalTags = cfg.Tags.ApplyGlobal(pr.Format.Tags)
	if len(plan.GlobalTags) > 0 {
		plan.GlobalTagsFile = filepath.Join(workDir, "global_tags.xml")
	}

	// --- 2+3. Tracks ---
	for _, t := range pr.MuxableTracks() {
		tp := TrackPlan{
			SourceIndex: t.Index,
			Type:        t.Type,
			Codec:       t.Codec,
			Title:       t.Title(),
			Language:    t.Language(),
			Default:     t.Default,
			Forced:      t.Forced,
			Tags:        cfg.Tags.ApplyTrack(t.Tags),
		}

		if len(tp.Tags) > 0 {
			tp.TagsFile = filepath.Join(workDir, fmt.Sprintf("track_%d_tags.xml", t.Index))
		}

		if t.Type == probe.TrackSubtitle && needsConversion(t.Codec) {
			tp.ExtractedPath = filepath.Join(workDir, fmt.Sprintf("sub_%d.srt", t.Index))
			plan.Extractions = append(plan.Extractions, Extraction{
				SourceIndex: t.Index,
				OutputPath:  tp.ExtractedPath,
			})
		}

		plan.Tracks = append(plan.Tracks, tp)
	}

	return plan
}
