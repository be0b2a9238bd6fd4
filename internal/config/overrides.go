package config

import (
	"encoding/json"
	"fmt"
)

// ParseOverrideJSON parses a CLI tag override object into the policy's
// set/drop form. The value syntax follows the original tool: a string value
// sets the tag, an explicit null deletes it.
//
//	{"title": "Foo", "creation_time": null}
func ParseOverrideJSON(raw string) (set map[string]string, drop []string, err error) {
	var obj map[string]*string
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, nil, fmt.Errorf("parse tag overrides %q: %w", raw, err)
	}

	set = make(map[string]string, len(obj))
	for key, value := range obj {
		if value == nil {
			drop = append(drop, key)
			continue
		}
		set[key] = *value
	}
	return set, drop, nil
}

// MergeGlobalOverrides applies a parsed --override-global-tags object on top
// of the configured policy. CLI values win over file values key by key.
func (p *TagPolicy) MergeGlobalOverrides(set map[string]string, drop []string) {
	p.GlobalSet, p.GlobalDrop = mergeOverrides(p.GlobalSet, p.GlobalDrop, set, drop)
}

// MergeTrackOverrides applies a parsed --override-track-tags object on top of
// the configured policy.
func (p *TagPolicy) MergeTrackOverrides(set map[string]string, drop []string) {
	p.TrackSet, p.TrackDrop = mergeOverrides(p.TrackSet, p.TrackDrop, set, drop)
}

func mergeOverrides(baseSet map[string]string, baseDrop []string, set map[string]string, drop []string) (map[string]string, []string) {
	merged := make(map[string]string, len(baseSet)+len(set))
	for k, v := range baseSet {
		merged[k] = v
	}
	for k, v := range set {
		merged[k] = v
	}

	// A CLI set wins over a file-level drop of the same key.
	dropSet := make(map[string]struct{}, len(baseDrop)+len(drop))
	for _, k := range baseDrop {
		if _, overridden := set[k]; !overridden {
			dropSet[k] = struct{}{}
		}
	}
	for _, k := range drop {
		delete(merged, k)
		dropSet[k] = struct{}{}
	}

	outDrop := make([]string, 0, len(dropSet))
	for k := range dropSet {
		outDrop = append(outDrop, k)
	}
	return merged, outDrop
}

// ApplyGlobal resolves the policy against probed container tags, returning
// the tag map that should be written to the mkv.
func (p *TagPolicy) ApplyGlobal(tags map[string]string) map[string]string {
	return applyPolicy(tags, p.GlobalSet, p.GlobalDrop)
}

// ApplyTrack resolves the policy against one track's probed tags.
func (p *TagPolicy) ApplyTrack(tags map[string]string) map[string]string {
	return applyPolicy(tags, p.TrackSet, p.TrackDrop)
}

func applyPolicy(tags, set map[string]string, drop []string) map[string]string {
	out := make(map[string]string, len(tags)+len(set))
	for k, v := range tags {
		out[k] = v
	}
	for k, v := range set {
		out[k] = v
	}
	for _, k := range drop {
		delete(out, k)
	}
	return out
}
