// Package tags renders tag maps into the Matroska XML tag document that
// mkvmerge consumes via --global-tags and --tags.
package tags

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"
)

// tagsDoc is the document root. Matroska wraps every name/value pair in its
// own <Tag><Simple> element.
type tagsDoc struct {
	XMLName xml.Name  `xml:"Tags"`
	Tags    []tagElem `xml:"Tag"`
}

type tagElem struct {
	Simple simpleElem `xml:"Simple"`
}

type simpleElem struct {
	Name   string `xml:"Name"`
	String string `xml:"String"`
}

// Marshal renders tags as a Matroska tag XML document. Keys are emitted in
// sorted order so the output is deterministic for identical input.
func Marshal(tags map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := tagsDoc{}
	for _, k := range keys {
		doc.Tags = append(doc.Tags, tagElem{Simple: simpleElem{Name: k, String: tags[k]}})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tag XML: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteFile renders tags and writes the document to path.
func WriteFile(path string, tags map[string]string) error {
	data, err := Marshal(tags)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write tag XML: %w", err)
	}
	return nil
}
