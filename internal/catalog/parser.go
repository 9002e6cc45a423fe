// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog parses SDMX structure documents into normalized series records.
// See docs/ARCHITECTURE § Catalog Parsing.
package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// ErrMalformedCatalog reports that the input could not be parsed as
// well-formed markup at all. Missing or malformed sub-elements inside a
// well-formed document degrade to empty fields instead.
var ErrMalformedCatalog = errors.New("malformed catalog document")

// sdmxStructureNS is the namespace of dataflow elements in SDMX 2.1
// structure messages.
const sdmxStructureNS = "http://www.sdmx.org/resources/sdmxml/schemas/v2_1/structure"

// dataflowName is the element that carries one catalog series.
const dataflowName = "Dataflow"

// dataflow mirrors one Dataflow element. Names and Descriptions match by
// local element name, so the same struct serves both the namespaced and the
// namespace-agnostic passes.
type dataflow struct {
	ID           string     `xml:"id,attr"`
	Names        []langText `xml:"Name"`
	Descriptions []langText `xml:"Description"`
}

// langText is a language-tagged text element (xml:lang attribute).
type langText struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

// Parse extracts series records from a raw SDMX structure document. It looks
// for namespaced Dataflow elements first and retries namespace-agnostically
// when that finds nothing, tolerating catalogs that omit namespace prefixes.
// Elements without a stable id attribute are skipped silently. Only a
// document that is not well-formed markup fails; it returns an error
// wrapping ErrMalformedCatalog.
func Parse(rawXML string, cfg types.CatalogConfig) ([]types.Series, error) {
	cfg = cfg.ApplyDefaults()

	series, err := extract(rawXML, cfg, true)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		// Well-formed by now; the relaxed pass cannot fail.
		series, _ = extract(rawXML, cfg, false)
	}
	return series, nil
}

// extract walks the document and decodes every Dataflow element. When
// namespaced is true only elements in the SDMX structure namespace match;
// otherwise any element with the right local name does.
func extract(rawXML string, cfg types.CatalogConfig, namespaced bool) ([]types.Series, error) {
	dec := xml.NewDecoder(strings.NewReader(rawXML))
	var out []types.Series
	sawElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if start.Name.Local != dataflowName {
			continue
		}
		if namespaced && start.Name.Space != sdmxStructureNS {
			continue
		}

		var df dataflow
		if err := dec.DecodeElement(&df, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
		}
		if df.ID == "" {
			continue
		}
		out = append(out, newSeries(df, cfg))
	}

	// Well-formed XML always has a root element; input that produced no
	// elements at all (e.g. plain text or JSON) is not markup.
	if !sawElement {
		return nil, fmt.Errorf("%w: no markup elements found", ErrMalformedCatalog)
	}
	return out, nil
}

// newSeries normalizes one dataflow into a Series record.
func newSeries(df dataflow, cfg types.CatalogConfig) types.Series {
	s := types.Series{
		ID:          df.ID,
		NameLocal:   pickLang(df.Names, cfg.LocalLang),
		NameAlt:     pickLang(df.Names, cfg.AltLang),
		Description: firstText(df.Descriptions),
		CreatedAt:   time.Now().UTC(),
	}
	if s.NameLocal == "" && s.NameAlt == "" {
		s.NameLocal = firstUntagged(df.Names)
	}

	switch {
	case s.NameLocal != "":
		s.DisplayName = s.NameLocal
	case s.NameAlt != "":
		s.DisplayName = s.NameAlt
	default:
		s.DisplayName = s.ID
	}
	return s
}

// pickLang returns the trimmed text tagged with lang, or empty.
func pickLang(texts []langText, lang string) string {
	for _, t := range texts {
		if t.Lang == lang {
			return strings.TrimSpace(t.Value)
		}
	}
	return ""
}

// firstUntagged returns the first trimmed entry with no language tag.
func firstUntagged(texts []langText) string {
	for _, t := range texts {
		if t.Lang == "" {
			return strings.TrimSpace(t.Value)
		}
	}
	return ""
}

// firstText returns the first non-empty trimmed value.
func firstText(texts []langText) string {
	for _, t := range texts {
		if v := strings.TrimSpace(t.Value); v != "" {
			return v
		}
	}
	return ""
}
