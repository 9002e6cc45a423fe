// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/catalog-engine/internal/tempres"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// Observation element names in SDMX data messages. Generic messages use
// Obs; some structure-specific dialects use Observation.
const (
	obsPrimary   = "Obs"
	obsSecondary = "Observation"
)

// samplesSubdir is where saved payloads land under the tracker's base dir.
const samplesSubdir = "samples"

// Prober fetches one series' data and reports its accessibility and shape.
// Every failure mode is folded into the ProbeResult; Probe never returns
// an error.
type Prober struct {
	client  FetchClient
	tracker *tempres.Tracker
	w       io.Writer
}

// NewProber builds a prober. tracker may be nil when sample persistence is
// never requested; warnings go to w.
func NewProber(client FetchClient, tracker *tempres.Tracker, w io.Writer) *Prober {
	if w == nil {
		w = io.Discard
	}
	return &Prober{client: client, tracker: tracker, w: w}
}

// Probe fetches the series and measures the payload. A fetch-client error
// or in-band failure yields AccessSucceeded false with the message set. A
// payload that fetched but is not well-formed markup yields AccessSucceeded
// true with ParseFailed set: transport success and content validity are
// reported independently. With saveSample set and a clean parse, the raw
// payload is persisted through the tracker; a write failure is logged and
// leaves SampleFilePath unset without affecting the other fields.
func (p *Prober) Probe(ctx context.Context, seriesID string, saveSample bool) types.ProbeResult {
	result := types.ProbeResult{SeriesID: seriesID}

	resp, err := p.client.FetchSeries(ctx, seriesID)
	result.HTTPStatus = resp.HTTPStatus
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}
	if !resp.Success {
		result.ErrorMessage = resp.Error
		if result.ErrorMessage == "" {
			result.ErrorMessage = "fetch client reported failure"
		}
		return result
	}

	result.AccessSucceeded = true
	result.SizeBytes = len(resp.Payload)

	count, err := countObservations(resp.Payload)
	if err != nil {
		result.ParseFailed = true
		result.ErrorMessage = fmt.Sprintf("payload is not well-formed observation markup: %v", err)
		return result
	}
	result.ObservationCount = count

	if saveSample && p.tracker != nil {
		if path, err := p.saveSample(seriesID, resp.Payload); err != nil {
			fmt.Fprintf(p.w, "warning: saving sample for %s: %v\n", seriesID, err)
		} else {
			result.SampleFilePath = path
		}
	}
	return result
}

func (p *Prober) saveSample(seriesID, payload string) (string, error) {
	path, err := p.tracker.Reserve(seriesID+".xml", samplesSubdir)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		p.tracker.Release(path)
		return "", err
	}
	return path, nil
}

// countObservations walks the payload and counts observation elements,
// preferring the primary element name and falling back to the secondary
// alias when the primary never appears. The walk reads the whole document,
// so a malformed payload always surfaces as an error.
func countObservations(payload string) (int, error) {
	dec := xml.NewDecoder(strings.NewReader(payload))

	primary, secondary := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case obsPrimary:
			primary++
		case obsSecondary:
			secondary++
		}
	}

	if primary > 0 {
		return primary, nil
	}
	return secondary, nil
}
