package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/veto-dev/veto/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool       `json:"tool"`
	AutomationDetails sarifAutomation `json:"automationDetails"`
	Results           []sarifResult   `json:"results"`
}

// sarifAutomation identifies one scan run.
type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations,omitempty"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes the report as SARIF 2.1.0. Rules are derived from the
// finding IDs with their titles as descriptions.
func WriteSARIF(w io.Writer, rep types.Report, toolVersion string) error {
	titles := map[string]string{}
	for _, f := range rep.Findings {
		if _, ok := titles[f.ID]; !ok {
			titles[f.ID] = f.Title
		}
	}
	ids := make([]string, 0, len(titles))
	for id := range titles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	index := make(map[string]int, len(ids))
	rules := make([]sarifRule, 0, len(ids))
	for i, id := range ids {
		index[id] = i
		rules = append(rules, sarifRule{ID: id, ShortDescription: sarifMessage{Text: titles[id]}})
	}

	run := sarifRun{
		Tool:              sarifTool{Driver: sarifDriver{Name: "veto", Version: toolVersion, Rules: rules}},
		AutomationDetails: sarifAutomation{GUID: uuid.NewString()},
		Results:           []sarifResult{},
	}
	fps := Fingerprints(rep.Findings)
	for i, f := range rep.Findings {
		res := sarifResult{
			RuleID:    f.ID,
			RuleIndex: index[f.ID],
			Level:     sevToLevel(f.Severity),
			Message:   sarifMessage{Text: f.Message},
			PartialFingerprints: map[string]string{
				"veto/v1": fps[i],
			},
		}
		if f.Location != nil {
			phys := sarifPhys{ArtifactLocation: sarifArt{URI: f.Location.File}}
			if f.Location.Line != nil {
				phys.Region = &sarifRegion{StartLine: *f.Location.Line}
			}
			res.Locations = []sarifLoc{{PhysicalLocation: phys}}
		}
		run.Results = append(run.Results, res)
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
