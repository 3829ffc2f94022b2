package driver

import (
	"encoding/json"
	"fmt"

	"qres/internal/diag"
	"qres/internal/observ"
	"qres/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Units   int                  `json:"units"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
	Slowest []observ.UnitReport  `json:"slowest,omitempty"`
}

// AppendTimings adds an info diagnostic carrying the timer report as JSON.
// The bag grows past its limit if needed so the report is never dropped.
func AppendTimings(bag *diag.Bag, timer *observ.Timer, units int) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{Kind: "resolve", Units: units, TotalMS: report.TotalMS, Phases: report.Phases, Slowest: report.Slowest}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings (%s): total %.2f ms, %d units", payload.Kind, payload.TotalMS, units),
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
