package stage

import (
	"strconv"
	"strings"

	"github.com/agentstation/citecheck"
	"github.com/agentstation/citecheck/internal/cmd/output"
)

// summaryList renders stage summaries. Counts that a stage does not
// produce are shown as "-" rather than 0.
type summaryList []citecheck.Summary

// Table implements output.Tabler.
func (l summaryList) Table() output.Data {
	data := output.Data{
		Headers: []string{"Stage", "Rows", "Matched", "Rejected", "Output", "Notes"},
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignRight, output.AlignRight, output.AlignRight,
			output.AlignLeft, output.AlignLeft,
		},
	}
	for _, s := range l {
		data.Rows = append(data.Rows, []string{
			s.Stage,
			strconv.Itoa(s.Rows),
			count(s.Matched, s.Stage == citecheck.StageCompare),
			count(s.Rejected, s.Stage == citecheck.StageSheet),
			s.File,
			notes(s),
		})
	}
	return data
}

func count(n int, produced bool) string {
	if !produced {
		return "-"
	}
	return strconv.Itoa(n)
}

func notes(s citecheck.Summary) string {
	var parts []string
	if len(s.Review) > 0 {
		parts = append(parts, "review: "+strings.Join(s.Review, ", "))
	}
	if len(s.Skipped) > 0 {
		parts = append(parts, "skipped sheets: "+strings.Join(s.Skipped, ", "))
	}
	if len(s.Failed) > 0 {
		parts = append(parts, "failed: "+strings.Join(s.Failed, ", "))
	}
	return strings.Join(parts, "; ")
}
