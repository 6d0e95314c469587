package report

import (
	"fmt"
	"time"
)

// Row is the count of one column
type Row struct {
	Header string `yaml:"header"`
	Count  int    `yaml:"count"`
}

// Report counts instants per column header
type Report struct {
	Reference  time.Time      `yaml:"reference"`
	Headers    []ColumnHeader `yaml:"-"`
	Rows       []Row          `yaml:"rows"`
	Total      int            `yaml:"total"`
	Unassigned int            `yaml:"unassigned"`
}

// Build ages every due instant relative to reference and counts it in each
// header it fits. Headers may overlap; dues fitting none are unassigned.
func Build(ager *Ager, reference time.Time, headers []ColumnHeader, dues []time.Time) (*Report, error) {
	report := &Report{
		Reference: reference,
		Headers:   append([]ColumnHeader(nil), headers...),
		Rows:      make([]Row, len(headers)),
	}
	for i, header := range headers {
		report.Rows[i].Header = header.DisplayName()
	}

	for _, due := range dues {
		age, err := ager.AgeInWorkingDays(reference, due)
		if err != nil {
			return nil, fmt.Errorf("failed to age %s: %w", due.Format(time.RFC3339), err)
		}

		assigned := false
		for i, header := range headers {
			if header.Fits(age) {
				report.Rows[i].Count++
				assigned = true
			}
		}
		if !assigned {
			report.Unassigned++
		}
		report.Total++
	}

	return report, nil
}
