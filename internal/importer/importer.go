// Package importer turns tabular exports into lead candidates.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// Mapping assigns a source column to each lead field. An empty column name
// leaves the field unmapped; unmapped fields import as null. Name is the only
// field that must be mapped.
type Mapping struct {
	Name          string
	Industry      string
	Address       string
	Phone         string
	Email         string
	Website       string
	ContactPerson string
}

// DefaultApifyMapping matches the column layout of an Apify Google Maps
// scraper CSV export.
func DefaultApifyMapping() Mapping {
	return Mapping{
		Name:     "title",
		Industry: "categoryName",
		Address:  "address",
		Phone:    "phone",
		Email:    "emails/0",
		Website:  "domain",
	}
}

// ReadCSV parses r as a CSV export with a header row and maps every record to
// a candidate stamped with the campaign label. Rows whose mapped name cell is
// empty are skipped; empty or unmapped cells become nulls.
func ReadCSV(r io.Reader, mapping Mapping, campaign string) ([]models.Candidate, error) {
	if mapping.Name == "" {
		return nil, models.NewValidationError("mapping", "a name column is required")
	}
	if campaign == "" {
		return nil, models.NewValidationError("campaign", "must not be empty")
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, models.NewValidationError("file", "is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}

	index := map[string]int{}
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	if _, ok := index[mapping.Name]; !ok {
		return nil, models.NewValidationError("mapping", fmt.Sprintf("column %q not found in file", mapping.Name))
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || column == "" || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	opt := func(record []string, column string) *string {
		if v := cell(record, column); v != "" {
			return &v
		}
		return nil
	}

	var candidates []models.Candidate
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadCSV: %w", err)
		}
		name := cell(record, mapping.Name)
		if name == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Name:          name,
			Industry:      opt(record, mapping.Industry),
			Address:       opt(record, mapping.Address),
			Phone:         opt(record, mapping.Phone),
			Email:         opt(record, mapping.Email),
			Website:       opt(record, mapping.Website),
			ContactPerson: opt(record, mapping.ContactPerson),
			Campaign:      &campaign,
		})
	}
	return candidates, nil
}
