package cohort

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names recognized by ParseCSV. Extra columns are ignored.
const (
	colID            = "id"
	colBiomarker     = "biomarker"
	colPrimaryWell   = "primary_well"
	colCompoundWells = "compound_wells"
	colOtherWells    = "other_wells"
	colSex           = "sex"
	colKnewArsenic   = "knew_well_arsenic"
)

// ParseCSV reads a cohort from CSV.
//
// The first row is a header; id, biomarker and primary_well are required
// columns, the rest optional. Well lists are ';'-separated entries, each
// either "wellID=concentration" or a bare concentration (auto-keyed by
// position):
//
//	id,biomarker,primary_well,compound_wells,other_wells,sex,knew_well_arsenic
//	ind-001,312,114,cw1=80;cw2=95,60;75,female,0
//
// The parsed cohort is validated before being returned.
func ParseCSV(r io.Reader) (Cohort, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read cohort header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{colID, colBiomarker, colPrimaryWell} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("cohort CSV is missing required column %q", name)
		}
	}

	c := make(Cohort)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read cohort row: %w", err)
		}

		rec, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("cohort CSV line %d: %w", line, err)
		}
		if _, dup := c[rec.ID]; dup {
			return nil, fmt.Errorf("cohort CSV line %d: duplicate individual ID %q", line, rec.ID)
		}
		c[rec.ID] = rec
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadCSV reads a cohort from a CSV file on disk.
func LoadCSV(path string) (Cohort, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cohort file: %w", err)
	}
	defer f.Close()

	c, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func parseRow(row []string, col map[string]int) (*Record, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	rec := &Record{ID: field(colID)}

	var err error
	if rec.Biomarker, err = strconv.ParseFloat(field(colBiomarker), 64); err != nil {
		return nil, fmt.Errorf("invalid biomarker value %q", field(colBiomarker))
	}
	if rec.PrimaryWell, err = strconv.ParseFloat(field(colPrimaryWell), 64); err != nil {
		return nil, fmt.Errorf("invalid primary well value %q", field(colPrimaryWell))
	}
	if rec.CompoundWells, err = parseWells(field(colCompoundWells), "cw"); err != nil {
		return nil, fmt.Errorf("compound wells: %w", err)
	}
	if rec.OtherWells, err = parseWells(field(colOtherWells), "ow"); err != nil {
		return nil, fmt.Errorf("other wells: %w", err)
	}

	switch sex := strings.ToLower(field(colSex)); sex {
	case "female", "f":
		rec.Sex = SexFemale
	case "male", "m":
		rec.Sex = SexMale
	case "":
		rec.Sex = SexUnknown
	default:
		return nil, fmt.Errorf("invalid sex value %q", sex)
	}

	switch knew := strings.ToLower(field(colKnewArsenic)); knew {
	case "1", "true", "yes":
		rec.KnewWellArsenic = true
	case "", "0", "false", "no":
		rec.KnewWellArsenic = false
	default:
		return nil, fmt.Errorf("invalid knew_well_arsenic value %q", knew)
	}

	return rec, nil
}

func parseWells(s, keyPrefix string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}

	entries := strings.Split(s, ";")
	wells := make(map[string]float64, len(entries))
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key := fmt.Sprintf("%s%d", keyPrefix, i+1)
		val := entry
		if id, v, ok := strings.Cut(entry, "="); ok {
			key = strings.TrimSpace(id)
			val = strings.TrimSpace(v)
		}

		conc, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid well concentration %q", entry)
		}
		if _, dup := wells[key]; dup {
			return nil, fmt.Errorf("duplicate well ID %q", key)
		}
		wells[key] = conc
	}

	if len(wells) == 0 {
		return nil, nil
	}

	return wells, nil
}
