package cohort

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,biomarker,primary_well,compound_wells,other_wells,sex,knew_well_arsenic
ind-001,312,114,cw1=80;cw2=95,60;75,female,0
ind-002,80,25,,,male,1
ind-003,140,55,40,,,
`

func TestParseCSV(t *testing.T) {
	c, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, []string{"ind-001", "ind-002", "ind-003"}, c.IDs())

	rec := c["ind-001"]
	require.Equal(t, 312.0, rec.Biomarker)
	require.Equal(t, 114.0, rec.PrimaryWell)
	require.Equal(t, map[string]float64{"cw1": 80, "cw2": 95}, rec.CompoundWells)
	require.Equal(t, map[string]float64{"ow1": 60, "ow2": 75}, rec.OtherWells)
	require.Equal(t, SexFemale, rec.Sex)
	require.False(t, rec.KnewWellArsenic)

	rec = c["ind-002"]
	require.Nil(t, rec.CompoundWells)
	require.Nil(t, rec.OtherWells)
	require.Equal(t, SexMale, rec.Sex)
	require.True(t, rec.KnewWellArsenic)

	rec = c["ind-003"]
	require.Equal(t, map[string]float64{"cw1": 40}, rec.CompoundWells)
	require.Equal(t, SexUnknown, rec.Sex)
}

func TestParseCSVColumnOrderIndependent(t *testing.T) {
	c, err := ParseCSV(strings.NewReader("primary_well,id,biomarker,extra\n10,ind-001,50,ignored\n"))
	require.NoError(t, err)
	require.Equal(t, 10.0, c["ind-001"].PrimaryWell)
}

func TestParseCSVErrors(t *testing.T) {
	cases := []struct {
		name, doc, want string
	}{
		{"missing column", "id,biomarker\nind-001,50\n", `missing required column "primary_well"`},
		{"bad biomarker", sampleHeader() + "ind-001,abc,10,,,,\n", "invalid biomarker"},
		{"bad well entry", sampleHeader() + "ind-001,50,10,cw1=x,,,\n", "invalid well concentration"},
		{"duplicate well", sampleHeader() + "ind-001,50,10,cw1=1;cw1=2,,,\n", "duplicate well ID"},
		{"bad sex", sampleHeader() + "ind-001,50,10,,,robot,\n", "invalid sex"},
		{"bad flag", sampleHeader() + "ind-001,50,10,,,,maybe\n", "invalid knew_well_arsenic"},
		{"duplicate id", sampleHeader() + "ind-001,50,10,,,,\nind-001,60,12,,,,\n", "duplicate individual ID"},
		{"negative concentration", sampleHeader() + "ind-001,50,-10,,,,\n", "not a non-negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.doc))
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func sampleHeader() string {
	return "id,biomarker,primary_well,compound_wells,other_wells,sex,knew_well_arsenic\n"
}
