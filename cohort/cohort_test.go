package cohort

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRecord(id string) *Record {
	return &Record{
		ID:            id,
		Biomarker:     150,
		PrimaryWell:   90,
		CompoundWells: map[string]float64{"cw1": 60, "cw2": 80},
		OtherWells:    map[string]float64{"ow1": 40},
	}
}

func TestRecordValidate(t *testing.T) {
	require.NoError(t, validRecord("ind-001").Validate())

	rec := validRecord("")
	require.ErrorContains(t, rec.Validate(), "empty ID")

	rec = validRecord("ind-001")
	rec.Biomarker = -1
	require.ErrorContains(t, rec.Validate(), "biomarker")

	rec = validRecord("ind-001")
	rec.PrimaryWell = math.NaN()
	require.ErrorContains(t, rec.Validate(), "primary well")

	rec = validRecord("ind-001")
	rec.CompoundWells["cw1"] = math.Inf(1)
	require.ErrorContains(t, rec.Validate(), "compound well cw1")

	rec = validRecord("ind-001")
	rec.OtherWells["ow1"] = -3
	require.ErrorContains(t, rec.Validate(), "other well ow1")
}

func TestRecordMeans(t *testing.T) {
	rec := validRecord("ind-001")
	require.InDelta(t, 70.0, rec.CompoundMean(), 1e-12)
	require.InDelta(t, 40.0, rec.OtherMean(), 1e-12)

	rec.CompoundWells = nil
	require.Zero(t, rec.CompoundMean())
}

func TestNewCohort(t *testing.T) {
	c, err := New(validRecord("b"), validRecord("a"), validRecord("c"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, c.IDs())
	require.NoError(t, c.Validate())

	_, err = New(validRecord("a"), validRecord("a"))
	require.ErrorContains(t, err, "duplicate")

	_, err = New(validRecord("a"), nil)
	require.ErrorContains(t, err, "nil record")
}

func TestCohortValidateMismatchedKey(t *testing.T) {
	c := Cohort{"x": validRecord("y")}
	require.ErrorContains(t, c.Validate(), "mismatched ID")
}

func TestSubset(t *testing.T) {
	woman := validRecord("w1")
	woman.Sex = SexFemale

	womanKnew := validRecord("w2")
	womanKnew.Sex = SexFemale
	womanKnew.KnewWellArsenic = true

	man := validRecord("m1")
	man.Sex = SexMale

	c, err := New(woman, womanKnew, man)
	require.NoError(t, err)

	cases := []struct {
		group Group
		want  []string
	}{
		{GroupAll, []string{"m1", "w1", "w2"}},
		{GroupWomen, []string{"w1", "w2"}},
		{GroupMen, []string{"m1"}},
		{GroupDidNotKnow, []string{"m1", "w1"}},
		{GroupMayHaveKnown, []string{"w2"}},
		{GroupWomenDidNotKnow, []string{"w1"}},
		{GroupMenDidNotKnow, []string{"m1"}},
	}
	for _, tc := range cases {
		sub, err := c.Subset(tc.group)
		require.NoError(t, err, "group %s", tc.group)
		require.Equal(t, tc.want, sub.IDs(), "group %s", tc.group)
	}

	_, err = c.Subset(Group("teenagers"))
	require.ErrorContains(t, err, "unknown cohort group")
}
