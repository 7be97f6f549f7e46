package tql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{"id": String("t1"), "status": String("to do"), "priority": Number(1)},
		{"id": String("t2"), "status": String("in progress"), "priority": Number(3)},
		{"id": String("t3"), "status": String("TO DO"), "priority": Number(4)},
		{"id": String("t4"), "status": String("done")},
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec["id"].asString()
	}
	return out
}

func TestFilterPreservesOrder(t *testing.T) {
	matched, err := Filter(sampleRecords(), "status == 'to do' OR status == 'done'")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t3", "t4"}, ids(matched))
}

func TestFilterTautologyAndContradiction(t *testing.T) {
	records := sampleRecords()

	// Always true: every record either has the field or does not.
	all, err := Filter(records, "id exists OR NOT id exists")
	require.NoError(t, err)
	assert.Equal(t, ids(records), ids(all))

	none, err := Filter(records, "id exists AND NOT id exists")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilterFailsFastOnSyntaxError(t *testing.T) {
	_, err := Filter(sampleRecords(), "status = 'to do'")
	require.Error(t, err)

	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)

	_, err = Filter(sampleRecords(), "(status == 'to do'")
	require.Error(t, err)
	assert.ErrorAs(t, err, &synErr)
}

func TestFilterIsIdempotent(t *testing.T) {
	records := sampleRecords()

	first, err := Filter(records, "priority >= 3")
	require.NoError(t, err)
	second, err := Filter(records, "priority >= 3")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Input is untouched.
	assert.Len(t, records, 4)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, ids(records))
}

func TestFilterAbsentField(t *testing.T) {
	matched, err := Filter(sampleRecords(), "assignee == 'alice'")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestExplain(t *testing.T) {
	desc, err := Explain("status == 'to do' AND priority > 2")
	require.NoError(t, err)
	assert.Contains(t, desc, "matches records where")
	assert.Contains(t, desc, `field "status" equals "to do"`)
	assert.Contains(t, desc, `field "priority" is greater than 2`)

	_, err = Explain("status ==")
	require.Error(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestExplainBidirectionalIn(t *testing.T) {
	left, err := Explain("'bug' in tags")
	require.NoError(t, err)
	right, err := Explain("tags in 'bug'")
	require.NoError(t, err)
	assert.Equal(t, right, left)
}
