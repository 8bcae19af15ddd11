package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const busyBeaver = `
name: busy-beaver-2
rules:
  - {read: 0, state: a, write: 1, move: R, next: b}
  - {read: 1, state: a, do: 1Lb}
  - {read: 0, state: b, do: 1La}
  - {read: 1, state: b, do: 1RH}
`

func TestParse_BusyBeaver(t *testing.T) {
	doc, err := Parse([]byte(busyBeaver))
	require.NoError(t, err)
	assert.Equal(t, "busy-beaver-2", doc.Name)
	require.Len(t, doc.Rules, 4)
	assert.Equal(t, "0", doc.Rules[0].Read, "numbers are weakly decoded into strings")

	table, err := doc.Table()
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	rule, ok := table.Get(domain.NewRuleKey(domain.Zero, domain.StateOf(0)))
	require.True(t, ok)
	assert.Equal(t, "1Rb", rule.String())
	assert.NoError(t, Validate(table))
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{"rules": [{"read": "1", "state": "halt", "do": "0L0"}]}`))
	require.NoError(t, err)

	table, err := doc.Table()
	require.NoError(t, err)
	assert.Equal(t, domain.Halt, table.Entries()[0].Key.State)
	assert.Equal(t, "0La", table.Entries()[0].Rule.String())
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("rules: []\nstates: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "states")
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("rules: [\n"))
	assert.Error(t, err)

	_, err = Parse([]byte(""))
	assert.Error(t, err)
}

func TestCompile_ReportsEveryField(t *testing.T) {
	_, err := Compile([]RuleSpec{
		{Read: "2", State: "a", Write: "1", Move: "R", Next: "b"},
		{Read: "0", State: "a", Write: "1", Move: "up", Next: "?"},
		{Read: "0", State: "b", Do: "1R"},
		{Read: "1", State: "b", Do: "1RH", Move: "L"},
	})
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 5)

	keys := make([]string, 0, len(errs))
	for _, e := range errs {
		var ve *ValidationError
		require.ErrorAs(t, e, &ve)
		keys = append(keys, ve.Key)
	}
	assert.Equal(t, []string{
		"rules[0].read",
		"rules[1].move",
		"rules[1].next",
		"rules[2].do",
		"rules[3].do",
	}, keys)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestCompile_Duplicate(t *testing.T) {
	_, err := Compile([]RuleSpec{
		{Read: "0", State: "a", Do: "1RH"},
		{Read: "0", State: "a", Do: "0LH"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined by rules[0]")
}

func TestParseAction(t *testing.T) {
	rule, err := ParseAction("0L12")
	require.NoError(t, err)
	assert.Equal(t, domain.NewRule(domain.Zero, domain.Left, domain.StateOf(12)), rule)

	for _, bad := range []string{"", "1R", "2RH", "1XH", "1R!"} {
		_, err := ParseAction(bad)
		assert.Error(t, err, bad)
	}
}

func TestFromTable_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(busyBeaver))
	require.NoError(t, err)
	table, err := doc.Table()
	require.NoError(t, err)

	out, err := FromTable("bb2", table).Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: bb2")
	assert.Contains(t, string(out), "do: 1RH")

	again, err := Parse(out)
	require.NoError(t, err)
	table2, err := again.Table()
	require.NoError(t, err)
	assert.Equal(t, table.Entries(), table2.Entries())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(busyBeaver), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Rules, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
