package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePolicy = `
core:
  members: [alice, bob]
  required: 1
  for_freeze: false
release:
  members:
    - carol
    - dave
    - erin
  required: 2
  for_freeze: true
docs:
  members: [frank]
  required: 1
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(samplePolicy))
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())

	groups := p.Groups()
	assert.Equal(t, []string{"core", "release", "docs"}, names(groups))
	assert.Equal(t, Group{Name: "release", Members: []string{"carol", "dave", "erin"}, Required: 2, ForFreeze: true}, groups[1])
	assert.False(t, groups[2].ForFreeze)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not a mapping", raw: "- alice\n- bob\n"},
		{name: "group is a list", raw: "core: [alice]\n"},
		{name: "non-integer quorum", raw: "core:\n  members: [alice]\n  required: two\n"},
		{name: "fractional quorum", raw: "core:\n  members: [alice]\n  required: 1.5\n"},
		{name: "fractional quorum above one", raw: "core:\n  members: [alice, bob, carol]\n  required: 2.9\n"},
		{name: "exponent quorum", raw: "core:\n  members: [alice]\n  required: 1e0\n"},
		{name: "quoted quorum", raw: "core:\n  members: [alice]\n  required: \"1\"\n"},
		{name: "list quorum", raw: "core:\n  members: [alice]\n  required: [1]\n"},
		{name: "zero quorum", raw: "core:\n  members: [alice]\n  required: 0\n"},
		{name: "missing quorum", raw: "core:\n  members: [alice]\n"},
		{name: "members is a string", raw: "core:\n  members: alice\n  required: 1\n"},
		{name: "unknown field", raw: "core:\n  members: [alice]\n  required: 1\n  reviewers: [bob]\n"},
		{name: "duplicate group", raw: "core:\n  members: [alice]\n  required: 1\ncore:\n  members: [bob]\n  required: 1\n"},
		{name: "empty member", raw: "core:\n  members: [\"\"]\n  required: 1\n"},
		{name: "broken yaml", raw: "core: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrConfig)
			assert.Nil(t, p)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, raw := range []string{"", "# nothing configured\n", "~\n"} {
		p, err := Parse([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, 0, p.Len())
	}
}

func TestParse_DuplicateMembersCollapse(t *testing.T) {
	p, err := Parse([]byte("core:\n  members: [alice, bob, alice]\n  required: 2\n"))
	require.NoError(t, err)

	require.Equal(t, 1, p.Len())
	assert.Equal(t, []string{"alice", "bob"}, p.Groups()[0].Members)
}

func TestParse_Aliases(t *testing.T) {
	raw := `
core: &base
  members: [alice, bob]
  required: &quorum 2
release:
  members: [carol, dave]
  required: *quorum
  for_freeze: true
hotfix: *base
`
	p, err := Parse([]byte(raw))
	require.NoError(t, err)

	groups := p.Groups()
	assert.Equal(t, []string{"core", "release", "hotfix"}, names(groups))
	assert.Equal(t, 2, groups[1].Required)
	assert.Equal(t, Group{Name: "hotfix", Members: []string{"alice", "bob"}, Required: 2}, groups[2])
}

func TestSelectForMode(t *testing.T) {
	p, err := Parse([]byte(samplePolicy))
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "docs"}, names(p.SelectForMode(false).Groups()))
	assert.Equal(t, []string{"release"}, names(p.SelectForMode(true).Groups()))
}

func TestEffective(t *testing.T) {
	normalOnly := New(
		Group{Name: "core", Members: []string{"alice", "bob"}, Required: 1},
		Group{Name: "qa", Members: []string{"carol"}, Required: 1},
	)
	mixed := New(
		Group{Name: "core", Members: []string{"alice", "bob"}, Required: 1},
		Group{Name: "release", Members: []string{"dave"}, Required: 1, ForFreeze: true},
	)
	freezeOnly := New(
		Group{Name: "release", Members: []string{"dave"}, Required: 1, ForFreeze: true},
	)

	tests := []struct {
		name         string
		policy       *Policy
		freeze       bool
		wantGroups   []string
		wantFallback bool
	}{
		{name: "normal mode", policy: mixed, freeze: false, wantGroups: []string{"core"}},
		{name: "freeze with freeze groups", policy: mixed, freeze: true, wantGroups: []string{"release"}},
		{name: "freeze falls back to normal groups", policy: normalOnly, freeze: true, wantGroups: []string{"core", "qa"}, wantFallback: true},
		{name: "normal mode never falls back", policy: freezeOnly, freeze: false, wantGroups: nil},
		{name: "empty policy in freeze", policy: New(), freeze: true, wantGroups: nil, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fellBack := tt.policy.Effective(tt.freeze)
			assert.Equal(t, tt.wantGroups, names(got.Groups()))
			assert.Equal(t, tt.wantFallback, fellBack)
			if fellBack {
				assert.Equal(t, tt.policy.SelectForMode(false).Groups(), got.Groups())
			}
		})
	}
}

func TestLint(t *testing.T) {
	p := New(
		Group{Name: "core", Members: []string{"alice"}, Required: 1},
		Group{Name: "security", Members: []string{"bob"}, Required: 2},
		Group{Name: "ghost", Required: 1},
	)

	warnings := p.Lint()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `"security"`)
	assert.Contains(t, warnings[1], `"ghost"`)
}

func TestGroupsReturnsCopy(t *testing.T) {
	p := New(Group{Name: "core", Members: []string{"alice"}, Required: 1})
	groups := p.Groups()
	groups[0].Members[0] = "mallory"

	assert.Equal(t, []string{"alice"}, p.Groups()[0].Members)
}

func names(groups []Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Name)
	}
	return out
}
