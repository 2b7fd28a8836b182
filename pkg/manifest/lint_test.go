package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func condaGroup(pkgs ...Package) *Manifest {
	return &Manifest{
		Version: 1,
		Groups: []Group{{
			Name:     "varcal_minion.py",
			Source:   Source{Manager: ManagerConda, Channels: []string{"conda-forge", "bioconda"}},
			Packages: pkgs,
		}},
	}
}

func rules(issues []Issue) []Rule {
	var out []Rule
	for _, i := range issues {
		out = append(out, i.Rule)
	}
	return out
}

func TestLint(t *testing.T) {
	tests := []struct {
		name string
		pkgs []Package
		want []Rule
	}{
		{
			name: "clean",
			pkgs: []Package{{Name: "Mash", Command: "conda install -c conda-forge -c bioconda mash"}},
		},
		{
			name: "long channel flags",
			pkgs: []Package{{Name: "Mash", Command: "conda install --channel conda-forge --channel=bioconda mash"}},
		},
		{
			name: "missing name",
			pkgs: []Package{{Command: "conda install -c conda-forge -c bioconda mash"}},
			want: []Rule{RuleMissingName},
		},
		{
			name: "missing command",
			pkgs: []Package{{Name: "Mash", Command: "   "}},
			want: []Rule{RuleMissingCommand},
		},
		{
			name: "wrong manager",
			pkgs: []Package{{Name: "Mash", Command: "mamba install -c conda-forge -c bioconda mash"}},
			want: []Rule{RuleManagerMismatch},
		},
		{
			name: "channel order",
			pkgs: []Package{{Name: "Mash", Command: "conda install -c bioconda -c conda-forge mash"}},
			want: []Rule{RuleChannelMismatch},
		},
		{
			name: "undeclared channel",
			pkgs: []Package{{Name: "Mash", Command: "conda install -c conda-forge -c bioconda -c defaults mash"}},
			want: []Rule{RuleChannelMismatch},
		},
		{
			name: "unbalanced quote",
			pkgs: []Package{{Name: "Mash", Command: `conda install "mash`}},
			want: []Rule{RuleUnparsableCommand},
		},
		{
			name: "unknown manager",
			pkgs: []Package{{Name: "Mash", Source: &Source{Manager: "apt"}, Command: "apt install mash"}},
			want: []Rule{RuleUnknownManager},
		},
		{
			name: "identical duplicate",
			pkgs: []Package{
				{Name: "Samtools", Command: "conda install -c conda-forge -c bioconda samtools"},
				{Name: "samtools", Command: "conda install -c conda-forge -c bioconda samtools"},
			},
		},
		{
			name: "conflicting duplicate",
			pkgs: []Package{
				{Name: "Samtools", Command: "conda install -c conda-forge -c bioconda samtools"},
				{Name: "Samtools", Command: "conda install -c conda-forge -c bioconda samtools=1.9"},
			},
			want: []Rule{RuleConflictingDuplicate},
		},
		{
			name: "pip forms",
			pkgs: []Package{
				{Name: "NanoPack", Source: &Source{Manager: ManagerPip}, Command: "pip install nanopack --upgrade"},
				{Name: "NanoPlot", Source: &Source{Manager: ManagerPip}, Command: "python3 -m pip install -U nanoplot"},
				{Name: "NanoStat", Source: &Source{Manager: ManagerPip}, Command: "pip3 install nanostat"},
			},
		},
		{
			name: "pip index",
			pkgs: []Package{
				{Name: "NanoPack", Source: &Source{Manager: ManagerPip, Channels: []string{"https://pypi.org/simple"}}, Command: "pip install -i https://pypi.org/simple nanopack"},
				{Name: "NanoComp", Source: &Source{Manager: ManagerPip, Channels: []string{"https://pypi.org/simple"}}, Command: "pip install nanocomp"},
			},
			want: []Rule{RuleChannelMismatch},
		},
		{
			name: "shell accepts anything",
			pkgs: []Package{{Name: "Krona", Source: &Source{Manager: ManagerShell}, Command: "ktUpdateTaxonomy.sh"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules(Lint(condaGroup(tt.pkgs...))))
		})
	}
}

func TestIssueError(t *testing.T) {
	issues := Lint(condaGroup(Package{Name: "Mash"}))
	require.Len(t, issues, 1)
	assert.Equal(t, "missing-command: Mash (varcal_minion.py): no install command", issues[0].Error())
}

func TestSplitCommand(t *testing.T) {
	words, err := SplitCommand(`pip install "nanopack>=1.1" --upgrade`)
	require.NoError(t, err)
	assert.Equal(t, []string{"pip", "install", "nanopack>=1.1", "--upgrade"}, words)

	_, err = SplitCommand("")
	assert.Error(t, err)
}
