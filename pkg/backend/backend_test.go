package backend

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/biodeps/pkg/manifest"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.err
}

func lookPathOnly(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func samtools() *manifest.Package {
	return &manifest.Package{
		Name:    "Samtools",
		Group:   "varcal_minion.py",
		Command: "conda install -c conda-forge -c bioconda -c defaults samtools",
	}
}

func TestCondaCommand(t *testing.T) {
	b, err := NewCondaInstaller(manifest.ManagerConda, &Config{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		command string
		opts    *InstallOptions
		want    []string
	}{
		{
			name:    "unchanged",
			command: "conda install -c bioconda mash",
			want:    []string{"conda", "install", "-c", "bioconda", "mash"},
		},
		{
			name:    "yes and env",
			command: "conda install -c bioconda mash",
			opts:    &InstallOptions{Yes: true, Env: "ont"},
			want:    []string{"conda", "install", "-c", "bioconda", "mash", "-y", "-n", "ont"},
		},
		{
			name:    "flags already present",
			command: "conda install --yes -p /opt/env -c bioconda mash",
			opts:    &InstallOptions{Yes: true, Env: "ont"},
			want:    []string{"conda", "install", "--yes", "-p", "/opt/env", "-c", "bioconda", "mash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Command(&manifest.Package{Name: "Mash", Command: tt.command}, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCondaInstallerRejectsPip(t *testing.T) {
	_, err := NewCondaInstaller(manifest.ManagerPip, nil)
	assert.Error(t, err)
}

func TestPipCommandWithEnv(t *testing.T) {
	b, err := NewPipInstaller(nil)
	require.NoError(t, err)

	got, err := b.Command(&manifest.Package{Name: "NanoPack", Command: "pip install nanopack --upgrade"}, &InstallOptions{Env: "ont", Yes: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"conda", "run", "-n", "ont", "pip", "install", "nanopack", "--upgrade"}, got)
}

func TestShellCommand(t *testing.T) {
	b, err := NewShellInstaller(nil)
	require.NoError(t, err)

	got, err := b.Command(&manifest.Package{Name: "Krona", Command: "ktUpdateTaxonomy.sh && echo done"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "ktUpdateTaxonomy.sh && echo done"}, got)

	_, err = b.Command(&manifest.Package{Name: "Krona"}, nil)
	assert.Error(t, err)
}

func TestInstallRunsCommand(t *testing.T) {
	runner := &fakeRunner{}
	b, err := NewCondaInstaller(manifest.ManagerConda, &Config{Runner: runner})
	require.NoError(t, err)

	require.NoError(t, b.Install(context.Background(), samtools(), &InstallOptions{Yes: true}))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "conda", runner.calls[0].name)
	assert.Equal(t, []string{"install", "-c", "conda-forge", "-c", "bioconda", "-c", "defaults", "samtools", "-y"}, runner.calls[0].args)
}

func TestInstallDryRun(t *testing.T) {
	runner := &fakeRunner{}
	var out bytes.Buffer
	b, err := NewCondaInstaller(manifest.ManagerConda, &Config{Runner: runner, Stdout: &out})
	require.NoError(t, err)

	require.NoError(t, b.Install(context.Background(), samtools(), &InstallOptions{DryRun: true}))
	assert.Empty(t, runner.calls)
	assert.Equal(t, "+ conda install -c conda-forge -c bioconda -c defaults samtools\n", out.String())
}

func TestInstallPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	b, err := NewCondaInstaller(manifest.ManagerConda, &Config{Runner: &fakeRunner{err: boom}})
	require.NoError(t, err)

	err = b.Install(context.Background(), samtools(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestInstallRejectsBadCommand(t *testing.T) {
	runner := &fakeRunner{}
	b, err := NewCondaInstaller(manifest.ManagerConda, &Config{Runner: runner})
	require.NoError(t, err)

	err = b.Install(context.Background(), &manifest.Package{Name: "Mash", Command: `conda install "mash`}, nil)
	assert.Error(t, err)
	assert.Empty(t, runner.calls)

	err = b.Install(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestAvailable(t *testing.T) {
	conda, err := NewCondaInstaller(manifest.ManagerMamba, &Config{LookPath: lookPathOnly("conda")})
	require.NoError(t, err)
	assert.False(t, conda.Available())
	assert.Equal(t, "mamba", conda.Name())

	pip, err := NewPipInstaller(&Config{LookPath: lookPathOnly("pip3")})
	require.NoError(t, err)
	assert.True(t, pip.Available())
}

func TestExecRunnerExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not on PATH")
	}

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout}

	require.NoError(t, r.Run(context.Background(), "sh", "-c", "echo ok"))
	assert.Equal(t, "ok\n", stdout.String())

	err := r.Run(context.Background(), "sh", "-c", "exit 3")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "sh -c exit 3: exit status 3", cmdErr.Error())
}
