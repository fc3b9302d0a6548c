// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/clstrctl/clstr"
	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/differ"
	"github.com/tfctl/clstrctl/internal/source"
)

type result struct {
	err    error
	code   int
	stdout string
	stderr string
}

// run executes clstrctl with args against an isolated config and an
// optional stdin.
func run(t *testing.T, stdin io.Reader, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvFile, filepath.Join(t.TempDir(), "absent.yaml"))
	config.Config = config.Type{}

	var stdout, stderr bytes.Buffer
	args = append([]string{"clstrctl"}, args...)
	app := InitApp(&stdout, &stderr)
	if stdin != nil {
		for _, c := range app.Commands {
			m := GetMeta(c)
			m.Opener = &source.Opener{Stdin: stdin}
			c.Metadata["meta"] = m
		}
	}

	err := app.Run(context.Background(), StdinSafeArgs(app, args))
	r := result{err: err, stdout: stdout.String(), stderr: stderr.String()}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		r.code = ec.ExitCode()
	} else if err != nil {
		r.code = differ.ExitError
	}
	return r
}

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestDiffCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "reflexive",
			args:       []string{"diff", testdata("a.clstr"), testdata("a.clstr")},
			wantCode:   differ.ExitEqual,
			wantStdout: differ.EqualMessage + "\n",
		},
		{
			name:       "regrouped",
			args:       []string{"diff", testdata("a.clstr"), testdata("b.clstr")},
			wantCode:   differ.ExitDifferent,
			wantStderr: "Differences found.",
		},
		{
			name:       "limit one",
			args:       []string{"diff", "--limit", "1", testdata("a.clstr"), testdata("b.clstr")},
			wantCode:   differ.ExitDifferent,
			wantStderr: "  ... (1 more)",
		},
		{
			name:     "one argument",
			args:     []string{"diff", testdata("a.clstr")},
			wantCode: differ.ExitError,
		},
		{
			name:       "missing file",
			args:       []string{"diff", testdata("a.clstr"), testdata("missing.clstr")},
			wantCode:   differ.ExitError,
			wantStderr: "error reading " + testdata("missing.clstr"),
		},
		{
			name:     "negative limit",
			args:     []string{"diff", "--limit=-1", testdata("a.clstr"), testdata("b.clstr")},
			wantCode: differ.ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, nil, tt.args...)
			assert.Equal(t, tt.wantCode, r.code, "err=%v", r.err)
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, r.stdout)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, r.stderr, tt.wantStderr)
			}
		})
	}
}

func TestDiffCommand_StdinSide(t *testing.T) {
	b, err := os.ReadFile(testdata("a.clstr"))
	require.NoError(t, err)

	r := run(t, bytes.NewReader(b), "diff", "-", testdata("a.clstr"))
	require.NoError(t, r.err)
	assert.Equal(t, differ.EqualMessage+"\n", r.stdout)
}

func TestLsCommand(t *testing.T) {
	r := run(t, nil, "ls", "--output", "json", "--sort=-size", testdata("b.clstr"))
	require.NoError(t, r.err)

	var rows []ClusterRow
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &rows))
	assert.Equal(t, []ClusterRow{
		{Cluster: 1, Size: 2, Representative: "seqB", Members: "seqB,seqC"},
		{Cluster: 0, Size: 1, Representative: "seqA", Members: "seqA"},
	}, rows)
}

func TestLsCommand_Stdin(t *testing.T) {
	r := run(t, strings.NewReader(">Cluster 0\n0\t>x... *\n"), "ls", "--output", "yaml")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "representative: x")
}

func TestLsCommand_BadOutput(t *testing.T) {
	r := run(t, nil, "ls", "--output", "xml", testdata("a.clstr"))
	require.Error(t, r.err)
	assert.Equal(t, differ.ExitError, r.code)
}

func TestStatsCommand(t *testing.T) {
	r := run(t, nil, "stats", "--output", "json", testdata("a.clstr"), testdata("b.clstr"))
	require.NoError(t, r.err)

	info, err := os.Stat(testdata("a.clstr"))
	require.NoError(t, err)

	var rows []StatsRow
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, StatsRow{File: testdata("a.clstr"), Clusters: 2, Members: 3, Singletons: 1, Largest: 2, Bytes: info.Size()}, rows[0])
	assert.Equal(t, 1, rows[1].Singletons)
}

func TestStatsCommand_Text(t *testing.T) {
	r := run(t, nil, "stats", "--titles", testdata("a.clstr"))
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "singletons")
	assert.Contains(t, r.stdout, " B")
}

func TestStatsCommand_NoArgs(t *testing.T) {
	r := run(t, nil, "stats")
	assert.Equal(t, differ.ExitError, r.code)
}

func TestHumanizeStats(t *testing.T) {
	rows := []map[string]interface{}{{"file": "x", "members": 1234567.0, "bytes": 2048.0}}
	humanizeStats(rows)
	assert.Equal(t, "1,234,567", rows[0]["members"])
	assert.Equal(t, "2.0 kB", rows[0]["bytes"])
	assert.Equal(t, "x", rows[0]["file"])
}

func TestRewriteCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no lengths",
			want: ">Cluster 0\n0\t>seqA... *\n1\t>seqB...\n>Cluster 1\n0\t>seqC... *\n",
		},
		{
			name: "amino acid lengths",
			args: []string{"--fasta", testdata("seqs.fa"), "--unit", "aa"},
			want: ">Cluster 0\n0\t10aa, >seqA... *\n1\t8aa, >seqB...\n>Cluster 1\n0\t5aa, >seqC... *\n",
		},
		{
			name: "unit none drops lengths",
			args: []string{"--fasta", testdata("seqs.fa"), "--unit", "none"},
			want: ">Cluster 0\n0\t>seqA... *\n1\t>seqB...\n>Cluster 1\n0\t>seqC... *\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.clstr")
			args := append([]string{"rewrite"}, tt.args...)
			r := run(t, nil, append(args, testdata("a.clstr"), out)...)
			require.NoError(t, r.err)

			b, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			got, err := clstr.ReadFile(out)
			require.NoError(t, err)
			want, err := clstr.ReadFile(testdata("a.clstr"))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRewriteCommand_Stdout(t *testing.T) {
	r := run(t, nil, "rewrite", "--fasta", testdata("seqs.fa"), testdata("b.clstr"), "-")
	require.NoError(t, r.err)
	assert.Equal(t, ">Cluster 0\n0\t10nt, >seqA... *\n>Cluster 1\n0\t8nt, >seqB... *\n1\t5nt, >seqC...\n", r.stdout)
}

func TestRewriteCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing fasta record", args: []string{"--fasta", testdata("partial.fa")}, wantErr: `no sequence for "seqB"`},
		{name: "missing input", args: []string{testdata("missing.clstr")}, wantErr: "error reading"},
		{name: "bad unit", args: []string{"--unit", "bp"}, wantErr: "unknown length unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"rewrite"}, tt.args...)
			if tt.name != "missing input" {
				args = append(args, testdata("a.clstr"))
			}
			r := run(t, nil, append(args, filepath.Join(t.TempDir(), "out.clstr"))...)
			require.Error(t, r.err)
			assert.Contains(t, r.err.Error(), tt.wantErr)
		})
	}
}

func TestIndexPartition(t *testing.T) {
	ix := indexPartition(clstr.Partition{{"a", "b"}, {"c", "a"}, {}})
	assert.Equal(t, []string{"a", "b", "c"}, ix.headers)
	assert.Equal(t, [][]int{{0, 1}, {2, 0}, nil}, ix.members)
}

func TestOutputValidator(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, OutputValidator(f))
	}
	assert.Error(t, OutputValidator("raw"))
	assert.Error(t, OutputValidator(42))
}

func TestNameSpacedValueChainFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clstrctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff:\n  limit: 1\n"), 0o600))
	t.Setenv(config.EnvFile, path)
	config.Config = config.Type{}
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	flag := NewLimitFlag()
	assert.Len(t, flag.Sources.Chain, 3)

	var stdout, stderr bytes.Buffer
	args := []string{"clstrctl", "diff", testdata("a.clstr"), testdata("b.clstr")}
	err = InitApp(&stdout, &stderr).Run(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "  ... (1 more)")
}

func TestLsCommand_Filter(t *testing.T) {
	r := run(t, nil, "ls", "-o", "json", "--filter", "members@seqC", testdata("a.clstr"))
	require.NoError(t, r.err)

	var rows []ClusterRow
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &rows))
	assert.Equal(t, []ClusterRow{{Cluster: 1, Size: 1, Representative: "seqC", Members: "seqC"}}, rows)
}

func TestStatsCommand_StdinFirst(t *testing.T) {
	b, err := os.ReadFile(testdata("b.clstr"))
	require.NoError(t, err)

	r := run(t, bytes.NewReader(b), "stats", "-o", "json", "-", testdata("a.clstr"))
	require.NoError(t, r.err)

	var rows []StatsRow
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "-", rows[0].File)
	assert.Equal(t, testdata("a.clstr"), rows[1].File)
	assert.Equal(t, 2, rows[1].Clusters)
}

func TestRewriteCommand_StdinInput(t *testing.T) {
	b, err := os.ReadFile(testdata("a.clstr"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.clstr")
	r := run(t, bytes.NewReader(b), "rewrite", "-", out, "--unit", "aa", "--fasta", testdata("seqs.fa"))
	require.NoError(t, r.err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ">Cluster 0\n0\t10aa, >seqA... *\n1\t8aa, >seqB...\n>Cluster 1\n0\t5aa, >seqC... *\n", string(got))
}

func TestStdinReadOnce(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "diff both sides", args: []string{"diff", "-", "-"}},
		{name: "stats twice", args: []string{"stats", "-", testdata("a.clstr"), "-"}},
		{name: "rewrite input and fasta", args: []string{"rewrite", "--fasta", "-", "-", "out.clstr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, strings.NewReader(">Cluster 0\n0\t>x... *\n"), tt.args...)
			assert.Equal(t, differ.ExitError, r.code)
			require.Error(t, r.err)
			assert.Contains(t, r.err.Error(), "can be read only once")
			assert.Empty(t, r.stdout)
		})
	}
}

func TestStdinSafeArgs(t *testing.T) {
	app := InitApp(io.Discard, io.Discard)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "no stdin unchanged",
			args: []string{"clstrctl", "ls", "a.clstr", "-o", "json"},
			want: []string{"clstrctl", "ls", "a.clstr", "-o", "json"},
		},
		{
			name: "stdin first",
			args: []string{"clstrctl", "diff", "-", "b.clstr"},
			want: []string{"clstrctl", "diff", "--", "-", "b.clstr"},
		},
		{
			name: "flags with values move ahead",
			args: []string{"clstrctl", "stats", "-", "-o", "json", "a.clstr", "--titles"},
			want: []string{"clstrctl", "stats", "-o", "json", "--titles", "--", "-", "a.clstr"},
		},
		{
			name: "equals form keeps its value",
			args: []string{"clstrctl", "diff", "--limit=3", "a.clstr", "-"},
			want: []string{"clstrctl", "diff", "--limit=3", "--", "a.clstr", "-"},
		},
		{
			name: "flag value of dash is not positional",
			args: []string{"clstrctl", "rewrite", "--fasta", "-", "in.clstr", "out.clstr"},
			want: []string{"clstrctl", "rewrite", "--fasta", "-", "in.clstr", "out.clstr"},
		},
		{
			name: "explicit terminator",
			args: []string{"clstrctl", "ls", "--", "-"},
			want: []string{"clstrctl", "ls", "--", "-"},
		},
		{
			name: "unknown subcommand unchanged",
			args: []string{"clstrctl", "nope", "-"},
			want: []string{"clstrctl", "nope", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StdinSafeArgs(app, tt.args))
		})
	}
}
