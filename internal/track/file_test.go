package track

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr error
	}{
		{
			name:  "plain",
			input: "0 0\n100 0\n100 100\n",
			want:  Path{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
		},
		{
			name:  "comments blanks and tabs",
			input: "# track\n\n  10.5\t-3\n\n20 4e1\n",
			want:  Path{{X: 10.5, Y: -3}, {X: 20, Y: 40}},
		},
		{
			name:    "too few",
			input:   "1 2\n",
			wantErr: ErrTooFewPoints,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrTooFewPoints,
		},
		{
			name:    "bad number",
			input:   "1 2\nx 4\n",
			wantErr: ErrMalformedTrack,
		},
		{
			name:    "extra field",
			input:   "1 2 3\n4 5\n",
			wantErr: ErrMalformedTrack,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrorNamesLine(t *testing.T) {
	_, err := Load(strings.NewReader("1 2\n3 4\n5 oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Paths", "track.path")
	pts := DefaultCenterline()

	require.NoError(t, SaveFile(path, pts))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pts, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "300 200\n1600 200\n"))
}

func TestSaveFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, Path{{X: 1.5, Y: -2}, {X: 0, Y: 1e6}}))
	assert.Equal(t, "1.5 -2\n0 1e+06\n", buf.String())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.path"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPathHelpers(t *testing.T) {
	p := Path{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.True(t, p.Drivable())
	assert.False(t, Path{{X: 1}}.Drivable())
	assert.Equal(t, r2.Vec{X: 0, Y: 10}, p.At(-1))
	assert.Equal(t, r2.Vec{X: 10, Y: 0}, p.At(5))
	assert.InDelta(t, 40.0, p.Length(), 1e-12)

	c := p.Clone()
	c[0] = r2.Vec{X: 99}
	assert.Equal(t, r2.Vec{}, p[0])

	b := p.Bounds()
	assert.Equal(t, r2.Vec{X: 10, Y: 10}, b.Max)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	got, fromFile, err := LoadOrDefault(filepath.Join(dir, "missing.path"))
	require.NoError(t, err)
	assert.False(t, fromFile)
	assert.Equal(t, DefaultCenterline(), got)

	got, fromFile, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.False(t, fromFile)
	assert.Len(t, got, 8)

	file := filepath.Join(dir, "tri.path")
	require.NoError(t, SaveFile(file, Path{{X: 0}, {X: 10}, {X: 5, Y: 5}}))
	got, fromFile, err = LoadOrDefault(file)
	require.NoError(t, err)
	assert.True(t, fromFile)
	assert.Len(t, got, 3)

	bad := filepath.Join(dir, "bad.path")
	require.NoError(t, os.WriteFile(bad, []byte("1 2 3\n"), 0o644))
	_, _, err = LoadOrDefault(bad)
	require.ErrorIs(t, err, ErrMalformedTrack)
}
