package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		override string
		want     string
	}{
		{"m4v extension swap", "/media/movie.m4v", "", "/media/movie.mkv"},
		{"mp4 extension swap", "/media/movie.mp4", "", "/media/movie.mkv"},
		{"no extension", "/media/movie", "", "/media/movie.mkv"},
		{"dotfile-style name", "/media/some.show.s01e01.m4v", "", "/media/some.show.s01e01.mkv"},
		{"override wins", "/media/movie.m4v", "/out/final.mkv", "/out/final.mkv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.input, tt.override))
		})
	}
}

func TestCheckDestination_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.m4v")
	output := filepath.Join(dir, "movie.mkv")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(output, []byte("y"), 0o644))

	err := CheckDestination(input, output, false)
	assert.ErrorContains(t, err, "already exists")
}

func TestCheckDestination_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.m4v")
	output := filepath.Join(dir, "movie.mkv")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(output, []byte("y"), 0o644))

	assert.NoError(t, CheckDestination(input, output, true))
}

func TestCheckDestination_FreshDestination(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.m4v")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))

	assert.NoError(t, CheckDestination(input, filepath.Join(dir, "movie.mkv"), false))
}

func TestCheckDestination_RejectsInputAsOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.mkv")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))

	// Even --force must not let mkvmerge truncate its own source.
	err := CheckDestination(input, input, true)
	assert.ErrorContains(t, err, "is the input file")
}
