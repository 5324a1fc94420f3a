package lvtile

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	tables := []struct {
		in   string
		want string
	}{
		{"tile.png", "tile"},
		{"tile.PNG.bin", "tile"},
		{"tile.data", "tile.data"},
		{"tile.jpg.jpeg.bin.png", "tile"},
		{"tile", "tile"},
		{"2.png", "2"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, CleanName(table.in))
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	for _, name := range []string{"tile.png", "tile.PNG.bin", "tile.data", "2"} {
		once := CleanName(name)
		assert.Equal(t, once, CleanName(once))
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, isNumeric("0"))
	assert.True(t, isNumeric("012345"))
	assert.False(t, isNumeric(""))
	assert.False(t, isNumeric("-1"))
	assert.False(t, isNumeric("+1"))
	assert.False(t, isNumeric("1a"))
	assert.False(t, isNumeric("osm"))
}

func TestFindTiles(t *testing.T) {
	input, err := ioutil.TempDir("", "lvtile")
	require.Nil(t, err)
	defer os.RemoveAll(input)

	output, err := ioutil.TempDir("", "lvtile")
	require.Nil(t, err)
	defer os.RemoveAll(output)

	for _, dir := range []string{"0/1", "1/5", "osm/1", "0/a"} {
		require.Nil(t, os.MkdirAll(filepath.Join(input, dir), 0755))
	}

	for _, file := range []string{"0/1/2.png", "0/1/3.png", "0/1/10.PNG", "0/1/readme.txt", "1/5/7.png", "osm/1/9.png", "0/a/4.png"} {
		require.Nil(t, ioutil.WriteFile(filepath.Join(input, filepath.FromSlash(file)), []byte{}, 0644))
	}

	c := New(Config{InputRoot: input, OutputRoot: output}, log.New(ioutil.Discard, "", 0))

	tiles, errc := c.findTiles()
	var tasks []Task
	for task := range tiles {
		tasks = append(tasks, task)
	}
	require.Nil(t, <-errc)

	assert.Equal(t, []Task{
		{Zoom: 0, X: 1, Source: filepath.Join(input, "0", "1", "10.PNG"), Dest: filepath.Join(output, "0", "1", "10.bin")},
		{Zoom: 0, X: 1, Source: filepath.Join(input, "0", "1", "2.png"), Dest: filepath.Join(output, "0", "1", "2.bin")},
		{Zoom: 0, X: 1, Source: filepath.Join(input, "0", "1", "3.png"), Dest: filepath.Join(output, "0", "1", "3.bin")},
		{Zoom: 1, X: 5, Source: filepath.Join(input, "1", "5", "7.png"), Dest: filepath.Join(output, "1", "5", "7.bin")},
	}, tasks)
}

func TestFindTilesSymlinks(t *testing.T) {
	input, err := ioutil.TempDir("", "lvtile")
	require.Nil(t, err)
	defer os.RemoveAll(input)

	output, err := ioutil.TempDir("", "lvtile")
	require.Nil(t, err)
	defer os.RemoveAll(output)

	share, err := ioutil.TempDir("", "lvtile")
	require.Nil(t, err)
	defer os.RemoveAll(share)

	// Real directories and a real tile living outside the input tree
	require.Nil(t, os.MkdirAll(filepath.Join(share, "x"), 0755))
	require.Nil(t, os.MkdirAll(filepath.Join(share, "zoom", "0"), 0755))
	for _, file := range []string{"x/2.png", "zoom/0/1.png", "orig.png"} {
		require.Nil(t, ioutil.WriteFile(filepath.Join(share, filepath.FromSlash(file)), []byte{}, 0644))
	}

	// Symlinked x directory, zoom directory and tile file must all be
	// followed, not skipped
	require.Nil(t, os.MkdirAll(filepath.Join(input, "3"), 0755))
	require.Nil(t, os.Symlink(filepath.Join(share, "x"), filepath.Join(input, "3", "4")))
	require.Nil(t, os.Symlink(filepath.Join(share, "zoom"), filepath.Join(input, "5")))
	require.Nil(t, os.Symlink(filepath.Join(share, "orig.png"), filepath.Join(share, "x", "9.png")))

	c := New(Config{InputRoot: input, OutputRoot: output}, log.New(ioutil.Discard, "", 0))

	tiles, errc := c.findTiles()
	var tasks []Task
	for task := range tiles {
		tasks = append(tasks, task)
	}
	require.Nil(t, <-errc)

	assert.Equal(t, []Task{
		{Zoom: 3, X: 4, Source: filepath.Join(input, "3", "4", "2.png"), Dest: filepath.Join(output, "3", "4", "2.bin")},
		{Zoom: 3, X: 4, Source: filepath.Join(input, "3", "4", "9.png"), Dest: filepath.Join(output, "3", "4", "9.bin")},
		{Zoom: 5, X: 0, Source: filepath.Join(input, "5", "0", "1.png"), Dest: filepath.Join(output, "5", "0", "1.bin")},
	}, tasks)
}

func TestFindTilesMissingRoot(t *testing.T) {
	c := New(Config{InputRoot: "/nonexistent/lvtile", OutputRoot: "/nonexistent/out"}, log.New(ioutil.Discard, "", 0))

	tiles, errc := c.findTiles()
	for range tiles {
	}
	assert.NotNil(t, <-errc)
}
