package lvtile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	imageExt  = ".png"
	binaryExt = ".bin"
)

// Extensions stripped by CleanName when deriving the output base name.
var knownExts = map[string]struct{}{
	".png":  {},
	".bin":  {},
	".jpg":  {},
	".jpeg": {},
}

// Task is one planned tile conversion. Zoom and X are parsed from the
// directory names; the y coordinate stays embedded in the file names and
// is never validated.
type Task struct {
	Zoom   int
	X      int
	Source string
	Dest   string
}

// CleanName strips any chain of recognised image and binary extensions
// from filename, leaving the canonical tile name. Unrecognised extensions
// are left intact, and applying CleanName to its own output changes
// nothing.
func CleanName(filename string) string {
	for {
		ext := filepath.Ext(filename)
		if _, ok := knownExts[strings.ToLower(ext)]; !ok {
			return filename
		}
		filename = strings.TrimSuffix(filename, ext)
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Stat rather than the lstat-based FileInfo from ReadDir so that tiles
// behind symlinked directories are still found.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// findTiles walks the input tree in the background, sending a Task for
// every source tile. The walk itself is deterministic; directories and
// files are visited in lexicographic order.
func (c *Converter) findTiles() (<-chan Task, <-chan error) {
	out := make(chan Task)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- c.walkTiles(out)
	}()
	return out, errc
}

func (c *Converter) walkTiles(out chan<- Task) error {
	zooms, err := ioutil.ReadDir(c.config.InputRoot)
	if err != nil {
		return err
	}

	for _, zoom := range zooms {
		zoomPath := filepath.Join(c.config.InputRoot, zoom.Name())
		if !isNumeric(zoom.Name()) || !isDir(zoomPath) {
			continue
		}

		xs, err := ioutil.ReadDir(zoomPath)
		if err != nil {
			return err
		}

		z, _ := strconv.Atoi(zoom.Name())

		for _, x := range xs {
			xPath := filepath.Join(zoomPath, x.Name())
			if !isNumeric(x.Name()) || !isDir(xPath) {
				continue
			}

			files, err := ioutil.ReadDir(xPath)
			if err != nil {
				return err
			}

			xi, _ := strconv.Atoi(x.Name())

			for _, file := range files {
				source := filepath.Join(xPath, file.Name())
				if !strings.HasSuffix(strings.ToLower(file.Name()), imageExt) || !isRegular(source) {
					continue
				}

				out <- Task{
					Zoom:   z,
					X:      xi,
					Source: source,
					Dest:   filepath.Join(c.config.OutputRoot, zoom.Name(), x.Name(), CleanName(file.Name())+binaryExt),
				}
			}
		}
	}

	return nil
}
