package lvtile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/ioutil"
	"os"
	"path/filepath"

	lvimage "github.com/bodgit/lvtile/image"
	"golang.org/x/sync/errgroup"
)

// Outcome records the terminal result of one Task. Err is nil on success.
type Outcome struct {
	Task Task
	Err  error
}

// plan drains the discovery channel into the final task list, dropping any
// tile whose output file already exists unless the run is forced. Planning
// never touches the filesystem beyond the existence check.
func (c *Converter) plan(tiles <-chan Task) []Task {
	var tasks []Task
	for t := range tiles {
		if !c.config.Force {
			if info, err := os.Stat(t.Dest); err == nil && info.Mode().IsRegular() {
				c.logger.Printf("skipping %s\n", t.Dest)
				continue
			}
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (c *Converter) convertTile(t Task) error {
	f, err := os.Open(t.Source)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	m, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := lvimage.Encode(buf, m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(t.Dest), 0755); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	// A directory can be left where the output file belongs if a
	// previous sync went wrong; clear it rather than failing the tile.
	if info, err := os.Stat(t.Dest); err == nil && info.IsDir() {
		c.logger.Printf("removing stray directory %s\n", t.Dest)
		if err := os.Remove(t.Dest); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	// Single full buffer write so a failure mid-tile never leaves a
	// partial file behind.
	if err := ioutil.WriteFile(t.Dest, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func (c *Converter) report(o Outcome) Outcome {
	if o.Err != nil {
		c.logger.Printf("failed to convert %s: %v\n", o.Task.Source, o.Err)
	} else {
		c.logger.Printf("converted %s to %s\n", o.Task.Source, o.Task.Dest)
	}
	return o
}

// run executes every task to completion or individual failure; a failed
// tile never aborts the batch and is never retried.
func (c *Converter) run(tasks []Task) []Outcome {
	if len(tasks) == 0 {
		c.logger.Println("nothing to do")
		return nil
	}

	jobs := c.config.Jobs
	if jobs < 1 {
		jobs = 1
	}

	c.logger.Printf("converting %d tiles with %d workers\n", len(tasks), jobs)

	outcomes := make([]Outcome, 0, len(tasks))

	if jobs == 1 {
		for _, t := range tasks {
			outcomes = append(outcomes, c.report(Outcome{Task: t, Err: c.convertTile(t)}))
		}
		return outcomes
	}

	inbox := make(chan Task)
	results := make(chan Outcome)

	var g errgroup.Group
	for i := 0; i < jobs; i++ {
		g.Go(func() error {
			for t := range inbox {
				results <- Outcome{Task: t, Err: c.convertTile(t)}
			}
			return nil
		})
	}

	go func() {
		for _, t := range tasks {
			inbox <- t
		}
		close(inbox)
	}()

	go func() {
		g.Wait()
		close(results)
	}()

	// Single consumer; reporting is serialised here so messages from
	// different workers never interleave.
	for o := range results {
		outcomes = append(outcomes, c.report(o))
	}

	return outcomes
}

// Convert walks the configured input tree and writes an LVGL binary image
// for every planned tile. Per-tile failures are reported through the
// logger and recorded in the returned outcomes; only a fatal problem with
// the input tree itself aborts the run.
func (c *Converter) Convert() ([]Outcome, error) {
	// The output root exists afterwards even if the input root turns out
	// to be unusable.
	if err := os.MkdirAll(c.config.OutputRoot, 0755); err != nil {
		return nil, err
	}

	info, err := os.Stat(c.config.InputRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("lvtile: input root is not a directory")
	}

	tiles, errc := c.findTiles()
	tasks := c.plan(tiles)
	if err := <-errc; err != nil {
		return nil, err
	}

	return c.run(tasks), nil
}
