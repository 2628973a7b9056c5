package track

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrMalformedTrack = errors.New("malformed track line")
	ErrTooFewPoints   = errors.New("track needs at least 2 points")
)

// Load parses a track in the "x y" per line text format. Blank lines and
// lines starting with '#' are skipped.
func Load(r io.Reader) (Path, error) {
	var pts Path
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %w: want 2 fields, got %d", line, ErrMalformedTrack, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedTrack, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedTrack, err)
		}
		pts = append(pts, r2.Vec{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	if len(pts) < 2 {
		return nil, ErrTooFewPoints
	}
	return pts, nil
}

// LoadFile reads a track from path.
func LoadFile(path string) (Path, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()

	pts, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// Save writes pts in the text track format.
func Save(w io.Writer, pts Path) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		if _, err := fmt.Fprintf(bw, "%g %g\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFile writes pts to path, creating parent directories as needed.
func SaveFile(path string, pts Path) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create track dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create track: %w", err)
	}
	if err := Save(f, pts); err != nil {
		f.Close()
		return fmt.Errorf("write track: %w", err)
	}
	return f.Close()
}

// LoadOrDefault loads path, falling back to the built-in circuit when the
// file does not exist. The bool reports whether the file was used.
func LoadOrDefault(path string) (Path, bool, error) {
	if path == "" {
		return DefaultCenterline(), false, nil
	}
	pts, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultCenterline(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return pts, true, nil
}
