package checkout

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrPinNotFound indicates the revision pin file does not exist.
	ErrPinNotFound = errors.New("revision pin file not found")
	// ErrPinEmpty indicates the pin file holds no revision line.
	ErrPinEmpty = errors.New("revision pin file has no revision")
)

// ReadPin returns the first line of path that is neither blank nor a comment
// ("#" or "--").
func ReadPin(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrPinNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("open pin file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--") {
			continue
		}
		return line, nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read pin file: %w", err)
	}
	return "", fmt.Errorf("%w: %s", ErrPinEmpty, path)
}
