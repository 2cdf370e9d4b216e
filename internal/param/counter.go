package param

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// AddCounterToSaveDirectory gives every run its own output directory:
// the counter file is created at zero when absent, read and
// incremented, and the store's "saveDirectory" parameter gets the new
// count appended as a "-<n>" suffix.
func AddCounterToSaveDirectory(s *Store, counterPath string) error {
	data, err := os.ReadFile(counterPath)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte("0")
	} else if err != nil {
		return fmt.Errorf("cannot read counter file %q: %w", counterPath, err)
	}

	counter := 0
	if text := strings.TrimSpace(string(data)); text != "" {
		counter, err = strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("counter file %q does not hold a number: %w", counterPath, err)
		}
	}
	counter++

	if err := os.WriteFile(counterPath, []byte(fmt.Sprintf("%d\n", counter)), 0o644); err != nil {
		return fmt.Errorf("cannot update counter file %q: %w", counterPath, err)
	}

	dir, err := s.GetString("saveDirectory")
	if err != nil {
		return err
	}
	return s.ChangeVariableValue("saveDirectory", fmt.Sprintf("%s-%d", dir, counter))
}
