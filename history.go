package main

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//
// Persistent line history.  One entry per line, trimmed, with no
// empty entries and no entry repeating the one before it
//

func historyPath(flagPath string) string {

	if flagPath != "" {
		return flagPath
	}

	if p := os.Getenv("DNTK_HISTORY_FILE"); p != "" {
		return p
	}

	return userConfigFile(historyFileName)
}

func loadHistory(path string) ([]string, error) {

	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = appendHistory(entries, scanner.Text())
	}

	return entries, scanner.Err()
}

//
// Add line unless it is empty or the same as the last entry
//

func appendHistory(entries []string, line string) []string {

	line = strings.TrimSpace(line)

	if line == "" {
		return entries
	}

	if n := len(entries); n > 0 && entries[n-1] == line {
		return entries
	}

	return append(entries, line)
}

func saveHistory(path string, entries []string) error {

	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}

	var buf bytes.Buffer

	for _, e := range entries {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, buf.Bytes(), filePerm)
}
