package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var InfoLogger = log.New(io.Discard, "INFO\t", log.Ldate|log.Ltime)
var ErrorLogger = log.New(io.Discard, "ERROR\t", log.Lshortfile|log.Ldate|log.Ltime)

const DefaultLogPath = "oxi.log"

func InitLoggingWithDefaultPath(verbose bool) (io.Closer, error) {
	path, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	return InitLoggingWithPath(filepath.Join(path, DefaultLogPath), verbose)
}

// InitLoggingWithPath points both loggers at the file at path. When verbose is
// set the output is also mirrored to stderr.
func InitLoggingWithPath(path string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	var out io.Writer = file
	if verbose {
		out = io.MultiWriter(file, os.Stderr)
	}

	SetLogOutput(out)
	return file, nil
}

func SetLogOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
	log.SetOutput(w)
}
