package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/linkstore/internal/errors"
	"github.com/vango-dev/linkstore/pkg/record"
)

// Supported state file formats.
const (
	formatAuto = "auto"
	formatJSON = "json"
	formatTOML = "toml"
)

// detectFormat resolves "auto" from the file extension.
func detectFormat(path, format string) (string, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = formatAuto
	}
	if format == formatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			return formatJSON, nil
		case ".toml":
			return formatTOML, nil
		}
		return "", errors.New("L012").
			WithDetail("Cannot tell the format of " + filepath.Base(path) + " from its extension")
	}
	if format != formatJSON && format != formatTOML {
		return "", errors.New("L012").WithDetail("Unknown format " + format)
	}
	return format, nil
}

// loadState reads a state file into a record.
func loadState(path, format string) (record.Record, error) {
	format, err := detectFormat(path, format)
	if err != nil {
		return record.Record{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return record.Record{}, errors.New("L011").Wrap(err)
	}

	var r record.Record
	switch format {
	case formatJSON:
		r, err = record.ParseJSON(data)
	case formatTOML:
		r, err = record.ParseTOML(data)
	}
	if err != nil {
		return record.Record{}, errors.New("L011").
			Wrap(err).
			WithLocationFromError(path, err)
	}
	return r, nil
}
