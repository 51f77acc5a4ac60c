package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnknownFileType is returned for config files that are neither YAML nor TOML.
var ErrUnknownFileType = errors.New("unknown config file type")

// FileType is a config file encoding.
type FileType string

const (
	FileYAML FileType = "yaml"
	FileTOML FileType = "toml"
)

// FileTypeOf returns the encoding implied by the extension of path.
func FileTypeOf(path string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FileYAML, nil
	case ".toml":
		return FileTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFileType, path)
	}
}

// Decode parses data according to the extension of path.
func Decode(path string, data []byte) (*Config, error) {
	fileType, err := FileTypeOf(path)
	if err != nil {
		return nil, err
	}

	if fileType == FileTOML {
		return FromTOML(data)
	}
	return FromYAML(data)
}

// Encode serializes c according to the extension of path, with header as
// a leading comment block.
func (c *Config) Encode(path, header string) ([]byte, error) {
	fileType, err := FileTypeOf(path)
	if err != nil {
		return nil, err
	}

	var body []byte
	if fileType == FileTOML {
		body, err = c.ToTOML()
	} else {
		body, err = c.ToYAML()
	}
	if err != nil {
		return nil, err
	}

	if header == "" {
		return body, nil
	}

	var out strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(header, "\n"), "\n") {
		out.WriteString("# ")
		out.WriteString(line)
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	out.Write(body)

	return []byte(out.String()), nil
}

func isEmptyDocument(err error) bool {
	return errors.Is(err, io.EOF)
}
