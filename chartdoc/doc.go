// Reads chart descriptions from XML or YAML documents
// and builds the corresponding chartdraw.Chart.
package chartdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrParamMismatch   = errors.New("param mismatch")
	ErrUnknownCurve    = errors.New("unknown curve")
	ErrUnknownScale    = errors.New("unknown scale type")
	ErrUnknownKind     = errors.New("unknown series kind")
	ErrUnknownAxis     = errors.New("unknown gradient axis")
	ErrUnknownFormat   = errors.New("unknown document format")
	ErrUnsupported     = errors.New("unsupported content")
	ErrNoSeries        = errors.New("chart has no series")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidGradient = errors.New("invalid gradient")
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for each unparsed element
	WarnErrorMode
	// StrictErrorMode returns an error on the first unparsed element
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "ignore", "":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("error mode %q: %w", s, ErrParamMismatch)
}

// Format is the serialization of a document.
type Format uint8

const (
	XML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case YAML:
		return "yaml"
	default:
		return "<unknown Format>"
	}
}

// FormatFromPath deduces the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return XML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Options parametrize the reading of documents.
type Options struct {
	Mode ErrorMode
	// Logger receives the warnings in WarnErrorMode.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// reporter applies the error mode to unsupported content
type reporter struct {
	mode   ErrorMode
	logger *zap.Logger
}

// unsupported returns a non nil error in strict mode only
func (r reporter) unsupported(err error, fields ...zap.Field) error {
	switch r.mode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		r.logger.Warn(err.Error(), fields...)
	}
	return nil
}

// ReadStream reads a document from the given io.Reader.
// The error mode determines if the reader ignores, errors out, or logs a warning
// when it does not handle some content of the document.
func ReadStream(stream io.Reader, format Format, opts Options) (*Document, error) {
	rep := reporter{mode: opts.Mode, logger: opts.logger()}
	var (
		doc *Document
		err error
	)
	switch format {
	case XML:
		doc, err = readXML(stream, rep)
	case YAML:
		doc, err = readYAML(stream, rep)
	default:
		return nil, fmt.Errorf("format %d: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	if err = doc.validate(rep); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadFile reads the document from the named file,
// whose format is deduced from its extension.
func ReadFile(path string, opts Options) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadStream(fin, format, opts)
}

func readYAML(stream io.Reader, rep reporter) (*Document, error) {
	content, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	var doc Document
	if rep.mode != IgnoreErrorMode {
		// look for unknown fields first
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&Document{}); err != nil && err != io.EOF {
			var typeErr *yaml.TypeError
			if !errors.As(err, &typeErr) {
				return nil, fmt.Errorf("invalid yaml document: %w", err)
			}
			if err := rep.unsupported(fmt.Errorf("%w: %s", ErrUnsupported, err)); err != nil {
				return nil, err
			}
		}
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml document: %w", err)
	}
	return &doc, nil
}
