package scene

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format is a document encoding.
type Format int

const (
	FormatYAML  Format = iota // yaml
	FormatJSON                // json
	FormatPlist               // plist
)

// DefaultFormat is the default document encoding.
const DefaultFormat = FormatYAML

var formatNames = []string{"yaml", "json", "plist"}

// String returns the name of the format.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "format(" + strconv.Itoa(int(f)) + ")"
	}

	return formatNames[f]
}

// Formats returns the names of every format.
func Formats() []string { return slices.Clone(formatNames) }

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	i := slices.Index(formatNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return DefaultFormat, ErrInvalidFormat.Wrapf(
			"%q (want one of %s)", s, strings.Join(formatNames, ", "))
	}

	return Format(i), nil
}

// Encode writes doc to w in the given format.
func Encode(ctx context.Context, w io.Writer, doc *Document, format Format, indent int) error {
	switch format {
	case FormatYAML, FormatJSON:
		opts := []yaml.EncodeOption{yaml.Indent(indent)}
		if format == FormatJSON {
			opts = append(opts, yaml.JSON())
		}

		data, err := yaml.MarshalContext(ctx, doc, opts...)
		if err != nil {
			return ErrEncode.With(slogFormat(format)).Wrap(err)
		}

		_, err = w.Write(data)

		return err

	case FormatPlist:
		return encodePlist(w, doc, indent)

	default:
		return ErrInvalidFormat.Wrapf("%s", format)
	}
}

const plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`

// encodePlist writes doc as an XML property list.
func encodePlist(w io.Writer, doc *Document, indent int) error {
	if _, err := io.WriteString(w, plistHeader); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", strings.Repeat(" ", indent))

	root := xml.StartElement{
		Name: xml.Name{Local: "plist"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "version"}, Value: "1.0"}},
	}

	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	if err := plistValue(enc, doc); err != nil {
		return ErrEncode.With(slogFormat(FormatPlist)).Wrap(err)
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}

	if err := enc.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

func plistValue(enc *xml.Encoder, v any) error {
	switch x := v.(type) {
	case *Document:
		return plistElement(enc, "dict", func() error {
			for _, key := range x.keys {
				val := x.vals[key]
				if c, ok := val.(*Components); ok && c.Len() == 0 {
					continue
				}

				if err := plistText(enc, "key", key); err != nil {
					return err
				}

				if err := plistValue(enc, val); err != nil {
					return err
				}
			}

			return nil
		})

	case *Components:
		return plistElement(enc, "array", func() error {
			for _, item := range x.Items() {
				if err := plistValue(enc, item); err != nil {
					return err
				}
			}

			return nil
		})

	case []float64:
		return plistElement(enc, "array", func() error {
			for _, f := range x {
				if err := plistValue(enc, f); err != nil {
					return err
				}
			}

			return nil
		})

	case float64:
		return plistText(enc, "real", strconv.FormatFloat(x, 'g', -1, 64))

	case int:
		return plistText(enc, "integer", strconv.Itoa(x))

	case bool:
		return plistElement(enc, strconv.FormatBool(x), nil)

	case string:
		return plistText(enc, "string", x)

	default:
		return ErrInternal.Wrapf("unsupported plist value %T", v)
	}
}

func plistElement(enc *xml.Encoder, name string, body func() error) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if body != nil {
		if err := body(); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func plistText(enc *xml.Encoder, name, text string) error {
	return enc.EncodeElement(text, xml.StartElement{Name: xml.Name{Local: name}})
}

func slogFormat(f Format) slog.Attr { return slog.String("format", f.String()) }
