// Package pptx reads tables out of PresentationML (PPTX) documents.
//
// A PPTX file is a zip archive. Slides live at ppt/slides/slideN.xml and the
// theme at ppt/theme/themeN.xml, both in DrawingML namespaces. Parsing is
// deliberately forgiving: only a document which cannot be opened as a
// presentation at all is an error, individual malformed shapes or attributes
// degrade to empty values.
package pptx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// ErrNotPresentation marks input which could be opened but is not a
// PresentationML document.
var ErrNotPresentation = errors.New("not a PresentationML document")

const (
	contentTypesPart = "[Content_Types].xml"
	presentationPart = "ppt/presentation.xml"
	corePropsPart    = "docProps/core.xml"
	slidesPrefix     = "ppt/slides/slide"
	themePrefix      = "ppt/theme/theme"
)

// Open reads and parses presentation from file at path.
func Open(path string, log *zap.Logger) (*Presentation, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open presentation archive '%s': %w", path, err)
	}
	defer zr.Close()
	return parseArchive(&zr.Reader, log)
}

// OpenReader parses presentation from an in-memory or otherwise seekable source.
func OpenReader(r io.ReaderAt, size int64, log *zap.Logger) (*Presentation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("unable to open presentation archive: %w", err)
	}
	return parseArchive(zr, log)
}

func parseArchive(zr *zip.Reader, log *zap.Logger) (*Presentation, error) {
	if log == nil {
		log = zap.NewNop()
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	if parts[contentTypesPart] == nil || parts[presentationPart] == nil {
		return nil, fmt.Errorf("required part is missing: %w", ErrNotPresentation)
	}

	prs := &Presentation{}

	// Part names carry the slide number as a decimal suffix, lexicographic
	// order would put slide10 before slide2.
	var slideNames []string
	for name := range parts {
		if strings.HasPrefix(name, slidesPrefix) && strings.HasSuffix(name, ".xml") {
			slideNames = append(slideNames, name)
		}
	}
	sort.Sort(natural.StringSlice(slideNames))

	for i, name := range slideNames {
		data, err := readPart(parts[name])
		if err != nil {
			return nil, fmt.Errorf("unable to read slide part '%s': %w", name, err)
		}
		slide, err := parseSlideXML(data, log)
		if err != nil {
			return nil, fmt.Errorf("unable to parse slide part '%s': %w", name, err)
		}
		slide.Index = i + 1
		prs.Slides = append(prs.Slides, slide)
	}

	// Theme is optional, the converter falls back to the default palette.
	var themeNames []string
	for name := range parts {
		if strings.HasPrefix(name, themePrefix) && strings.HasSuffix(name, ".xml") {
			themeNames = append(themeNames, name)
		}
	}
	if len(themeNames) > 0 {
		sort.Sort(natural.StringSlice(themeNames))
		data, err := readPart(parts[themeNames[0]])
		if err != nil {
			log.Debug("Unable to read theme part, continuing without theme", zap.String("part", themeNames[0]), zap.Error(err))
		} else {
			prs.themeBlob = data
		}
	}

	// Metadata is optional too.
	if f := parts[corePropsPart]; f != nil {
		if data, err := readPart(f); err == nil {
			prs.Props = parseCoreProps(data)
		} else {
			log.Debug("Unable to read document properties", zap.Error(err))
		}
	}

	log.Debug("Presentation parsed", zap.Int("slides", len(prs.Slides)), zap.Bool("theme", prs.themeBlob != nil))
	return prs, nil
}

func parseCoreProps(data []byte) CoreProps {
	var props CoreProps

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return props
	}
	root := doc.Root()
	if root == nil {
		return props
	}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "title":
			props.Title = strings.TrimSpace(child.Text())
		case "creator":
			props.Creator = strings.TrimSpace(child.Text())
		case "created":
			props.Created = strings.TrimSpace(child.Text())
		}
	}
	return props
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func parseSlideXML(data []byte, log *zap.Logger) (Slide, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Slide{}, err
	}
	root := doc.Root()
	if root == nil {
		return Slide{}, errors.New("slide has no root element")
	}
	return parseSlide(root, log), nil
}
