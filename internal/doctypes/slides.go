package doctypes

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
)

const odfDrawNamespace = "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"

var ooxmlSlidePart = regexp.MustCompile(`^ppt/slides/slide[0-9]+\.xml$`)

// ErrUnsupportedFormat is returned by CountSlides for extensions it cannot read.
var ErrUnsupportedFormat = errors.New("unsupported presentation format")

// CountSlides opens the deck at path and returns how many slides it holds.
func CountSlides(path string) (int, error) {
	container := GetContainer(path)
	if container == ContainerUnknown {
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open presentation package: %w", err)
	}
	defer zr.Close()

	switch container {
	case ContainerOOXML:
		return countOOXMLSlides(&zr.Reader), nil
	default:
		return countODFSlides(&zr.Reader)
	}
}

func countOOXMLSlides(zr *zip.Reader) int {
	count := 0
	for _, f := range zr.File {
		if ooxmlSlidePart.MatchString(f.Name) {
			count++
		}
	}
	return count
}

func countODFSlides(zr *zip.Reader) (int, error) {
	for _, f := range zr.File {
		if f.Name != "content.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return 0, fmt.Errorf("failed to open content.xml: %w", err)
		}
		defer rc.Close()
		return countDrawPages(rc)
	}
	return 0, errors.New("content.xml not found in presentation package")
}

func countDrawPages(r io.Reader) (int, error) {
	dec := xml.NewDecoder(r)
	count := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse content.xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "page" && se.Name.Space == odfDrawNamespace {
			count++
		}
	}
}
