package loader

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/net/html/charset"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
)

// DefaultPath is the catalog file used when none is given on the command line.
const DefaultPath = "./go_200911-termdb.obo-xml"

// Element names consumed from OBO-XML. Everything else is ignored.
const (
	elemTerm = "term"
	elemID   = "id"
	elemName = "name"
	elemIsA  = "is_a"
)

// Result is the outcome of a successful ingestion.
type Result struct {
	Terms    []model.Term    // in document order, duplicates included
	Warnings []model.Warning // skipped terms and empty references
}

// LoadFile reads terms from an OBO-XML file. Gzip-compressed input (by
// extension or magic bytes) is decompressed transparently.
func LoadFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IngestError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, 64*1024)
	var r io.Reader = br
	if strings.HasSuffix(path, ".gz") || isGzip(br) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, &IngestError{Path: path, Op: "decompress", Err: err}
		}
		defer zr.Close()
		r = zr
	}

	res, err := Ingest(r)
	if err != nil {
		var ie *IngestError
		if errors.As(err, &ie) {
			ie.Path = path
		}
		return nil, err
	}
	return res, nil
}

func isGzip(br *bufio.Reader) bool {
	magic, err := br.Peek(2)
	return err == nil && magic[0] == 0x1f && magic[1] == 0x8b
}

// Ingest streams an OBO-XML document and returns its term records.
// Only the id, name and is_a direct children of each <term> are read, and
// only their first text node; nested elements are not recursed into.
func Ingest(r io.Reader) (*Result, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	res := &Result{}
	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(dec, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if se.Name.Local != elemTerm {
			continue
		}
		line, _ := dec.InputPos()
		term, err := readTerm(dec)
		if err != nil {
			return nil, parseError(dec, err)
		}
		if w, ok := checkTerm(&term, line); !ok {
			res.Warnings = append(res.Warnings, w)
			continue
		}
		if n := dropEmptyParents(&term); n > 0 {
			res.Warnings = append(res.Warnings, model.Warning{
				Kind:    model.WarnSchema,
				TermID:  term.ID,
				Line:    line,
				Message: fmt.Sprintf("%d empty is_a reference(s) ignored", n),
			})
		}
		res.Terms = append(res.Terms, term)
	}

	if !sawRoot {
		return nil, &IngestError{Op: "parse", Err: ErrNoRootElement}
	}
	return res, nil
}

func parseError(dec *xml.Decoder, err error) error {
	line, _ := dec.InputPos()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		line = se.Line
	}
	return &IngestError{Op: "parse", Line: line, Err: err}
}

// readTerm consumes tokens up to and including the </term> matching the
// start element already read by the caller.
func readTerm(dec *xml.Decoder) (model.Term, error) {
	var term model.Term
	haveID, haveName := false, false
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return term, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return term, nil
		case xml.StartElement:
			switch t.Name.Local {
			case elemID:
				text, err := firstText(dec)
				if err != nil {
					return term, err
				}
				if !haveID {
					term.ID, haveID = text, true
				}
			case elemName:
				text, err := firstText(dec)
				if err != nil {
					return term, err
				}
				if !haveName {
					term.Name, haveName = text, true
				}
			case elemIsA:
				text, err := firstText(dec)
				if err != nil {
					return term, err
				}
				term.Parents = append(term.Parents, text)
			default:
				if err := dec.Skip(); err != nil {
					return term, err
				}
			}
		}
	}
}

// firstText returns the first character data directly inside the current
// element, then skips to its end. Text appearing after a child element is
// not considered.
func firstText(dec *xml.Decoder) (string, error) {
	var text string
	found := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if !found {
				text, found = string(t), true
			}
		case xml.StartElement:
			found = true
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return text, nil
		}
	}
}

func checkTerm(term *model.Term, line int) (model.Warning, bool) {
	if err := term.Validate(); err != nil {
		return model.Warning{
			Kind:    model.WarnSchema,
			TermID:  term.ID,
			Line:    line,
			Message: "term skipped: " + err.Error(),
		}, false
	}
	return model.Warning{}, true
}

func dropEmptyParents(term *model.Term) int {
	kept := term.Parents[:0]
	dropped := 0
	for _, p := range term.Parents {
		if p == "" {
			dropped++
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		term.Parents = nil
	} else {
		term.Parents = kept
	}
	return dropped
}
