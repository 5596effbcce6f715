package classifier

import (
	"encoding/binary"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

const (
	moMagic      = 0x950412de
	moHeaderSize = 28
)

// classifyMO checks the header of a compiled gettext catalog.
func classifyMO(data []byte) domain.Verdict {
	if len(data) < moHeaderSize {
		return domain.NotConfirmed
	}

	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(data) == moMagic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(data) == moMagic:
		order = binary.BigEndian
	default:
		return domain.NotConfirmed
	}

	// Major revision must be 0 or 1.
	if order.Uint32(data[4:])>>16 > 1 {
		return domain.NotConfirmed
	}
	if order.Uint32(data[8:]) == 0 {
		return domain.NotConfirmed
	}
	return domain.Confirmed
}

// classifyXLIFF confirms an <xliff> document containing at least one
// translation unit (<trans-unit> in 1.2, <unit> in 2.x).
func classifyXLIFF(content string) domain.Verdict {
	dec := xml.NewDecoder(strings.NewReader(content))

	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return domain.NotConfirmed
		}
		if err != nil {
			return domain.Inconclusive
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if start.Name.Local != "xliff" {
				return domain.NotConfirmed
			}
			sawRoot = true
			continue
		}
		if start.Name.Local == "trans-unit" || start.Name.Local == "unit" {
			return domain.Confirmed
		}
	}
}
