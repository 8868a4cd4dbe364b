package canon

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// LoadXML reads a canon table from an XML document of the form:
//
//	<canon>
//	  <book name="Genesis" short="Gen" aliases="ge gn">
//	    <chapter verses="31"/>
//	    ...
//	  </book>
//	</canon>
//
// Chapter order in the document is the canonical chapter order.
func LoadXML(r io.Reader) (*Table, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing canon XML: %w", err)
	}

	books, err := xmlquery.QueryAll(doc, "//canon/book")
	if err != nil {
		return nil, fmt.Errorf("querying canon books: %w", err)
	}

	var records []*Record
	for _, b := range books {
		rec := &Record{
			Name:      b.SelectAttr("name"),
			ShortName: b.SelectAttr("short"),
		}
		if aliases := strings.Fields(b.SelectAttr("aliases")); len(aliases) > 0 {
			rec.Aliases = aliases
		}

		chapters, err := xmlquery.QueryAll(b, "chapter")
		if err != nil {
			return nil, fmt.Errorf("querying chapters of %s: %w", rec.Name, err)
		}
		for _, ch := range chapters {
			verses := ch.SelectAttr("verses")
			count, err := strconv.Atoi(verses)
			if err != nil {
				return nil, fmt.Errorf("book %s: invalid verse count %q", rec.Name, verses)
			}
			rec.ChapterVerseCounts = append(rec.ChapterVerseCounts, count)
		}
		records = append(records, rec)
	}
	return buildTable(records)
}
