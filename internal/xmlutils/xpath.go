package xmlutils

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/xmlpath.v2"
)

// ParseXML parses an XML document and returns its root node. Surrogate-pair
// character references, which Android exports use for emoji, are repaired
// first because encoding/xml rejects them.
func ParseXML(r io.Reader) (*xmlpath.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML: %w", err)
	}

	root, err := xmlpath.Parse(bytes.NewReader(FixSurrogateRefs(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// SMSRecord is one message of an SMS backup, with raw attribute values.
type SMSRecord struct {
	Body    string
	Address string
	Date    string
	Type    string
}

// ExtractSMSRecords returns every message node of root, in document order.
func ExtractSMSRecords(root *xmlpath.Node, paths SMSBackup) ([]SMSRecord, error) {
	message, err := xmlpath.Compile(paths.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath %q: %w", paths.Message, err)
	}
	fields := make([]*xmlpath.Path, 4)
	for i, expr := range []string{paths.Body, paths.Address, paths.Date, paths.Type} {
		if fields[i], err = xmlpath.Compile(expr); err != nil {
			return nil, fmt.Errorf("failed to compile XPath %q: %w", expr, err)
		}
	}

	var records []SMSRecord
	iter := message.Iter(root)
	for iter.Next() {
		node := iter.Node()
		records = append(records, SMSRecord{
			Body:    stringAt(fields[0], node),
			Address: stringAt(fields[1], node),
			Date:    stringAt(fields[2], node),
			Type:    stringAt(fields[3], node),
		})
	}
	return records, nil
}

func stringAt(path *xmlpath.Path, node *xmlpath.Node) string {
	s, _ := path.String(node)
	return s
}

var charRef = regexp.MustCompile(`&#(\d+);`)

// FixSurrogateRefs rewrites UTF-16 surrogate pairs written as two decimal
// character references ("&#55357;&#56832;") into one reference to the real
// code point. Lone surrogates become U+FFFD.
func FixSurrogateRefs(data []byte) []byte {
	refs := charRef.FindAllSubmatchIndex(data, -1)
	if len(refs) == 0 {
		return data
	}

	var out bytes.Buffer
	last := 0
	for i := 0; i < len(refs); i++ {
		ref := refs[i]
		n, _ := strconv.Atoi(string(data[ref[2]:ref[3]]))
		if !isSurrogate(n) {
			continue
		}

		out.Write(data[last:ref[0]])
		last = ref[1]
		if isHighSurrogate(n) && i+1 < len(refs) && refs[i+1][0] == ref[1] {
			next := refs[i+1]
			low, _ := strconv.Atoi(string(data[next[2]:next[3]]))
			if isLowSurrogate(low) {
				fmt.Fprintf(&out, "&#%d;", 0x10000+(n-0xD800)<<10+(low-0xDC00))
				last = next[1]
				i++
				continue
			}
		}
		out.WriteString("&#65533;")
	}
	out.Write(data[last:])
	return out.Bytes()
}

func isSurrogate(n int) bool     { return n >= 0xD800 && n <= 0xDFFF }
func isHighSurrogate(n int) bool { return n >= 0xD800 && n <= 0xDBFF }
func isLowSurrogate(n int) bool  { return n >= 0xDC00 && n <= 0xDFFF }
