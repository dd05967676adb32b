package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// binaryTextTransport rewrites <base64> values in XML-RPC responses into
// <string> values carrying the decoded UTF-8 text. The server transmits
// non-ASCII text fields as binary blobs, and the XML-RPC decoder hands
// interface-typed fields the raw chardata without distinguishing the two
// element kinds, so the decoding has to happen before the response is
// parsed.
type binaryTextTransport struct {
	base http.RoundTripper
}

func (t *binaryTextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	rewritten, err := decodeBinaryValues(body)
	if err != nil {
		return nil, fmt.Errorf("rewriting response from %s: %w", req.URL.Host, err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(rewritten))
	resp.ContentLength = int64(len(rewritten))
	resp.Header.Del("Content-Length")
	return resp, nil
}

// decodeBinaryValues re-emits body with every <base64> element replaced
// by a <string> element holding the decoded text. Everything else passes
// through token by token, so text that merely looks like base64 stays
// untouched.
func decodeBinaryValues(body []byte) ([]byte, error) {
	if !bytes.Contains(body, []byte("<base64>")) {
		return body, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	var out bytes.Buffer
	enc := xml.NewEncoder(&out)

	var blob strings.Builder
	inBinary := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "base64" {
				inBinary = true
				blob.Reset()
				continue
			}
		case xml.CharData:
			if inBinary {
				blob.Write(t)
				continue
			}
		case xml.EndElement:
			if t.Name.Local == "base64" {
				inBinary = false
				// The Python server wraps blobs at 76 columns, so the
				// chardata may contain newlines.
				compact := strings.Join(strings.Fields(blob.String()), "")
				decoded, err := base64.StdEncoding.DecodeString(compact)
				if err != nil {
					return nil, fmt.Errorf("malformed base64 value: %w", err)
				}

				start := xml.StartElement{Name: xml.Name{Local: "string"}}
				if err := enc.EncodeToken(start); err != nil {
					return nil, err
				}
				if err := enc.EncodeToken(xml.CharData(decoded)); err != nil {
					return nil, err
				}
				if err := enc.EncodeToken(start.End()); err != nil {
					return nil, err
				}
				continue
			}
		}

		if err := enc.EncodeToken(tok); err != nil {
			return nil, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
