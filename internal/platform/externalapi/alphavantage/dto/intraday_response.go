// Package dto はAlpha Vantage APIレスポンスのデータ転送オブジェクトとデコーダを定義します。
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MetaDataKey はレスポンス中のメタデータブロックのキーです。
const MetaDataKey = "Meta Data"

// Upstream error keys. Alpha Vantage answers HTTP 200 with one of these instead of a series.
const (
	ErrorMessageKey = "Error Message"
	NoteKey         = "Note"
	InformationKey  = "Information"
)

// MetaData represents the "Meta Data" block of a TIME_SERIES_INTRADAY response.
type MetaData struct {
	Information   string `json:"1. Information"`
	Symbol        string `json:"2. Symbol"`
	LastRefreshed string `json:"3. Last Refreshed"`
	Interval      string `json:"4. Interval"`
	OutputSize    string `json:"5. Output Size"`
	TimeZone      string `json:"6. Time Zone"`
}

// Field は時系列の1エントリ内のキーと値です（例: "1. open" / "185.6400"）。
type Field struct {
	Key   string
	Value string
}

// SeriesEntry is one timestamp of the series with its fields in upstream order.
type SeriesEntry struct {
	Timestamp string
	Fields    []Field
}

// IntradayResponse is a TIME_SERIES_INTRADAY body decoded with key order preserved.
type IntradayResponse struct {
	Meta         *MetaData
	HasSeries    bool // the "Time Series (<interval>)" key was present
	Series       []SeriesEntry
	ErrorMessage string
	Note         string
	Information  string
}

// UpstreamMessage はupstreamが返したエラー文言を1つ返します。
func (r *IntradayResponse) UpstreamMessage() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "":
		return r.Information
	}
	return ""
}

// DecodeIntraday decodes a response body, keeping the series in the order the
// upstream wrote it. seriesKey is the interpolated "Time Series (<interval>)" key.
//
// encoding/json のmapへのデコードではキー順が失われるため、トークン単位で読み進めます。
func DecodeIntraday(r io.Reader, seriesKey string) (*IntradayResponse, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	out := &IntradayResponse{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case seriesKey:
			series, err := decodeSeries(dec)
			if err != nil {
				return nil, fmt.Errorf("decode %q: %w", seriesKey, err)
			}
			out.HasSeries = true
			out.Series = series
		case MetaDataKey:
			var m MetaData
			if err := dec.Decode(&m); err != nil {
				return nil, fmt.Errorf("decode %q: %w", MetaDataKey, err)
			}
			out.Meta = &m
		case ErrorMessageKey:
			if out.ErrorMessage, err = decodeText(dec); err != nil {
				return nil, err
			}
		case NoteKey:
			if out.Note, err = decodeText(dec); err != nil {
				return nil, err
			}
		case InformationKey:
			if out.Information, err = decodeText(dec); err != nil {
				return nil, err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeSeries reads {"<ts>": {"1. open": "...", ...}, ...}. A JSON null yields an empty series.
func decodeSeries(dec *json.Decoder) ([]SeriesEntry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return []SeriesEntry{}, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	entries := []SeriesEntry{}
	for dec.More() {
		ts, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		fields, err := decodeFields(dec)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", ts, err)
		}
		entries = append(entries, SeriesEntry{Timestamp: ts, Fields: fields})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeFields(dec *json.Decoder) ([]Field, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	fields := []Field{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Value: rawText(raw)})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeText(dec *json.Decoder) (string, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", err
	}
	return rawText(raw), nil
}

// rawText は文字列ならアンクォートし、それ以外（数値など）はそのままのテキストを返します。
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if string(raw) == "null" {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

var errUnexpectedEOF = errors.New("unexpected end of JSON input")

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errUnexpectedEOF
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
