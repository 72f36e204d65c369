package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"fb-mcp/internal/flashblade"
)

// Serialize turns a facade result into the JSON text returned to the agent.
// An itemized response with items becomes an array of the items; an
// itemized response without items and anything else become an error object
// naming label. Output uses ", " and ": " separators throughout.
func Serialize(res Result, label string) string {
	if res.Err != nil {
		return errorJSON("Invalid response from " + label)
	}
	itemized, ok := res.Response.(flashblade.Itemized)
	if !ok {
		return errorJSON("Invalid response from " + label)
	}
	records := itemized.Records()
	if len(records) == 0 {
		return errorJSON("No data available for " + label)
	}
	b, err := marshal(records)
	if err != nil {
		return errorJSON("Invalid response from " + label)
	}
	return string(b)
}

func errorJSON(msg string) string {
	b, _ := marshal(map[string]string{"error": msg})
	return string(b)
}

// marshal encodes v and re-spaces it with ", " and ": " separators, keeping
// key order as encoded.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return respace(buf.Bytes())
}

type jsonFrame struct {
	object bool
	n      int
}

func respace(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out bytes.Buffer
	var stack []jsonFrame
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			out.WriteByte(byte(d))
			continue
		}
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			switch {
			case top.object && top.n%2 == 1:
				out.WriteString(": ")
			case top.n > 0:
				out.WriteString(", ")
			}
			top.n++
		}
		switch t := tok.(type) {
		case json.Delim:
			out.WriteByte(byte(t))
			stack = append(stack, jsonFrame{object: t == '{'})
		case string:
			var sb bytes.Buffer
			enc := json.NewEncoder(&sb)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(t); err != nil {
				return nil, err
			}
			out.Write(bytes.TrimRight(sb.Bytes(), "\n"))
		case json.Number:
			out.WriteString(t.String())
		case bool:
			out.WriteString(strconv.FormatBool(t))
		case nil:
			out.WriteString("null")
		}
	}
	return out.Bytes(), nil
}
