// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Stdin is the payload argument that reads from standard input.
const Stdin = "-"

var errStdinReused = errors.New("standard input can feed only one payload flag")

// payloadReader reads payload flags. Standard input may be consumed once.
type payloadReader struct {
	stdin     io.Reader
	stdinUsed bool
}

// read returns the payload named by arg as compact JSON text. An empty arg
// yields def. JSON input passes through; YAML input is converted.
func (p *payloadReader) read(flag, arg, def string) (string, error) {
	if arg == "" {
		return def, nil
	}

	var (
		data []byte
		err  error
	)
	if arg == Stdin {
		if p.stdinUsed {
			return "", fmt.Errorf("--%s: %w", flag, errStdinReused)
		}
		p.stdinUsed = true
		data, err = io.ReadAll(p.stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return "", fmt.Errorf("--%s: read payload: %w", flag, err)
	}

	text, err := normalizePayload(data)
	if err != nil {
		return "", fmt.Errorf("--%s: %w", flag, err)
	}
	return text, nil
}

// normalizePayload returns data as compact JSON.
func normalizePayload(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "null", nil
	}
	if json.Valid(data) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return "", fmt.Errorf("compact json payload: %w", err)
		}
		return buf.String(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("payload is neither JSON nor YAML: %w", err)
	}
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, &doc); err != nil {
		return "", fmt.Errorf("convert yaml payload: %w", err)
	}
	return buf.String(), nil
}

// writeNodeJSON writes a YAML node tree as compact JSON. Payloads are
// opaque, so plain scalars whose JSON form would differ from the source text
// (3.10, 1.0, 0x1F, 2024-01-01) are kept as strings holding that text.
func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case 0:
		// Comment-only input decodes to a zero node.
		buf.WriteString("null")
		return nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNodeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeNodeJSON(buf, n.Alias)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		pairs, err := mappingPairs(n)
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, kv := range pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, kv[0].Value)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, kv[1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.ScalarNode:
		return writeScalarJSON(buf, n)
	}
	return fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

// mappingPairs returns the key/value pairs of a mapping with merge keys
// expanded. Explicit keys win over merged ones.
func mappingPairs(n *yaml.Node) ([][2]*yaml.Node, error) {
	var explicit, merged [][2]*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.AliasNode {
			k = k.Alias
		}
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			m, err := mergeSources(v)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m...)
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
		}
		explicit = append(explicit, [2]*yaml.Node{k, v})
	}

	seen := make(map[string]bool, len(explicit)+len(merged))
	out := make([][2]*yaml.Node, 0, len(explicit)+len(merged))
	for _, kv := range append(explicit, merged...) {
		if seen[kv[0].Value] {
			continue
		}
		seen[kv[0].Value] = true
		out = append(out, kv)
	}
	return out, nil
}

func mergeSources(v *yaml.Node) ([][2]*yaml.Node, error) {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return mappingPairs(v)
	case yaml.SequenceNode:
		var out [][2]*yaml.Node
		for _, item := range v.Content {
			m, err := mergeSources(item)
			if err != nil {
				return nil, err
			}
			out = append(out, m...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: merge value must be a mapping", v.Line)
}

var jsonInt = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

func writeScalarJSON(buf *bytes.Buffer, n *yaml.Node) error {
	tagged := n.Style&yaml.TaggedStyle != 0
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int":
		if jsonInt.MatchString(n.Value) {
			buf.WriteString(n.Value)
			return nil
		}
		if tagged {
			var i int64
			if err := n.Decode(&i); err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			buf.WriteString(strconv.FormatInt(i, 10))
			return nil
		}
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err == nil && strconv.FormatFloat(f, 'f', -1, 64) == n.Value {
			buf.WriteString(n.Value)
			return nil
		}
		if tagged {
			if err := n.Decode(&f); err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			out, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			buf.Write(out)
			return nil
		}
	}
	writeJSONString(buf, n.Value)
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	out, _ := json.Marshal(s)
	buf.Write(out)
}
