/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attributeutil

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"
)

const redacted = "[REDACTED]"

// JSON returns attribute with the value marshaled to JSON. Values can be redacted using WithRedacted and
// WithRedactedValues options.
func JSON(key string, value interface{}, opts ...Opt) attribute.KeyValue {
	op := &options{}

	for _, opt := range opts {
		opt(op)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attribute.Value{},
		}
	}

	for _, path := range op.redacted {
		for _, p := range expand(b, path) {
			if gjson.GetBytes(b, p).Exists() {
				b, _ = sjson.SetBytes(b, p, redacted)
			}
		}
	}

	for _, r := range op.redactedValues {
		for _, p := range expand(b, r.path) {
			b = redactValues(b, p, r.keep)
		}
	}

	return attribute.KeyValue{
		Key:   attribute.Key(key),
		Value: attribute.StringValue(string(b)),
	}
}

// Names returns attribute listing the sorted keys of m. Values are never exposed.
func Names(key string, m map[string]interface{}) attribute.KeyValue {
	names := make([]string, 0, len(m))

	for k := range m {
		names = append(names, k)
	}

	sort.Strings(names)

	return attribute.StringSlice(key, names)
}

type redactedValues struct {
	path string
	keep []string
}

type options struct {
	redacted       []string
	redactedValues []redactedValues
}

type Opt func(*options)

// WithRedacted returns option that replaces value with [REDACTED] for the given key. Key is a path to the
// value to be redacted. Refer to https://github.com/tidwall/gjson/blob/master/SYNTAX.md for path syntax.
// A "#" path component applies the rest of the path to every array element.
func WithRedacted(key string) Opt {
	return func(o *options) {
		o.redacted = append(o.redacted, key)
	}
}

// WithRedactedValues returns option that replaces every member value of the object found at path with
// [REDACTED], except for the members named in keep. Member names stay visible.
func WithRedactedValues(path string, keep ...string) Opt {
	return func(o *options) {
		o.redactedValues = append(o.redactedValues, redactedValues{path: path, keep: keep})
	}
}

// expand resolves "#" array components of path into concrete element paths.
func expand(b []byte, path string) []string {
	prefix, rest, found := strings.Cut(path, "#.")
	if !found {
		return []string{path}
	}

	arrayPath := strings.TrimSuffix(prefix, ".")

	arr := gjson.ParseBytes(b)
	if arrayPath != "" {
		arr = gjson.GetBytes(b, arrayPath)
	}

	if !arr.IsArray() {
		return nil
	}

	var paths []string

	for i := range arr.Array() {
		elem := strconv.Itoa(i)
		if arrayPath != "" {
			elem = arrayPath + "." + elem
		}

		paths = append(paths, expand(b, elem+"."+rest)...)
	}

	return paths
}

func redactValues(b []byte, path string, keep []string) []byte {
	obj := gjson.GetBytes(b, path)
	if !obj.IsObject() {
		return b
	}

	obj.ForEach(func(k, _ gjson.Result) bool {
		name := k.String()

		for _, kept := range keep {
			if kept == name {
				return true
			}
		}

		b, _ = sjson.SetBytes(b, path+"."+escape(name), redacted)

		return true
	})

	return b
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "#", `\#`, "|", `\|`)

func escape(name string) string {
	return pathEscaper.Replace(name)
}
