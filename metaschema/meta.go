// Package metaschema acquires, caches and compiles the umbrella
// meta-schema used to validate every input document before
// composition.
package metaschema

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/schemacompose/schemacompose/debug"
	"github.com/schemacompose/schemacompose/diag"
	"github.com/schemacompose/schemacompose/ir"
)

// CanonicalURL locates the canonical meta-schema the base template is
// merged with when the cache file is synthesized.
const CanonicalURL = "https://json-schema.org/draft-07/schema"

// DefaultCachePath is where the synthesized umbrella schema persists
// between runs.
const DefaultCachePath = "meta.schema.json"

//go:embed base.schema.json
var baseSchema []byte

// Meta is the compiled umbrella meta-schema plus the canonical
// definitions the composition passes clone from.
type Meta struct {
	// ID is the umbrella schema's identity, referenced by the
	// assembled document's dialect key.
	ID string

	Doc *ir.Node

	compiled *jsonschema.Schema
	printer  *message.Printer
}

// Load reads the cached umbrella schema, synthesizing and persisting
// it first when absent.
func Load(ctx context.Context, cachePath string, rep *diag.Reporter) (*Meta, error) {
	data, err := os.ReadFile(cachePath)
	switch {
	case err == nil:
		rep.Progressf("loading meta schema %s", cachePath)
	case os.IsNotExist(err):
		rep.Progressf("generating meta schema %s", cachePath)
		data, err = generate(ctx)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			return nil, fmt.Errorf("could not persist meta schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("could not read %q: %w", cachePath, err)
	}
	return FromJSON(data)
}

// generate merges the embedded base template over the fetched
// canonical meta-schema.
func generate(ctx context.Context) ([]byte, error) {
	canonical, err := fetch(ctx, CanonicalURL)
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(canonical, baseSchema)
	if err != nil {
		return nil, fmt.Errorf("could not merge meta schema template: %w", err)
	}
	// re-encode for a readable cache file
	doc, err := ir.ParseJSON(merged)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := ir.EncodeJSON(doc, buf, "    "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("url %s gave %d/%s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

// FromJSON compiles an umbrella schema document.
func FromJSON(data []byte) (*Meta, error) {
	doc, err := ir.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("meta schema: %w", err)
	}
	val, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("meta schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(DefaultCachePath, val); err != nil {
		return nil, fmt.Errorf("meta schema: %w", err)
	}
	compiled, err := c.Compile(DefaultCachePath)
	if err != nil {
		return nil, fmt.Errorf("meta schema does not compile: %w", err)
	}
	if debug.Meta() {
		debug.Logf("meta schema id %q\n", doc.GetString("$id"))
	}
	return &Meta{
		ID:       doc.GetString("$id"),
		Doc:      doc,
		compiled: compiled,
		printer:  message.NewPrinter(language.English),
	}, nil
}

// Definitions returns the canonical definitions object cloned from by
// the role and property-injection passes.
func (m *Meta) Definitions() *ir.Node {
	return m.Doc.Get("definitions")
}

// Item is one validator-reported failure: a data path into the
// offending document and a message.
type Item struct {
	Path    string
	Message string
}

// Validate checks one raw tree against the umbrella schema, returning
// one Item per leaf cause.
func (m *Meta) Validate(tree *ir.Node) []Item {
	err := m.compiled.Validate(tree.ToAny())
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Item{{Path: "/", Message: err.Error()}}
	}
	var items []Item
	m.flatten(ve, &items)
	return items
}

func (m *Meta) flatten(ve *jsonschema.ValidationError, out *[]Item) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		*out = append(*out, Item{
			Path:    path,
			Message: ve.ErrorKind.LocalizedString(m.printer),
		})
		return
	}
	for _, c := range ve.Causes {
		m.flatten(c, out)
	}
}
