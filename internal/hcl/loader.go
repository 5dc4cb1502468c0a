package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/madrun/internal/config"
	"github.com/vk/madrun/internal/ctxlog"
	"github.com/vk/madrun/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file at path and decodes every command it declares.
func (l *Loader) Load(ctx context.Context, path string, r config.Resolver) (config.Commands, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}
	return l.Decode(ctx, path, src, r)
}

// Decode parses src as HCL. filename is used in diagnostics and its directory
// is exposed to expressions as `cwd`.
func (l *Loader) Decode(ctx context.Context, filename string, src []byte, r config.Resolver) (config.Commands, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root schema.File
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	evalCtx := newEvalContext(filepath.Dir(filename))
	entries := make(map[string]any)

	attrs, diags := root.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	for name, attr := range attrs {
		v, err := evaluate(attr.Expr, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("command %q in %s: %w", name, filename, err)
		}
		entries[name] = v
	}

	for _, block := range root.Commands {
		if _, dup := entries[block.Name]; dup {
			return nil, fmt.Errorf("command %q is declared more than once in %s", block.Name, filename)
		}
		body, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("command %q in %s: %w", block.Name, filename, diags)
		}
		obj := make(map[string]any, len(body))
		for key, attr := range body {
			v, err := evaluate(attr.Expr, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("command %q in %s: attribute %q: %w", block.Name, filename, key, err)
			}
			obj[key] = v
		}
		entries[block.Name] = obj
	}

	logger.Debug("HCL loading complete.", "commands", len(entries))
	return config.DecodeAll(entries, r), nil
}

func evaluate(expr hcl.Expression, evalCtx *hcl.EvalContext) (any, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	return toGo(val)
}

// newEvalContext exposes the process environment as `env`, the config
// directory as `cwd`, and a handful of string functions.
func newEvalContext(dir string) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
			"cwd": cty.StringVal(dir),
		},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"join":      stdlib.JoinFunc,
			"format":    stdlib.FormatFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"concat":    stdlib.ConcatFunc,
			"replace":   stdlib.ReplaceFunc,
		},
	}
}
