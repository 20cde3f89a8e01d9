package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/WolffM/vibecheck/internal/cli/config"
)

// fieldDescriptions documents configuration keys by dotted path.
var fieldDescriptions = map[string]string{
	"state_path":                      "SQLite database recording runs and waivers, relative to the project root",
	"verbose":                         "Log progress to stderr",
	"output":                          "Output format: auto, text, markdown, json, yaml, sarif",
	"concurrency":                     "Files analysed in parallel (0 uses the CPU count)",
	"timeout":                         "Abort analysis after this duration (0 disables)",
	"no_history":                      "Do not record runs in the state database",
	"max_file_size":                   "Skip sources larger than this many bytes",
	"exclude":                         "Directory names or paths skipped during discovery",
	"docs_url":                        "Base URL used for rule documentation links",
	"lint.enabled":                    "Only run these rules or groups (empty runs all)",
	"lint.disabled":                   "Rules or groups to disable",
	"lint.severity":                   "Per-rule severity overrides",
	"lint.rules":                      "Per-rule options",
	"lint.suppressions":               "Line ranges where rules are silenced",
	"lint.analysis_depth":             "Region searched for later uses: block or function",
	"lint.max_ancestors":              "Ancestors visible to rule predicates",
	"lint.report_unused_suppressions": "Report directives that silenced nothing",
}

// configField is one documented configuration key.
type configField struct {
	Key     string
	Type    string
	Default string
}

// generateConfigDocs writes configuration.md describing vibecheck.yaml.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, renderConfigDocs(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

func renderConfigDocs() []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "vibecheck.yaml reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("vibecheck reads %s (or %s) from the working directory or the nearest parent. "+
		"Environment variables prefixed with %s override the file, and flags override both.",
		InlineCode(config.ConfigFileName), InlineCode(config.ConfigFileNameAlt), InlineCode(config.EnvPrefix)))

	w.Header(2, "Keys")
	rows := make([][]string, 0, len(fieldDescriptions))
	for _, f := range configFields(reflect.ValueOf(*config.Default()), "") {
		rows = append(rows, []string{InlineCode(f.Key), f.Type, f.Default, fieldDescriptions[f.Key]})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: markdown
timeout: 30s
exclude:
  - target
  - vendor
lint:
  disabled:
    - pedantic
  severity:
    eq_op: error
  rules:
    type_complexity:
      max_depth: 6
  suppressions:
    - path: src/legacy.rs
      rules: [needless_bool]
      start_line: 10
      end_line: 20
  analysis_depth: function`)

	return w.Bytes()
}

// configFields flattens the koanf-tagged fields of v into dotted keys.
func configFields(v reflect.Value, prefix string) []configField {
	var out []configField
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + tag
		fv := v.Field(i)

		if fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct {
			if fv.IsNil() {
				fv = reflect.New(fv.Type().Elem())
			}
			out = append(out, configFields(fv.Elem(), key+".")...)
			continue
		}

		out = append(out, configField{
			Key:     key,
			Type:    typeName(sf.Type),
			Default: defaultValue(fv),
		})
	}
	return out
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Slice:
		return "list"
	case reflect.Map:
		return "map"
	case reflect.Int64:
		if t.String() == "time.Duration" {
			return "duration"
		}
	}
	return t.Kind().String()
}

func defaultValue(v reflect.Value) string {
	if v.IsZero() {
		return "-"
	}
	return InlineCode(strings.TrimSpace(fmt.Sprint(v.Interface())))
}
