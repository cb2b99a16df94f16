package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	domainconfig "github.com/felixgeelhaar/automata/domain/config"
)

var (
	// bracketPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
	bracketPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)
	// simplePattern matches $VAR.
	simplePattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// envExpander expands environment variables in the string values of a
// parsed document. Keys and comments are never expanded, so a variable can
// neither rename a field nor change the document's structure.
type envExpander struct {
	strict  bool
	missing []string
}

// expandYAML parses a YAML document and expands its string scalars.
func expandYAML(data []byte, strict bool) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrInvalidFormat, err)
	}
	e := &envExpander{strict: strict}
	e.node("", &root)
	if err := e.err(); err != nil {
		return nil, err
	}
	return &root, nil
}

// expandJSON parses a JSON document, expands its string values and returns
// it re-encoded.
func expandJSON(data []byte, strict bool) ([]byte, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrInvalidFormat, err)
	}
	e := &envExpander{strict: strict}
	root = e.value("", root)
	if err := e.err(); err != nil {
		return nil, err
	}
	return json.Marshal(root)
}

func (e *envExpander) node(path string, n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			e.node(path, c)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			e.node(joinPath(path, n.Content[i].Value), n.Content[i+1])
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			e.node(fmt.Sprintf("%s[%d]", path, i), c)
		}
	case yaml.ScalarNode:
		if strings.Contains(n.Value, "$") {
			n.Value = e.expand(path, n.Value)
		}
	}
}

func (e *envExpander) value(path string, v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, c := range v {
			v[k] = e.value(joinPath(path, k), c)
		}
		return v
	case []any:
		for i, c := range v {
			v[i] = e.value(fmt.Sprintf("%s[%d]", path, i), c)
		}
		return v
	case string:
		return e.expand(path, v)
	default:
		return v
	}
}

// expand substitutes the variables of one value. ${VAR:-d} falls back to d
// when VAR is unset or empty; ${VAR:?m} requires it in every mode.
func (e *envExpander) expand(path, s string) string {
	s = bracketPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := bracketPattern.FindStringSubmatch(match)
		name, modifier := sub[1], sub[2]
		value, set := os.LookupEnv(name)

		switch {
		case strings.HasPrefix(modifier, ":-"):
			if !set || value == "" {
				return modifier[2:]
			}
		case strings.HasPrefix(modifier, ":?"):
			if !set || value == "" {
				e.miss(path, name, modifier[2:])
				return match
			}
		case !set:
			if e.strict {
				e.miss(path, name, "")
			}
			return ""
		}
		return value
	})

	return simplePattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1:]
		value, set := os.LookupEnv(name)
		if !set && e.strict {
			e.miss(path, name, "")
		}
		return value
	})
}

func (e *envExpander) miss(path, name, message string) {
	if path == "" {
		path = "(root)"
	}
	entry := path + ": " + name
	if message != "" {
		entry += " (" + message + ")"
	}
	e.missing = append(e.missing, entry)
}

func (e *envExpander) err() error {
	if len(e.missing) == 0 {
		return nil
	}
	sort.Strings(e.missing)
	return fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(e.missing, ", "))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
