package source

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is the YAML shape of a row. An entry with a header and nested
// items forms a group; disabling the header disables the group.
type Entry struct {
	Value    string  `yaml:"value"`
	Label    string  `yaml:"label"`
	Header   string  `yaml:"header"`
	Disabled bool    `yaml:"disabled"`
	Items    []Entry `yaml:"items"`
}

type document struct {
	Title string  `yaml:"title"`
	Items []Entry `yaml:"items"`
}

// ParseYAML accepts either a document with title and items or a bare
// sequence of entries.
func ParseYAML(data []byte) (*List, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var entries []Entry
		if seqErr := yaml.Unmarshal(data, &entries); seqErr != nil {
			return nil, err
		}
		doc.Items = entries
	}

	list := &List{Title: doc.Title}
	for i, e := range doc.Items {
		rows, err := flatten(e, "", false)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		list.Rows = append(list.Rows, rows...)
	}
	return list, nil
}

func flatten(e Entry, group string, groupDisabled bool) ([]Row, error) {
	if e.Header != "" {
		if group != "" {
			return nil, fmt.Errorf("header %q nested under %q", e.Header, group)
		}
		rows := []Row{{Value: e.Header, Label: e.Header, Header: true, Disabled: e.Disabled}}
		for _, child := range e.Items {
			childRows, err := flatten(child, e.Header, e.Disabled)
			if err != nil {
				return nil, err
			}
			rows = append(rows, childRows...)
		}
		return rows, nil
	}
	if len(e.Items) > 0 {
		return nil, fmt.Errorf("entry %q has items but no header", e.Value)
	}
	value := e.Value
	if value == "" {
		value = e.Label
	}
	if value == "" {
		return nil, fmt.Errorf("entry has neither value nor label")
	}
	return []Row{{
		Value:         value,
		Label:         e.Label,
		Disabled:      e.Disabled,
		Group:         group,
		GroupDisabled: groupDisabled,
	}}, nil
}
