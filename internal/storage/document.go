package storage

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Flarenzy/site-ipam/internal/domain"
)

// document is the on-disk layout:
//
//	sites:
//	  hq:
//	    devices: [...]
//	    vlans: [...]
type document struct {
	Sites siteMap `yaml:"sites"`
}

type siteBody struct {
	Devices []domain.Device `yaml:"devices"`
	Vlans   []domain.Vlan   `yaml:"vlans"`
}

// siteMap keeps the sites mapping in file order, which a Go map would lose.
type siteMap []domain.Site

func (m *siteMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sites must be a mapping", node.Line)
	}

	sites := make(siteMap, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, dup := seen[key]; dup {
			return fmt.Errorf("line %d: duplicate site %q", node.Content[i].Line, key)
		}
		seen[key] = struct{}{}

		var body siteBody
		if err := node.Content[i+1].Decode(&body); err != nil {
			return fmt.Errorf("site %s: %w", key, err)
		}
		sites = append(sites, domain.Site{Key: key, Vlans: body.Vlans, Devices: body.Devices})
	}

	*m = sites
	return nil
}

func (m siteMap) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, site := range m {
		var body yaml.Node
		if err := body.Encode(siteBody{Devices: nonNil(site.Devices), Vlans: nonNil(site.Vlans)}); err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Key, err)
		}
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: site.Key},
			&body,
		)
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
