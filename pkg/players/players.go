// Package players maps alternate accounts onto one canonical player.
package players

import "sort"

// Directory resolves alternate PUUIDs to a main PUUID and carries display
// name overrides. The zero value and a nil *Directory are usable and map
// every id to itself.
type Directory struct {
	aliases map[string]string
	names   map[string]string
}

// NewDirectory builds a directory from alias (alternate -> main) and name
// (main -> display name) maps. The maps are copied.
func NewDirectory(aliases, names map[string]string) *Directory {
	d := &Directory{
		aliases: make(map[string]string, len(aliases)),
		names:   make(map[string]string, len(names)),
	}
	for alt, main := range aliases {
		if alt == "" || main == "" || alt == main {
			continue
		}
		d.aliases[alt] = main
	}
	for id, name := range names {
		if name != "" {
			d.names[id] = name
		}
	}
	return d
}

// CanonicalID returns the main account for puuid. Alias chains are followed
// until they end or loop.
func (d *Directory) CanonicalID(puuid string) string {
	if d == nil || len(d.aliases) == 0 {
		return puuid
	}
	seen := map[string]bool{puuid: true}
	id := puuid
	for {
		next, ok := d.aliases[id]
		if !ok || seen[next] {
			return id
		}
		seen[next] = true
		id = next
	}
}

// DisplayName returns the configured name for the canonical account of
// puuid, or fallback when none is configured.
func (d *Directory) DisplayName(puuid, fallback string) string {
	if d == nil {
		return fallback
	}
	if name, ok := d.names[d.CanonicalID(puuid)]; ok {
		return name
	}
	return fallback
}

// Aliases returns the alternate ids that resolve to main, sorted.
func (d *Directory) Aliases(main string) []string {
	if d == nil {
		return nil
	}
	var out []string
	for alt := range d.aliases {
		if alt != main && d.CanonicalID(alt) == main {
			out = append(out, alt)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of configured aliases.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.aliases)
}
