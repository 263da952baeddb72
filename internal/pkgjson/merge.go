package pkgjson

import "fmt"

// Merge returns a new manifest whose scripts and devDependencies are the
// union of base's maps and every overlay's maps, applied in argument order
// with the last writer winning on key collisions. The callers apply the base
// template first, then the common overlay, then the framework overlay, which
// lets a framework override a common default but never the reverse.
func Merge(base *Manifest, overlays ...Fragment) (*Manifest, error) {
	merged, err := base.Fragment()
	if err != nil {
		return nil, err
	}
	for _, o := range overlays {
		merged.Scripts.SetAll(o.Scripts)
		merged.DevDependencies.SetAll(o.DevDependencies)
	}

	out := base.clone()
	if err := out.setMap(keyScripts, merged.Scripts); err != nil {
		return nil, err
	}
	if err := out.setMap(keyDevDependencies, merged.DevDependencies); err != nil {
		return nil, err
	}
	return out, nil
}

// setMap stores om under key. An empty map is only written when the key
// already existed.
func (m *Manifest) setMap(key string, om *OrderedMap) error {
	if _, ok := m.fields[key]; !ok && om.Len() == 0 {
		return nil
	}
	raw, err := om.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	m.set(key, raw)
	return nil
}
