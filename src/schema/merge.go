package schema

// Merge returns a deep copy of base with over applied on top.
// Mappings merge key by key; any other value in over replaces the one in base.
func Merge(base, over *Map) *Map {
	out := base.Clone()
	if out == nil {
		out = NewMap()
	}
	for _, key := range over.Keys() {
		ov, _ := over.Get(key)
		bv, ok := out.Get(key)
		if ok {
			bm, bIsMap := AsMap(bv)
			om, oIsMap := AsMap(ov)
			if bIsMap && oIsMap && bv != nil && ov != nil {
				out.Set(key, Merge(bm, om))
				continue
			}
		}
		out.Set(key, cloneValue(ov))
	}
	return out
}
