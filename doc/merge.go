package doc

// MergePatch appends a patch's instructions and examples into the
// document. Instruction items append after the document's existing
// items for the category; examples overwrite on name collision (the
// later merge wins). Both the import resolver and the conditional
// processor merge through this so append semantics stay in one place.
func (d *Document) MergePatch(p *Patch) {
	if p == nil {
		return
	}
	for cat, items := range p.Instructions {
		if len(items) == 0 {
			continue
		}
		if d.Instructions == nil {
			d.Instructions = make(map[string][]string)
		}
		d.Instructions[cat] = append(d.Instructions[cat], items...)
	}
	for name, snippet := range p.Examples {
		if d.Examples == nil {
			d.Examples = make(map[string]string)
		}
		d.Examples[name] = snippet
	}
}
