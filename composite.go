package bindconv

// composite chains conversion strategies in strict construction order.
// CanConvert asks every delegate and short-circuits on the first yes. Convert
// is deliberately asymmetric: it probes every delegate except the last with
// CanConvert and hands the value to the first that claims it, and when none
// does it invokes the last delegate without asking, so the final fallback is
// the one that fails loudly instead of silently declining.
type composite struct {
	delegates []Converter
}

// newComposite assembles the chain for one session: the legacy editor service
// first, the caller's primary service second, and the process-wide shared
// registry as the closing fallback unless the primary already is that exact
// instance. Recognition is by identity, not by type, so the shared registry
// appears at most once.
func newComposite(editorService, primary Converter) composite {
	delegates := []Converter{editorService, primary}
	if shared := Converter(Shared()); primary != shared {
		delegates = append(delegates, shared)
	}
	return composite{delegates: delegates}
}

func (c composite) CanConvert(src, dst Descriptor) bool {
	for _, d := range c.delegates {
		if d.CanConvert(src, dst) {
			return true
		}
	}
	return false
}

func (c composite) Convert(v any, src, dst Descriptor) (any, error) {
	last := len(c.delegates) - 1
	for _, d := range c.delegates[:last] {
		if d.CanConvert(src, dst) {
			return d.Convert(v, src, dst)
		}
	}
	return c.delegates[last].Convert(v, src, dst)
}
