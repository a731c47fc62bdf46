package bindconv

import "time"

// Delimiter overrides the separator the delimited-string converters split and
// join on. Attach it to the target descriptor of a collection binding; without
// it the converters use a comma.
type Delimiter struct {
	Value string
}

// DurationUnit sets the unit applied to bare numeric duration text such as
// "250". Attach it to the target descriptor of a time.Duration binding;
// without it bare numbers are read as milliseconds. Text with an explicit
// unit ("250ms", "PT5S") ignores the annotation.
type DurationUnit struct {
	Unit time.Duration
}
