package task

// Annotation is a timestamped note attached to a task. In the JSON export the
// timestamp is named "entry" and the text "description". Annotations have no
// identity of their own; two annotations with equal fields are
// indistinguishable.
type Annotation struct {
	Entry       Date   `json:"entry"`
	Description string `json:"description"`
}

// NewAnnotation builds an Annotation from its two parts.
func NewAnnotation(entry Date, description string) Annotation {
	return Annotation{Entry: entry, Description: description}
}
