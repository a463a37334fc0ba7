// Package formgroup renders the wrapping markup of form groups: a container
// element, its label and the validation error block of a single field.
//
// Groups are opened and closed in strict LIFO order. OpenGroup pushes the
// field onto a stack and returns the container opening tag plus the label;
// CloseGroup pops it and returns the error fragment plus the closing tags.
// Callers render the field control between the two calls:
//
//	groups := formgroup.New(formgroup.WithErrors(bag))
//	out := groups.OpenGroup("email", "Email", nil, nil)
//	out += `<input type="email" name="email">`
//	closing, err := groups.CloseGroup()
//
// Two label lifecycles are supported. LabelInline renders a complete
// <label for="name"> element. LabelWrap, the default, adds a "columns" class
// to the container and leaves the label open so it wraps the control; the
// matching </label> is emitted by CloseGroup.
//
// The error lookup goes through ErrorSource. Field names are normalised with
// errorbag.TransformKey, so "address[city]" resolves to "address.city". When
// no source is configured no field ever has errors.
//
// A Renderer is not safe for concurrent use. Construct one per render pass.
package formgroup
