// Package form defines the canonical field model for scribable forms and
// the extraction/hydration steps that feed the inference backend.
//
// The live host page is reached only through the Form/Control capability
// interfaces; package form never touches concrete markup. Adapters (see
// form/htmlform) implement the interfaces per host environment.
package form
